package types

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/indigo-web/gzipbody/kv"
	"github.com/stretchr/testify/require"
)

func TestResponseBuilders(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		resp := NewResponse()
		require.Equal(t, 200, resp.Code)
		require.True(t, resp.Headers.Empty())
		require.Equal(t, BodyNone, resp.Body.Kind)
	})

	t.Run("derived response leaves the original untouched", func(t *testing.T) {
		original := NewResponse().WithHeader("Cache-Control", "no-store")
		derived := original.
			WithCode(404).
			WithHeader("X-Reason", "no such page").
			WithText("not found, sadly")

		require.Equal(t, 200, original.Code)
		require.False(t, original.Headers.Has("X-Reason"))
		require.False(t, original.Headers.Has("Content-Length"))
		require.Equal(t, BodyNone, original.Body.Kind)

		require.Equal(t, 404, derived.Code)
		require.Equal(t, "no-store", derived.Headers.Value("Cache-Control"))
		require.Equal(t, "no such page", derived.Headers.Value("X-Reason"))
		require.Equal(t, "not found, sadly", derived.Body.Text)
	})

	t.Run("text sets content-length", func(t *testing.T) {
		resp := NewResponse().WithText("Hello, World!")
		require.Equal(t, BodyText, resp.Body.Kind)
		require.Equal(t, "13", resp.Headers.Value("Content-Length"))
	})

	t.Run("bytes sets content-length", func(t *testing.T) {
		resp := NewResponse().WithBytes([]byte("Hello"))
		require.Equal(t, BodyBytes, resp.Body.Kind)
		require.Equal(t, "5", resp.Headers.Value("Content-Length"))
	})

	t.Run("content-type is unique", func(t *testing.T) {
		resp := NewResponse().
			WithContentType("text/plain").
			WithContentType("text/html")

		require.Equal(t, []string{"text/html"}, slices.Collect(resp.Headers.Values("Content-Type")))
	})

	t.Run("headers map is merged", func(t *testing.T) {
		resp := NewResponse().WithHeaders(map[string][]string{
			"Vary": {"Accept", "Accept-Encoding"},
		})

		require.Equal(t, []string{"Accept", "Accept-Encoding"}, slices.Collect(resp.Headers.Values("Vary")))
	})

	t.Run("sized stream", func(t *testing.T) {
		resp := NewResponse().WithSizedStream(strings.NewReader("Hello"), 5)
		require.Equal(t, BodyStream, resp.Body.Kind)
		require.Equal(t, "5", resp.Headers.Value("Content-Length"))
	})

	t.Run("chunks", func(t *testing.T) {
		resp := NewResponse().WithChunks(slices.Values([]string{"Hello", ", ", "World!"}))
		require.Equal(t, BodyChunks, resp.Body.Kind)
		require.Equal(t, []string{"Hello", ", ", "World!"}, slices.Collect(resp.Body.Chunks))
		require.False(t, resp.Headers.Has("Content-Length"))
	})
}

func TestResponseJSON(t *testing.T) {
	type model struct {
		Name      string `json:"name"`
		Satellite bool   `json:"satellite"`
	}

	resp, err := NewResponse().TryJSON(model{Name: "gzipbody", Satellite: true})
	require.NoError(t, err)
	require.Equal(t, "application/json", resp.Headers.Value("Content-Type"))
	require.Equal(t, `{"name":"gzipbody","satellite":true}`, string(resp.Body.Bytes))
	require.Equal(t, "36", resp.Headers.Value("Content-Length"))
}

func TestResponseFile(t *testing.T) {
	t.Run("regular file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "index.html")
		require.NoError(t, os.WriteFile(path, []byte("<h1>Hello</h1>"), 0o644))

		resp, err := NewResponse().TryFile(path)
		require.NoError(t, err)
		require.Equal(t, BodyFile, resp.Body.Kind)
		require.Equal(t, "14", resp.Headers.Value("Content-Length"))
		require.NoError(t, resp.Body.File.Close())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewResponse().TryFile(filepath.Join(t.TempDir(), "nonexistent"))
		require.Error(t, err)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := NewResponse().TryFile(t.TempDir())
		require.ErrorIs(t, err, ErrNotAFile)
	})
}

func TestResponseHeadersDetached(t *testing.T) {
	shared := kv.New().Add("Server", "indigo")
	first := Response{Code: 200, Headers: shared}
	second := first.WithHeader("X-First", "yes")

	require.False(t, shared.Has("X-First"))
	require.True(t, second.Headers.Has("Server"))
}
