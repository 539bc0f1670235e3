package gzipbody

import (
	"bytes"
	"strconv"

	"github.com/indigo-web/gzipbody/compress"
	"github.com/indigo-web/gzipbody/kv"
	"github.com/indigo-web/gzipbody/types"
)

// materialize drains the stream into memory, so the response keeps an exact
// Content-Length. Worth it for small bodies only: clients tend to handle sized
// responses better, and the cost of buffering a small one is negligible.
func (m *Middleware) materialize(response types.Response, stream *compress.Stream) (types.Response, error) {
	buff := bytes.NewBuffer(nil)
	if _, err := compress.FlushingCopy(buff, stream, m.cfg.Stream.ChunkSize); err != nil {
		_ = stream.Close()
		return response, err
	}

	headers := m.rewriteHeaders(response.Headers)
	headers.Set("Content-Length", strconv.Itoa(buff.Len()))

	response.Headers = headers
	response.Body = types.BytesBody(buff.Bytes())
	return response, nil
}

// streamed serves the compressed body live. The length of the compressed form
// cannot be known upfront, so Content-Length is dropped and framing the body
// becomes the transport's job.
func (m *Middleware) streamed(response types.Response, stream *compress.Stream) types.Response {
	headers := m.rewriteHeaders(response.Headers)
	headers.Delete("Content-Length")

	response.Headers = headers
	response.Body = types.StreamBody(stream)
	return response
}

// rewriteHeaders clones the headers with Content-Encoding set, so all the header
// changes of a single rewrite land at once and the original mapping stays as is.
func (m *Middleware) rewriteHeaders(headers *kv.Storage) *kv.Storage {
	rewritten := headers.Clone().Set("Content-Encoding", "gzip")
	if m.cfg.Policy.Vary {
		rewritten.Add("Vary", "Accept-Encoding")
	}

	return rewritten
}

// parseLength parses a Content-Length value. Anything malformed reports the
// length as simply unknown: a broken declared length must not break the
// response itself.
func parseLength(value string) (length int64, sized bool) {
	if value == "" {
		return 0, false
	}

	length, err := strconv.ParseInt(value, 10, 64)
	if err != nil || length < 0 {
		return 0, false
	}

	return length, true
}
