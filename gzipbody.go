// Package gzipbody compresses HTTP response bodies on the way out. The decision
// whether to compress is driven by the response itself and by the client's
// Accept-Encoding, the compression runs in background and is consumed as a
// stream, so even endless bodies cost a fixed amount of memory.
package gzipbody

import (
	"log"

	"github.com/indigo-web/gzipbody/compress"
	"github.com/indigo-web/gzipbody/config"
	"github.com/indigo-web/gzipbody/types"
)

// Logger is satisfied by log.Logger. Used to report failures of background
// encoders, which otherwise would only be seen by whoever reads the stream.
type Logger interface {
	Printf(fmt string, v ...any)
}

// Handler produces a response for a request.
type Handler func(request *types.Request) types.Response

// Middleware rewrites eligible responses into their gzip form. A single instance
// is safe for concurrent use.
type Middleware struct {
	cfg        *config.Config
	compressor *compress.Compressor
	loggers    []Logger
}

// New returns a middleware over its own compressor. Nil config stands for
// config.Default().
func New(cfg *config.Config) *Middleware {
	if cfg == nil {
		cfg = config.Default()
	}

	return &Middleware{
		cfg:        cfg,
		compressor: compress.New(cfg),
	}
}

// WithCompressor replaces the compressor, e.g. by one with a custom encoder.
// Must be called before the middleware is put to work.
func (m *Middleware) WithCompressor(compressor *compress.Compressor) *Middleware {
	m.compressor = compressor
	return m
}

// Log attaches loggers reporting compression failures. No loggers stands for
// log.Default().
func (m *Middleware) Log(loggers ...Logger) *Middleware {
	if len(loggers) == 0 {
		loggers = append(loggers, log.Default())
	}

	m.loggers = append(m.loggers, loggers...)
	return m
}

// ShouldCompress reports whether the response is worth compressing for the
// requesting client. Only plain 200 responses not encoded by anybody before
// qualify; texts and bytes must be long enough to actually win from the
// compression, chunked bodies additionally require an encoder able to flush.
// Whenever in doubt, the answer is no.
func (m *Middleware) ShouldCompress(request *types.Request, response types.Response) bool {
	if response.Code != 200 || response.Headers.Has("Content-Encoding") {
		return false
	}

	switch response.Body.Kind {
	case types.BodyText:
		if len(response.Body.Text) <= m.cfg.Policy.SmallBody {
			return false
		}
	case types.BodyBytes:
		if len(response.Body.Bytes) <= m.cfg.Policy.SmallBody {
			return false
		}
	case types.BodyChunks:
		// a chunked body is only worth compressing if every chunk can leave the
		// encoder as soon as it came in
		if !m.compressor.FlushSupported() {
			return false
		}
	case types.BodyStream, types.BodyFile:
	default:
		return false
	}

	return acceptsGzip(request.Headers.Value("accept-encoding"))
}

// Apply returns the gzip form of the response, or the response itself if it
// shouldn't be compressed. The passed response is never modified. On failure the
// original response is returned alongside the error, so it can still be served
// uncompressed.
func (m *Middleware) Apply(request *types.Request, response types.Response) (types.Response, error) {
	if !m.ShouldCompress(request, response) {
		return response, nil
	}

	compressed, err := m.rewrite(response)
	if err != nil {
		m.report(request, err)
		return response, err
	}

	return compressed, nil
}

// ApplyCallback is Apply for callback-shaped pipelines: exactly one of the two
// callbacks is invoked before it returns.
func (m *Middleware) ApplyCallback(
	request *types.Request,
	response types.Response,
	resolve func(types.Response),
	reject func(error),
) {
	compressed, err := m.Apply(request, response)
	if err != nil {
		reject(err)
		return
	}

	resolve(compressed)
}

// Wrap puts the handler behind the middleware. A response failing to compress is
// served as it came out of the handler, the failure itself goes to the loggers.
func (m *Middleware) Wrap(next Handler) Handler {
	return func(request *types.Request) types.Response {
		response, _ := m.Apply(request, next(request))
		return response
	}
}

func (m *Middleware) rewrite(response types.Response) (types.Response, error) {
	stream := m.compressStream(response.Body)

	if length, sized := parseLength(response.Headers.Value("Content-Length")); sized &&
		length < m.cfg.Policy.MaterializeBelow {
		return m.materialize(response, stream)
	}

	return m.streamed(response, stream), nil
}

func (m *Middleware) compressStream(body types.Body) *compress.Stream {
	if body.Kind == types.BodyChunks {
		return m.compressor.CompressChunks(body.Chunks)
	}

	return m.compressor.Compress(body.Reader())
}

func (m *Middleware) report(request *types.Request, err error) {
	for _, logger := range m.loggers {
		logger.Printf("gzipbody: %s %s: %s", request.Method, request.Path, err)
	}
}
