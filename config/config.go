package config

import (
	"github.com/klauspost/compress/gzip"
)

type (
	Compression struct {
		// Level is the gzip compression level, must be within the boundaries the
		// encoder accepts (gzip.StatelessCompression to gzip.BestCompression for the
		// bundled one). Levels outside of them fall back to the default.
		Level int
		// FlushEveryWrite makes the encoder flush after each written chunk, so the
		// compressed data reaches the client as soon as possible at some cost of
		// compression ratio. Encoders unable to flush ignore the setting.
		FlushEveryWrite bool
	}

	Stream struct {
		// ChunkSize is the size of a single read from the body source. Each read is
		// immediately compressed and, if FlushEveryWrite is enabled, flushed.
		ChunkSize int
	}

	Policy struct {
		// SmallBody sets the size a text or bytes body must exceed in order to be
		// compressed. Tiny payloads tend to grow when gzipped.
		SmallBody int
		// MaterializeBelow is the Content-Length boundary below which the compressed
		// body is buffered whole, letting the response carry an exact Content-Length.
		// Starting at this size the body is streamed instead and the length is dropped.
		MaterializeBelow int64
		// Vary appends a Vary: Accept-Encoding header to every rewritten response,
		// hinting the caches to key on the requested encoding.
		Vary bool
	}
)

// Config holds the compression settings. Modify defaults (returned via Default())
// instead of initializing the struct manually, zero values aren't substituted.
type Config struct {
	Compression Compression
	Stream      Stream
	Policy      Policy
}

// Default returns the default config.
func Default() *Config {
	return &Config{
		Compression: Compression{
			Level:           gzip.DefaultCompression,
			FlushEveryWrite: true,
		},
		Stream: Stream{
			ChunkSize: 1024,
		},
		Policy: Policy{
			SmallBody: 200,
			// a mebibyte buffers instantly, anything bigger is better off streamed
			MaterializeBelow: 1024 * 1024,
			Vary:             true,
		},
	}
}
