package compress

import (
	"io"
)

// Flusher is implemented by encoders able to force out everything they buffered
// so far, e.g. both gzip flavors. A mid-stream flush costs a few bytes of framing
// but makes all the data written so far decodable on the receiving side.
type Flusher interface {
	Flush() error
}

// FlushSupported reports whether the encoders the factory produces are able to
// flush. Probed by building a throwaway encoder, at most once per Compressor:
// the answer depends on nothing but the factory, and the factory is fixed once
// the compressor is put to work.
func (c *Compressor) FlushSupported() bool {
	c.probeOnce.Do(func() {
		encoder := c.factory(io.Discard)
		_, c.flushable = encoder.(Flusher)
		_ = encoder.Close()
	})

	return c.flushable
}
