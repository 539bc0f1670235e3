package compress

import (
	"io"
	"sync"
)

// flushResetter is what an encoder must implement in order to be recyclable.
// Both bundled encoders qualify.
type flushResetter interface {
	io.WriteCloser
	Flusher
	Reset(dst io.Writer)
}

// Pooled wraps the factory, recycling closed encoders instead of building each
// one from scratch. An encoder carries considerable buffers inside, reusing them
// relieves the GC a lot on busy servers. Encoders without Reset or Flush are
// passed through as is and simply don't benefit.
func Pooled(factory EncoderFactory) EncoderFactory {
	pool := new(sync.Pool)

	return func(dst io.Writer) io.WriteCloser {
		if recycled, ok := pool.Get().(*pooledEncoder); ok {
			recycled.encoder.Reset(dst)
			return recycled
		}

		encoder := factory(dst)
		full, ok := encoder.(flushResetter)
		if !ok {
			return encoder
		}

		return &pooledEncoder{encoder: full, pool: pool}
	}
}

type pooledEncoder struct {
	encoder flushResetter
	pool    *sync.Pool
}

func (p *pooledEncoder) Write(b []byte) (n int, err error) {
	return p.encoder.Write(b)
}

func (p *pooledEncoder) Flush() error {
	return p.encoder.Flush()
}

// Close finalizes the underlying encoder and hands it over to the pool.
func (p *pooledEncoder) Close() error {
	err := p.encoder.Close()
	p.pool.Put(p)
	return err
}
