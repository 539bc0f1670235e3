package compress

import (
	"io"
	"iter"
	"sync"

	"github.com/indigo-web/gzipbody/config"
	"github.com/indigo-web/utils/uf"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/pgzip"
)

// EncoderFactory constructs a fresh encoder writing the compressed form of
// everything written into it to dst.
type EncoderFactory func(dst io.Writer) io.WriteCloser

// Gzip returns a factory of gzip encoders of the given compression level. Levels
// the encoder doesn't know fall back to the default one.
func Gzip(level int) EncoderFactory {
	return func(dst io.Writer) io.WriteCloser {
		encoder, err := gzip.NewWriterLevel(dst, level)
		if err != nil {
			return gzip.NewWriter(dst)
		}

		return encoder
	}
}

// Parallel returns a factory of pgzip encoders, compressing on all the cores.
// Pays off on payloads of a megabyte and above, plain Gzip handles smaller ones
// faster.
func Parallel(level int) EncoderFactory {
	return func(dst io.Writer) io.WriteCloser {
		encoder, err := pgzip.NewWriterLevel(dst, level)
		if err != nil {
			return pgzip.NewWriter(dst)
		}

		return encoder
	}
}

// Compressor turns byte sources into gzip streams. The zero value is unusable,
// construct via New.
type Compressor struct {
	cfg       *config.Config
	factory   EncoderFactory
	probeOnce sync.Once
	flushable bool
}

// New returns a Compressor over a pooled gzip encoder of the configured level.
// Nil config stands for config.Default().
func New(cfg *config.Config) *Compressor {
	if cfg == nil {
		cfg = config.Default()
	}

	return &Compressor{
		cfg:     cfg,
		factory: Pooled(Gzip(cfg.Compression.Level)),
	}
}

// WithEncoder replaces the encoder factory. Must be called before the compressor
// is put to work, reconfiguring it mid-flight isn't supported.
func (c *Compressor) WithEncoder(factory EncoderFactory) *Compressor {
	c.factory = factory
	return c
}

// Compress spawns a background encoder fed by src and instantly returns the
// stream of compressed bytes. Empty (or nil) src results in a valid gzip stream
// of zero-length content. If src implements io.Closer, it is closed once the
// encoder is done with it, no matter whether successfully.
func (c *Compressor) Compress(src io.Reader) *Stream {
	source, sink := io.Pipe()

	go func() {
		_ = sink.CloseWithError(c.pump(sink, src))
	}()

	return &Stream{source: source}
}

// CompressChunks is Compress for a sequence of text chunks. The encoder is
// flushed after each chunk, thereby every produced chunk immediately becomes a
// decodable piece of the stream.
func (c *Compressor) CompressChunks(chunks iter.Seq[string]) *Stream {
	source, sink := io.Pipe()

	go func() {
		_ = sink.CloseWithError(c.pumpChunks(sink, chunks))
	}()

	return &Stream{source: source}
}

func (c *Compressor) pump(sink *io.PipeWriter, src io.Reader) (err error) {
	defer func() {
		if closer, ok := src.(io.Closer); ok {
			if cerr := closer.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}
	}()

	encoder := c.factory(sink)
	defer func() {
		// closing the encoder also finalizes the gzip framing, the stream stays
		// well-formed even if the source failed mid-way
		if cerr := encoder.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if src == nil {
		return nil
	}

	if c.cfg.Compression.FlushEveryWrite {
		_, err = FlushingCopy(encoder, src, c.cfg.Stream.ChunkSize)
		return err
	}

	_, err = io.Copy(encoder, src)
	return err
}

func (c *Compressor) pumpChunks(sink *io.PipeWriter, chunks iter.Seq[string]) (err error) {
	encoder := c.factory(sink)
	defer func() {
		if cerr := encoder.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if chunks == nil {
		return nil
	}

	flusher, flushable := encoder.(Flusher)

	for chunk := range chunks {
		if len(chunk) == 0 {
			continue
		}

		// the encoder only reads the passed slice, so an unsafe cast saves a copy
		if _, err = encoder.Write(uf.S2B(chunk)); err != nil {
			return err
		}

		if flushable {
			if err = flusher.Flush(); err != nil {
				return err
			}
		}
	}

	return nil
}

// Stream is the readable side of an in-flight compression. Reads block until the
// background encoder produces more data. The stream must be drained to the end or
// closed, otherwise the encoder goroutine stays blocked forever.
type Stream struct {
	source *io.PipeReader
}

// Read returns compressed bytes as they are produced, io.EOF once the source is
// exhausted. If the source failed mid-way, its error is returned instead and the
// bytes read so far are to be considered truncated.
func (s *Stream) Read(p []byte) (n int, err error) {
	return s.source.Read(p)
}

// Close releases the stream. If the encoder goroutine is still running, its next
// write fails and the goroutine exits. Always nil.
func (s *Stream) Close() error {
	return s.source.Close()
}
