package compress

import (
	"io"

	"github.com/indigo-web/gzipbody/config"
)

// FlushingCopy copies src into dst in chunks of at most chunkSize bytes, flushing
// dst after each non-empty read if it implements Flusher. Destinations unable to
// flush turn it into a plain chunked copy. Non-positive chunk sizes fall back to
// the default one.
func FlushingCopy(dst io.Writer, src io.Reader, chunkSize int) (written int64, err error) {
	if chunkSize <= 0 {
		chunkSize = config.Default().Stream.ChunkSize
	}

	flusher, flushable := dst.(Flusher)
	buff := make([]byte, chunkSize)

	for {
		n, rerr := src.Read(buff)
		if n > 0 {
			wn, werr := dst.Write(buff[:n])
			written += int64(wn)
			if werr != nil {
				return written, werr
			}

			if flushable {
				if ferr := flusher.Flush(); ferr != nil {
					return written, ferr
				}
			}
		}

		switch rerr {
		case nil:
		case io.EOF:
			return written, nil
		default:
			return written, rerr
		}
	}
}
