package types

import (
	"bytes"
	"io"
	"iter"
	"os"

	"github.com/indigo-web/utils/uf"
)

// BodyKind tells apart the sources a response body can be served from.
type BodyKind uint8

const (
	// BodyNone marks an absent body.
	BodyNone BodyKind = iota
	// BodyText is an in-memory string payload.
	BodyText
	// BodyBytes is an in-memory bytes payload.
	BodyBytes
	// BodyStream is an arbitrary byte stream. If it happens to implement io.Closer,
	// it is closed once fully consumed.
	BodyStream
	// BodyFile is an open file handle. Closed once fully consumed.
	BodyFile
	// BodyChunks is a sequence of text chunks, each of which is supposed to reach
	// the client as soon as it is produced.
	BodyChunks
)

// Body is a response body of exactly one of the listed kinds. Only the field
// corresponding to Kind is meaningful, the zero value stands for no body at all.
type Body struct {
	Kind   BodyKind
	Text   string
	Bytes  []byte
	Stream io.Reader
	File   *os.File
	Chunks iter.Seq[string]
}

func NoBody() Body {
	return Body{}
}

func TextBody(text string) Body {
	return Body{Kind: BodyText, Text: text}
}

func BytesBody(b []byte) Body {
	return Body{Kind: BodyBytes, Bytes: b}
}

func StreamBody(source io.Reader) Body {
	return Body{Kind: BodyStream, Stream: source}
}

func FileBody(fd *os.File) Body {
	return Body{Kind: BodyFile, File: fd}
}

func ChunkedBody(chunks iter.Seq[string]) Body {
	return Body{Kind: BodyChunks, Chunks: chunks}
}

// Reader returns the byte source behind the body. Text and bytes payloads are
// wrapped into fresh readers, thereby the method may be called repeatedly. Chunked
// bodies have no plain byte form, for them (and for no body) nil is returned.
func (b Body) Reader() io.Reader {
	switch b.Kind {
	case BodyText:
		// the reader never modifies the passed slice, so an unsafe cast saves a copy
		return bytes.NewReader(uf.S2B(b.Text))
	case BodyBytes:
		return bytes.NewReader(b.Bytes)
	case BodyStream:
		return b.Stream
	case BodyFile:
		return b.File
	default:
		return nil
	}
}
