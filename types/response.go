package types

import (
	"bytes"
	"errors"
	"io"
	"iter"
	"os"
	"strconv"

	"github.com/indigo-web/gzipbody/kv"
	json "github.com/json-iterator/go"
)

var ErrNotAFile = errors.New("not a file")

// Response is a plain value. Builder methods return a modified copy and never
// touch the receiver: headers are copied on write, so a response may be safely
// derived from another one.
type Response struct {
	Code    int
	Headers *kv.Storage
	Body    Body
}

// NewResponse returns a response with the code set to 200 OK and no body.
func NewResponse() Response {
	return Response{
		Code:    200,
		Headers: kv.New(),
	}
}

func (r Response) WithCode(code int) Response {
	r.Code = code
	return r
}

// WithHeader adds header values to a key, keeping the already existing ones.
func (r Response) WithHeader(key string, values ...string) Response {
	headers := r.Headers.Clone()
	for _, value := range values {
		headers.Add(key, value)
	}

	r.Headers = headers
	return r
}

// WithHeaders merges the map into the response headers.
func (r Response) WithHeaders(headers map[string][]string) Response {
	resp := r

	for key, values := range headers {
		resp = resp.WithHeader(key, values...)
	}

	return resp
}

// WithContentType sets the Content-Type header, overriding the previous value
// if any.
func (r Response) WithContentType(value string) Response {
	r.Headers = r.Headers.Clone().Set("Content-Type", value)
	return r
}

// WithText sets the response body to the passed string and sets the
// Content-Length header accordingly.
func (r Response) WithText(body string) Response {
	r.Body = TextBody(body)
	return r.withLength(int64(len(body)))
}

// WithBytes sets the response body to the passed slice WITHOUT COPYING, sets
// the Content-Length header accordingly. Changing the slice later will affect
// the response by itself.
func (r Response) WithBytes(body []byte) Response {
	r.Body = BytesBody(body)
	return r.withLength(int64(len(body)))
}

// WithStream sets the response body to a byte stream of unknown length. If the
// stream implements io.Closer, it is closed once fully consumed.
func (r Response) WithStream(source io.Reader) Response {
	r.Body = StreamBody(source)
	return r
}

// WithSizedStream sets the response body to a byte stream of known length and
// sets the Content-Length header accordingly.
func (r Response) WithSizedStream(source io.Reader, size int64) Response {
	r.Body = StreamBody(source)
	return r.withLength(size)
}

// WithFile sets the response body to an already open file. The descriptor is
// closed once fully consumed.
func (r Response) WithFile(fd *os.File) Response {
	r.Body = FileBody(fd)
	return r
}

// WithChunks sets the response body to a sequence of text chunks, e.g. produced
// by slices.Values. Each chunk is delivered to the client as soon as produced.
func (r Response) WithChunks(chunks iter.Seq[string]) Response {
	r.Body = ChunkedBody(chunks)
	return r
}

// TryFile opens the file for reading and returns a response with its handle
// attached and the Content-Length header set to the file size.
func (r Response) TryFile(path string) (Response, error) {
	fd, err := os.Open(path)
	if err != nil {
		return r, err
	}

	stat, err := fd.Stat()
	if err != nil {
		_ = fd.Close()
		return r, err
	}
	if stat.IsDir() {
		_ = fd.Close()
		return r, ErrNotAFile
	}

	return r.WithFile(fd).withLength(stat.Size()), nil
}

// TryJSON serializes the model into the response body and sets the Content-Type
// header to application/json.
func (r Response) TryJSON(model any) (Response, error) {
	buff := bytes.NewBuffer(nil)
	stream := json.ConfigDefault.BorrowStream(buff)
	stream.WriteVal(model)
	err := stream.Flush()
	json.ConfigDefault.ReturnStream(stream)
	if err != nil {
		return r, err
	}

	return r.WithContentType("application/json").WithBytes(buff.Bytes()), nil
}

// JSON does the same as TryJSON does, except the error is rendered as a plain
// 500 response instead of being returned.
func (r Response) JSON(model any) Response {
	resp, err := r.TryJSON(model)
	if err != nil {
		return r.WithCode(500).WithText(err.Error())
	}

	return resp
}

func (r Response) withLength(length int64) Response {
	r.Headers = r.Headers.Clone().Set("Content-Length", strconv.FormatInt(length, 10))
	return r
}
