package types

import (
	"github.com/indigo-web/gzipbody/kv"
)

// Request is a read-only view of the inbound request, carrying just enough for
// content negotiation. How the values got here is up to the server integration.
type Request struct {
	Method  string
	Path    string
	Headers *kv.Storage
}

// NewRequest wraps already parsed request headers. Nil stands for no headers.
func NewRequest(headers *kv.Storage) *Request {
	if headers == nil {
		headers = kv.New()
	}

	return &Request{
		Method:  "GET",
		Path:    "/",
		Headers: headers,
	}
}
