package service

import (
	"context"
	"net/http"
)

// UpstreamRequest is one outbound call to the vendor cloud.
type UpstreamRequest struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// UpstreamResponse is the fully read upstream answer.
type UpstreamResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (r *UpstreamResponse) IsSuccess() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// HTTPUpstream performs exactly one HTTP exchange. Non-2xx answers are not errors;
// an error means no response was received.
type HTTPUpstream interface {
	Do(ctx context.Context, req *UpstreamRequest) (*UpstreamResponse, error)
}
