package repository

import (
	"context"
	"net/http"

	"github.com/ueberboese/ueberboese-api/internal/config"
	"github.com/ueberboese/ueberboese-api/internal/service"
)

type httpUpstream struct {
	opts reqClientOptions
}

// NewHTTPUpstream returns the vendor cloud transport. Redirects are relayed, not followed.
func NewHTTPUpstream(cfg *config.Config) service.HTTPUpstream {
	return &httpUpstream{opts: reqClientOptions{
		ProxyURL:   cfg.Upstream.ProxyURL,
		Timeout:    cfg.Upstream.Timeout(),
		NoRedirect: true,
		RawBody:    true,
	}}
}

func (u *httpUpstream) Do(ctx context.Context, in *service.UpstreamRequest) (*service.UpstreamResponse, error) {
	client := getSharedReqClient(u.opts)

	r := client.R().SetContext(ctx)
	r.Headers = in.Header.Clone()
	if r.Headers == nil {
		r.Headers = http.Header{}
	}
	if len(in.Body) > 0 {
		r.SetBodyBytes(in.Body)
	}

	resp, err := r.Send(in.Method, in.URL)
	if err != nil {
		return nil, err
	}
	body, err := resp.ToBytes()
	if err != nil {
		return nil, err
	}
	return &service.UpstreamResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header.Clone(),
		Body:       body,
	}, nil
}
