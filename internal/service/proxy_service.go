package service

import (
	"context"
	"mime"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/ueberboese/ueberboese-api/internal/config"
	"github.com/ueberboese/ueberboese-api/internal/pkg/logger"
	"github.com/ueberboese/ueberboese-api/internal/util/charsetutil"
	"go.uber.org/zap"
)

// RequestForwarder relays an inbound request to the vendor cloud.
type RequestForwarder interface {
	Forward(ctx context.Context, in *http.Request, body []byte) (*UpstreamResponse, error)
}

var hopByHopHeaders = []string{
	"Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Proxy-Connection",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

// ProxyService is the catch-all forwarder. It is stateless; each call issues exactly one upstream request.
type ProxyService struct {
	baseURL  string
	upstream HTTPUpstream
}

func NewProxyService(cfg *config.Config, upstream HTTPUpstream) *ProxyService {
	return &ProxyService{
		baseURL:  strings.TrimRight(cfg.Upstream.BaseURL, "/"),
		upstream: upstream,
	}
}

var _ RequestForwarder = (*ProxyService)(nil)

// Forward sends method, path, query, end-to-end headers and body to the upstream and
// returns its answer unchanged. A transport failure returns ErrUpstreamUnavailable.
func (s *ProxyService) Forward(ctx context.Context, in *http.Request, body []byte) (*UpstreamResponse, error) {
	header := in.Header.Clone()
	if header == nil {
		header = http.Header{}
	}
	stripHopByHop(header)
	header.Del("Host")
	header.Del("Content-Length")

	if len(body) > 0 {
		declared := charsetutil.FromContentType(header.Get("Content-Type"))
		decoded, name := charsetutil.DecodeToUTF8(body, declared)
		if name != charsetutil.DefaultName {
			body = decoded
			header.Set("Content-Type", withUTF8Charset(header.Get("Content-Type")))
		}
	}

	target := s.baseURL + in.URL.RequestURI()
	log := logger.L().With(
		zap.String("component", "service.proxy"),
		zap.String("method", in.Method),
		zap.String("target", target),
	)

	resp, err := s.upstream.Do(ctx, &UpstreamRequest{
		Method: in.Method,
		URL:    target,
		Header: header,
		Body:   body,
	})
	if err != nil {
		log.Warn("proxy.forward_failed", zap.Error(err))
		return nil, ErrUpstreamUnavailable.WithCause(err)
	}

	if resp.Header == nil {
		resp.Header = http.Header{}
	}
	stripHopByHop(resp.Header)
	resp.Header.Del("Content-Length")
	log.Debug("proxy.forwarded", zap.Int("status", resp.StatusCode), zap.Int("bytes", len(resp.Body)))
	return resp, nil
}

func stripHopByHop(h http.Header) {
	for _, v := range h.Values("Connection") {
		for _, name := range strings.Split(v, ",") {
			if name = textproto.TrimString(name); name != "" {
				h.Del(name)
			}
		}
	}
	for _, name := range hopByHopHeaders {
		h.Del(name)
	}
}

func withUTF8Charset(contentType string) string {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "text/plain; charset=utf-8"
	}
	params["charset"] = "utf-8"
	return mime.FormatMediaType(mediaType, params)
}
