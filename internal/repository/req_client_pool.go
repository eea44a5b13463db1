package repository

import (
	"fmt"
	"sync"
	"time"

	"github.com/imroc/req/v3"
)

type reqClientOptions struct {
	ProxyURL string
	Timeout  time.Duration
	// NoRedirect returns 3xx answers to the caller instead of following them.
	NoRedirect bool
	// RawBody keeps the body bytes exactly as received (no charset or gzip decoding).
	RawBody bool
}

var sharedReqClients sync.Map

// getSharedReqClient returns one req.Client per option set so connection pools are shared.
func getSharedReqClient(opts reqClientOptions) *req.Client {
	key := fmt.Sprintf("%s|%s|%t|%t", opts.ProxyURL, opts.Timeout, opts.NoRedirect, opts.RawBody)
	if c, ok := sharedReqClients.Load(key); ok {
		return c.(*req.Client)
	}

	client := req.C().SetTimeout(opts.Timeout)
	if opts.ProxyURL != "" {
		client.SetProxyURL(opts.ProxyURL)
	}
	if opts.NoRedirect {
		client.SetRedirectPolicy(req.NoRedirectPolicy())
	}
	if opts.RawBody {
		client.DisableAutoDecode()
		client.DisableCompression()
	}

	actual, _ := sharedReqClients.LoadOrStore(key, client)
	return actual.(*req.Client)
}
