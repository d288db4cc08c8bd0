package summarizer

import (
	"net"
	"net/http"
	"time"
)

const (
	// DialTimeout is the connection timeout.
	DialTimeout = 10 * time.Second
	// TLSHandshakeTimeout is the TLS negotiation timeout.
	TLSHandshakeTimeout = 10 * time.Second
	// ResponseHeaderTimeout is time to wait for response headers. Completions
	// only send headers once generation is done, so this is generous.
	ResponseHeaderTimeout = 30 * time.Second
	// DefaultClientTimeout is the total request timeout when none is configured.
	DefaultClientTimeout = 30 * time.Second
)

// NewHTTPClient creates an HTTP client for the completion API.
// It has bounded timeouts at every stage and does not follow redirects.
func NewHTTPClient(total time.Duration) *http.Client {
	if total <= 0 {
		total = DefaultClientTimeout
	}
	return &http.Client{
		Timeout: total,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   DialTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   TLSHandshakeTimeout,
			ResponseHeaderTimeout: ResponseHeaderTimeout,
			MaxIdleConns:          20,
			MaxIdleConnsPerHost:   10,
			IdleConnTimeout:       90 * time.Second,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}
