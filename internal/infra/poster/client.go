package poster

import (
	"crypto/tls"
	"net/http"
	"time"
)

// NewHTTPClient builds the pooled HTTP client used for TMDB requests.
//
// The client is configured with:
//   - cfg.Timeout as the overall request timeout (connect plus read)
//   - Keep-alive pooling bounded by cfg.MaxIdleConnsPerHost
//   - TLS 1.2 minimum
//
// A single client should be shared for the lifetime of the process.
func NewHTTPClient(cfg Config) *http.Client {
	perHost := cfg.MaxIdleConnsPerHost
	if perHost <= 0 {
		perHost = 10
	}

	return &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        perHost * 2,
			MaxIdleConnsPerHost: perHost,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: cfg.Timeout,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12, // Enforce TLS 1.2+
			},
		},
	}
}
