package sources

import (
	"context"
	"net"
	"net/http"
	"time"
)

const (
	userAgent = "skyseek/1.0 (celestial object search)"

	// maxResponseBytes caps remote payload reads. The resolution
	// services return small documents; anything bigger is malformed.
	maxResponseBytes = 2 << 20

	// Default per-source throttle.
	defaultBurst         = 5
	defaultCallsPerMin   = 30
	availabilityTimeout  = 3 * time.Second
)

// newHTTPClient builds the shared outbound client. Per-request
// deadlines come from the caller's context, so the client itself only
// bounds connection setup.
func newHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   5 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout: 5 * time.Second,
			MaxIdleConnsPerHost: 2,
		},
	}
}

// probe issues a GET against url and reports whether the service
// answered at all. Any HTTP response counts as "up": a 4xx still means
// the service is reachable and parsing requests.
func probe(ctx context.Context, client *http.Client, url string) bool {
	ctx, cancel := context.WithTimeout(ctx, availabilityTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()
	return resp.StatusCode < http.StatusInternalServerError
}
