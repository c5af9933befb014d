package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

const userAgent = "second-brain-sync"

// HTTPClient embeds *resty.Client so callers use the resty request API
// directly.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a client bound to baseURL. resty's own retries stay
// off: retrying a failed sync is decided per cycle, not per request.
// A zero timeout leaves requests bounded only by their context.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetRetryCount(0).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", userAgent)
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &HTTPClient{Client: client}
}
