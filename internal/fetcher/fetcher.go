// Package fetcher wraps the HTTP client used to download remote assets.
// A non-2xx response is an error; there is no retry, the engine treats any
// failure as final for the current run.
package fetcher

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/conneroisu/basset/internal/errors"
)

const defaultTimeout = 30 * time.Second

// Client fetches remote asset content.
type Client struct {
	http *http.Client
}

// New creates a fetcher with the default timeout.
func New() *Client {
	return &Client{http: &http.Client{Timeout: defaultTimeout}}
}

// NewWithHTTPClient creates a fetcher around an existing http.Client.
// Tests pass httptest-backed clients here.
func NewWithHTTPClient(hc *http.Client) *Client {
	if hc == nil {
		return New()
	}

	return &Client{http: hc}
}

// Get downloads the URL and returns the response body. Protocol-relative
// URLs (//host/path) are fetched over https.
func (c *Client) Get(url string) ([]byte, error) {
	if strings.HasPrefix(url, "//") {
		url = "https:" + url
	}

	resp, err := c.http.Get(url)
	if err != nil {
		return nil, errors.NewFetchError("request_failed", "fetch asset", err).WithAsset(url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.NewFetchError("bad_status",
			fmt.Sprintf("unexpected status %d", resp.StatusCode), nil).WithAsset(url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewFetchError("read_body", "read response body", err).WithAsset(url)
	}

	return body, nil
}
