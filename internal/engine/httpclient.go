package engine

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxBodyBytes caps how much of a response body is read into memory.
const maxBodyBytes = 5 << 20

// Doer performs a single HTTP request and returns body bytes and status code.
// A non-2xx status is not an error at this level.
type Doer interface {
	Do(ctx context.Context, method, url string, headers map[string]string, body io.Reader) ([]byte, int, error)
}

// HTTPDoer implements Doer on top of net/http.
type HTTPDoer struct {
	client *http.Client
}

// NewHTTPDoer wraps client. A nil client gets a pooled default with a 15s timeout.
func NewHTTPDoer(client *http.Client) *HTTPDoer {
	if client == nil {
		client = &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		}
	}
	return &HTTPDoer{client: client}
}

// Do executes the request. Headers are applied as given.
func (d *HTTPDoer) Do(ctx context.Context, method, url string, headers map[string]string, body io.Reader) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read body: %w", err)
	}
	return data, resp.StatusCode, nil
}
