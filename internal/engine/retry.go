package engine

import (
	"bytes"
	"context"
	"io"
	"net/http"

	stealth "github.com/anatolykoptev/go-stealth"
)

// RetryConfig controls retry behavior.
type RetryConfig = stealth.RetryConfig

// DefaultRetryConfig is the backoff used when lyric page retries are enabled
// (SCRAPE_RETRIES). Search and completion never retry.
var DefaultRetryConfig = stealth.DefaultRetryConfig

// NoRetry performs a single attempt.
var NoRetry = withRetries(DefaultRetryConfig, 0)

func withRetries(rc RetryConfig, n int) RetryConfig {
	rc.MaxRetries = n
	return rc
}

// FetchWithRetry issues a request through d, retrying transient network
// failures and 429/5xx responses. Other statuses are returned to the caller
// with a nil error. After the last failed attempt the status of that attempt
// is returned alongside the error.
func FetchWithRetry(ctx context.Context, rc RetryConfig, d Doer, method, url string, headers map[string]string) ([]byte, int, error) {
	var lastStatus int
	resp, err := stealth.RetryHTTP(ctx, rc, func() (*http.Response, error) {
		data, status, err := d.Do(ctx, method, url, headers, nil)
		lastStatus = status
		if err != nil {
			return nil, err
		}
		return &http.Response{StatusCode: status, Body: io.NopCloser(bytes.NewReader(data))}, nil
	})
	if err != nil {
		return nil, lastStatus, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return data, resp.StatusCode, nil
}
