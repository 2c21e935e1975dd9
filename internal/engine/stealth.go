package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	stealth "github.com/anatolykoptev/go-stealth"
	"github.com/anatolykoptev/go-stealth/proxypool"
)

// BrowserClient is the Chrome-fingerprinted client from go-stealth.
type BrowserClient = stealth.BrowserClient

// NewBrowserClient creates a stealth client with the given timeout in seconds.
// A non-empty webshareKey routes requests through a Webshare proxy pool;
// if the pool cannot be built the client runs without proxies.
func NewBrowserClient(timeoutSeconds int, webshareKey string) (*BrowserClient, error) {
	var opts []stealth.ClientOption
	opts = append(opts, stealth.WithTimeout(timeoutSeconds))

	if webshareKey != "" {
		pool, err := proxypool.NewWebshare(webshareKey)
		if err != nil {
			slog.Warn("proxy pool init failed, running without proxy", slog.Any("error", err))
		} else {
			opts = append(opts, stealth.WithProxyPool(pool))
			slog.Info("proxy pool initialized", slog.Int("proxies", pool.Len()))
		}
	}

	bc, err := stealth.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("stealth client init: %w", err)
	}
	return bc, nil
}

// StealthDoer adapts a BrowserClient to Doer. Cancellation is only checked
// before the request; the client enforces its own timeout.
type StealthDoer struct {
	bc *BrowserClient
}

// NewStealthDoer wraps bc.
func NewStealthDoer(bc *BrowserClient) *StealthDoer {
	return &StealthDoer{bc: bc}
}

// Do executes the request with a browser TLS fingerprint.
func (s *StealthDoer) Do(ctx context.Context, method, url string, headers map[string]string, body io.Reader) ([]byte, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	data, _, status, err := s.bc.Do(method, url, headers, body)
	if err != nil {
		return nil, status, err
	}
	return data, status, nil
}

// ChromeHeaders returns common Chrome browser headers.
func ChromeHeaders() map[string]string { return stealth.ChromeHeaders() }
