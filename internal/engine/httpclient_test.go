package engine

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPDoer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Test"); got != "yes" {
			t.Errorf("X-Test header = %q, want %q", got, "yes")
		}
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))
	defer srv.Close()

	data, status, err := NewHTTPDoer(nil).Do(context.Background(), http.MethodGet, srv.URL, map[string]string{"X-Test": "yes"}, nil)
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if status != http.StatusTeapot {
		t.Errorf("status = %d, want %d", status, http.StatusTeapot)
	}
	if string(data) != "short and stout" {
		t.Errorf("body = %q", data)
	}
}

func TestHTTPDoerTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	if _, _, err := NewHTTPDoer(nil).Do(context.Background(), http.MethodGet, url, nil, nil); err == nil {
		t.Fatal("expected error for closed server")
	}
}

func TestStealthDoerCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := NewStealthDoer(nil)
	if _, _, err := d.Do(ctx, http.MethodGet, "https://example.com", nil, nil); err == nil {
		t.Fatal("expected context error before request")
	}
}
