package engine

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DuckDuckGo endpoints. The HTML endpoint is the primary search surface;
// the lite endpoint is a lighter fallback used by the lyric scraper.
const (
	DDGHTMLEndpoint = "https://duckduckgo.com/html/"
	DDGLiteEndpoint = "https://lite.duckduckgo.com/lite/"
)

// DefaultMaxResults is used when a caller asks for zero or fewer results.
const DefaultMaxResults = 3

// SafariUserAgent is sent to the search endpoint. DuckDuckGo blocks clients
// it does not recognise as browsers.
const SafariUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)" +
	" AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15"

// SearchConfig is the immutable configuration of a Searcher.
type SearchConfig struct {
	Endpoint        string
	Locale          string
	Headers         map[string]string
	Timeout         time.Duration
	UnwrapRedirects bool // resolve DDG /l/?uddg= redirect links to their destination
}

// DefaultSearchHeaders returns a fresh copy of the browser-like headers.
func DefaultSearchHeaders() map[string]string {
	return map[string]string{
		"User-Agent":      SafariUserAgent,
		"Accept-Language": "en-US,en;q=0.9",
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Referer":         "https://duckduckgo.com/",
	}
}

// DefaultSearchConfig targets the DuckDuckGo HTML endpoint in US English.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		Endpoint:        DDGHTMLEndpoint,
		Locale:          "us-en",
		Headers:         DefaultSearchHeaders(),
		Timeout:         15 * time.Second,
		UnwrapRedirects: true,
	}
}

// Searcher extracts result triples from a DuckDuckGo-style HTML results page.
// It holds no per-call state and is safe for concurrent use if its Doer is.
type Searcher struct {
	cfg   SearchConfig
	doer  Doer
	cache *Cache
}

// SearcherOption customises a Searcher.
type SearcherOption func(*Searcher)

// WithDoer sets the HTTP transport.
func WithDoer(d Doer) SearcherOption {
	return func(s *Searcher) { s.doer = d }
}

// WithSearchCache enables result caching. Failed searches are never cached.
func WithSearchCache(c *Cache) SearcherOption {
	return func(s *Searcher) { s.cache = c }
}

// NewSearcher builds a Searcher. Zero fields of sc fall back to defaults.
func NewSearcher(sc SearchConfig, opts ...SearcherOption) *Searcher {
	def := DefaultSearchConfig()
	if sc.Endpoint == "" {
		sc.Endpoint = def.Endpoint
	}
	if sc.Locale == "" {
		sc.Locale = def.Locale
	}
	if sc.Headers == nil {
		sc.Headers = def.Headers
	} else {
		sc.Headers = maps.Clone(sc.Headers)
	}
	if sc.Timeout <= 0 {
		sc.Timeout = def.Timeout
	}

	s := &Searcher{cfg: sc}
	for _, o := range opts {
		o(s)
	}
	if s.doer == nil {
		s.doer = NewHTTPDoer(nil)
	}
	return s
}

// Config returns a copy of the searcher configuration.
func (s *Searcher) Config() SearchConfig {
	c := s.cfg
	c.Headers = maps.Clone(s.cfg.Headers)
	return c
}

// Search issues one GET to the endpoint with the query and locale and returns
// up to maxResults results in page order. Transport failures and non-2xx
// statuses are returned as *SearchTransportError.
func (s *Searcher) Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error) {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	key := CacheKey("search", s.cfg.Endpoint, s.cfg.Locale, query, strconv.Itoa(maxResults))
	if results, ok := CacheLoadJSON[[]SearchResult](ctx, s.cache, key); ok {
		return results, nil
	}

	u, err := url.Parse(s.cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("search endpoint: %w", err)
	}
	q := u.Query()
	q.Set("q", query)
	q.Set("kl", s.cfg.Locale)
	u.RawQuery = q.Encode()

	metrics.SearchRequests.Add(1)

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	data, status, err := s.doer.Do(ctx, http.MethodGet, u.String(), maps.Clone(s.cfg.Headers), nil)
	if err != nil {
		metrics.SearchErrors.Add(1)
		slog.Debug("search request failed", slog.String("query", query), slog.Any("error", err))
		return nil, &SearchTransportError{Status: status, Err: err}
	}
	if status < 200 || status > 299 {
		metrics.SearchErrors.Add(1)
		slog.Debug("search bad status", slog.String("query", query), slog.Int("status", status))
		return nil, &SearchTransportError{Status: status}
	}

	results, err := ParseDDGHTML(data, maxResults, s.cfg.UnwrapRedirects)
	if err != nil {
		metrics.SearchErrors.Add(1)
		return nil, err
	}

	slog.Debug("search results", slog.String("query", query), slog.Int("count", len(results)))
	CacheStoreJSON(ctx, s.cache, key, results)
	return results, nil
}

// ParseDDGHTML extracts up to maxResults results from a DDG HTML results page.
// maxResults <= 0 means DefaultMaxResults.
// Blocks without a result anchor or a usable href are skipped. Scanning stops
// as soon as maxResults results are collected. The result is never nil.
func ParseDDGHTML(data []byte, maxResults int, unwrap bool) ([]SearchResult, error) {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("goquery parse: %w", err)
	}

	results := []SearchResult{}
	doc.Find("div.result").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		link := s.Find("a.result__a").First()
		if link.Length() == 0 {
			return true
		}
		href, ok := link.Attr("href")
		href = strings.TrimSpace(href)
		if !ok || href == "" {
			return true
		}
		if unwrap {
			href = UnwrapDDGURL(href)
			if href == "" {
				return true
			}
		}

		snippet := ""
		if sn := s.Find("a.result__snippet, div.result__snippet").First(); sn.Length() > 0 {
			snippet = CollapseSpace(sn.Text())
		}

		results = append(results, SearchResult{
			Title:   CollapseSpace(link.Text()),
			URL:     href,
			Snippet: snippet,
		})
		return len(results) < maxResults
	})

	return results, nil
}

// UnwrapDDGURL extracts the destination URL from DDG redirect wrappers such as
// //duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com&rut=...
// Only /l/ links on duckduckgo.com (or host-relative ones) are unwrapped.
// Scheme-relative links get https. The result is "" unless it is an
// absolute http(s) URL with a host.
func UnwrapDDGURL(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if isDDGRedirect(u) {
		return absoluteHTTP(u.Query().Get("uddg"))
	}
	return absoluteHTTP(href)
}

func isDDGRedirect(u *url.URL) bool {
	if u.Path != "/l/" && u.Path != "/l" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return u.Scheme == ""
	}
	return host == "duckduckgo.com" || strings.HasSuffix(host, ".duckduckgo.com")
}

func absoluteHTTP(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return raw
}
