// Package scrape retrieves published song lyrics from lyric sites. It tries
// the AZLyrics URL derived from artist and title first, then falls back to a
// DuckDuckGo search restricted to known lyric domains.
package scrape

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/anatolykoptev/go_lyrics/internal/engine"
)

// AZLyricsBase is the production AZLyrics origin.
const AZLyricsBase = "https://www.azlyrics.com"

// DefaultMaxCandidates caps how many search results are fetched.
const DefaultMaxCandidates = 5

// ErrNotFound is returned when no source yielded lyrics.
var ErrNotFound = errors.New("lyrics not found")

var slugRe = regexp.MustCompile(`[^a-z0-9]`)

// Options configures a Scraper. Zero values get production defaults.
type Options struct {
	Doer            engine.Doer
	Headers         map[string]string
	Delay           time.Duration // minimum spacing between lyric page fetches
	Retry           engine.RetryConfig
	MaxCandidates   int
	Locale          string
	AZLyricsBase    string
	SearchEndpoints []string // tried in order until one yields candidates
	Cache           *engine.Cache
}

// Result is a successful scrape.
type Result struct {
	Artist string `json:"artist"`
	Title  string `json:"title"`
	Lyrics string `json:"lyrics"`
	Source string `json:"source"`
	Direct bool   `json:"direct"` // found via the AZLyrics direct URL
}

// Scraper fetches lyrics. Safe for concurrent use; page fetches from all
// goroutines share one rate limiter.
type Scraper struct {
	doer          engine.Doer
	headers       map[string]string
	retry         engine.RetryConfig
	limiter       *rate.Limiter
	maxCandidates int
	locale        string
	azBase        string
	endpoints     []string
	cache         *engine.Cache
}

// New builds a Scraper from opts.
func New(opts Options) *Scraper {
	s := &Scraper{
		doer:          opts.Doer,
		headers:       maps.Clone(opts.Headers),
		retry:         opts.Retry,
		maxCandidates: opts.MaxCandidates,
		locale:        opts.Locale,
		azBase:        strings.TrimRight(opts.AZLyricsBase, "/"),
		endpoints:     opts.SearchEndpoints,
		cache:         opts.Cache,
	}
	if s.doer == nil {
		s.doer = engine.NewHTTPDoer(nil)
	}
	if s.headers == nil {
		s.headers = engine.DefaultSearchHeaders()
	}
	if s.maxCandidates <= 0 {
		s.maxCandidates = DefaultMaxCandidates
	}
	if s.locale == "" {
		s.locale = "us-en"
	}
	if s.azBase == "" {
		s.azBase = AZLyricsBase
	}
	if len(s.endpoints) == 0 {
		s.endpoints = []string{engine.DDGHTMLEndpoint, engine.DDGLiteEndpoint}
	}
	limit := rate.Inf
	if opts.Delay > 0 {
		limit = rate.Every(opts.Delay)
	}
	s.limiter = rate.NewLimiter(limit, 1)
	return s
}

// AZLyricsURL builds the AZLyrics page URL: lowercase artist and title with
// everything outside [a-z0-9] removed.
func AZLyricsURL(base, artist, title string) string {
	if base == "" {
		base = AZLyricsBase
	}
	return fmt.Sprintf("%s/lyrics/%s/%s.html", strings.TrimRight(base, "/"), slug(artist), slug(title))
}

func slug(s string) string {
	return slugRe.ReplaceAllString(strings.ToLower(s), "")
}

// Scrape returns lyrics for the song, trying the AZLyrics direct URL and then
// search candidates. Returns ErrNotFound when every source came up empty.
func (s *Scraper) Scrape(ctx context.Context, artist, title string) (*Result, error) {
	artist, title = strings.TrimSpace(artist), strings.TrimSpace(title)
	if title == "" {
		return nil, errors.New("scrape: title is required")
	}
	engine.IncrScrapeRequests()

	key := engine.CacheKey("scrape", strings.ToLower(artist), strings.ToLower(title))
	if cached, ok := engine.CacheLoadJSON[Result](ctx, s.cache, key); ok {
		slog.Debug("scrape: cache hit", slog.String("title", title))
		return &cached, nil
	}

	res, err := s.scrape(ctx, artist, title)
	if err != nil {
		engine.IncrScrapeErrors()
		return nil, err
	}
	engine.CacheStoreJSON(ctx, s.cache, key, *res)
	return res, nil
}

func (s *Scraper) scrape(ctx context.Context, artist, title string) (*Result, error) {
	direct := AZLyricsURL(s.azBase, artist, title)
	lyrics, err := s.FetchAZLyrics(ctx, artist, title)
	if err == nil {
		slog.Debug("scrape: found via direct url", slog.String("url", direct), slog.String("snippet", snippet(lyrics)))
		return &Result{Artist: artist, Title: title, Lyrics: lyrics, Source: direct, Direct: true}, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	slog.Debug("scrape: direct lookup failed, searching", slog.String("url", direct), slog.Any("error", err))

	urls, err := s.SearchURLs(ctx, artist, title)
	if err != nil {
		return nil, err
	}
	slog.Debug("scrape: candidates", slog.Any("urls", urls))

	for _, u := range urls {
		lyrics, err := s.FetchURL(ctx, u)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			slog.Debug("scrape: candidate failed", slog.String("url", u), slog.Any("error", err))
			continue
		}
		slog.Debug("scrape: found via search", slog.String("url", u), slog.String("snippet", snippet(lyrics)))
		return &Result{Artist: artist, Title: title, Lyrics: lyrics, Source: u}, nil
	}
	return nil, fmt.Errorf("%w: %s - %s", ErrNotFound, artist, title)
}

// FetchAZLyrics fetches and parses the AZLyrics direct URL.
func (s *Scraper) FetchAZLyrics(ctx context.Context, artist, title string) (string, error) {
	page := AZLyricsURL(s.azBase, artist, title)
	data, err := s.fetchPage(ctx, page)
	if err != nil {
		return "", err
	}
	return parseAZLyrics(data)
}

// FetchURL fetches a candidate page and extracts lyrics by the page's domain.
func (s *Scraper) FetchURL(ctx context.Context, pageURL string) (string, error) {
	data, err := s.fetchPage(ctx, pageURL)
	if err != nil {
		return "", err
	}
	lyrics := ExtractLyrics(pageURL, data)
	if lyrics == "" {
		return "", ErrNotFound
	}
	return lyrics, nil
}

func (s *Scraper) fetchPage(ctx context.Context, pageURL string) ([]byte, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	data, status, err := engine.FetchWithRetry(ctx, s.retry, s.doer, "GET", pageURL, s.headers)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	if status != 200 {
		return nil, fmt.Errorf("fetch %s: status %d", pageURL, status)
	}
	return data, nil
}

// SearchURLs queries each search endpoint in turn and returns lyric-site
// candidates from the first endpoint that yields any. Endpoint failures are
// skipped.
func (s *Scraper) SearchURLs(ctx context.Context, artist, title string) ([]string, error) {
	query := strings.TrimSpace(title + " " + artist + " lyrics")
	params := url.Values{"q": {query}, "kl": {s.locale}}

	for _, endpoint := range s.endpoints {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		data, status, err := s.doer.Do(ctx, "GET", endpoint+"?"+params.Encode(), s.headers, nil)
		if err != nil || status != 200 {
			slog.Debug("scrape: search endpoint failed", slog.String("endpoint", endpoint),
				slog.Int("status", status), slog.Any("error", err))
			continue
		}
		urls := ParseCandidateURLs(data, s.maxCandidates)
		if len(urls) > 0 {
			return urls, nil
		}
	}
	return []string{}, nil
}

func snippet(lyrics string) string {
	lines := strings.SplitN(lyrics, "\n", 4)
	if len(lines) > 3 {
		lines = lines[:3]
	}
	return engine.TruncateRunes(strings.Join(lines, " / "), 120, "...")
}
