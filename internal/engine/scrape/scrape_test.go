package scrape

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anatolykoptev/go_lyrics/internal/engine"
)

type page struct {
	status int
	body   string
}

// routeDoer serves canned pages keyed by URL prefix (query string ignored).
type routeDoer struct {
	mu    sync.Mutex
	pages map[string]page
	calls []string
}

func (d *routeDoer) Do(_ context.Context, _, url string, _ map[string]string, _ io.Reader) ([]byte, int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, url)
	base, _, _ := strings.Cut(url, "?")
	p, ok := d.pages[base]
	if !ok {
		return []byte("not found"), 404, nil
	}
	return []byte(p.body), p.status, nil
}

const azPage = `<html><body><div class="main">
<div class="ringtone"></div>
<b>"Test Song"</b>
<!-- Usage of azlyrics.com content by any third-party lyrics provider is prohibited. -->
<div>
Line one<br>
Line two<br>
<br>
Line three
</div>
<div class="noprint">ad</div>
</div></body></html>`

const lyricsComPage = `<html><body><pre id="lyric-body-text" class="lyric-body">First line
Second line

Third line</pre></body></html>`

const geniusPage = `<html><body>
<div data-lyrics-container="true">[Verse 1]<br>Hello<br><a href="/x">there</a></div>
<div data-lyrics-container="true">[Chorus]<br>Again</div>
</body></html>`

func ddgPage(hrefs ...string) string {
	var sb strings.Builder
	sb.WriteString("<html><body>")
	for _, h := range hrefs {
		sb.WriteString(`<div class="result"><a class="result__a" href="` + h + `">x</a></div>`)
	}
	sb.WriteString("</body></html>")
	return sb.String()
}

func newTestScraper(d engine.Doer) *Scraper {
	return New(Options{
		Doer:            d,
		AZLyricsBase:    "https://az.test",
		SearchEndpoints: []string{"https://ddg.test/html/", "https://ddg.test/lite/"},
	})
}

func TestAZLyricsURL(t *testing.T) {
	assert.Equal(t, "https://www.azlyrics.com/lyrics/acdc/backinblack.html", AZLyricsURL("", "AC/DC", "Back In Black"))
	assert.Equal(t, "https://az.test/lyrics/guns/dontcry.html", AZLyricsURL("https://az.test/", "Guns!", "Don't Cry"))
}

func TestParseAZLyrics(t *testing.T) {
	got, err := parseAZLyrics([]byte(azPage))
	require.NoError(t, err)
	assert.Equal(t, "Line one\nLine two\n\nLine three", got)

	_, err = parseAZLyrics([]byte("<html><body><div>no marker</div></body></html>"))
	assert.ErrorIs(t, err, errMarkerMissing)
}

func TestExtractLyrics(t *testing.T) {
	tests := []struct {
		name, url, body, want string
	}{
		{"lyrics.com", "https://www.lyrics.com/lyric/1/x", lyricsComPage, "First line\nSecond line\n\nThird line"},
		{"genius", "https://genius.com/x-lyrics", geniusPage, "[Verse 1]\nHello\nthere\n[Chorus]\nAgain"},
		{"azlyrics", "https://www.azlyrics.com/lyrics/a/b.html", azPage, "Line one\nLine two\n\nLine three"},
		{"azlyrics is not lyrics.com", "https://www.azlyrics.com/lyrics/a/b.html", lyricsComPage, ""},
		{"unknown site", "https://example.com/lyrics", lyricsComPage, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractLyrics(tt.url, []byte(tt.body)))
		})
	}
}

func TestParseCandidateURLs(t *testing.T) {
	body := ddgPage(
		"//duckduckgo.com/l/?uddg=https%3A%2F%2Fwww.lyrics.com%2Flyric%2F1&rut=abc",
		"https://example.com/not-lyrics",
		"https://www.lyrics.com/lyric/1",
		"https://genius.com/a-lyrics",
		"/relative",
		"https://www.azlyrics.com/lyrics/a/b.html",
	)
	got := ParseCandidateURLs([]byte(body), 5)
	assert.Equal(t, []string{
		"https://www.lyrics.com/lyric/1",
		"https://genius.com/a-lyrics",
		"https://www.azlyrics.com/lyrics/a/b.html",
	}, got)

	assert.Len(t, ParseCandidateURLs([]byte(body), 2), 2)
}

func TestParseCandidateURLsLite(t *testing.T) {
	body := `<table><tr><td><a class="result-link" href="https://genius.com/b-lyrics">b</a></td></tr></table>`
	assert.Equal(t, []string{"https://genius.com/b-lyrics"}, ParseCandidateURLs([]byte(body), 5))
	assert.Empty(t, ParseCandidateURLs([]byte("<html></html>"), 5))
}

func TestScrapeDirect(t *testing.T) {
	d := &routeDoer{pages: map[string]page{
		"https://az.test/lyrics/artist/song.html": {200, azPage},
	}}
	res, err := newTestScraper(d).Scrape(context.Background(), "Artist", "Song")
	require.NoError(t, err)
	assert.True(t, res.Direct)
	assert.Equal(t, "https://az.test/lyrics/artist/song.html", res.Source)
	assert.Equal(t, "Line one\nLine two\n\nLine three", res.Lyrics)
	assert.Len(t, d.calls, 1)
}

func TestScrapeFallsBackToSearch(t *testing.T) {
	d := &routeDoer{pages: map[string]page{
		"https://ddg.test/html/":         {200, ddgPage("https://genius.com/broken", "https://www.lyrics.com/lyric/1")},
		"https://genius.com/broken":      {200, "<html><body>nothing</body></html>"},
		"https://www.lyrics.com/lyric/1": {200, lyricsComPage},
	}}
	res, err := newTestScraper(d).Scrape(context.Background(), "Artist", "Song")
	require.NoError(t, err)
	assert.False(t, res.Direct)
	assert.Equal(t, "https://www.lyrics.com/lyric/1", res.Source)
	assert.Equal(t, "First line\nSecond line\n\nThird line", res.Lyrics)

	// Direct miss, html search, two candidates; lite never queried.
	require.Len(t, d.calls, 4)
	assert.Contains(t, d.calls[1], "q=Song+Artist+lyrics")
	assert.Contains(t, d.calls[1], "kl=us-en")
	for _, c := range d.calls {
		assert.NotContains(t, c, "ddg.test/lite")
	}
}

func TestScrapeUsesLiteWhenHTMLEmpty(t *testing.T) {
	d := &routeDoer{pages: map[string]page{
		"https://ddg.test/html/":      {503, ""},
		"https://ddg.test/lite/":      {200, `<a class="result-link" href="https://genius.com/x-lyrics">x</a>`},
		"https://genius.com/x-lyrics": {200, geniusPage},
	}}
	res, err := newTestScraper(d).Scrape(context.Background(), "A", "B")
	require.NoError(t, err)
	assert.Equal(t, "https://genius.com/x-lyrics", res.Source)
}

func TestScrapeNotFound(t *testing.T) {
	before := engine.GetMetrics()["scrape_errors"]
	_, err := newTestScraper(&routeDoer{}).Scrape(context.Background(), "Nobody", "Nothing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, before+1, engine.GetMetrics()["scrape_errors"])
}

func TestScrapeRequiresTitle(t *testing.T) {
	_, err := newTestScraper(&routeDoer{}).Scrape(context.Background(), "Artist", "  ")
	assert.Error(t, err)
}

func TestScrapeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestScraper(&routeDoer{}).Scrape(ctx, "A", "B")
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
}

func TestScrapeCachesResults(t *testing.T) {
	cache := engine.NewCache("", time.Minute, 100, time.Minute)
	defer cache.Close()

	d := &routeDoer{pages: map[string]page{
		"https://az.test/lyrics/artist/song.html": {200, azPage},
	}}
	s := New(Options{Doer: d, AZLyricsBase: "https://az.test", Cache: cache})

	first, err := s.Scrape(context.Background(), "Artist", "Song")
	require.NoError(t, err)
	second, err := s.Scrape(context.Background(), "artist", "song")
	require.NoError(t, err)
	assert.Equal(t, first.Lyrics, second.Lyrics)
	assert.Len(t, d.calls, 1)
}

func TestScrapeDelaySpacesFetches(t *testing.T) {
	d := &routeDoer{pages: map[string]page{
		"https://ddg.test/html/":         {200, ddgPage("https://www.lyrics.com/lyric/1")},
		"https://www.lyrics.com/lyric/1": {200, lyricsComPage},
	}}
	s := New(Options{
		Doer:            d,
		AZLyricsBase:    "https://az.test",
		SearchEndpoints: []string{"https://ddg.test/html/"},
		Delay:           50 * time.Millisecond,
	})
	start := time.Now()
	_, err := s.Scrape(context.Background(), "A", "B")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}
