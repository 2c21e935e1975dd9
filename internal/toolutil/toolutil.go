// Package toolutil provides shared helpers for go_lyrics MCP tools and CLI commands.
package toolutil

import (
	"context"
	"strings"
	"sync"

	"github.com/anatolykoptev/go_lyrics/internal/engine/scrape"
)

// ClampInt returns def when v <= 0, otherwise v limited to [lo, hi].
func ClampInt(v, def, lo, hi int) int {
	if v <= 0 {
		return def
	}
	return max(lo, min(v, hi))
}

// SongRef identifies a published song to scrape.
type SongRef struct {
	Artist string `json:"artist,omitempty" jsonschema:"Performing artist"`
	Title  string `json:"title" jsonschema:"Song title"`
}

// ScrapeItem is the outcome for one SongRef. Exactly one of Result and
// Error is set.
type ScrapeItem struct {
	Artist string         `json:"artist"`
	Title  string         `json:"title"`
	Result *scrape.Result `json:"result,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// Scraper is the subset of *scrape.Scraper used here.
type Scraper interface {
	Scrape(ctx context.Context, artist, title string) (*scrape.Result, error)
}

// ScrapeParallel scrapes every song concurrently and returns outcomes in
// input order. Page fetches still share the scraper's rate limit.
func ScrapeParallel(ctx context.Context, s Scraper, songs []SongRef) []ScrapeItem {
	items := make([]ScrapeItem, len(songs))
	var wg sync.WaitGroup

	for i, ref := range songs {
		items[i] = ScrapeItem{Artist: strings.TrimSpace(ref.Artist), Title: strings.TrimSpace(ref.Title)}
		wg.Add(1)
		go func(item *ScrapeItem) {
			defer wg.Done()
			res, err := s.Scrape(ctx, item.Artist, item.Title)
			if err != nil {
				item.Error = err.Error()
				return
			}
			item.Result = res
		}(&items[i])
	}
	wg.Wait()
	return items
}
