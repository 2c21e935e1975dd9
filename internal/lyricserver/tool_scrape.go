package lyricserver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anatolykoptev/go_lyrics/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const maxScrapeSongs = 5

func registerScrape(server *mcp.Server, svc *Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "lyrics_scrape",
		Description: "Fetch published lyrics for up to 5 songs from AZLyrics, Lyrics.com or Genius. Tries the AZLyrics URL first, then DuckDuckGo search. Per-song failures are reported in the item's error field.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input ScrapeInput) (*mcp.CallToolResult, *ScrapeOutput, error) {
		out, err := svc.scrape(ctx, input)
		if err != nil {
			return nil, nil, err
		}
		return nil, out, nil
	})
}

func (s *Service) scrape(ctx context.Context, input ScrapeInput) (*ScrapeOutput, error) {
	if s.Scraper == nil {
		return nil, errors.New("scraper is not configured")
	}
	switch n := len(input.Songs); {
	case n == 0:
		return nil, errors.New("songs is required")
	case n > maxScrapeSongs:
		return nil, fmt.Errorf("at most %d songs per call, got %d", maxScrapeSongs, n)
	}
	for i, ref := range input.Songs {
		if strings.TrimSpace(ref.Title) == "" {
			return nil, fmt.Errorf("songs[%d]: title is required", i)
		}
	}
	return &ScrapeOutput{Items: toolutil.ScrapeParallel(ctx, s.Scraper, input.Songs)}, nil
}
