package lyricserver

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/go_lyrics/internal/engine"
	"github.com/anatolykoptev/go_lyrics/internal/engine/lyrics"
	"github.com/anatolykoptev/go_lyrics/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const maxAskResults = 5

func registerAsk(server *mcp.Server, svc *Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "lyrics_ask",
		Description: "Answer a question about a lyric excerpt. Optionally grounds the answer in DuckDuckGo search snippets (allow_web). A failed search never fails the call: it is reported in search_error and the answer is produced without external context.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input AskInput) (*mcp.CallToolResult, *AskOutput, error) {
		out, err := svc.Ask(ctx, input)
		if err != nil {
			return nil, nil, err
		}
		return nil, out, nil
	})
}

// Ask answers input.Question and records it in the question log.
func (s *Service) Ask(ctx context.Context, input AskInput) (*AskOutput, error) {
	if strings.TrimSpace(input.Question) == "" {
		return nil, errors.New("question is required")
	}
	if s.Composer == nil {
		return nil, errors.New("answer composer is not configured")
	}

	var meta lyrics.SongMetadata
	title := strings.TrimSpace(input.Title)
	if title != "" {
		song, err := s.get(title)
		if err != nil {
			return nil, err
		}
		meta, title = song.Metadata(), song.Title
	}

	res, err := s.Composer.Answer(ctx, lyrics.AnswerRequest{
		Song:             meta,
		Excerpt:          input.Excerpt,
		Question:         input.Question,
		AllowWeb:         input.AllowWeb,
		MaxSearchResults: toolutil.ClampInt(input.MaxResults, engine.DefaultMaxResults, 1, maxAskResults),
	})
	if err != nil {
		return nil, err
	}

	if s.Questions != nil {
		if _, err := s.Questions.Append(ctx, title, input.Excerpt, input.Question); err != nil {
			slog.Warn("lyrics_ask: question log failed", slog.Any("error", err))
		}
	}

	return &AskOutput{
		Title:         title,
		Model:         s.Composer.Model(),
		Answer:        res.Answer,
		SearchResults: res.SearchResults,
		SearchError:   res.SearchError,
	}, nil
}
