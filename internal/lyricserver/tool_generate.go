package lyricserver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anatolykoptev/go_lyrics/internal/engine/lyrics"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerGenerate(server *mcp.Server, svc *Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "lyrics_generate",
		Description: "Generate original song lyrics for catalog concepts with the configured model. With persist, the generated songs replace the dataset file.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input GenerateInput) (*mcp.CallToolResult, *GenerateOutput, error) {
		out, err := svc.generate(ctx, input)
		if err != nil {
			return nil, nil, err
		}
		return nil, out, nil
	})
}

func (s *Service) generate(ctx context.Context, input GenerateInput) (*GenerateOutput, error) {
	if s.Generator == nil {
		return nil, errors.New("generator is not configured")
	}
	prompts, err := SelectPrompts(input.Titles)
	if err != nil {
		return nil, err
	}
	songs, err := s.Generator.CreateDataset(ctx, prompts, input.Persist)
	if err != nil {
		return nil, err
	}
	out := &GenerateOutput{Count: len(songs), Songs: songs}
	if input.Persist {
		out.Saved = s.Generator.OutputPath()
	}
	return out, nil
}

// SelectPrompts returns catalog prompts matching titles in the order given,
// or the full catalog when titles is empty.
func SelectPrompts(titles []string) ([]lyrics.SongPrompt, error) {
	if len(titles) == 0 {
		return lyrics.SongPrompts, nil
	}
	prompts := make([]lyrics.SongPrompt, 0, len(titles))
	for _, t := range titles {
		p, ok := findPrompt(t)
		if !ok {
			return nil, fmt.Errorf("unknown catalog title %q", t)
		}
		prompts = append(prompts, p)
	}
	return prompts, nil
}

func findPrompt(title string) (lyrics.SongPrompt, bool) {
	title = strings.TrimSpace(title)
	for _, p := range lyrics.SongPrompts {
		if strings.EqualFold(p.Title, title) {
			return p, true
		}
	}
	return lyrics.SongPrompt{}, false
}
