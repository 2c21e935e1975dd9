package lyrics

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go_lyrics/internal/engine"
)

const envLyricsModel = "OPENAI_LYRICS_MODEL"

// Generator writes song lyrics with the configured model. Unlike Q&A it uses
// the configured temperature and output cap unchanged.
type Generator struct {
	completer engine.Completer
	cfg       engine.GenerationConfig
	model     string
}

// NewGenerator resolves the lyrics model: override, OPENAI_LYRICS_MODEL, cfg.Model.
func NewGenerator(completer engine.Completer, cfg engine.GenerationConfig, modelOverride string) *Generator {
	return &Generator{
		completer: completer,
		cfg:       cfg,
		model:     engine.ResolveModel(modelOverride, env.Str(envLyricsModel, ""), cfg.Model),
	}
}

// Model returns the resolved lyrics model identifier.
func (g *Generator) Model() string { return g.model }

// OutputPath is where CreateDataset persists songs.
func (g *Generator) OutputPath() string { return g.cfg.OutputPath }

// Generate writes lyrics for a single prompt.
func (g *Generator) Generate(ctx context.Context, p SongPrompt) (string, error) {
	out, err := g.completer.Complete(ctx, engine.CompletionRequest{
		Model:       g.model,
		Temperature: g.cfg.Temperature,
		MaxTokens:   g.cfg.MaxOutputTokens,
		Messages: []engine.Message{
			{Role: engine.RoleSystem, Content: songwriterSystemPrompt},
			{Role: engine.RoleUser, Content: p.FormatPrompt()},
		},
	})
	if err != nil {
		return "", fmt.Errorf("generate %q: %w", p.Title, err)
	}
	return strings.TrimSpace(out), nil
}

// GenerateBatch generates lyrics for each prompt in order and stops at the
// first failure.
func (g *Generator) GenerateBatch(ctx context.Context, prompts []SongPrompt) ([]Song, error) {
	songs := make([]Song, 0, len(prompts))
	for _, p := range prompts {
		lyrics, err := g.Generate(ctx, p)
		if err != nil {
			return nil, err
		}
		slog.Info("lyrics generated", slog.String("title", p.Title), slog.Int("chars", len(lyrics)))
		songs = append(songs, Song{
			Title:  p.Title,
			Theme:  p.Theme,
			Vibe:   p.Vibe,
			Twist:  p.Twist,
			Lyrics: lyrics,
		})
	}
	return songs, nil
}

// CreateDataset generates lyrics for prompts and optionally persists the
// dataset to the configured output path.
func (g *Generator) CreateDataset(ctx context.Context, prompts []SongPrompt, persist bool) ([]Song, error) {
	songs, err := g.GenerateBatch(ctx, prompts)
	if err != nil {
		return nil, err
	}
	if persist {
		if err := SaveSongs(g.cfg.OutputPath, songs); err != nil {
			return nil, err
		}
	}
	return songs, nil
}
