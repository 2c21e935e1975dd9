package lyrics

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/anatolykoptev/go_lyrics/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUsesConfigUnchanged(t *testing.T) {
	t.Setenv(envLyricsModel, "")
	comp := &fakeCompleter{out: "\n[Verse 1]\nla la\n"}
	g := NewGenerator(comp, baseConfig(), "")

	out, err := g.Generate(context.Background(), SongPrompts[0])
	require.NoError(t, err)
	assert.Equal(t, "[Verse 1]\nla la", out)

	req := comp.requests[0]
	assert.Equal(t, "gpt-4o", req.Model)
	assert.InDelta(t, 0.95, req.Temperature, 1e-9)
	assert.Equal(t, 800, req.MaxTokens)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, engine.RoleSystem, req.Messages[0].Role)
	assert.Equal(t, SongPrompts[0].FormatPrompt(), req.Messages[1].Content)
}

func TestGeneratorModelResolution(t *testing.T) {
	t.Setenv(envLyricsModel, "env-model")
	comp := &fakeCompleter{out: "x"}

	_, err := NewGenerator(comp, baseConfig(), "").Generate(context.Background(), SongPrompts[1])
	require.NoError(t, err)
	_, err = NewGenerator(comp, baseConfig(), "override").Generate(context.Background(), SongPrompts[1])
	require.NoError(t, err)

	assert.Equal(t, "env-model", comp.requests[0].Model)
	assert.Equal(t, "override", comp.requests[1].Model)
}

func TestGenerateBatchStopsOnError(t *testing.T) {
	t.Setenv(envLyricsModel, "")
	comp := &fakeCompleter{err: errors.New("quota")}
	songs, err := NewGenerator(comp, baseConfig(), "").GenerateBatch(context.Background(), SongPrompts[:3])
	require.Error(t, err)
	assert.Nil(t, songs)
	assert.Contains(t, err.Error(), SongPrompts[0].Title)
	assert.Len(t, comp.requests, 1)
}

func TestCreateDatasetPersists(t *testing.T) {
	t.Setenv(envLyricsModel, "")
	cfg := baseConfig()
	cfg.OutputPath = filepath.Join(t.TempDir(), "nested", "generated_lyrics.json")
	comp := &fakeCompleter{out: "lyrics"}

	songs, err := NewGenerator(comp, cfg, "").CreateDataset(context.Background(), SongPrompts[:2], true)
	require.NoError(t, err)
	require.Len(t, songs, 2)
	assert.Equal(t, SongPrompts[1].Title, songs[1].Title)
	assert.Equal(t, SongPrompts[1].Twist, songs[1].Twist)

	loaded, err := LoadSongs(cfg.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, songs, loaded)
}
