package engine

import (
	"path/filepath"
	"testing"
	"time"
)

func TestGenerationDefaults(t *testing.T) {
	g := Config{}.Generation()
	if g != DefaultGenerationConfig() {
		t.Errorf("got %+v", g)
	}
	if g.Model != "gpt-4o" || g.Temperature != 0.95 || g.MaxOutputTokens != 800 {
		t.Errorf("unexpected defaults %+v", g)
	}
}

func TestGenerationOverrides(t *testing.T) {
	g := Config{LLMModel: "m", LLMTemperature: 0.5, LLMMaxTokens: 100, DataDir: "/srv/lyrics"}.Generation()
	if g.Model != "m" || g.Temperature != 0.5 || g.MaxOutputTokens != 100 {
		t.Errorf("got %+v", g)
	}
	if g.OutputPath != filepath.Join("/srv/lyrics", "generated_lyrics.json") {
		t.Errorf("output path = %q", g.OutputPath)
	}
	if got := (Config{DataDir: "/srv/lyrics"}).QuestionsDBPath(); got != filepath.Join("/srv/lyrics", "questions.db") {
		t.Errorf("questions db = %q", got)
	}
}

func TestSearchConfigFromConfig(t *testing.T) {
	sc := Config{SearchEndpoint: "http://x/html/", SearchLocale: "de-de", SearchTimeout: 3 * time.Second}.Search()
	if sc.Endpoint != "http://x/html/" || sc.Locale != "de-de" || sc.Timeout != 3*time.Second {
		t.Errorf("got %+v", sc)
	}
	if !sc.UnwrapRedirects || sc.Headers["User-Agent"] != SafariUserAgent {
		t.Errorf("defaults lost: %+v", sc)
	}
}

func TestResolveModel(t *testing.T) {
	tests := []struct{ override, env, fallback, want string }{
		{"a", "b", "c", "a"},
		{"", "b", "c", "b"},
		{"", "", "c", "c"},
	}
	for _, tt := range tests {
		if got := ResolveModel(tt.override, tt.env, tt.fallback); got != tt.want {
			t.Errorf("ResolveModel(%q,%q,%q) = %q", tt.override, tt.env, tt.fallback, got)
		}
	}
}
