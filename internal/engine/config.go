package engine

import (
	"net/http"
	"path/filepath"
	"time"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	LLMProvider        string // "openai" (Responses API) or "compat" (OpenAI-compatible chat)
	LLMAPIKey          string
	LLMAPIKeyFallbacks []string
	LLMAPIBase         string
	LLMModel           string
	LLMTemperature     float64
	LLMMaxTokens       int
	LLMTimeout         time.Duration

	SearchEndpoint string
	SearchLocale   string
	SearchTimeout  time.Duration
	BrowserTLS     bool   // route search and scraping through the stealth client
	WebshareAPIKey string // optional proxy pool for the stealth client

	RedisURL             string
	CacheTTL             time.Duration
	CacheMaxEntries      int
	CacheCleanupInterval time.Duration

	DataDir       string
	ScrapeDelay   time.Duration
	ScrapeRetries int // extra attempts per lyric page; 0 means a single attempt

	HTTPClient *http.Client
}

// GenerationConfig is the runtime configuration for lyric generation and Q&A.
// Q&A only ever narrows Temperature and MaxOutputTokens.
type GenerationConfig struct {
	Model           string
	Temperature     float64
	MaxOutputTokens int
	OutputPath      string
	QuestionsPath   string
}

// DefaultGenerationConfig mirrors the defaults the lyric dataset was built with.
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		Model:           "gpt-4o",
		Temperature:     0.95,
		MaxOutputTokens: 800,
		OutputPath:      filepath.Join("data", "generated_lyrics.json"),
		QuestionsPath:   filepath.Join("data", "questions.json"),
	}
}

// Generation derives the generation config from the engine config.
func (c Config) Generation() GenerationConfig {
	g := DefaultGenerationConfig()
	if c.LLMModel != "" {
		g.Model = c.LLMModel
	}
	if c.LLMTemperature > 0 {
		g.Temperature = c.LLMTemperature
	}
	if c.LLMMaxTokens > 0 {
		g.MaxOutputTokens = c.LLMMaxTokens
	}
	if c.DataDir != "" {
		g.OutputPath = filepath.Join(c.DataDir, "generated_lyrics.json")
		g.QuestionsPath = filepath.Join(c.DataDir, "questions.json")
	}
	return g
}

// QuestionsDBPath is the SQLite question log location.
func (c Config) QuestionsDBPath() string {
	dir := c.DataDir
	if dir == "" {
		dir = "data"
	}
	return filepath.Join(dir, "questions.db")
}

// Search builds the search component configuration.
func (c Config) Search() SearchConfig {
	sc := DefaultSearchConfig()
	if c.SearchEndpoint != "" {
		sc.Endpoint = c.SearchEndpoint
	}
	if c.SearchLocale != "" {
		sc.Locale = c.SearchLocale
	}
	if c.SearchTimeout > 0 {
		sc.Timeout = c.SearchTimeout
	}
	return sc
}

// ScrapeRetry is the retry policy for lyric page fetches.
func (c Config) ScrapeRetry() RetryConfig {
	if c.ScrapeRetries <= 0 {
		return NoRetry
	}
	return withRetries(DefaultRetryConfig, c.ScrapeRetries)
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages (lyrics, scrape).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	cfg = c
	Cfg = &cfg
}

// ResolveModel picks a model identifier: explicit override, then the
// environment value, then the configured default.
func ResolveModel(override, fromEnv, fallback string) string {
	if override != "" {
		return override
	}
	if fromEnv != "" {
		return fromEnv
	}
	return fallback
}
