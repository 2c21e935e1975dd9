package main

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go_lyrics/internal/engine"
	"github.com/anatolykoptev/go_lyrics/internal/engine/lyrics"
	"github.com/anatolykoptev/go_lyrics/internal/engine/scrape"
	"github.com/anatolykoptev/go_lyrics/internal/lyricserver"
)

func loadConfig() engine.Config {
	browserTLS, _ := strconv.ParseBool(env.Str("BROWSER_TLS", "false"))
	return engine.Config{
		LLMProvider:          env.Str("LLM_PROVIDER", "openai"),
		LLMAPIKey:            env.Str("OPENAI_API_KEY", env.Str("LLM_API_KEY", "")),
		LLMAPIKeyFallbacks:   env.List("LLM_API_KEY_FALLBACKS", ""),
		LLMAPIBase:           env.Str("LLM_API_BASE", ""),
		LLMModel:             env.Str("LLM_MODEL", "gpt-4o"),
		LLMTemperature:       env.Float("LLM_TEMPERATURE", 0.95),
		LLMMaxTokens:         env.Int("LLM_MAX_TOKENS", 800),
		LLMTimeout:           env.Duration("LLM_TIMEOUT", 60*time.Second),
		SearchEndpoint:       env.Str("SEARCH_ENDPOINT", engine.DDGHTMLEndpoint),
		SearchLocale:         env.Str("SEARCH_LOCALE", "us-en"),
		SearchTimeout:        env.Duration("SEARCH_TIMEOUT", 15*time.Second),
		BrowserTLS:           browserTLS,
		WebshareAPIKey:       env.Str("WEBSHARE_API_KEY", ""),
		RedisURL:             env.Str("REDIS_URL", ""),
		CacheTTL:             env.Duration("CACHE_TTL", 15*time.Minute),
		CacheMaxEntries:      env.Int("CACHE_MAX_ENTRIES", 1000),
		CacheCleanupInterval: env.Duration("CACHE_CLEANUP_INTERVAL", 300*time.Second),
		DataDir:              env.Str("DATA_DIR", "data"),
		ScrapeDelay:          env.Duration("SCRAPE_DELAY", time.Second),
		ScrapeRetries:        env.Int("SCRAPE_RETRIES", 0),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}
}

// app wires the engine components from engine.Cfg.
type app struct {
	cfg       engine.GenerationConfig
	cache     *engine.Cache
	searcher  *engine.Searcher
	scraper   *scrape.Scraper
	composer  *lyrics.Composer
	generator *lyrics.Generator
	questions *lyrics.QuestionLog
}

func newApp() (*app, error) {
	c := *engine.Cfg
	a := &app{cfg: c.Generation()}

	a.cache = engine.NewCache(c.RedisURL, c.CacheTTL, c.CacheMaxEntries, c.CacheCleanupInterval)

	doer, headers := newDoer(c)
	a.searcher = engine.NewSearcher(c.Search(),
		engine.WithDoer(doer),
		engine.WithSearchCache(a.cache),
	)
	a.scraper = scrape.New(scrape.Options{
		Doer:    doer,
		Headers: headers,
		Delay:   c.ScrapeDelay,
		Retry:   c.ScrapeRetry(),
		Locale:  c.SearchLocale,
		Cache:   a.cache,
	})

	// Answers make a single completion attempt, so only generation rotates keys.
	a.composer = lyrics.NewComposer(engine.Instrument(newCompleter(c, nil)), a.searcher, lyrics.ComposerOptions{Config: a.cfg})
	a.generator = lyrics.NewGenerator(engine.Instrument(newCompleter(c, c.LLMAPIKeyFallbacks)), a.cfg, "")

	qlog, err := lyrics.OpenQuestionLog(c.QuestionsDBPath())
	if err != nil {
		a.cache.Close()
		return nil, err
	}
	a.questions = qlog

	slog.Debug("app initialized",
		slog.String("provider", c.LLMProvider),
		slog.String("qa_model", a.composer.Model()),
		slog.String("lyrics_model", a.generator.Model()),
		slog.Bool("browser_tls", c.BrowserTLS),
	)
	return a, nil
}

// newDoer returns the transport shared by search and scraping, and the
// headers the scraper sends with it.
func newDoer(c engine.Config) (engine.Doer, map[string]string) {
	if c.BrowserTLS {
		bc, err := engine.NewBrowserClient(int(c.SearchTimeout/time.Second), c.WebshareAPIKey)
		if err != nil {
			slog.Warn("stealth client unavailable, using net/http", slog.Any("error", err))
		} else {
			slog.Info("stealth browser client initialized")
			return engine.NewStealthDoer(bc), engine.ChromeHeaders()
		}
	}
	return engine.NewHTTPDoer(c.HTTPClient), engine.DefaultSearchHeaders()
}

// newCompleter builds the provider client. fallbackKeys only apply to the
// compat provider.
func newCompleter(c engine.Config, fallbackKeys []string) engine.Completer {
	hc := &http.Client{Timeout: c.LLMTimeout}
	if c.LLMProvider == "compat" {
		return engine.NewCompatCompleter(c.LLMAPIBase, c.LLMAPIKey, fallbackKeys, hc)
	}
	return engine.NewOpenAICompleter(c.LLMAPIKey, c.LLMAPIBase, hc)
}

func (a *app) service() *lyricserver.Service {
	return &lyricserver.Service{
		DatasetPath: a.cfg.OutputPath,
		Composer:    a.composer,
		Generator:   a.generator,
		Scraper:     a.scraper,
		Questions:   a.questions,
	}
}

func (a *app) Close() {
	if err := a.questions.Close(); err != nil {
		slog.Warn("question log close failed", slog.Any("error", err))
	}
	a.cache.Close()
}
