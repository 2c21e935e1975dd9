package lyrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go_lyrics/internal/engine"
)

const (
	// Q&A runs on a synchronous, user-facing path, so sampling and output
	// length are capped below the generation defaults.
	maxAnswerTemperature = 0.7
	maxAnswerTokens      = 600

	noExcerpt     = "No excerpt provided."
	searchFailed  = "Search failed: "
	envQAModel    = "OPENAI_QA_MODEL"
	queryJoinWord = " lyrics "
)

// ResultSearcher fetches web search results for a query.
type ResultSearcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]engine.SearchResult, error)
}

// AnswerRequest is one question about a lyric excerpt.
type AnswerRequest struct {
	Song             SongMetadata
	Excerpt          string
	Question         string
	AllowWeb         bool
	MaxSearchResults int // <= 0 means engine.DefaultMaxResults
}

// AnswerResult is the model answer plus its search provenance.
// SearchResults is non-empty only when SearchError is nil.
type AnswerResult struct {
	Answer        string                `json:"answer"`
	SearchResults []engine.SearchResult `json:"search_results"`
	SearchError   *string               `json:"search_error"`
}

// ComposerOptions configures a Composer.
type ComposerOptions struct {
	Config engine.GenerationConfig
	Model  string // overrides OPENAI_QA_MODEL and Config.Model
}

// Composer answers questions about lyric excerpts, optionally grounding the
// prompt in web search snippets. It is safe for concurrent use when its
// completer and searcher are.
type Composer struct {
	completer   engine.Completer
	searcher    ResultSearcher
	model       string
	temperature float64
	maxTokens   int
}

// NewComposer resolves the model and the capped sampling settings once.
// searcher may be nil, in which case every web search reports an error.
func NewComposer(completer engine.Completer, searcher ResultSearcher, opts ComposerOptions) *Composer {
	return &Composer{
		completer:   completer,
		searcher:    searcher,
		model:       engine.ResolveModel(opts.Model, env.Str(envQAModel, ""), opts.Config.Model),
		temperature: min(opts.Config.Temperature, maxAnswerTemperature),
		maxTokens:   min(opts.Config.MaxOutputTokens, maxAnswerTokens),
	}
}

// Model returns the resolved Q&A model identifier.
func (c *Composer) Model() string { return c.model }

// searchOutcome is the result of the insulated search step: either results
// or an error, never both.
type searchOutcome struct {
	results []engine.SearchResult
	err     error
}

func (o searchOutcome) context() string {
	if o.err != nil {
		return searchFailed + errorText(o.err)
	}
	return engine.FormatContext(o.results)
}

func (o searchOutcome) errorText() *string {
	if o.err == nil {
		return nil
	}
	s := errorText(o.err)
	return &s
}

func errorText(err error) string {
	if s := err.Error(); s != "" {
		return s
	}
	return fmt.Sprintf("%T", err)
}

// Answer runs the search step (when allowed and the question is non-empty),
// builds the prompt and calls the completion API once. A failed search is
// reported in the result; a failed completion is returned as an error.
func (c *Composer) Answer(ctx context.Context, req AnswerRequest) (*AnswerResult, error) {
	song := req.Song.normalize()
	question := strings.TrimSpace(req.Question)

	maxResults := req.MaxSearchResults
	if maxResults <= 0 {
		maxResults = engine.DefaultMaxResults
	}

	outcome := searchOutcome{results: []engine.SearchResult{}}
	if req.AllowWeb && question != "" {
		outcome = c.search(ctx, searchQuery(song, question), maxResults)
	}

	prompt := buildAnswerPrompt(song, req.Excerpt, question, outcome.context())

	out, err := c.completer.Complete(ctx, engine.CompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
		Messages: []engine.Message{
			{Role: engine.RoleSystem, Content: answerSystemPrompt},
			{Role: engine.RoleUser, Content: prompt},
		},
	})
	if err != nil {
		var ce *engine.CompletionError
		if !errors.As(err, &ce) {
			err = &engine.CompletionError{Model: c.model, Err: err}
		}
		return nil, err
	}

	return &AnswerResult{
		Answer:        strings.TrimSpace(out),
		SearchResults: outcome.results,
		SearchError:   outcome.errorText(),
	}, nil
}

// search converts every failure of the search step, panics included, into
// an outcome value so it can never abort the answer.
func (c *Composer) search(ctx context.Context, query string, maxResults int) (out searchOutcome) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("web search panicked", slog.String("query", query), slog.Any("panic", r))
			out = searchOutcome{results: []engine.SearchResult{}, err: fmt.Errorf("%v", r)}
		}
	}()

	if c.searcher == nil {
		return searchOutcome{results: []engine.SearchResult{}, err: errors.New("web search is not configured")}
	}

	results, err := c.searcher.Search(ctx, query, maxResults)
	if err != nil {
		slog.Warn("web search failed", slog.String("query", query), slog.Any("error", err))
		return searchOutcome{results: []engine.SearchResult{}, err: err}
	}
	if results == nil {
		results = []engine.SearchResult{}
	}
	return searchOutcome{results: results}
}

// searchQuery is "<title> lyrics <question>", or the question alone when the
// song has no title.
func searchQuery(song songFields, question string) string {
	if !song.hasTitle {
		return question
	}
	return song.title + queryJoinWord + question
}

func buildAnswerPrompt(song songFields, excerpt, question, externalContext string) string {
	excerpt = strings.TrimSpace(excerpt)
	if excerpt == "" {
		excerpt = noExcerpt
	}
	return fmt.Sprintf(answerPromptTemplate,
		song.title, song.theme, song.vibe, song.twist,
		excerpt, question, externalContext,
	)
}
