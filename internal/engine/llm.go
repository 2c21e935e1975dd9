package engine

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/anatolykoptev/go-kit/llm"
)

// Completer turns a completion request into output text.
// Implementations must be safe for concurrent use.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// CompleterFunc adapts a function to Completer.
type CompleterFunc func(ctx context.Context, req CompletionRequest) (string, error)

func (f CompleterFunc) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	return f(ctx, req)
}

// Instrument counts calls and failures and wraps failures in *CompletionError.
func Instrument(c Completer) Completer {
	return CompleterFunc(func(ctx context.Context, req CompletionRequest) (string, error) {
		metrics.LLMCalls.Add(1)
		var out string
		err := TrackOperation(ctx, "complete "+req.Model, func(ctx context.Context) error {
			var err error
			out, err = c.Complete(ctx, req)
			return err
		})
		if err != nil {
			metrics.LLMErrors.Add(1)
			slog.Warn("completion failed", slog.String("model", req.Model), slog.Any("error", err))
			return "", &CompletionError{Model: req.Model, Err: err}
		}
		return out, nil
	})
}

// SplitMessages joins system messages and user messages into the two
// strings a system+prompt style API expects.
func SplitMessages(msgs []Message) (system, prompt string) {
	var sys, usr []string
	for _, m := range msgs {
		switch m.Role {
		case RoleSystem:
			sys = append(sys, m.Content)
		default:
			usr = append(usr, m.Content)
		}
	}
	return strings.Join(sys, "\n\n"), strings.Join(usr, "\n\n")
}

type chatFunc func(ctx context.Context, system, prompt string, temperature float64, maxTokens int) (string, error)

// CompatCompleter talks to any OpenAI-compatible chat endpoint through go-kit.
// One go-kit client is kept per model.
type CompatCompleter struct {
	base       string
	apiKey     string
	fallbacks  []string
	httpClient *http.Client

	mu      sync.Mutex
	clients map[string]chatFunc
}

// NewCompatCompleter creates a completer for the given API base and key.
// A nil httpClient gets a 60s timeout.
func NewCompatCompleter(base, apiKey string, fallbackKeys []string, httpClient *http.Client) *CompatCompleter {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &CompatCompleter{
		base:       base,
		apiKey:     apiKey,
		fallbacks:  fallbackKeys,
		httpClient: httpClient,
		clients:    make(map[string]chatFunc),
	}
}

// FallbackKeys returns the keys tried after the primary key fails.
func (c *CompatCompleter) FallbackKeys() []string { return c.fallbacks }

func (c *CompatCompleter) client(model string) chatFunc {
	c.mu.Lock()
	defer c.mu.Unlock()
	if fn, ok := c.clients[model]; ok {
		return fn
	}

	cl := llm.NewClient(c.base, c.apiKey, model,
		llm.WithFallbackKeys(c.fallbacks),
		llm.WithHTTPClient(c.httpClient),
	)
	fn := func(ctx context.Context, system, prompt string, temperature float64, maxTokens int) (string, error) {
		return cl.Complete(ctx, system, prompt,
			llm.WithChatTemperature(temperature),
			llm.WithChatMaxTokens(maxTokens),
		)
	}
	c.clients[model] = fn
	return fn
}

// Complete sends the request as a single system + user exchange.
func (c *CompatCompleter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	system, prompt := SplitMessages(req.Messages)
	return c.client(req.Model)(ctx, system, prompt, req.Temperature, req.MaxTokens)
}
