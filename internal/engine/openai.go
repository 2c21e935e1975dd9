package engine

import (
	"context"
	"net/http"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
)

// OpenAICompleter calls the OpenAI Responses API. SDK retries are disabled:
// a failed call is final.
type OpenAICompleter struct {
	client openai.Client
}

// NewOpenAICompleter builds a Responses API completer. baseURL and
// httpClient are optional.
func NewOpenAICompleter(apiKey, baseURL string, httpClient *http.Client) *OpenAICompleter {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	return &OpenAICompleter{client: openai.NewClient(opts...)}
}

// Complete sends the messages as the response input list and returns the
// aggregated output text.
func (c *OpenAICompleter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	resp, err := c.client.Responses.New(ctx, buildResponseParams(req))
	if err != nil {
		return "", err
	}
	return resp.OutputText(), nil
}

func buildResponseParams(req CompletionRequest) responses.ResponseNewParams {
	input := make(responses.ResponseInputParam, 0, len(req.Messages))
	for _, m := range req.Messages {
		role := responses.EasyInputMessageRoleUser
		if m.Role == RoleSystem {
			role = responses.EasyInputMessageRoleSystem
		}
		input = append(input, responses.ResponseInputItemParamOfMessage(m.Content, role))
	}

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(req.Model),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: input,
		},
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxOutputTokens = openai.Int(int64(req.MaxTokens))
	}
	return params
}
