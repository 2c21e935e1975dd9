package lyricserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerQuestions(server *mcp.Server, svc *Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "lyrics_questions",
		Description: "List previously asked lyric questions, newest first. Optionally filter by song title.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input QuestionsInput) (*mcp.CallToolResult, *QuestionsOutput, error) {
		out, err := svc.questions(ctx, input)
		if err != nil {
			return nil, nil, err
		}
		return nil, out, nil
	})
}

func (s *Service) questions(ctx context.Context, input QuestionsInput) (*QuestionsOutput, error) {
	if s.Questions == nil {
		return nil, errors.New("question log is not configured")
	}
	entries, err := s.Questions.List(ctx, input.Title, input.Limit)
	if err != nil {
		return nil, err
	}
	return &QuestionsOutput{Count: len(entries), Questions: entries}, nil
}
