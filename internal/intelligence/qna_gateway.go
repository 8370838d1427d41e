package intelligence

import (
	"context"
	"fmt"

	"github.com/alexanderramin/waypoint/internal/llm"
)

// AnswerGateway turns an assembled prompt into an answer. Implementations
// may fail; callers decide how to degrade.
type AnswerGateway interface {
	Answer(ctx context.Context, prompt string) (string, error)
}

type llmAnswerGateway struct {
	client llm.LLMClient
}

// NewLLMAnswerGateway creates an AnswerGateway backed by an LLM client.
func NewLLMAnswerGateway(client llm.LLMClient) AnswerGateway {
	return &llmAnswerGateway{client: client}
}

func (g *llmAnswerGateway) Answer(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskQna,
		SystemPrompt: qnaSystemPrompt,
		UserPrompt:   prompt,
	})
	if err != nil {
		return "", fmt.Errorf("llm qna generation failed: %w", err)
	}
	return resp.Text, nil
}

// UnavailableGateway is used when no LLM is configured. Every call fails so
// the orchestrator records its fallback answer.
type UnavailableGateway struct{}

func (UnavailableGateway) Answer(context.Context, string) (string, error) {
	return "", fmt.Errorf("%w: llm disabled", llm.ErrProviderConfig)
}
