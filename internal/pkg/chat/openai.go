package chat

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/VisaPilotUK/VisaPilot/internal/pkg/env"
)

const openAIMaxTokens = 1024

// OpenAIProvider answers via the OpenAI chat completions API.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider builds the provider from OPENAI_API_KEY and
// OPENAI_MODEL. A missing key yields a provider that reports
// ErrNotConfigured, keeping the fallback chain simple.
func NewOpenAIProvider() *OpenAIProvider {
	apiKey := env.GetEnv("OPENAI_API_KEY", "")
	p := &OpenAIProvider{model: env.GetEnv("OPENAI_MODEL", "gpt-4o-mini")}
	if apiKey != "" {
		p.client = openai.NewClient(apiKey)
	}
	return p
}

func (p *OpenAIProvider) Name() string {
	return "openai"
}

func (p *OpenAIProvider) Complete(ctx context.Context, messages []Message) (string, error) {
	if p.client == nil {
		return "", ErrNotConfigured
	}

	req := openai.ChatCompletionRequest{
		Model:     p.model,
		MaxTokens: openAIMaxTokens,
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai chat completion: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}
