package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/VisaPilotUK/VisaPilot/internal/pkg/env"
)

const (
	claudeEndpoint   = "https://api.anthropic.com/v1/messages"
	claudeAPIVersion = "2023-06-01"
	claudeMaxTokens  = 1024
)

// ClaudeProvider answers via the Anthropic Messages REST API.
type ClaudeProvider struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewClaudeProvider builds the provider from ANTHROPIC_API_KEY and
// ANTHROPIC_MODEL.
func NewClaudeProvider() *ClaudeProvider {
	return &ClaudeProvider{
		apiKey: env.GetEnv("ANTHROPIC_API_KEY", ""),
		model:  env.GetEnv("ANTHROPIC_MODEL", "claude-3-5-haiku-latest"),
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *ClaudeProvider) Name() string {
	return "claude"
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	System    string          `json:"system,omitempty"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (p *ClaudeProvider) Complete(ctx context.Context, messages []Message) (string, error) {
	if p.apiKey == "" {
		return "", ErrNotConfigured
	}

	payload := claudeRequest{Model: p.model, MaxTokens: claudeMaxTokens}
	for _, m := range messages {
		if m.Role == RoleSystem {
			payload.System = m.Content
			continue
		}
		payload.Messages = append(payload.Messages, claudeMessage{Role: m.Role, Content: m.Content})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("claude request marshal: %w", err)
	}

	url := p.baseURL
	if url == "" {
		url = claudeEndpoint
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("claude request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", p.apiKey)
	req.Header.Set("anthropic-version", claudeAPIVersion)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("claude request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded claudeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("claude response decode: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := resp.Status
		if decoded.Error != nil {
			msg = decoded.Error.Message
		}
		return "", fmt.Errorf("claude returned %d: %s", resp.StatusCode, msg)
	}
	for _, block := range decoded.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("claude returned no text content")
}
