package chat

import (
	"context"
	"errors"
)

// Role values for chat messages.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn in a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider is one LLM backend the assistant can ask.
type Provider interface {
	Name() string
	Complete(ctx context.Context, messages []Message) (string, error)
}

// ErrNotConfigured is returned by providers missing their API key; the
// fallback chain skips them.
var ErrNotConfigured = errors.New("provider not configured")

// SystemPrompt frames every conversation. The assistant must not give
// immigration advice, only preparation guidance.
const SystemPrompt = "You are the VisaPilot assistant. You help founders prepare UK Innovator Founder visa submissions: " +
	"business plan structure, endorsement criteria, evidence checklists and timelines. " +
	"You do not give legal or immigration advice; when asked, point the user to a regulated adviser. " +
	"Keep answers short and concrete."
