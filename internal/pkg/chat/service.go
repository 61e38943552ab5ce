package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/VisaPilotUK/VisaPilot/internal/pkg/cache"
)

// FallbackReply is the canned answer when every provider fails.
const FallbackReply = "Sorry, the assistant is unavailable right now. Your question has not been lost - please try again in a few minutes."

const (
	historyKeyPrefix = "chat_history:"
	historyTTL       = 24 * time.Hour
	historyMaxTurns  = 20
)

// Reply is one assistant answer plus the provider that produced it.
type Reply struct {
	Text     string `json:"text"`
	Provider string `json:"provider"`
	Fallback bool   `json:"fallback"`
}

// Service runs the provider chain: each provider is tried in order and the
// first success wins. When all fail the canned fallback is returned; Ask
// never returns an error to the caller.
type Service struct {
	providers []Provider
}

// NewService builds a service over an explicit provider list.
func NewService(providers ...Provider) *Service {
	return &Service{providers: providers}
}

// NewDefaultService wires the production chain: OpenAI, then Gemini, then
// Claude.
func NewDefaultService() *Service {
	return NewService(NewOpenAIProvider(), NewGeminiProvider(), NewClaudeProvider())
}

// Ask sends the conversation plus the new question through the provider
// chain and appends both turns to the session history.
func (s *Service) Ask(ctx context.Context, sessionID, question string) Reply {
	history := s.History(sessionID)

	messages := make([]Message, 0, len(history)+2)
	messages = append(messages, Message{Role: RoleSystem, Content: SystemPrompt})
	messages = append(messages, history...)
	messages = append(messages, Message{Role: RoleUser, Content: question})

	reply := s.complete(ctx, messages)

	history = append(history, Message{Role: RoleUser, Content: question})
	if !reply.Fallback {
		history = append(history, Message{Role: RoleAssistant, Content: reply.Text})
	}
	s.saveHistory(sessionID, history)

	return reply
}

// Generate runs a one-shot completion without touching any session history.
// The generation pipeline uses this for long-form document drafting.
func (s *Service) Generate(ctx context.Context, systemPrompt, prompt string) Reply {
	messages := []Message{
		{Role: RoleSystem, Content: systemPrompt},
		{Role: RoleUser, Content: prompt},
	}
	return s.complete(ctx, messages)
}

func (s *Service) complete(ctx context.Context, messages []Message) Reply {
	for _, provider := range s.providers {
		answer, err := provider.Complete(ctx, messages)
		if err == nil {
			return Reply{Text: answer, Provider: provider.Name()}
		}
		if err != ErrNotConfigured {
			log.Warnf("[Chat] provider %s failed, falling through: %v", provider.Name(), err)
		}
	}
	return Reply{Text: FallbackReply, Fallback: true}
}

// History returns the stored conversation for a session, oldest first.
func (s *Service) History(sessionID string) []Message {
	raw, err := cache.Get(historyKey(sessionID))
	if err != nil {
		return nil
	}
	var history []Message
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		return nil
	}
	return history
}

// ClearHistory drops the stored conversation for a session.
func (s *Service) ClearHistory(sessionID string) error {
	return cache.Delete(historyKey(sessionID))
}

func (s *Service) saveHistory(sessionID string, history []Message) {
	if len(history) > historyMaxTurns {
		history = history[len(history)-historyMaxTurns:]
	}
	data, err := json.Marshal(history)
	if err != nil {
		return
	}
	if err := cache.Set(historyKey(sessionID), string(data), historyTTL); err != nil {
		log.Warnf("[Chat] failed to persist history for session %s: %v", sessionID, err)
	}
}

func historyKey(sessionID string) string {
	return fmt.Sprintf("%s%s", historyKeyPrefix, sessionID)
}
