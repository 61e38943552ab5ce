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

const geminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s"

// GeminiProvider answers via the Google Generative Language REST API.
type GeminiProvider struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewGeminiProvider builds the provider from GEMINI_API_KEY and GEMINI_MODEL.
func NewGeminiProvider() *GeminiProvider {
	return &GeminiProvider{
		apiKey: env.GetEnv("GEMINI_API_KEY", ""),
		model:  env.GetEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *GeminiProvider) Name() string {
	return "gemini"
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (p *GeminiProvider) Complete(ctx context.Context, messages []Message) (string, error) {
	if p.apiKey == "" {
		return "", ErrNotConfigured
	}

	var payload geminiRequest
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			payload.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: m.Content}}}
		case RoleAssistant:
			payload.Contents = append(payload.Contents, geminiContent{Role: "model", Parts: []geminiPart{{Text: m.Content}}})
		default:
			payload.Contents = append(payload.Contents, geminiContent{Role: "user", Parts: []geminiPart{{Text: m.Content}}})
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("gemini request marshal: %w", err)
	}

	url := p.baseURL
	if url == "" {
		url = fmt.Sprintf(geminiEndpoint, p.model, p.apiKey)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("gemini response decode: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := resp.Status
		if decoded.Error != nil {
			msg = decoded.Error.Message
		}
		return "", fmt.Errorf("gemini returned %d: %s", resp.StatusCode, msg)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}
	return decoded.Candidates[0].Content.Parts[0].Text, nil
}
