// Package llm is a small chat-completions client for OpenAI-compatible endpoints.
package llm

import (
	"context"
	"errors"
	"fmt"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"

	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Params are the sampling knobs sent with every request.
type Params struct {
	Model       string
	Temperature float64
	MaxTokens   int
	TopP        float64
}

// Completer sends an ordered message list and returns the assistant text.
type Completer interface {
	Complete(ctx context.Context, msgs []Message, p Params) (string, error)
}

// ErrNoContent means the service answered but returned no choices or empty text.
var ErrNoContent = errors.New("llm: empty completion")

// APIError is a non-2xx answer from the service.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("llm: status %d", e.Status)
	}
	return fmt.Sprintf("llm: status %d: %s", e.Status, e.Message)
}
