// Package llm abstracts chat completion backends behind one Provider
// interface so the conversation service stays backend-agnostic.
package llm

import (
	"context"
	"fmt"

	"github.com/kireev-dev/personabot/internal/types"
)

// Request is one completion call.
type Request struct {
	SystemPrompt string
	Messages     []types.ChatMessage
	Temperature  float64
	MaxTokens    int64
	TopP         float64
	// SafetyFilter asks the backend to apply its own content moderation.
	SafetyFilter bool
}

// Response is the completed reply text.
type Response struct {
	Text string
}

// Provider produces completions for conversation exchanges.
type Provider interface {
	Complete(ctx context.Context, req Request) (*Response, error)
}

// StatusError reports an upstream HTTP failure with its status code.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("completion failed with status %d: %s", e.Status, e.Message)
}
