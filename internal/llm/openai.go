package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/kireev-dev/personabot/internal/types"
)

const defaultOpenAIModel = "mistral-medium"

// OpenAIConfig configures the OpenAI-compatible backend. BaseURL lets the
// same client talk to any compatible endpoint.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

type openaiProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider creates a provider backed by an OpenAI-compatible chat
// completion endpoint.
func NewOpenAIProvider(cfg OpenAIConfig) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	client := openai.NewClient(opts...)
	model := cfg.Model
	if model == "" {
		model = defaultOpenAIModel
	}
	return &openaiProvider{client: &client, model: model}, nil
}

func (p *openaiProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	params := openai.ChatCompletionNewParams{
		Model:    p.model,
		Messages: buildMessages(req),
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(req.MaxTokens)
	}
	if req.TopP > 0 {
		params.TopP = openai.Float(req.TopP)
	}

	// Mistral-compatible endpoints take a safe_prompt flag that is not part
	// of the OpenAI schema.
	resp, err := p.client.Chat.Completions.New(ctx, params,
		option.WithJSONSet("safe_prompt", req.SafetyFilter))
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return nil, &StatusError{Status: apiErr.StatusCode, Message: apiErr.Message}
		}
		return nil, fmt.Errorf("failed to call completion API: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty completion response")
	}
	return &Response{Text: resp.Choices[0].Message.Content}, nil
}

func buildMessages(req Request) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages)+1)
	if req.SystemPrompt != "" {
		messages = append(messages, openai.SystemMessage(req.SystemPrompt))
	}
	for _, m := range req.Messages {
		switch m.Role {
		case types.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(m.Content))
		default:
			messages = append(messages, openai.UserMessage(m.Content))
		}
	}
	return messages
}
