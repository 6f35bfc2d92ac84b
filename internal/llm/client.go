// internal/llm/client.go
package llm

import (
	"context"

	openai "github.com/sashabaranov/go-openai"

	apperrors "negotiation-experiments/internal/common/errors"
	"negotiation-experiments/internal/common/httpclient"
	"negotiation-experiments/internal/common/logger"
)

// Completer issues a single chat completion for one prompt. Implementations
// must be safe for sequential reuse across a whole batch.
type Completer interface {
	Complete(ctx context.Context, model, prompt string) (string, error)
}

// OpenRouterClient is a Completer backed by OpenRouter's OpenAI-compatible
// chat completion API.
type OpenRouterClient struct {
	client       *openai.Client
	defaultModel string
	temperature  float32
	logger       logger.Logger
}

// NewOpenRouterClient configures a go-openai client against OpenRouter.
// Model IDs use the provider/model form, e.g. "openai/gpt-4o".
func NewOpenRouterClient(cfg ClientConfig, log logger.Logger) (*OpenRouterClient, error) {
	if cfg.APIKey == "" {
		return nil, apperrors.New(apperrors.ErrCodeConfigInvalid, "completion API key is required")
	}
	cfg.applyDefaults()

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = cfg.BaseURL
	clientConfig.HTTPClient = httpclient.New(cfg.Timeout)

	return &OpenRouterClient{
		client:       openai.NewClientWithConfig(clientConfig),
		defaultModel: cfg.DefaultModel,
		temperature:  cfg.Temperature,
		logger:       log,
	}, nil
}

// Complete sends the prompt as a single user message and returns the first
// choice's content. An empty message body is still a delivered completion;
// extraction downstream records it as a trial with no numbers.
func (c *OpenRouterClient) Complete(ctx context.Context, model, prompt string) (string, error) {
	if model == "" {
		model = c.defaultModel
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Temperature: c.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		code := apperrors.ClassifyTransport(err)
		c.logger.WithError(err).Warn("Chat completion request failed", map[string]interface{}{
			"model":      model,
			"error_code": string(code),
		})
		return "", apperrors.Wrap(code, "chat completion request failed", err)
	}

	if len(resp.Choices) == 0 {
		return "", apperrors.New(apperrors.ErrCodeTransportFailed, "completion response carried no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
