package openai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"floorassist/internal/prompt"
)

// Completer performs one synchronous chat-completion call per grounded turn.
// Failures propagate to the caller; nothing is retried here.
type Completer struct {
	client      openai.Client
	model       string
	temperature float64
	maxTokens   int
}

func NewCompleter(apiKey, model string, temperature float64, maxTokens int, opts ...option.RequestOption) *Completer {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &Completer{
		client:      openai.NewClient(opts...),
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

func (c *Completer) Complete(ctx context.Context, msgs []prompt.Message) (string, error) {
	slog.DebugContext(ctx, "requesting completion", "model", c.model, "messages", len(msgs))

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    toParams(msgs),
		Temperature: openai.Float(c.temperature),
		MaxTokens:   openai.Int(int64(c.maxTokens)),
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		slog.ErrorContext(ctx, "completion failed", "error", err)
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion response has no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func toParams(msgs []prompt.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case prompt.RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case prompt.RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}
