package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vandra-service/internal/domain/entity"
	"vandra-service/internal/domain/repository"
	"vandra-service/pkg/logger"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// ErrEmptyReply is returned when the model answers with no content.
var ErrEmptyReply = errors.New("model returned an empty reply")

// ChatModelConfig holds the chat model endpoint settings
type ChatModelConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

// NewArkChatModel creates an eino chat model backed by Ark
func NewArkChatModel(ctx context.Context, cfg ChatModelConfig) (model.BaseChatModel, error) {
	if cfg.APIKey == "" || cfg.Model == "" {
		return nil, errors.New("chat model api key and model are required")
	}

	chatModel, err := ark.NewChatModel(ctx, &ark.ChatModelConfig{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}
	return chatModel, nil
}

// Chat adapts an eino chat model to repository.ChatCompleter
type Chat struct {
	model  model.BaseChatModel
	logger logger.Logger
}

// NewChat creates a new chat completer
func NewChat(chatModel model.BaseChatModel, logger logger.Logger) repository.ChatCompleter {
	return &Chat{
		model:  chatModel,
		logger: logger,
	}
}

// Complete sends the system prompt followed by the transcript and returns the
// reply text.
func (c *Chat) Complete(ctx context.Context, system string, messages []entity.ChatMessage, maxTokens int) (string, error) {
	input := make([]*schema.Message, 0, len(messages)+1)
	input = append(input, schema.SystemMessage(system))
	for _, m := range messages {
		if m.Role == entity.RoleAssistant {
			input = append(input, schema.AssistantMessage(m.Content, nil))
		} else {
			input = append(input, schema.UserMessage(m.Content))
		}
	}

	var opts []model.Option
	if maxTokens > 0 {
		opts = append(opts, model.WithMaxTokens(maxTokens))
	}

	msg, err := c.model.Generate(ctx, input, opts...)
	if err != nil {
		c.logger.Error("Chat model call failed", "error", err)
		return "", fmt.Errorf("chat model generate: %w", err)
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return "", ErrEmptyReply
	}
	return msg.Content, nil
}
