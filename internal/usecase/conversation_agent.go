package usecase

import (
	"context"
	"errors"

	"vandra-service/internal/domain/entity"
	"vandra-service/internal/domain/repository"
)

// ErrEmptyConversation is returned when there is nothing to reply to.
var ErrEmptyConversation = errors.New("conversation has no messages")

// ConversationAgent drives the onboarding chat
type ConversationAgent struct {
	chat repository.ChatCompleter
}

// NewConversationAgent creates a new onboarding chat agent
func NewConversationAgent(chat repository.ChatCompleter) *ConversationAgent {
	return &ConversationAgent{chat: chat}
}

// Reply returns the agent's next short message.
func (a *ConversationAgent) Reply(ctx context.Context, messages []entity.ChatMessage) (string, error) {
	if len(messages) == 0 {
		return "", ErrEmptyConversation
	}
	return a.chat.Complete(ctx, AGENT_PROMPT, messages, AGENT_MAX_TOKENS)
}
