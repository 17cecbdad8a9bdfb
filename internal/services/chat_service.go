package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/minhngoc/ringside/internal/convstore"
	apperrors "github.com/minhngoc/ringside/internal/errors"
)

// chatService is the conversational adapter: it records the turn, gives the
// deterministic confirmation detector first claim on the message, and only
// then forwards any structured mutation the routing layer extracted. Intent
// classification itself lives outside this core.
type chatService struct {
	coordinator ConfirmationService
	store       convstore.Store
	logger      *zap.Logger
	now         func() time.Time
}

// NewChatService creates a new chat service
func NewChatService(coordinator ConfirmationService, store convstore.Store, logger *zap.Logger) ChatService {
	return &chatService{coordinator: coordinator, store: store, logger: logger, now: time.Now}
}

func (s *chatService) Handle(ctx context.Context, turn *ChatTurn) (*TurnOutcome, error) {
	if turn == nil || turn.ConversationID == "" {
		return nil, &apperrors.ErrValidation{Field: "conversation_id", Message: "is required"}
	}
	if turn.Owner == "" {
		return nil, apperrors.ErrMissingOwner
	}

	if turn.Message != "" {
		if err := s.store.AppendTurn(ctx, turn.ConversationID, convstore.Turn{
			Role:    "user",
			Message: turn.Message,
			At:      s.now(),
		}); err != nil {
			s.logger.Warn("failed to record turn", zap.Error(err))
		}

		out, err := s.coordinator.HandleMessage(ctx, turn.ConversationID, turn.Owner, turn.Message)
		if err != nil {
			return nil, err
		}
		if out.Kind != OutcomePassthrough {
			return out, nil
		}
	}

	if turn.Mutation != nil {
		return s.coordinator.SubmitRequest(ctx, turn.ConversationID, turn.Owner, turn.Mutation)
	}

	return &TurnOutcome{Kind: OutcomePassthrough}, nil
}
