package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/minhngoc/ringside/internal/convstore"
	apperrors "github.com/minhngoc/ringside/internal/errors"
	"github.com/minhngoc/ringside/internal/models"
)

// DefaultConfirmationTTL is how long a queued mutation stays confirmable.
const DefaultConfirmationTTL = 10 * time.Minute

// confirmationService is the per-conversation state machine between the
// stateless preview/apply engine and a multi-turn chat. A conversation is
// Idle until a preview requires confirmation, then AwaitingConfirmation with
// a queue of one or more pending items until a confirming message, a cancel,
// or expiry.
type confirmationService struct {
	engine MutationService
	store  convstore.Store
	logger *zap.Logger
	ttl    time.Duration
	now    func() time.Time
}

// NewConfirmationService creates a new confirmation coordinator.
func NewConfirmationService(engine MutationService, store convstore.Store, logger *zap.Logger, ttl time.Duration) ConfirmationService {
	if ttl <= 0 {
		ttl = DefaultConfirmationTTL
	}
	return &confirmationService{engine: engine, store: store, logger: logger, ttl: ttl, now: time.Now}
}

func (s *confirmationService) SubmitRequest(ctx context.Context, conversationID, owner string, req *models.MutationRequest) (*TurnOutcome, error) {
	if owner == "" {
		return nil, apperrors.ErrMissingOwner
	}

	preview, err := s.engine.Preview(ctx, owner, req)
	if err != nil {
		return nil, err
	}

	if !preview.RequiresConfirmation {
		result, err := s.engine.Apply(ctx, owner, req, false)
		if err == nil {
			return &TurnOutcome{Kind: OutcomeApplied, Result: result}, nil
		}
		// State moved between preview and apply and confirmation became
		// necessary; queue instead of failing the turn.
		var confirmErr *apperrors.ErrConfirmationRequired
		if !errors.As(err, &confirmErr) {
			return nil, err
		}
		preview = confirmErr.Preview
	}

	now := s.now()
	expires := now.Add(s.ttl)
	item := convstore.PendingMutation{
		Token:        uuid.NewString()[:8],
		Owner:        owner,
		Request:      *req,
		CandidateIDs: preview.CandidateIDs(),
		CreatedAt:    now,
		ExpiresAt:    expires,
	}
	if err := s.store.Append(ctx, conversationID, item); err != nil {
		return nil, fmt.Errorf("failed to queue pending mutation: %w", err)
	}

	s.logger.Info("mutation queued for confirmation",
		zap.String("conversation", conversationID),
		zap.String("owner", owner),
		zap.String("operation", req.Operation),
		zap.String("token", item.Token),
		zap.Int("candidates", len(item.CandidateIDs)))

	return &TurnOutcome{
		Kind:      OutcomeQueued,
		Preview:   preview,
		Token:     item.Token,
		ExpiresAt: &expires,
	}, nil
}

func (s *confirmationService) HandleMessage(ctx context.Context, conversationID, owner, text string) (*TurnOutcome, error) {
	if owner == "" {
		return nil, apperrors.ErrMissingOwner
	}

	queue, err := s.store.Pending(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to read pending queue: %w", err)
	}
	if len(queue) == 0 {
		return &TurnOutcome{Kind: OutcomePassthrough}, nil
	}

	if isCancellation(text) {
		if err := s.store.Clear(ctx, conversationID); err != nil {
			return nil, fmt.Errorf("failed to clear pending queue: %w", err)
		}
		s.logger.Info("pending mutations cancelled",
			zap.String("conversation", conversationID),
			zap.Int("discarded", len(queue)))
		return &TurnOutcome{Kind: OutcomeCancelled}, nil
	}

	matched, ok := detectConfirmation(text, queue)
	if !ok {
		// Not a confirmation: ambiguity is resolved in favor of letting the
		// routing layer re-evaluate the message as a new mutation intent.
		return &TurnOutcome{Kind: OutcomePassthrough}, nil
	}

	matchedSet := make(map[int]bool, len(matched))
	for _, i := range matched {
		matchedSet[i] = true
	}

	outcome := &ConfirmOutcome{}
	var remaining []convstore.PendingMutation
	for i, item := range queue {
		if !matchedSet[i] {
			remaining = append(remaining, item)
			continue
		}
		// The apply is pinned to the candidates the user saw in the preview;
		// records that started matching the filters after queueing are
		// untouched. Candidates whose state moved drop out of the re-preview.
		req := item.Request
		req.BetIDs = item.CandidateIDs
		result, err := s.engine.Apply(ctx, item.Owner, &req, true)
		if err != nil {
			// Failed items stay pending for retry; the others still commit.
			outcome.Failed = append(outcome.Failed, FailedItem{Token: item.Token, Error: err.Error()})
			remaining = append(remaining, item)
			continue
		}
		outcome.Applied = append(outcome.Applied, AppliedItem{Token: item.Token, Result: result})
	}

	if err := s.store.Replace(ctx, conversationID, remaining); err != nil {
		return nil, fmt.Errorf("failed to update pending queue: %w", err)
	}

	s.logger.Info("confirmation processed",
		zap.String("conversation", conversationID),
		zap.Int("applied", len(outcome.Applied)),
		zap.Int("failed", len(outcome.Failed)))

	return &TurnOutcome{Kind: OutcomeApplied, Confirm: outcome}, nil
}
