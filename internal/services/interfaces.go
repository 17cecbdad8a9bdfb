package services

import (
	"context"
	"time"

	"github.com/minhngoc/ringside/internal/models"
)

// WagerService is the record store boundary: creation and querying of
// wagers scoped to an owner.
type WagerService interface {
	Create(ctx context.Context, owner string, w *models.WagerRecord) (*models.WagerRecord, error)
	Get(ctx context.Context, owner string, id int64) (*models.WagerRecord, error)
	List(ctx context.Context, owner string, filter *models.WagerFilter) ([]*models.WagerRecord, error)
}

// MutationService is the capability interface the conversational layer holds.
// No assumption is made about how many times or in what order it is invoked;
// Apply recomputes its preview so repeated or reordered calls stay safe.
type MutationService interface {
	Preview(ctx context.Context, owner string, req *models.MutationRequest) (*models.MutationPreview, error)
	Apply(ctx context.Context, owner string, req *models.MutationRequest, confirm bool) (*models.MutationResult, error)
}

// LedgerService recomputes and serves per-owner ledger summaries.
type LedgerService interface {
	Rebuild(ctx context.Context, owner string) (*models.LedgerSummary, error)
	Get(ctx context.Context, owner string) (*models.LedgerSummary, error)
}

// AuditService exposes the mutation audit trail.
type AuditService interface {
	List(ctx context.Context, owner string, limit int) ([]*models.AuditEntry, error)
}

// ConfirmationService bridges the stateless preview/apply engine with a
// multi-turn conversation.
type ConfirmationService interface {
	// SubmitRequest previews req and either applies it immediately (when no
	// confirmation is needed) or queues it for confirmation.
	SubmitRequest(ctx context.Context, conversationID, owner string, req *models.MutationRequest) (*TurnOutcome, error)
	// HandleMessage runs the deterministic confirmation detector over one
	// free-text turn. Messages that are neither confirmations nor
	// cancellations pass through untouched.
	HandleMessage(ctx context.Context, conversationID, owner, text string) (*TurnOutcome, error)
}

// ChatService is the conversational adapter over the coordinator.
type ChatService interface {
	Handle(ctx context.Context, turn *ChatTurn) (*TurnOutcome, error)
}

// ChatTurn is one inbound message, optionally carrying the structured
// mutation request the routing layer extracted from it.
type ChatTurn struct {
	ConversationID string                  `json:"conversation_id"`
	Owner          string                  `json:"owner"`
	Message        string                  `json:"message"`
	Mutation       *models.MutationRequest `json:"mutation,omitempty"`
}

// Outcome kinds for a conversation turn.
const (
	OutcomeApplied     = "applied"     // mutation(s) committed
	OutcomeQueued      = "queued"      // preview stored, awaiting confirmation
	OutcomeCancelled   = "cancelled"   // pending queue discarded
	OutcomePassthrough = "passthrough" // not a confirmation; route elsewhere
)

// AppliedItem is one pending mutation that committed during confirmation.
type AppliedItem struct {
	Token  string                 `json:"token"`
	Result *models.MutationResult `json:"result"`
}

// FailedItem is one pending mutation that failed to commit; it stays queued.
type FailedItem struct {
	Token string `json:"token"`
	Error string `json:"error"`
}

// ConfirmOutcome reports per-item results of a batched confirmation.
type ConfirmOutcome struct {
	Applied []AppliedItem `json:"applied"`
	Failed  []FailedItem  `json:"failed,omitempty"`
}

// TurnOutcome is the structured result of one conversation turn. The
// conversational layer renders it; this core never formats prose.
type TurnOutcome struct {
	Kind      string                  `json:"kind"`
	Preview   *models.MutationPreview `json:"preview,omitempty"`
	Token     string                  `json:"token,omitempty"`
	ExpiresAt *time.Time              `json:"expires_at,omitempty"`
	Result    *models.MutationResult  `json:"result,omitempty"`
	Confirm   *ConfirmOutcome         `json:"confirm,omitempty"`
}
