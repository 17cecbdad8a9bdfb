package repositories

import (
	"context"

	"github.com/minhngoc/ringside/internal/models"
)

// WagerRepository defines the interface for wager data operations
type WagerRepository interface {
	Create(ctx context.Context, w *models.WagerRecord) error
	GetByID(ctx context.Context, owner string, id int64) (*models.WagerRecord, error)
	List(ctx context.Context, owner string, filter *models.WagerFilter) ([]*models.WagerRecord, error)
	// ApplyBatch persists a set of state changes plus their audit rows as a
	// single all-or-nothing transaction.
	ApplyBatch(ctx context.Context, owner string, changes []models.StateChange, audits []*models.AuditEntry) error
}

// AuditRepository defines the interface for the mutation audit trail
type AuditRepository interface {
	Create(ctx context.Context, entry *models.AuditEntry) error
	ListByOwner(ctx context.Context, owner string, limit int) ([]*models.AuditEntry, error)
}

// LedgerRepository defines the interface for derived ledger summaries
type LedgerRepository interface {
	// Aggregate computes a summary by scanning all non-archived wagers of
	// owner. It does not store anything.
	Aggregate(ctx context.Context, owner string) (*models.LedgerSummary, error)
	Upsert(ctx context.Context, summary *models.LedgerSummary) error
	// Get returns the stored summary, or nil when none exists yet.
	Get(ctx context.Context, owner string) (*models.LedgerSummary, error)
}
