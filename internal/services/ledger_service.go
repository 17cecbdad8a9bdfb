package services

import (
	"context"

	"go.uber.org/zap"

	apperrors "github.com/minhngoc/ringside/internal/errors"
	"github.com/minhngoc/ringside/internal/models"
	"github.com/minhngoc/ringside/internal/repositories"
)

// ledgerService derives per-owner summaries from the wagers table. It never
// mutates wagers; Rebuild with unchanged input always produces the same
// totals.
type ledgerService struct {
	ledger repositories.LedgerRepository
	logger *zap.Logger
}

// NewLedgerService creates a new ledger service
func NewLedgerService(ledger repositories.LedgerRepository, logger *zap.Logger) LedgerService {
	return &ledgerService{ledger: ledger, logger: logger}
}

func (s *ledgerService) Rebuild(ctx context.Context, owner string) (*models.LedgerSummary, error) {
	if owner == "" {
		return nil, apperrors.ErrMissingOwner
	}
	summary, err := s.ledger.Aggregate(ctx, owner)
	if err != nil {
		return nil, err
	}
	if err := s.ledger.Upsert(ctx, summary); err != nil {
		return nil, err
	}
	s.logger.Debug("ledger rebuilt",
		zap.String("owner", owner),
		zap.Int64("total_bets", summary.TotalBets))
	return summary, nil
}

func (s *ledgerService) Get(ctx context.Context, owner string) (*models.LedgerSummary, error) {
	if owner == "" {
		return nil, apperrors.ErrMissingOwner
	}
	summary, err := s.ledger.Get(ctx, owner)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		// Lazy initialization on first access.
		return s.Rebuild(ctx, owner)
	}
	return summary, nil
}
