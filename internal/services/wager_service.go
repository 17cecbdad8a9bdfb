package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/minhngoc/ringside/internal/errors"
	"github.com/minhngoc/ringside/internal/models"
	"github.com/minhngoc/ringside/internal/repositories"
)

const defaultListLimit = 50

type wagerService struct {
	wagers repositories.WagerRepository
	audits repositories.AuditRepository
	ledger LedgerService
	logger *zap.Logger
}

// NewWagerService creates a new wager service
func NewWagerService(wagers repositories.WagerRepository, audits repositories.AuditRepository, ledger LedgerService, logger *zap.Logger) WagerService {
	return &wagerService{wagers: wagers, audits: audits, ledger: ledger, logger: logger}
}

func (s *wagerService) Create(ctx context.Context, owner string, w *models.WagerRecord) (*models.WagerRecord, error) {
	if owner == "" {
		return nil, apperrors.ErrMissingOwner
	}
	w.Owner = owner
	w.Result = models.NormalizeResult(w.Result)
	if w.Settled() && w.SettledAt == nil {
		now := time.Now()
		w.SettledAt = &now
	}
	if !w.Settled() {
		w.SettledAt = nil
	}
	w.ArchivedAt = nil

	if err := w.Validate(); err != nil {
		return nil, &apperrors.ErrValidation{Field: "wager", Message: err.Error()}
	}

	if err := s.wagers.Create(ctx, w); err != nil {
		return nil, err
	}

	meta, _ := json.Marshal(map[string]string{"fight": w.Fight, "pick": w.Pick})
	audit := &models.AuditEntry{
		Owner:     owner,
		BetID:     w.ID,
		Action:    models.AuditCreate,
		NewResult: w.Result,
		Metadata:  meta,
	}
	if err := s.audits.Create(ctx, audit); err != nil {
		return nil, fmt.Errorf("failed to record creation audit: %w", err)
	}

	if _, err := s.ledger.Rebuild(ctx, owner); err != nil {
		return nil, err
	}

	s.logger.Info("wager created",
		zap.String("owner", owner),
		zap.Int64("bet_id", w.ID),
		zap.String("result", w.Result))
	return w, nil
}

func (s *wagerService) Get(ctx context.Context, owner string, id int64) (*models.WagerRecord, error) {
	if owner == "" {
		return nil, apperrors.ErrMissingOwner
	}
	return s.wagers.GetByID(ctx, owner, id)
}

func (s *wagerService) List(ctx context.Context, owner string, filter *models.WagerFilter) ([]*models.WagerRecord, error) {
	if owner == "" {
		return nil, apperrors.ErrMissingOwner
	}
	if filter == nil {
		filter = &models.WagerFilter{}
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	return s.wagers.List(ctx, owner, filter)
}
