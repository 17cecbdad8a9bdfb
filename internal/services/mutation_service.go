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

// candidateLimit bounds how many records a single bulk mutation may touch.
const candidateLimit = 2000

type mutationService struct {
	wagers repositories.WagerRepository
	ledger LedgerService
	logger *zap.Logger
	now    func() time.Time
}

// NewMutationService creates a new mutation service
func NewMutationService(wagers repositories.WagerRepository, ledger LedgerService, logger *zap.Logger) MutationService {
	return &mutationService{wagers: wagers, ledger: ledger, logger: logger, now: time.Now}
}

// Preview resolves req against current state without mutating anything.
func (s *mutationService) Preview(ctx context.Context, owner string, req *models.MutationRequest) (*models.MutationPreview, error) {
	if owner == "" {
		return nil, apperrors.ErrMissingOwner
	}
	if req == nil || !models.ValidOperation(req.Operation) {
		op := ""
		if req != nil {
			op = req.Operation
		}
		return nil, &apperrors.ErrInvalidOperation{Operation: op}
	}

	target := ""
	if req.Operation == models.OpSettle {
		target = models.NormalizeResult(req.Result)
		if !models.IsSettledResult(target) {
			return nil, &apperrors.ErrInvalidSettleResult{Result: req.Result}
		}
	}

	// Effective status filter: the explicit one if given, else pending for
	// settle so already-closed bets are never re-settled by accident.
	status := req.Status
	if status == "" && req.Operation == models.OpSettle {
		status = models.ResultPending
	}

	records, err := s.wagers.List(ctx, owner, &models.WagerFilter{
		IDs:    req.BetIDs,
		Event:  req.Event,
		Fight:  req.Fight,
		Pick:   req.Pick,
		Status: status,
		Limit:  candidateLimit,
	})
	if err != nil {
		return nil, &apperrors.ErrStorage{Err: err}
	}
	if len(records) == 0 {
		return nil, apperrors.ErrNoMatchingRecords
	}

	candidates := make([]models.CandidateSnapshot, 0, len(records))
	for _, w := range records {
		candidates = append(candidates, models.CandidateSnapshot{
			BetID:      w.ID,
			EventName:  w.EventName,
			Fight:      w.Fight,
			Pick:       w.Pick,
			Result:     w.Result,
			SettledAt:  w.SettledAt,
			ArchivedAt: w.ArchivedAt,
		})
	}

	requiresConfirmation := req.Operation == models.OpArchive ||
		len(candidates) > 1 ||
		len(req.BetIDs) == 0

	return &models.MutationPreview{
		Operation:            req.Operation,
		Result:               target,
		Candidates:           candidates,
		RequiresConfirmation: requiresConfirmation,
	}, nil
}

// Apply recomputes the preview and commits the transitions transactionally.
// Candidates that changed between preview and apply simply drop out of the
// fresh candidate set; a request whose candidates are all gone fails with
// ErrNoMatchingRecords and writes nothing, which makes repeated applies safe.
func (s *mutationService) Apply(ctx context.Context, owner string, req *models.MutationRequest, confirm bool) (*models.MutationResult, error) {
	preview, err := s.Preview(ctx, owner, req)
	if err != nil {
		return nil, err
	}
	if preview.RequiresConfirmation && !confirm {
		return nil, &apperrors.ErrConfirmationRequired{Preview: preview}
	}

	meta, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode mutation metadata: %w", err)
	}

	now := s.now()
	changes := make([]models.StateChange, 0, len(preview.Candidates))
	receipts := make([]models.ReceiptEntry, 0, len(preview.Candidates))
	audits := make([]*models.AuditEntry, 0, len(preview.Candidates))

	for _, c := range preview.Candidates {
		change := models.StateChange{BetID: c.BetID, UpdatedAt: now}
		switch req.Operation {
		case models.OpArchive:
			change.Result = c.Result
			change.SettledAt = c.SettledAt
			change.ArchivedAt = &now
		case models.OpSetPending:
			change.Result = models.ResultPending
			change.SettledAt = nil
			change.ArchivedAt = c.ArchivedAt
		case models.OpSettle:
			change.Result = preview.Result
			change.SettledAt = &now
			change.ArchivedAt = c.ArchivedAt
		}
		changes = append(changes, change)

		receipts = append(receipts, models.ReceiptEntry{
			BetID:              c.BetID,
			PreviousResult:     c.Result,
			NewResult:          change.Result,
			PreviousArchivedAt: c.ArchivedAt,
			NewArchivedAt:      change.ArchivedAt,
		})

		audits = append(audits, &models.AuditEntry{
			Owner:              owner,
			BetID:              c.BetID,
			Action:             req.Operation,
			PreviousResult:     c.Result,
			NewResult:          change.Result,
			PreviousArchivedAt: c.ArchivedAt,
			NewArchivedAt:      change.ArchivedAt,
			Metadata:           meta,
		})
	}

	if err := s.wagers.ApplyBatch(ctx, owner, changes, audits); err != nil {
		return nil, &apperrors.ErrStorage{Err: err}
	}

	summary, err := s.ledger.Rebuild(ctx, owner)
	if err != nil {
		return nil, err
	}

	s.logger.Info("mutation applied",
		zap.String("owner", owner),
		zap.String("operation", req.Operation),
		zap.Int("affected", len(receipts)))

	return &models.MutationResult{
		Operation:     req.Operation,
		AffectedCount: len(receipts),
		Receipts:      receipts,
		Summary:       summary,
	}, nil
}
