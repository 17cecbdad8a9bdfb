package services

import (
	"context"

	apperrors "github.com/minhngoc/ringside/internal/errors"
	"github.com/minhngoc/ringside/internal/models"
	"github.com/minhngoc/ringside/internal/repositories"
)

type auditService struct {
	audits repositories.AuditRepository
}

// NewAuditService creates a new audit service
func NewAuditService(audits repositories.AuditRepository) AuditService {
	return &auditService{audits: audits}
}

func (s *auditService) List(ctx context.Context, owner string, limit int) ([]*models.AuditEntry, error) {
	if owner == "" {
		return nil, apperrors.ErrMissingOwner
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.audits.ListByOwner(ctx, owner, limit)
}
