package repositories

import (
	"context"
	"fmt"

	"github.com/minhngoc/ringside/internal/db"
	"github.com/minhngoc/ringside/internal/models"
)

type auditRepository struct {
	db *db.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(database *db.DB) AuditRepository {
	return &auditRepository{db: database}
}

func (r *auditRepository) Create(ctx context.Context, entry *models.AuditEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create audit entry: %w", err)
	}
	return nil
}

func (r *auditRepository) ListByOwner(ctx context.Context, owner string, limit int) ([]*models.AuditEntry, error) {
	q := r.db.WithContext(ctx).Where("owner = ?", owner).Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var entries []*models.AuditEntry
	if err := q.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	return entries, nil
}
