package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/minhngoc/ringside/internal/db"
	"github.com/minhngoc/ringside/internal/models"
)

// hardScanLimit bounds how many rows a single list query will ever pull,
// regardless of the caller's limit. Substring filters fold accents and so
// cannot be pushed into SQL; they are evaluated over this bounded scan.
const hardScanLimit = 2000

type wagerRepository struct {
	db *db.DB
}

// NewWagerRepository creates a new wager repository
func NewWagerRepository(database *db.DB) WagerRepository {
	return &wagerRepository{db: database}
}

func (r *wagerRepository) Create(ctx context.Context, w *models.WagerRecord) error {
	if err := r.db.WithContext(ctx).Create(w).Error; err != nil {
		return fmt.Errorf("failed to create wager: %w", err)
	}
	return nil
}

func (r *wagerRepository) GetByID(ctx context.Context, owner string, id int64) (*models.WagerRecord, error) {
	var w models.WagerRecord
	err := r.db.WithContext(ctx).First(&w, "owner = ? AND id = ?", owner, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get wager: %w", err)
	}
	return &w, nil
}

func (r *wagerRepository) List(ctx context.Context, owner string, filter *models.WagerFilter) ([]*models.WagerRecord, error) {
	query := r.db.WithContext(ctx).Where("owner = ?", owner)

	if filter == nil {
		filter = &models.WagerFilter{}
	}
	if !filter.IncludeArchived {
		query = query.Where("archived_at IS NULL")
	}
	if len(filter.IDs) > 0 {
		query = query.Where("id IN ?", filter.IDs)
	}
	if filter.Status != "" {
		query = query.Where("result = ?", models.NormalizeResult(filter.Status))
	}

	query = query.Order("created_at DESC, id DESC").Limit(hardScanLimit)

	var rows []*models.WagerRecord
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list wagers: %w", err)
	}

	out := make([]*models.WagerRecord, 0, len(rows))
	for _, w := range rows {
		if !models.FoldContains(w.EventName, filter.Event) {
			continue
		}
		if !models.FoldContains(w.Fight, filter.Fight) {
			continue
		}
		if !models.FoldContains(w.Pick, filter.Pick) {
			continue
		}
		out = append(out, w)
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	return out, nil
}

func (r *wagerRepository) ApplyBatch(ctx context.Context, owner string, changes []models.StateChange, audits []*models.AuditEntry) error {
	if len(changes) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, c := range changes {
			result := tx.Model(&models.WagerRecord{}).
				Where("owner = ? AND id = ?", owner, c.BetID).
				Updates(map[string]interface{}{
					"result":      c.Result,
					"settled_at":  c.SettledAt,
					"archived_at": c.ArchivedAt,
					"updated_at":  c.UpdatedAt,
				})
			if result.Error != nil {
				return fmt.Errorf("failed to update wager %d: %w", c.BetID, result.Error)
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("wager %d vanished during apply", c.BetID)
			}
		}

		for _, a := range audits {
			if err := tx.Create(a).Error; err != nil {
				return fmt.Errorf("failed to append audit row: %w", err)
			}
		}

		return nil
	})
}
