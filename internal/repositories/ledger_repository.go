package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/minhngoc/ringside/internal/db"
	"github.com/minhngoc/ringside/internal/models"
)

type ledgerRepository struct {
	db *db.DB
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(database *db.DB) LedgerRepository {
	return &ledgerRepository{db: database}
}

// ledgerRow mirrors the aggregate select below for scanning.
type ledgerRow struct {
	TotalStaked decimal.Decimal
	TotalUnits  decimal.Decimal
	TotalBets   int64
	Wins        int64
	Losses      int64
	Pushes      int64
	Pending     int64
}

func (r *ledgerRepository) Aggregate(ctx context.Context, owner string) (*models.LedgerSummary, error) {
	var row ledgerRow
	err := r.db.WithContext(ctx).Model(&models.WagerRecord{}).
		Select(`COALESCE(SUM(stake), 0) AS total_staked,
			COALESCE(SUM(units), 0) AS total_units,
			COUNT(*) AS total_bets,
			SUM(CASE WHEN result = 'win' THEN 1 ELSE 0 END) AS wins,
			SUM(CASE WHEN result = 'loss' THEN 1 ELSE 0 END) AS losses,
			SUM(CASE WHEN result = 'push' THEN 1 ELSE 0 END) AS pushes,
			SUM(CASE WHEN result = 'pending' THEN 1 ELSE 0 END) AS pending`).
		Where("owner = ? AND archived_at IS NULL", owner).
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ledger for %s: %w", owner, err)
	}

	return &models.LedgerSummary{
		Owner:       owner,
		TotalStaked: row.TotalStaked,
		TotalUnits:  row.TotalUnits,
		TotalBets:   row.TotalBets,
		Wins:        row.Wins,
		Losses:      row.Losses,
		Pushes:      row.Pushes,
		Pending:     row.Pending,
		UpdatedAt:   time.Now(),
	}, nil
}

func (r *ledgerRepository) Upsert(ctx context.Context, summary *models.LedgerSummary) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner"}},
			UpdateAll: true,
		}).
		Create(summary).Error
	if err != nil {
		return fmt.Errorf("failed to upsert ledger summary: %w", err)
	}
	return nil
}

func (r *ledgerRepository) Get(ctx context.Context, owner string) (*models.LedgerSummary, error) {
	var summary models.LedgerSummary
	err := r.db.WithContext(ctx).First(&summary, "owner = ?", owner).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ledger summary: %w", err)
	}
	return &summary, nil
}
