package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerSummary is the per-owner aggregate over all non-archived wagers.
// It is always recomputed from scratch by scanning the wagers table, never
// patched incrementally.
type LedgerSummary struct {
	Owner       string          `json:"owner" gorm:"primaryKey;column:owner;type:varchar(255)"`
	TotalStaked decimal.Decimal `json:"total_staked" gorm:"column:total_staked;type:decimal(20,8);not null;default:0"`
	TotalUnits  decimal.Decimal `json:"total_units" gorm:"column:total_units;type:decimal(20,8);not null;default:0"`
	TotalBets   int64           `json:"total_bets" gorm:"column:total_bets;not null;default:0"`
	Wins        int64           `json:"wins" gorm:"column:wins;not null;default:0"`
	Losses      int64           `json:"losses" gorm:"column:losses;not null;default:0"`
	Pushes      int64           `json:"pushes" gorm:"column:pushes;not null;default:0"`
	Pending     int64           `json:"pending" gorm:"column:pending;not null;default:0"`
	UpdatedAt   time.Time       `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for the LedgerSummary model
func (LedgerSummary) TableName() string {
	return "ledger_summaries"
}
