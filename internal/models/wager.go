package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// WagerRecord represents one user's bet on one fight.
type WagerRecord struct {
	ID        int64  `json:"id" gorm:"primaryKey;column:id;autoIncrement"`
	Owner     string `json:"owner" gorm:"column:owner;type:varchar(255);not null;index"`
	EventName string `json:"event_name" gorm:"column:event_name;type:varchar(255)"`
	Fight     string `json:"fight" gorm:"column:fight;type:varchar(255);not null"`
	Pick      string `json:"pick" gorm:"column:pick;type:varchar(255)"`

	Odds  *decimal.Decimal `json:"odds" gorm:"column:odds;type:decimal(12,4)"`
	Stake *decimal.Decimal `json:"stake" gorm:"column:stake;type:decimal(20,8)"`
	Units *decimal.Decimal `json:"units" gorm:"column:units;type:decimal(20,8)"`

	Result string `json:"result" gorm:"column:result;type:varchar(20);not null;default:'pending';index"`
	Notes  string `json:"notes" gorm:"column:notes;type:text"`

	CreatedAt  time.Time  `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time  `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
	SettledAt  *time.Time `json:"settled_at" gorm:"column:settled_at"`
	ArchivedAt *time.Time `json:"archived_at" gorm:"column:archived_at;index"`
}

// TableName returns the table name for the WagerRecord model
func (WagerRecord) TableName() string {
	return "wagers"
}

// Archived reports whether the record has been archived.
func (w *WagerRecord) Archived() bool {
	return w.ArchivedAt != nil
}

// Settled reports whether the record carries a terminal result.
func (w *WagerRecord) Settled() bool {
	return IsSettledResult(w.Result)
}

// Validate validates the wager data before creation.
func (w *WagerRecord) Validate() error {
	if w.Owner == "" {
		return errors.New("owner is required")
	}
	if w.Fight == "" {
		return errors.New("fight is required")
	}
	if w.Odds != nil && w.Odds.IsZero() {
		return errors.New("odds must be non-zero when provided")
	}
	if w.Stake != nil && w.Stake.IsNegative() {
		return errors.New("stake must be non-negative")
	}
	if w.Units != nil && w.Units.IsNegative() {
		return errors.New("units must be non-negative")
	}
	return nil
}

// WagerFilter represents filters for querying wagers. Substring fields match
// case- and accent-insensitively; Status is compared after normalization.
type WagerFilter struct {
	IDs             []int64
	Event           string
	Fight           string
	Pick            string
	Status          string
	IncludeArchived bool
	Limit           int
}
