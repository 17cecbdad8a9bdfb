package models

import "time"

// AuditCreate is recorded when a wager enters the ledger; mutation audit
// actions reuse the operation constants.
const AuditCreate = "create"

// AuditEntry is one row of the mutation audit trail. Every state transition
// of a wager, including creation, appends exactly one entry.
type AuditEntry struct {
	ID                 int64      `json:"id" gorm:"primaryKey;column:id;autoIncrement"`
	Owner              string     `json:"owner" gorm:"column:owner;type:varchar(255);not null;index"`
	BetID              int64      `json:"bet_id" gorm:"column:bet_id;not null;index"`
	Action             string     `json:"action" gorm:"column:action;type:varchar(20);not null"`
	PreviousResult     string     `json:"previous_result" gorm:"column:previous_result;type:varchar(20)"`
	NewResult          string     `json:"new_result" gorm:"column:new_result;type:varchar(20)"`
	PreviousArchivedAt *time.Time `json:"previous_archived_at" gorm:"column:previous_archived_at"`
	NewArchivedAt      *time.Time `json:"new_archived_at" gorm:"column:new_archived_at"`
	Metadata           []byte     `json:"metadata" gorm:"column:metadata"`
	CreatedAt          time.Time  `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

// TableName returns the table name for the AuditEntry model
func (AuditEntry) TableName() string {
	return "wager_audits"
}
