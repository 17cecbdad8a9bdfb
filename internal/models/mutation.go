package models

import "time"

// Bulk mutation operations over a user's wagers.
const (
	OpSettle     = "settle"
	OpSetPending = "set_pending"
	OpArchive    = "archive"
)

// ValidOperation reports whether op is a known mutation kind.
func ValidOperation(op string) bool {
	switch op {
	case OpSettle, OpSetPending, OpArchive:
		return true
	}
	return false
}

// MutationRequest is a user's intent to change one or more wagers in bulk.
// Result is required for settle and must normalize to win/loss/push.
// The remaining fields filter the candidate set; settle without an explicit
// Status filter targets only currently-pending records.
type MutationRequest struct {
	Operation string  `json:"operation"`
	Result    string  `json:"result,omitempty"`
	BetIDs    []int64 `json:"bet_ids,omitempty"`
	Event     string  `json:"event,omitempty"`
	Fight     string  `json:"fight,omitempty"`
	Pick      string  `json:"pick,omitempty"`
	Status    string  `json:"status,omitempty"`
}

// CandidateSnapshot is a wager's pre-mutation state as captured by a preview.
type CandidateSnapshot struct {
	BetID      int64      `json:"bet_id"`
	EventName  string     `json:"event_name"`
	Fight      string     `json:"fight"`
	Pick       string     `json:"pick"`
	Result     string     `json:"result"`
	SettledAt  *time.Time `json:"settled_at,omitempty"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`
}

// MutationPreview is the read-only resolution of a MutationRequest against
// current state. It is recomputed fresh on every call and never stored as the
// source of truth.
type MutationPreview struct {
	Operation            string              `json:"operation"`
	Result               string              `json:"result,omitempty"`
	Candidates           []CandidateSnapshot `json:"candidates"`
	RequiresConfirmation bool                `json:"requires_confirmation"`
}

// CandidateIDs returns the ids of the candidate set in preview order.
func (p *MutationPreview) CandidateIDs() []int64 {
	ids := make([]int64, 0, len(p.Candidates))
	for _, c := range p.Candidates {
		ids = append(ids, c.BetID)
	}
	return ids
}

// StateChange is the computed transition for one candidate, persisted as a
// single row update inside the apply transaction.
type StateChange struct {
	BetID      int64
	Result     string
	SettledAt  *time.Time
	ArchivedAt *time.Time
	UpdatedAt  time.Time
}

// ReceiptEntry records the before/after state of one mutated wager.
type ReceiptEntry struct {
	BetID              int64      `json:"bet_id"`
	PreviousResult     string     `json:"previous_result"`
	NewResult          string     `json:"new_result"`
	PreviousArchivedAt *time.Time `json:"previous_archived_at,omitempty"`
	NewArchivedAt      *time.Time `json:"new_archived_at,omitempty"`
}

// MutationResult is returned by a successful apply.
type MutationResult struct {
	Operation     string         `json:"operation"`
	AffectedCount int            `json:"affected_count"`
	Receipts      []ReceiptEntry `json:"receipts"`
	Summary       *LedgerSummary `json:"summary,omitempty"`
}
