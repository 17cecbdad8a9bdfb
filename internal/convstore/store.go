// Package convstore holds per-conversation state: the queue of pending
// mutation confirmations and a short turn history. State is keyed by an
// opaque conversation id and evicted by TTL, either by the in-memory store's
// sweep or by Redis key expiry.
package convstore

import (
	"context"
	"time"

	"github.com/minhngoc/ringside/internal/models"
)

// PendingMutation is one queued mutation awaiting user confirmation.
type PendingMutation struct {
	Token        string                 `json:"token"`
	Owner        string                 `json:"owner"`
	Request      models.MutationRequest `json:"request"`
	CandidateIDs []int64                `json:"candidate_ids"`
	CreatedAt    time.Time              `json:"created_at"`
	ExpiresAt    time.Time              `json:"expires_at"`
}

// Expired reports whether the item's confirmation window has passed.
func (p *PendingMutation) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}

// Turn is one recorded message of a conversation.
type Turn struct {
	Role    string    `json:"role"` // "user" or "assistant"
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Store is the per-conversation state store. Implementations must drop
// expired pending items on read; callers never see a stale confirmation.
type Store interface {
	// Pending returns the live (non-expired) confirmation queue in insertion order.
	Pending(ctx context.Context, conversationID string) ([]PendingMutation, error)
	// Append adds one pending item to the conversation's queue.
	Append(ctx context.Context, conversationID string, item PendingMutation) error
	// Replace overwrites the conversation's queue, keeping insertion order.
	Replace(ctx context.Context, conversationID string, items []PendingMutation) error
	// Clear discards all pending items of the conversation.
	Clear(ctx context.Context, conversationID string) error

	AppendTurn(ctx context.Context, conversationID string, turn Turn) error
	History(ctx context.Context, conversationID string, limit int) ([]Turn, error)
}
