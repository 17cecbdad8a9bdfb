package services

import (
	"context"
	"testing"

	"github.com/minhngoc/ringside/internal/models"
)

func TestLedgerRebuildIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, &models.WagerRecord{Owner: "u1", Fight: "A vs B", Stake: dec("20"), Result: "win"})
	env.seed(t, &models.WagerRecord{Owner: "u1", Fight: "C vs D", Stake: dec("10")})

	first, err := env.ledger.Rebuild(context.Background(), "u1")
	if err != nil {
		t.Fatalf("rebuild error: %v", err)
	}
	second, err := env.ledger.Rebuild(context.Background(), "u1")
	if err != nil {
		t.Fatalf("rebuild error: %v", err)
	}

	if first.TotalBets != second.TotalBets ||
		first.Wins != second.Wins ||
		first.Losses != second.Losses ||
		first.Pushes != second.Pushes ||
		first.Pending != second.Pending ||
		!first.TotalStaked.Equal(second.TotalStaked) ||
		!first.TotalUnits.Equal(second.TotalUnits) {
		t.Fatalf("rebuild not idempotent: %#v vs %#v", first, second)
	}
	if second.TotalBets != 2 || second.Wins != 1 || second.Pending != 1 {
		t.Fatalf("unexpected totals: %#v", second)
	}
}

func TestLedgerGetLazilyInitializes(t *testing.T) {
	env := newTestEnv(t)

	// No summary stored yet: Get computes one instead of returning nothing.
	summary, err := env.ledger.Get(context.Background(), "fresh-user")
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if summary == nil || summary.Owner != "fresh-user" || summary.TotalBets != 0 {
		t.Fatalf("expected empty summary, got %#v", summary)
	}
}

func TestLedgerTracksMutations(t *testing.T) {
	env := newTestEnv(t)
	w := env.seed(t, &models.WagerRecord{Owner: "u1", Fight: "A vs B", Stake: dec("25")})

	if _, err := env.engine.Apply(context.Background(), "u1", &models.MutationRequest{
		Operation: models.OpSettle, Result: "push", BetIDs: []int64{w.ID},
	}, false); err != nil {
		t.Fatalf("apply error: %v", err)
	}

	summary, err := env.ledger.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if summary.Pushes != 1 || summary.Pending != 0 {
		t.Fatalf("summary out of sync after mutation: %#v", summary)
	}
}
