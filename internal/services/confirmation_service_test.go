package services

import (
	"context"
	"strconv"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/minhngoc/ringside/internal/convstore"
	"github.com/minhngoc/ringside/internal/models"
)

func newCoordinator(t *testing.T, env *testEnv) (ConfirmationService, *convstore.MemoryStore) {
	t.Helper()
	store := convstore.NewMemoryStore(time.Hour)
	return NewConfirmationService(env.engine, store, zap.NewNop(), 10*time.Minute), store
}

func TestSubmitAppliesImmediatelyWithoutConfirmation(t *testing.T) {
	env := newTestEnv(t)
	coord, store := newCoordinator(t, env)
	w := env.seed(t, &models.WagerRecord{Owner: "u1", Fight: "A vs B"})

	out, err := coord.SubmitRequest(context.Background(), "c1", "u1", &models.MutationRequest{
		Operation: models.OpSettle, Result: "win", BetIDs: []int64{w.ID},
	})
	if err != nil {
		t.Fatalf("submit error: %v", err)
	}
	if out.Kind != OutcomeApplied || out.Result == nil || out.Result.AffectedCount != 1 {
		t.Fatalf("expected immediate apply, got %#v", out)
	}

	pending, _ := store.Pending(context.Background(), "c1")
	if len(pending) != 0 {
		t.Fatalf("nothing should be queued, got %d items", len(pending))
	}
}

func TestSubmitQueuesWhenConfirmationRequired(t *testing.T) {
	env := newTestEnv(t)
	coord, store := newCoordinator(t, env)
	env.seed(t, &models.WagerRecord{Owner: "u1", Fight: "A vs B"})

	out, err := coord.SubmitRequest(context.Background(), "c1", "u1", &models.MutationRequest{
		Operation: models.OpSettle, Result: "loss", Fight: "A vs B",
	})
	if err != nil {
		t.Fatalf("submit error: %v", err)
	}
	if out.Kind != OutcomeQueued || out.Token == "" || out.Preview == nil {
		t.Fatalf("expected queued outcome with token and preview, got %#v", out)
	}

	pending, _ := store.Pending(context.Background(), "c1")
	if len(pending) != 1 || pending[0].Token != out.Token {
		t.Fatalf("expected one queued item, got %#v", pending)
	}
}

func TestSingleConfirmationAppliesBatchedMutations(t *testing.T) {
	env := newTestEnv(t)
	coord, _ := newCoordinator(t, env)
	a := env.seed(t, &models.WagerRecord{Owner: "u1", Fight: "A vs B", Result: "win"})
	b := env.seed(t, &models.WagerRecord{Owner: "u1", Fight: "C vs D"})

	// Two distinct pending mutations in one conversation: archive a, settle b.
	if _, err := coord.SubmitRequest(context.Background(), "c1", "u1", &models.MutationRequest{
		Operation: models.OpArchive, BetIDs: []int64{a.ID},
	}); err != nil {
		t.Fatalf("submit archive: %v", err)
	}
	if _, err := coord.SubmitRequest(context.Background(), "c1", "u1", &models.MutationRequest{
		Operation: models.OpSettle, Result: "loss", Fight: "C vs D",
	}); err != nil {
		t.Fatalf("submit settle: %v", err)
	}

	out, err := coord.HandleMessage(context.Background(), "c1", "u1", "yes")
	if err != nil {
		t.Fatalf("confirm error: %v", err)
	}
	if out.Kind != OutcomeApplied || out.Confirm == nil {
		t.Fatalf("expected applied outcome, got %#v", out)
	}
	if len(out.Confirm.Applied) != 2 || len(out.Confirm.Failed) != 0 {
		t.Fatalf("expected both items applied, got %#v", out.Confirm)
	}
	// Queue order is preserved: archive first, then settle.
	if out.Confirm.Applied[0].Result.Operation != models.OpArchive ||
		out.Confirm.Applied[1].Result.Operation != models.OpSettle {
		t.Fatalf("items applied out of order: %#v", out.Confirm.Applied)
	}

	got, _ := env.wagerSvc.Get(context.Background(), "u1", b.ID)
	if got.Result != models.ResultLoss {
		t.Fatalf("settle did not commit: %#v", got)
	}
}

func TestTokenConfirmationAppliesOnlyThatItem(t *testing.T) {
	env := newTestEnv(t)
	coord, store := newCoordinator(t, env)
	a := env.seed(t, &models.WagerRecord{Owner: "u1", Fight: "A vs B"})
	env.seed(t, &models.WagerRecord{Owner: "u1", Fight: "C vs D"})

	first, err := coord.SubmitRequest(context.Background(), "c1", "u1", &models.MutationRequest{
		Operation: models.OpSettle, Result: "win", Fight: "A vs B",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := coord.SubmitRequest(context.Background(), "c1", "u1", &models.MutationRequest{
		Operation: models.OpSettle, Result: "loss", Fight: "C vs D",
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	out, err := coord.HandleMessage(context.Background(), "c1", "u1", "confirm "+first.Token)
	if err != nil {
		t.Fatalf("confirm error: %v", err)
	}
	if len(out.Confirm.Applied) != 1 || out.Confirm.Applied[0].Token != first.Token {
		t.Fatalf("expected only the tokened item applied, got %#v", out.Confirm)
	}

	got, _ := env.wagerSvc.Get(context.Background(), "u1", a.ID)
	if got.Result != models.ResultWin {
		t.Fatalf("tokened settle did not commit: %#v", got)
	}
	pending, _ := store.Pending(context.Background(), "c1")
	if len(pending) != 1 {
		t.Fatalf("other item must stay pending, got %#v", pending)
	}
}

func TestLineConfirmationResolvesPerItem(t *testing.T) {
	env := newTestEnv(t)
	coord, _ := newCoordinator(t, env)
	a := env.seed(t, &models.WagerRecord{Owner: "u1", Fight: "A vs B", Result: "win"})
	b := env.seed(t, &models.WagerRecord{Owner: "u1", Fight: "C vs D"})

	if _, err := coord.SubmitRequest(context.Background(), "c1", "u1", &models.MutationRequest{
		Operation: models.OpArchive, BetIDs: []int64{a.ID},
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := coord.SubmitRequest(context.Background(), "c1", "u1", &models.MutationRequest{
		Operation: models.OpSettle, Result: "loss", Fight: "C vs D",
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	msg := "archive " + strconv.FormatInt(a.ID, 10) + "\nsettle " + strconv.FormatInt(b.ID, 10)
	out, err := coord.HandleMessage(context.Background(), "c1", "u1", msg)
	if err != nil {
		t.Fatalf("confirm error: %v", err)
	}
	if len(out.Confirm.Applied) != 2 {
		t.Fatalf("expected both lines applied, got %#v", out.Confirm)
	}
}

func TestCancellationDiscardsPendingItems(t *testing.T) {
	env := newTestEnv(t)
	coord, store := newCoordinator(t, env)
	env.seed(t, &models.WagerRecord{Owner: "u1", Fight: "A vs B"})

	if _, err := coord.SubmitRequest(context.Background(), "c1", "u1", &models.MutationRequest{
		Operation: models.OpSettle, Result: "win", Fight: "A vs B",
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	out, err := coord.HandleMessage(context.Background(), "c1", "u1", "no, cancel")
	if err != nil {
		t.Fatalf("cancel error: %v", err)
	}
	if out.Kind != OutcomeCancelled {
		t.Fatalf("expected cancelled, got %#v", out)
	}
	pending, _ := store.Pending(context.Background(), "c1")
	if len(pending) != 0 {
		t.Fatalf("queue must be empty after cancel, got %#v", pending)
	}

	got, _ := env.wagerSvc.Get(context.Background(), "u1", 1)
	if got.Result != models.ResultPending {
		t.Fatal("cancelled mutation must not commit")
	}
}

func TestNonConfirmationPassesThrough(t *testing.T) {
	env := newTestEnv(t)
	coord, store := newCoordinator(t, env)
	env.seed(t, &models.WagerRecord{Owner: "u1", Fight: "A vs B"})

	if _, err := coord.SubmitRequest(context.Background(), "c1", "u1", &models.MutationRequest{
		Operation: models.OpSettle, Result: "win", Fight: "A vs B",
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	// Reads like a brand-new mutation intent: the routing layer gets it back.
	out, err := coord.HandleMessage(context.Background(), "c1", "u1", "actually archive my bets on UFC 299")
	if err != nil {
		t.Fatalf("handle error: %v", err)
	}
	if out.Kind != OutcomePassthrough {
		t.Fatalf("expected passthrough, got %#v", out)
	}
	pending, _ := store.Pending(context.Background(), "c1")
	if len(pending) != 1 {
		t.Fatal("pending item must survive a passthrough message")
	}
}

func TestExpiredItemsAreDiscarded(t *testing.T) {
	env := newTestEnv(t)
	store := convstore.NewMemoryStore(time.Hour)
	// Negative TTL expires items the moment they are queued.
	coord := &confirmationService{
		engine: env.engine,
		store:  store,
		logger: zap.NewNop(),
		ttl:    -time.Minute,
		now:    time.Now,
	}
	env.seed(t, &models.WagerRecord{Owner: "u1", Fight: "A vs B"})

	if _, err := coord.SubmitRequest(context.Background(), "c1", "u1", &models.MutationRequest{
		Operation: models.OpSettle, Result: "win", Fight: "A vs B",
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	out, err := coord.HandleMessage(context.Background(), "c1", "u1", "yes")
	if err != nil {
		t.Fatalf("handle error: %v", err)
	}
	if out.Kind != OutcomePassthrough {
		t.Fatalf("expired confirmation must not apply, got %#v", out)
	}
}

func TestConfirmationDoesNotWidenCandidateSet(t *testing.T) {
	env := newTestEnv(t)
	coord, _ := newCoordinator(t, env)
	a := env.seed(t, &models.WagerRecord{Owner: "u1", Fight: "A vs B"})

	if _, err := coord.SubmitRequest(context.Background(), "c1", "u1", &models.MutationRequest{
		Operation: models.OpSettle, Result: "win", Fight: "A vs B",
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	// A second matching wager lands between preview and confirmation.
	late := env.seed(t, &models.WagerRecord{Owner: "u1", Fight: "A vs B"})

	out, err := coord.HandleMessage(context.Background(), "c1", "u1", "yes")
	if err != nil {
		t.Fatalf("confirm error: %v", err)
	}
	if len(out.Confirm.Applied) != 1 || out.Confirm.Applied[0].Result.AffectedCount != 1 {
		t.Fatalf("only the previewed candidate may settle, got %#v", out.Confirm)
	}

	got, _ := env.wagerSvc.Get(context.Background(), "u1", a.ID)
	if got.Result != models.ResultWin {
		t.Fatalf("previewed candidate did not settle: %#v", got)
	}
	got, _ = env.wagerSvc.Get(context.Background(), "u1", late.ID)
	if got.Result != models.ResultPending {
		t.Fatalf("late arrival must stay untouched: %#v", got)
	}
}

func TestPartialBatchFailureKeepsFailedItemsPending(t *testing.T) {
	env := newTestEnv(t)
	coord, store := newCoordinator(t, env)
	a := env.seed(t, &models.WagerRecord{Owner: "u1", Fight: "A vs B"})
	b := env.seed(t, &models.WagerRecord{Owner: "u1", Fight: "C vs D"})

	if _, err := coord.SubmitRequest(context.Background(), "c1", "u1", &models.MutationRequest{
		Operation: models.OpSettle, Result: "win", Fight: "A vs B",
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := coord.SubmitRequest(context.Background(), "c1", "u1", &models.MutationRequest{
		Operation: models.OpSettle, Result: "loss", Fight: "C vs D",
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	// The first item's candidate is consumed out of band before confirmation.
	if _, err := env.engine.Apply(context.Background(), "u1", &models.MutationRequest{
		Operation: models.OpSettle, Result: "push", BetIDs: []int64{a.ID},
	}, false); err != nil {
		t.Fatalf("out-of-band settle: %v", err)
	}

	out, err := coord.HandleMessage(context.Background(), "c1", "u1", "confirm")
	if err != nil {
		t.Fatalf("confirm error: %v", err)
	}
	if len(out.Confirm.Applied) != 1 || len(out.Confirm.Failed) != 1 {
		t.Fatalf("expected one applied and one failed, got %#v", out.Confirm)
	}

	// The failed item stays pending for retry; the applied one is gone.
	pending, _ := store.Pending(context.Background(), "c1")
	if len(pending) != 1 {
		t.Fatalf("failed item must remain queued, got %#v", pending)
	}
	got, _ := env.wagerSvc.Get(context.Background(), "u1", b.ID)
	if got.Result != models.ResultLoss {
		t.Fatal("successful item must not be rolled back")
	}
}
