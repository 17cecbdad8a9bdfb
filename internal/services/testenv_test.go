package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/minhngoc/ringside/internal/db"
	"github.com/minhngoc/ringside/internal/models"
	"github.com/minhngoc/ringside/internal/repositories"
)

// testEnv wires the full core against an in-memory sqlite database.
type testEnv struct {
	db       *db.DB
	wagers   repositories.WagerRepository
	audits   repositories.AuditRepository
	ledger   LedgerService
	engine   MutationService
	wagerSvc WagerService
	auditSvc AuditService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database, err := db.ConnectSQLite(":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := database.Migrate(); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	log := zap.NewNop()
	wagerRepo := repositories.NewWagerRepository(database)
	auditRepo := repositories.NewAuditRepository(database)
	ledgerRepo := repositories.NewLedgerRepository(database)
	ledgerSvc := NewLedgerService(ledgerRepo, log)

	return &testEnv{
		db:       database,
		wagers:   wagerRepo,
		audits:   auditRepo,
		ledger:   ledgerSvc,
		engine:   NewMutationService(wagerRepo, ledgerSvc, log),
		wagerSvc: NewWagerService(wagerRepo, auditRepo, ledgerSvc, log),
		auditSvc: NewAuditService(auditRepo),
	}
}

func (e *testEnv) seed(t *testing.T, w *models.WagerRecord) *models.WagerRecord {
	t.Helper()
	created, err := e.wagerSvc.Create(context.Background(), w.Owner, w)
	if err != nil {
		t.Fatalf("failed to seed wager: %v", err)
	}
	return created
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
