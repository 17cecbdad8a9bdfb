package repositories

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/minhngoc/ringside/internal/db"
	"github.com/minhngoc/ringside/internal/models"
)

func openTestDB(t *testing.T) *db.DB {
	t.Helper()
	database, err := db.ConnectSQLite(":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := database.Migrate(); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func seedWager(t *testing.T, repo WagerRepository, w *models.WagerRecord) *models.WagerRecord {
	t.Helper()
	if w.Result == "" {
		w.Result = models.ResultPending
	}
	if err := repo.Create(context.Background(), w); err != nil {
		t.Fatalf("failed to seed wager: %v", err)
	}
	return w
}
