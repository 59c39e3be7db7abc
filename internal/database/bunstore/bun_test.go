package bunstore

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	domain "github.com/abubakar-xyz/ChopWise-Improved/internal/domain/models"
)

func newTestStore(t *testing.T) *BunStore {
	t.Helper()

	conn, err := sql.Open(sqliteshim.ShimName, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory sqlite: %v", err)
	}
	// A second pooled connection would see its own empty memory database.
	conn.SetMaxOpenConns(1)

	store, err := NewBunStore(conn, sqlitedialect.New())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestReplaceAllRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	records := []domain.PriceRecord{
		{FoodItem: "Beans", State: "Lagos", LGA: "Ikeja", OutletType: "Market",
			Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), UnitPrice: 700.50},
		{FoodItem: "Yam", State: "Kano", LGA: "Dala", OutletType: "Supermarket",
			Date: time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC), UnitPrice: 350},
	}
	if err := store.ReplaceAll(ctx, records); err != nil {
		t.Fatalf("ReplaceAll failed: %v", err)
	}

	n, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 2 {
		t.Fatalf("Expected 2 records, got %d", n)
	}

	got, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 records back, got %d", len(got))
	}

	first := got[0]
	if first.FoodItem != "Beans" || first.State != "Lagos" || first.LGA != "Ikeja" || first.OutletType != "Market" {
		t.Errorf("Unexpected first record: %+v", first)
	}
	if first.UnitPrice != 700.50 {
		t.Errorf("Expected price 700.50, got %v", first.UnitPrice)
	}
	if !first.Date.Equal(records[0].Date) {
		t.Errorf("Expected date %v, got %v", records[0].Date, first.Date)
	}
	if !got[1].Date.After(got[0].Date) {
		t.Errorf("Expected date-ascending order, got %v then %v", got[0].Date, got[1].Date)
	}
}

func TestReplaceAllClearsPreviousLoad(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	old := []domain.PriceRecord{
		{FoodItem: "Beans", State: "Lagos", Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), UnitPrice: 600},
		{FoodItem: "Yam", State: "Kano", Date: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), UnitPrice: 300},
	}
	if err := store.ReplaceAll(ctx, old); err != nil {
		t.Fatalf("First ReplaceAll failed: %v", err)
	}

	fresh := []domain.PriceRecord{
		{FoodItem: "Garri", State: "Oyo", Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), UnitPrice: 450},
	}
	if err := store.ReplaceAll(ctx, fresh); err != nil {
		t.Fatalf("Second ReplaceAll failed: %v", err)
	}

	got, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(got) != 1 || got[0].FoodItem != "Garri" {
		t.Errorf("Expected only the fresh dataset, got %+v", got)
	}
}

func TestReplaceAllEmptyDataset(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.ReplaceAll(ctx, nil); err != nil {
		t.Fatalf("ReplaceAll with no records failed: %v", err)
	}
	n, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Expected empty store, got %d records", n)
	}
}
