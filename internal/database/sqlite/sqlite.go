package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	domain "github.com/abubakar-xyz/ChopWise-Improved/internal/domain/models"
)

// SQLiteStore implements database.PriceRepository with hand-written SQL.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS price_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		food_item TEXT NOT NULL,
		state TEXT NOT NULL,
		lga TEXT,
		outlet_type TEXT,
		date INTEGER NOT NULL,
		unit_price REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_price_records_food_item ON price_records(food_item);
	CREATE INDEX IF NOT EXISTS idx_price_records_date ON price_records(date);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ReplaceAll(ctx context.Context, records []domain.PriceRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM price_records"); err != nil {
		return fmt.Errorf("failed to clear price_records: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO price_records (food_item, state, lga, outlet_type, date, unit_price)
	          VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, r.FoodItem, r.State, r.LGA, r.OutletType, r.Date.Unix(), r.UnitPrice); err != nil {
			return fmt.Errorf("failed to insert price record: %w", err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) ListAll(ctx context.Context) ([]domain.PriceRecord, error) {
	query := `SELECT food_item, state, lga, outlet_type, date, unit_price FROM price_records ORDER BY date ASC, id ASC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.PriceRecord
	for rows.Next() {
		var r domain.PriceRecord
		var date int64
		if err := rows.Scan(&r.FoodItem, &r.State, &r.LGA, &r.OutletType, &date, &r.UnitPrice); err != nil {
			return nil, err
		}
		r.Date = time.Unix(date, 0).UTC()
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM price_records").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
