package bunstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"

	dbmodels "github.com/abubakar-xyz/ChopWise-Improved/internal/database/models"
	domain "github.com/abubakar-xyz/ChopWise-Improved/internal/domain/models"
)

// BunStore implements database.PriceRepository on top of bun.
type BunStore struct {
	db *bun.DB
}

func NewBunStore(db *sql.DB, dialect schema.Dialect) (*BunStore, error) {
	bunDB := bun.NewDB(db, dialect)

	store := &BunStore{db: bunDB}

	ctx := context.Background()
	if _, err := bunDB.NewCreateTable().Model((*dbmodels.PriceRow)(nil)).IfNotExists().Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create price_records table: %w", err)
	}

	return store, nil
}

// ReplaceAll swaps the stored dataset for the given records in one transaction.
func (s *BunStore) ReplaceAll(ctx context.Context, records []domain.PriceRecord) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*dbmodels.PriceRow)(nil)).Where("1 = 1").Exec(ctx); err != nil {
			return fmt.Errorf("failed to clear price_records: %w", err)
		}
		if len(records) == 0 {
			return nil
		}

		rows := make([]dbmodels.PriceRow, 0, len(records))
		for _, r := range records {
			rows = append(rows, dbmodels.FromRecord(r))
		}
		if _, err := tx.NewInsert().Model(&rows).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert price_records: %w", err)
		}
		return nil
	})
}

func (s *BunStore) ListAll(ctx context.Context) ([]domain.PriceRecord, error) {
	var rows []dbmodels.PriceRow
	if err := s.db.NewSelect().Model(&rows).Order("date ASC", "id ASC").Scan(ctx); err != nil {
		return nil, err
	}

	records := make([]domain.PriceRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.ToRecord())
	}
	return records, nil
}

func (s *BunStore) Count(ctx context.Context) (int64, error) {
	n, err := s.db.NewSelect().Model((*dbmodels.PriceRow)(nil)).Count(ctx)
	if err != nil {
		return 0, err
	}
	return int64(n), nil
}

func (s *BunStore) Close() error {
	return s.db.Close()
}
