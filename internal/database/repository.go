package database

import (
	"context"
	"errors"

	"github.com/abubakar-xyz/ChopWise-Improved/internal/domain/models"
)

var ErrNotFound = errors.New("record not found")

// PriceRepository handles price-record persistence. The dataset is replaced
// wholesale at startup and read back to build the in-memory working set.
type PriceRepository interface {
	ReplaceAll(ctx context.Context, records []models.PriceRecord) error
	ListAll(ctx context.Context) ([]models.PriceRecord, error)
	Count(ctx context.Context) (int64, error)
	Close() error
}
