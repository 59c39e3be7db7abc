package models

import (
	"time"

	"github.com/uptrace/bun"

	domain "github.com/abubakar-xyz/ChopWise-Improved/internal/domain/models"
)

// PriceRow is the storage representation of a single market price observation.
type PriceRow struct {
	bun.BaseModel `bun:"table:price_records,alias:pr"`

	ID         int64     `bun:",pk,autoincrement"`
	FoodItem   string    `bun:",notnull"`
	State      string    `bun:",notnull"`
	LGA        string    `bun:",nullzero"`
	OutletType string    `bun:",nullzero"`
	Date       time.Time `bun:",notnull"`
	UnitPrice  float64   `bun:",notnull"`
}

// FromRecord converts a domain record into its storage row.
func FromRecord(r domain.PriceRecord) PriceRow {
	return PriceRow{
		FoodItem:   r.FoodItem,
		State:      r.State,
		LGA:        r.LGA,
		OutletType: r.OutletType,
		Date:       r.Date,
		UnitPrice:  r.UnitPrice,
	}
}

// ToRecord converts a storage row back into the domain record.
func (p PriceRow) ToRecord() domain.PriceRecord {
	return domain.PriceRecord{
		FoodItem:   p.FoodItem,
		State:      p.State,
		LGA:        p.LGA,
		OutletType: p.OutletType,
		Date:       p.Date,
		UnitPrice:  p.UnitPrice,
	}
}
