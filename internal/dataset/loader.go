// Package dataset parses the raw food-price CSV into domain records.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	domain "github.com/abubakar-xyz/ChopWise-Improved/internal/domain/models"
)

// Dates in the dataset are day-first, matching the upstream export.
var dateLayouts = []string{"02/01/2006", "2/1/2006", "02-01-2006", "2006-01-02"}

// LoadFile reads and parses a price-dataset CSV from disk.
func LoadFile(path string) ([]domain.PriceRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Parse(f)
}

// Parse reads price records from CSV data. The header row determines column
// positions, so column order does not matter. Blank lines are skipped;
// malformed prices or dates abort the load since a partially loaded dataset
// would silently skew every aggregate.
func Parse(r io.Reader) ([]domain.PriceRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset header: %w", err)
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[normalizeHeader(name)] = i
	}

	required := []string{"food item", "state", "date", "uprice"}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("dataset is missing required column %q", name)
		}
	}

	var records []domain.PriceRecord
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read dataset row %d: %w", line, err)
		}
		if isBlank(row) {
			continue
		}

		date, err := parseDate(field(row, cols, "date"))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}

		priceStr := strings.ReplaceAll(field(row, cols, "uprice"), ",", "")
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid unit price %q", line, field(row, cols, "uprice"))
		}

		records = append(records, domain.PriceRecord{
			FoodItem:   field(row, cols, "food item"),
			State:      field(row, cols, "state"),
			LGA:        field(row, cols, "lga"),
			OutletType: field(row, cols, "outlet type"),
			Date:       date,
			UnitPrice:  price,
		})
	}

	log.Printf("[Dataset] Parsed %d price records", len(records))
	return records, nil
}

func normalizeHeader(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "unit price" {
		return "uprice"
	}
	return name
}

func field(row []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}
