package lexicon

import (
	"testing"
	"time"

	domain "github.com/abubakar-xyz/ChopWise-Improved/internal/domain/models"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestBuild(t *testing.T) {
	records := []domain.PriceRecord{
		{FoodItem: "Imported Rice", State: "Lagos", LGA: "Ikeja", OutletType: "Market", Date: day(5), UnitPrice: 100},
		{FoodItem: "imported rice", State: "Kano", LGA: "Dala", OutletType: "Market", Date: day(1), UnitPrice: 90},
		{FoodItem: "Beans", State: "Lagos", LGA: "", OutletType: "Supermarket", Date: day(10), UnitPrice: 80},
	}

	lex := Build(records)

	if len(lex.Foods) != 2 {
		t.Fatalf("Expected 2 distinct foods (case-insensitive), got %d", len(lex.Foods))
	}
	if lex.Foods[0].Display != "Beans" || lex.Foods[1].Display != "Imported Rice" {
		t.Errorf("Expected sorted foods [Beans, Imported Rice], got %v", lex.Foods)
	}
	if lex.Foods[1].Lower != "imported rice" {
		t.Errorf("Expected lowered form, got %q", lex.Foods[1].Lower)
	}

	if len(lex.LGAs) != 2 {
		t.Errorf("Expected empty LGA skipped, got %d entries", len(lex.LGAs))
	}
	if len(lex.Outlets) != 2 {
		t.Errorf("Expected 2 outlet types, got %d", len(lex.Outlets))
	}

	if !lex.From.Equal(day(1)) || !lex.To.Equal(day(10)) {
		t.Errorf("Expected date range day1..day10, got %v..%v", lex.From, lex.To)
	}
}

func TestCatalog(t *testing.T) {
	lex := Build([]domain.PriceRecord{
		{FoodItem: "Yam", State: "Oyo", Date: day(3), UnitPrice: 50},
	})

	cat := lex.Catalog()
	if len(cat.Foods) != 1 || cat.Foods[0] != "Yam" {
		t.Errorf("Unexpected catalog foods: %v", cat.Foods)
	}
	if len(cat.LGAs) != 0 {
		t.Errorf("Expected no LGAs, got %v", cat.LGAs)
	}
	if !cat.DateFrom.Equal(day(3)) || !cat.DateTo.Equal(day(3)) {
		t.Errorf("Unexpected date range: %v..%v", cat.DateFrom, cat.DateTo)
	}
}
