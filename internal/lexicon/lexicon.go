// Package lexicon indexes the distinct entity values present in the loaded
// dataset. The extractor matches user text against these indexes, so a value
// that never appears in the data can never be extracted.
package lexicon

import (
	"sort"
	"strings"
	"time"

	domain "github.com/abubakar-xyz/ChopWise-Improved/internal/domain/models"
)

// Entry is a single known entity value with its pre-lowered form.
type Entry struct {
	Display string
	Lower   string
}

// Lexicon holds sorted, de-duplicated entity values from the dataset.
type Lexicon struct {
	Foods   []Entry
	States  []Entry
	LGAs    []Entry
	Outlets []Entry

	From time.Time
	To   time.Time
}

// Build constructs a lexicon from the full record set. Entries are sorted by
// display value so matching is deterministic across restarts.
func Build(records []domain.PriceRecord) *Lexicon {
	foods := map[string]string{}
	states := map[string]string{}
	lgas := map[string]string{}
	outlets := map[string]string{}

	lex := &Lexicon{}
	for i, r := range records {
		collect(foods, r.FoodItem)
		collect(states, r.State)
		collect(lgas, r.LGA)
		collect(outlets, r.OutletType)

		if i == 0 || r.Date.Before(lex.From) {
			lex.From = r.Date
		}
		if r.Date.After(lex.To) {
			lex.To = r.Date
		}
	}

	lex.Foods = entries(foods)
	lex.States = entries(states)
	lex.LGAs = entries(lgas)
	lex.Outlets = entries(outlets)
	return lex
}

// Catalog summarizes the lexicon for API consumers.
func (l *Lexicon) Catalog() domain.Catalog {
	return domain.Catalog{
		Foods:       displays(l.Foods),
		States:      displays(l.States),
		LGAs:        displays(l.LGAs),
		OutletTypes: displays(l.Outlets),
		DateFrom:    l.From,
		DateTo:      l.To,
	}
}

func collect(dst map[string]string, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	lower := strings.ToLower(value)
	if _, ok := dst[lower]; !ok {
		dst[lower] = value
	}
}

func entries(src map[string]string) []Entry {
	out := make([]Entry, 0, len(src))
	for lower, display := range src {
		out = append(out, Entry{Display: display, Lower: lower})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Display < out[j].Display })
	return out
}

func displays(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Display)
	}
	return out
}
