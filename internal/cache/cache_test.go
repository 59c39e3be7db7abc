package cache

import (
	"context"
	"testing"

	domain "github.com/abubakar-xyz/ChopWise-Improved/internal/domain/models"
)

func TestKeyIsOrderInsensitive(t *testing.T) {
	h := domain.Horizon{Count: 2, Unit: domain.HorizonMonth}

	a := Key([]string{"Local Rice", "Imported Rice"}, "Lagos", h)
	b := Key([]string{"imported rice", "local rice"}, "lagos", h)
	if a != b {
		t.Errorf("Expected identical keys, got %q vs %q", a, b)
	}

	c := Key([]string{"Local Rice", "Imported Rice"}, "Lagos", domain.Horizon{Count: 3, Unit: domain.HorizonMonth})
	if a == c {
		t.Error("Different horizons must produce different keys")
	}
}

func TestMemoryGetSet(t *testing.T) {
	m := NewMemory(4)
	ctx := context.Background()

	if _, ok := m.Get(ctx, "missing"); ok {
		t.Error("Expected miss on empty cache")
	}

	answer := &domain.Answer{Kind: domain.AnswerForecast, Food: "Rice"}
	m.Set(ctx, "k1", answer)

	got, ok := m.Get(ctx, "k1")
	if !ok {
		t.Fatal("Expected hit after Set")
	}
	if got.Food != "Rice" {
		t.Errorf("Expected stored answer, got %+v", got)
	}

	// The cached copy must not alias the caller's answer.
	got.Food = "Beans"
	again, _ := m.Get(ctx, "k1")
	if again.Food != "Rice" {
		t.Error("Cache entry was mutated through a returned pointer")
	}
}

func TestMemoryEvictsOldest(t *testing.T) {
	m := NewMemory(2)
	ctx := context.Background()

	m.Set(ctx, "a", &domain.Answer{Food: "A"})
	m.Set(ctx, "b", &domain.Answer{Food: "B"})
	m.Set(ctx, "c", &domain.Answer{Food: "C"})

	if _, ok := m.Get(ctx, "a"); ok {
		t.Error("Expected oldest entry evicted")
	}
	if _, ok := m.Get(ctx, "b"); !ok {
		t.Error("Expected newer entry retained")
	}
	if _, ok := m.Get(ctx, "c"); !ok {
		t.Error("Expected newest entry retained")
	}
}

func TestMemoryOverwriteDoesNotEvict(t *testing.T) {
	m := NewMemory(2)
	ctx := context.Background()

	m.Set(ctx, "a", &domain.Answer{Food: "A"})
	m.Set(ctx, "b", &domain.Answer{Food: "B"})
	m.Set(ctx, "a", &domain.Answer{Food: "A2"})

	got, ok := m.Get(ctx, "a")
	if !ok || got.Food != "A2" {
		t.Errorf("Expected overwritten entry, got %+v", got)
	}
	if _, ok := m.Get(ctx, "b"); !ok {
		t.Error("Overwrite must not evict the other entry")
	}
}
