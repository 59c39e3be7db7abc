package engine

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/abubakar-xyz/ChopWise-Improved/internal/cache"
	"github.com/abubakar-xyz/ChopWise-Improved/internal/compose"
	domain "github.com/abubakar-xyz/ChopWise-Improved/internal/domain/models"
	"github.com/abubakar-xyz/ChopWise-Improved/internal/extract"
	"github.com/abubakar-xyz/ChopWise-Improved/internal/intent"
	"github.com/abubakar-xyz/ChopWise-Improved/internal/lexicon"
	"github.com/abubakar-xyz/ChopWise-Improved/internal/resolve"
)

type staticForecaster struct{}

func (staticForecaster) FeatureColumns(ctx context.Context) ([]string, error) {
	return []string{"day", "month", "year", "Food Item_Beans", "State_Lagos"}, nil
}

func (staticForecaster) Predict(ctx context.Context, features map[string]float64) (float64, error) {
	return 850, nil
}

func newTestEngine() *Engine {
	date := func(d int) time.Time { return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC) }
	table := []domain.PriceRecord{
		{FoodItem: "Beans", State: "Lagos", LGA: "Ikeja", OutletType: "Market", Date: date(1), UnitPrice: 700},
		{FoodItem: "Beans", State: "Lagos", LGA: "Epe", OutletType: "Market", Date: date(20), UnitPrice: 800},
		{FoodItem: "Yam", State: "Kano", LGA: "Dala", OutletType: "Supermarket", Date: date(20), UnitPrice: 350},
	}

	lex := lexicon.Build(table)
	return New(
		lex,
		extract.NewExtractor(lex, 0.6, 0.4),
		intent.NewClassifier(intent.DefaultConfidenceFloor),
		resolve.New(table, staticForecaster{}, cache.NewMemory(16)),
		compose.NewComposer(rand.New(rand.NewSource(1))),
	)
}

func TestHandleMessagePrice(t *testing.T) {
	e := newTestEngine()

	answer, rerr := e.HandleMessage(context.Background(), "what is the cost of beans in Lagos")
	if rerr != nil {
		t.Fatalf("Unexpected resolution error: %v", rerr)
	}
	if answer.Kind != domain.AnswerPrice {
		t.Fatalf("Expected price answer, got %s", answer.Kind)
	}
	if answer.Lines[0].Price != 800 {
		t.Errorf("Expected latest price 800, got %v", answer.Lines[0].Price)
	}
}

func TestHandleMessageHelp(t *testing.T) {
	e := newTestEngine()

	for _, text := range []string{"help", "How do I use this? usage please", "   "} {
		answer, rerr := e.HandleMessage(context.Background(), text)
		if rerr != nil {
			t.Fatalf("Unexpected error for %q: %v", text, rerr)
		}
		if answer.Kind != domain.AnswerHelp {
			t.Errorf("Expected help answer for %q, got %s", text, answer.Kind)
		}
	}
}

func TestHandleMessageFoodNotRecognized(t *testing.T) {
	e := newTestEngine()

	_, rerr := e.HandleMessage(context.Background(), "how much is beens")
	if rerr == nil || rerr.Code != domain.ErrFoodNotRecognized {
		t.Fatalf("Expected FoodNotRecognized, got %v", rerr)
	}
	if len(rerr.Suggestions) == 0 || len(rerr.Suggestions) > 3 {
		t.Fatalf("Expected 1-3 suggestions, got %v", rerr.Suggestions)
	}
	if rerr.Suggestions[0] != "Beans" {
		t.Errorf("Expected Beans suggested first, got %v", rerr.Suggestions)
	}
}

func TestHandleMessageRegionNotRecognized(t *testing.T) {
	e := newTestEngine()

	_, rerr := e.HandleMessage(context.Background(), "cost of beans in Zzzos state")
	if rerr == nil || rerr.Code != domain.ErrRegionNotRecognized {
		t.Fatalf("Expected RegionNotRecognized, got %v", rerr)
	}
	if len(rerr.Suggestions) == 0 || rerr.Suggestions[0] != "Lagos" {
		t.Errorf("Expected Lagos suggested, got %v", rerr.Suggestions)
	}
}

func TestHandleMessageIdempotent(t *testing.T) {
	e := newTestEngine()

	first, rerr := e.HandleMessage(context.Background(), "trend of beans in Lagos")
	if rerr != nil {
		t.Fatalf("Unexpected error: %v", rerr)
	}
	second, rerr := e.HandleMessage(context.Background(), "trend of beans in Lagos")
	if rerr != nil {
		t.Fatalf("Unexpected error: %v", rerr)
	}

	if *first.Trend != *second.Trend || first.Kind != second.Kind {
		t.Errorf("Expected identical answers, got %+v vs %+v", first, second)
	}
}

func TestHandleMessageForecast(t *testing.T) {
	e := newTestEngine()

	answer, rerr := e.HandleMessage(context.Background(), "predict beans in Lagos in 2 weeks")
	if rerr != nil {
		t.Fatalf("Unexpected error: %v", rerr)
	}
	if answer.Kind != domain.AnswerForecast {
		t.Fatalf("Expected forecast answer, got %s", answer.Kind)
	}
	if answer.Forecasts[0].Price != 850 {
		t.Errorf("Expected predicted price 850, got %v", answer.Forecasts[0].Price)
	}
}

type panickingResolver struct{}

func (panickingResolver) Resolve(ctx context.Context, req resolve.Request) (*domain.Answer, error) {
	panic("resolver blew up")
}

func TestHandleMessageRecoversFromPanic(t *testing.T) {
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	table := []domain.PriceRecord{
		{FoodItem: "Beans", State: "Lagos", Date: date, UnitPrice: 700},
	}
	lex := lexicon.Build(table)
	e := New(
		lex,
		extract.NewExtractor(lex, 0.6, 0.4),
		intent.NewClassifier(intent.DefaultConfidenceFloor),
		panickingResolver{},
		compose.NewComposer(rand.New(rand.NewSource(1))),
	)

	answer, rerr := e.HandleMessage(context.Background(), "how much is beans")
	if answer != nil {
		t.Errorf("Expected no answer after panic, got %+v", answer)
	}
	if rerr == nil || rerr.Code != domain.ErrInternal {
		t.Fatalf("Expected internal error after panic, got %v", rerr)
	}

	// The engine must still work for the next request.
	reply := e.Reply(context.Background(), "how much is beans")
	if reply == "" {
		t.Error("Expected an apology reply, got empty string")
	}
}

func TestReplyComposesErrors(t *testing.T) {
	e := newTestEngine()

	reply := e.Reply(context.Background(), "how much is beens")
	if !strings.Contains(reply, "Did you mean") {
		t.Errorf("Expected a did-you-mean reply, got %q", reply)
	}
	if !strings.Contains(reply, "Beans") {
		t.Errorf("Expected Beans in suggestions, got %q", reply)
	}
}

func TestDescribeCatalog(t *testing.T) {
	e := newTestEngine()

	cat := e.DescribeCatalog()
	if len(cat.Foods) != 2 || len(cat.States) != 2 {
		t.Errorf("Unexpected catalog: %+v", cat)
	}
}
