// Package resolve turns a classified, entity-tagged message into a
// structured answer against the in-memory price table.
package resolve

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/abubakar-xyz/ChopWise-Improved/internal/cache"
	domain "github.com/abubakar-xyz/ChopWise-Improved/internal/domain/models"
	"github.com/abubakar-xyz/ChopWise-Improved/internal/domain/repository"
	"github.com/abubakar-xyz/ChopWise-Improved/internal/forecast"
)

const (
	cheapestTopN    = 3
	trendRisePct    = 5.0
	trendFallPct    = -5.0
	shortWindowDays = 30
	longWindowDays  = 90
)

// Request is one resolution unit of work.
type Request struct {
	Text     string
	Intent   domain.Intent
	Entities domain.ExtractedEntities
}

// Resolver answers queries from the immutable price table, calling out to
// the forecaster only for forecast queries. The table is never mutated
// after construction, so reads need no locking; the cache is the only
// shared mutable state.
type Resolver struct {
	table      []domain.PriceRecord
	forecaster repository.Forecaster
	cache      repository.ForecastCache
}

func New(table []domain.PriceRecord, forecaster repository.Forecaster, forecastCache repository.ForecastCache) *Resolver {
	return &Resolver{
		table:      table,
		forecaster: forecaster,
		cache:      forecastCache,
	}
}

// Resolve applies the resolution rules in precedence order: multiple foods
// override the intent, then cheapest, forecast, trend and finally the plain
// price lookup.
func (r *Resolver) Resolve(ctx context.Context, req Request) (*domain.Answer, error) {
	ents := req.Entities

	if len(ents.Foods) > 1 {
		return r.resolveMultiPrice(ctx, ents)
	}
	if len(ents.Foods) == 0 {
		return nil, &domain.ResolutionError{Code: domain.ErrFoodNotRecognized, Suggestions: ents.Suggestions}
	}
	food := ents.Foods[0]

	switch req.Intent {
	case domain.IntentCheapest:
		return r.resolveCheapest(food, ents.State)
	case domain.IntentForecast:
		if horizon, ok := parseHorizon(req.Text); ok {
			return r.resolveForecast(ctx, ents, horizon)
		}
		// Forecast wording without a parsable horizon falls back to trend.
		return r.resolveTrend(food, ents)
	case domain.IntentTrend:
		return r.resolveTrend(food, ents)
	default:
		return r.resolvePrice(food, ents)
	}
}

func (r *Resolver) filter(food, state, lga, outlet string) []domain.PriceRecord {
	var out []domain.PriceRecord
	for _, rec := range r.table {
		if food != "" && rec.FoodItem != food {
			continue
		}
		if state != "" && rec.State != state {
			continue
		}
		if lga != "" && rec.LGA != lga {
			continue
		}
		if outlet != "" && rec.OutletType != outlet {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// latestMean returns the mean unit price over all rows sharing the maximum
// date, along with that date. Multiple outlets and LGAs report on the same
// day, so the latest price is an average rather than a single row.
func latestMean(rows []domain.PriceRecord) (float64, time.Time, bool) {
	if len(rows) == 0 {
		return 0, time.Time{}, false
	}

	latest := rows[0].Date
	for _, rec := range rows[1:] {
		if rec.Date.After(latest) {
			latest = rec.Date
		}
	}

	sum, n := 0.0, 0
	for _, rec := range rows {
		if rec.Date.Equal(latest) {
			sum += rec.UnitPrice
			n++
		}
	}
	return sum / float64(n), latest, true
}

// windowMean averages unit prices over the trailing window ending at the
// latest date. An empty window defaults to the latest price so the percent
// change computes to zero instead of dividing by nothing.
func windowMean(rows []domain.PriceRecord, latest time.Time, days int, fallback float64) float64 {
	from := latest.AddDate(0, 0, -days)
	sum, n := 0.0, 0
	for _, rec := range rows {
		if !rec.Date.Before(from) && !rec.Date.After(latest) {
			sum += rec.UnitPrice
			n++
		}
	}
	if n == 0 {
		return fallback
	}
	return sum / float64(n)
}

func percentChange(latest, baseline float64) float64 {
	if baseline == 0 {
		return 0
	}
	return (latest - baseline) / baseline * 100
}

func (r *Resolver) resolvePrice(food string, ents domain.ExtractedEntities) (*domain.Answer, error) {
	rows := r.filter(food, ents.State, ents.LGA, ents.OutletType)
	price, date, ok := latestMean(rows)
	if !ok {
		return nil, noData(food, ents)
	}

	return &domain.Answer{
		Kind:   domain.AnswerPrice,
		Food:   food,
		State:  ents.State,
		LGA:    ents.LGA,
		Outlet: ents.OutletType,
		Lines:  []domain.PriceLine{{Food: food, Price: price, Date: date}},
	}, nil
}

// resolveMultiPrice looks up each matched food concurrently. Foods with no
// data under the active filters come back as explicit missing lines.
func (r *Resolver) resolveMultiPrice(ctx context.Context, ents domain.ExtractedEntities) (*domain.Answer, error) {
	lines := make([]domain.PriceLine, len(ents.Foods))

	g, _ := errgroup.WithContext(ctx)
	for i, food := range ents.Foods {
		g.Go(func() error {
			rows := r.filter(food, ents.State, ents.LGA, ents.OutletType)
			price, date, ok := latestMean(rows)
			if !ok {
				lines[i] = domain.PriceLine{Food: food, Missing: true}
				return nil
			}
			lines[i] = domain.PriceLine{Food: food, Price: price, Date: date}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.Answer{
		Kind:   domain.AnswerMultiPrice,
		State:  ents.State,
		LGA:    ents.LGA,
		Outlet: ents.OutletType,
		Lines:  lines,
	}, nil
}

func (r *Resolver) resolveCheapest(food, state string) (*domain.Answer, error) {
	rows := r.filter(food, state, "", "")
	if len(rows) == 0 {
		return nil, noData(food, domain.ExtractedEntities{State: state})
	}

	byLGA := map[string][]float64{}
	byOutlet := map[string][]float64{}
	for _, rec := range rows {
		if rec.LGA != "" {
			byLGA[rec.LGA] = append(byLGA[rec.LGA], rec.UnitPrice)
		}
		if rec.OutletType != "" {
			byOutlet[rec.OutletType] = append(byOutlet[rec.OutletType], rec.UnitPrice)
		}
	}

	return &domain.Answer{
		Kind:            domain.AnswerCheapest,
		Food:            food,
		State:           state,
		CheapestLGAs:    rankGroups(byLGA, cheapestTopN),
		CheapestOutlets: rankGroups(byOutlet, cheapestTopN),
	}, nil
}

func rankGroups(groups map[string][]float64, topN int) []domain.RankedGroup {
	ranked := make([]domain.RankedGroup, 0, len(groups))
	for name, prices := range groups {
		sum := 0.0
		for _, p := range prices {
			sum += p
		}
		ranked = append(ranked, domain.RankedGroup{Name: name, MeanPrice: sum / float64(len(prices))})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].MeanPrice != ranked[j].MeanPrice {
			return ranked[i].MeanPrice < ranked[j].MeanPrice
		}
		return ranked[i].Name < ranked[j].Name
	})

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

func (r *Resolver) resolveTrend(food string, ents domain.ExtractedEntities) (*domain.Answer, error) {
	rows := r.filter(food, ents.State, ents.LGA, ents.OutletType)
	latest, latestDate, ok := latestMean(rows)
	if !ok {
		return nil, noData(food, ents)
	}

	avg30 := windowMean(rows, latestDate, shortWindowDays, latest)
	avg90 := windowMean(rows, latestDate, longWindowDays, latest)
	pct30 := percentChange(latest, avg30)
	pct90 := percentChange(latest, avg90)

	direction := domain.TrendStable
	switch {
	case pct30 > trendRisePct:
		direction = domain.TrendRising
	case pct30 < trendFallPct:
		direction = domain.TrendFalling
	}

	return &domain.Answer{
		Kind:   domain.AnswerTrend,
		Food:   food,
		State:  ents.State,
		LGA:    ents.LGA,
		Outlet: ents.OutletType,
		Trend: &domain.TrendFigures{
			Latest:    latest,
			Avg30:     avg30,
			Avg90:     avg90,
			Pct30:     pct30,
			Pct90:     pct90,
			Direction: direction,
		},
	}, nil
}

func (r *Resolver) resolveForecast(ctx context.Context, ents domain.ExtractedEntities, horizon domain.Horizon) (*domain.Answer, error) {
	key := cache.Key(ents.Foods, ents.State, horizon)
	if cached, ok := r.cache.Get(ctx, key); ok {
		hit := *cached
		hit.Cached = true
		return &hit, nil
	}

	columns, err := r.forecaster.FeatureColumns(ctx)
	if err != nil {
		return nil, &domain.ResolutionError{Code: domain.ErrForecasterUnavailable, Detail: err.Error()}
	}

	target := r.latestObservedDate().AddDate(0, 0, horizon.Count*horizon.Unit.Days())

	forecasts := make([]domain.ForecastLine, len(ents.Foods))

	g, gctx := errgroup.WithContext(ctx)
	for i, food := range ents.Foods {
		g.Go(func() error {
			features := forecast.BuildFeatures(columns, food, ents.State, target)
			price, err := r.forecaster.Predict(gctx, features)
			if err != nil {
				return fmt.Errorf("prediction for %s failed: %w", food, err)
			}
			forecasts[i] = domain.ForecastLine{Food: food, Price: price, TargetDate: target}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, &domain.ResolutionError{Code: domain.ErrForecasterUnavailable, Detail: err.Error()}
	}

	answer := &domain.Answer{
		Kind:      domain.AnswerForecast,
		Food:      ents.Foods[0],
		State:     ents.State,
		Forecasts: forecasts,
		Horizon:   &horizon,
	}
	r.cache.Set(ctx, key, answer)
	return answer, nil
}

func (r *Resolver) latestObservedDate() time.Time {
	var latest time.Time
	for _, rec := range r.table {
		if rec.Date.After(latest) {
			latest = rec.Date
		}
	}
	return latest
}

func noData(food string, ents domain.ExtractedEntities) *domain.ResolutionError {
	detail := fmt.Sprintf("no records for %s", food)
	if ents.State != "" {
		detail += " in " + ents.State
	}
	return &domain.ResolutionError{Code: domain.ErrNoData, Detail: detail}
}
