// Package models contains the core domain types of the ChopWise engine.
// These are pure data structures with no knowledge of storage or transport.
package models

import (
	"fmt"
	"time"
)

// PriceRecord is a single observed market price for a food item.
// Records are loaded once at startup and never mutated afterwards.
type PriceRecord struct {
	FoodItem   string
	State      string
	LGA        string
	OutletType string
	Date       time.Time
	UnitPrice  float64
}

// Intent is the classified purpose of a user message.
type Intent string

const (
	IntentPrice    Intent = "price"
	IntentTrend    Intent = "trend"
	IntentCheapest Intent = "cheapest"
	IntentForecast Intent = "forecast"
)

// ExtractedEntities holds the catalog values recognised in a single message.
// Foods may hold several entries when a generic term matches multiple catalog
// variants; the location fields hold at most one value each.
type ExtractedEntities struct {
	Foods      []string
	State      string
	LGA        string
	OutletType string

	// Suggestions carries near-miss food names when Foods is empty.
	Suggestions []string

	// WantsState/WantsLGA/WantsOutlet record that the message explicitly
	// tried to name a value of that type (e.g. "... in Lagoss state").
	WantsState  bool
	WantsLGA    bool
	WantsOutlet bool
}

// HorizonUnit is the calendar unit of a forecast horizon.
type HorizonUnit string

const (
	HorizonDay   HorizonUnit = "day"
	HorizonWeek  HorizonUnit = "week"
	HorizonMonth HorizonUnit = "month"
)

// Days returns the day-count multiplier used to compute the target date.
func (u HorizonUnit) Days() int {
	switch u {
	case HorizonWeek:
		return 7
	case HorizonMonth:
		return 30
	default:
		return 1
	}
}

// Horizon is how far ahead a forecast should look.
type Horizon struct {
	Count int         `json:"count"`
	Unit  HorizonUnit `json:"unit"`
}

// AnswerKind tags the shape of a structured answer.
type AnswerKind string

const (
	AnswerPrice      AnswerKind = "price"
	AnswerMultiPrice AnswerKind = "multi_price"
	AnswerTrend      AnswerKind = "trend"
	AnswerCheapest   AnswerKind = "cheapest"
	AnswerForecast   AnswerKind = "forecast"
	AnswerHelp       AnswerKind = "help"
)

// TrendDirection classifies the 30-day price movement.
type TrendDirection string

const (
	TrendRising  TrendDirection = "rising"
	TrendFalling TrendDirection = "falling"
	TrendStable  TrendDirection = "stable"
)

// PriceLine is one food's latest observed price under the active filters.
// Missing marks a matched food with no data instead of dropping it silently.
type PriceLine struct {
	Food    string    `json:"food"`
	Price   float64   `json:"price"`
	Date    time.Time `json:"date"`
	Missing bool      `json:"missing,omitempty"`
}

// TrendFigures carries the latest price against its trailing-window averages.
type TrendFigures struct {
	Latest    float64        `json:"latest"`
	Avg30     float64        `json:"avg_30"`
	Avg90     float64        `json:"avg_90"`
	Pct30     float64        `json:"pct_30"`
	Pct90     float64        `json:"pct_90"`
	Direction TrendDirection `json:"direction"`
}

// RankedGroup is a sub-region or outlet ranked by its mean unit price.
type RankedGroup struct {
	Name      string  `json:"name"`
	MeanPrice float64 `json:"mean_price"`
}

// ForecastLine is the predicted price for one food at the target date.
type ForecastLine struct {
	Food       string    `json:"food"`
	Price      float64   `json:"price"`
	TargetDate time.Time `json:"target_date"`
}

// Answer is the structured result of resolving a message. Only the fields
// relevant to Kind are populated.
type Answer struct {
	Kind AnswerKind `json:"kind"`

	// Echo of the filters the resolver actually applied.
	Food   string `json:"food,omitempty"`
	State  string `json:"state,omitempty"`
	LGA    string `json:"lga,omitempty"`
	Outlet string `json:"outlet,omitempty"`

	Lines           []PriceLine    `json:"lines,omitempty"`
	Trend           *TrendFigures  `json:"trend,omitempty"`
	CheapestLGAs    []RankedGroup  `json:"cheapest_lgas,omitempty"`
	CheapestOutlets []RankedGroup  `json:"cheapest_outlets,omitempty"`
	Forecasts       []ForecastLine `json:"forecasts,omitempty"`
	Horizon         *Horizon       `json:"horizon,omitempty"`

	// Cached is set when the answer was served from the forecast cache.
	Cached bool `json:"cached,omitempty"`
}

// ErrorCode identifies a recoverable resolution failure.
type ErrorCode string

const (
	ErrFoodNotRecognized      ErrorCode = "FOOD_NOT_RECOGNIZED"
	ErrRegionNotRecognized    ErrorCode = "REGION_NOT_RECOGNIZED"
	ErrSubRegionNotRecognized ErrorCode = "SUBREGION_NOT_RECOGNIZED"
	ErrOutletNotRecognized    ErrorCode = "OUTLET_NOT_RECOGNIZED"
	ErrNoData                 ErrorCode = "NO_DATA"
	ErrForecasterUnavailable  ErrorCode = "FORECASTER_UNAVAILABLE"
	ErrInternal               ErrorCode = "INTERNAL"
)

// ResolutionError is the user-facing failure taxonomy. Every instance is
// recoverable: the composer turns it into an explanatory reply, never a
// hard failure.
type ResolutionError struct {
	Code        ErrorCode
	Detail      string
	Suggestions []string
}

func (e *ResolutionError) Error() string {
	if e.Detail == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Detail)
}

// Catalog describes the queryable universe, for client-side autocomplete.
type Catalog struct {
	Foods       []string  `json:"foods"`
	States      []string  `json:"states"`
	LGAs        []string  `json:"lgas"`
	OutletTypes []string  `json:"outlet_types"`
	DateFrom    time.Time `json:"date_from"`
	DateTo      time.Time `json:"date_to"`
}
