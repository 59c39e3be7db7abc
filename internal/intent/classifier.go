// Package intent classifies a user message into one of the supported
// query intents using cue-word scoring.
package intent

import (
	"strings"

	domain "github.com/abubakar-xyz/ChopWise-Improved/internal/domain/models"
)

// DefaultConfidenceFloor is the minimum winning score; below it the
// classifier falls back to a plain price lookup. Kept low because a single
// cue word in a full sentence is a weak but genuine signal.
const DefaultConfidenceFloor = 0.1

var cueWords = map[domain.Intent]map[string]bool{
	domain.IntentCheapest: {"cheapest": true, "best": true, "lowest": true, "where": true, "find": true},
	domain.IntentTrend:    {"trend": true, "change": true, "history": true, "past": true, "recent": true},
	domain.IntentForecast: {"predict": true, "forecast": true, "future": true, "next": true, "after": true},
	domain.IntentPrice:    {"price": true, "cost": true, "current": true},
}

// Ambiguous messages resolve to the strongest, most specific intent first.
var priority = []domain.Intent{
	domain.IntentCheapest,
	domain.IntentForecast,
	domain.IntentTrend,
	domain.IntentPrice,
}

// Classifier scores messages against fixed cue-word sets. Score is the
// fraction of input tokens that hit a cue for the intent.
type Classifier struct {
	confidenceFloor float64
}

func NewClassifier(confidenceFloor float64) *Classifier {
	return &Classifier{confidenceFloor: confidenceFloor}
}

// Classify returns the winning intent and its score. When no intent
// clears the confidence floor the result is IntentPrice, which always
// produces an answer if data exists.
func (c *Classifier) Classify(text string) (domain.Intent, float64) {
	lowered := strings.ToLower(text)
	tokens := strings.Fields(lowered)
	if len(tokens) == 0 {
		return domain.IntentPrice, 0
	}

	scores := map[domain.Intent]float64{}
	for it, cues := range cueWords {
		hits := 0
		for _, tok := range tokens {
			tok = strings.Trim(tok, ".,!?;:'\"")
			if cues[tok] {
				hits++
			}
		}
		scores[it] = float64(hits) / float64(len(tokens))
	}

	// "how much" is a two-word price cue.
	if strings.Contains(lowered, "how much") {
		scores[domain.IntentPrice] += 2.0 / float64(len(tokens))
	}

	best := domain.IntentPrice
	bestScore := -1.0
	for _, it := range priority {
		if scores[it] > bestScore {
			best = it
			bestScore = scores[it]
		}
	}
	if bestScore > 1 {
		bestScore = 1
	}

	if bestScore < c.confidenceFloor {
		return domain.IntentPrice, bestScore
	}
	return best, bestScore
}
