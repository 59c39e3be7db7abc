package forecast

import (
	"strings"
	"time"
)

// BuildFeatures assembles the feature vector for one food/state pair at a
// target date. Every training column starts at zero; the date parts and the
// matching one-hot indicator columns are then activated. Column names follow
// the training pipeline's "<field>_<value>" one-hot convention.
func BuildFeatures(columns []string, food, state string, target time.Time) map[string]float64 {
	features := make(map[string]float64, len(columns))
	for _, col := range columns {
		features[col] = 0
	}

	setIfKnown(features, "day", float64(target.Day()))
	setIfKnown(features, "month", float64(target.Month()))
	setIfKnown(features, "year", float64(target.Year()))

	activateOneHot(features, "Food Item_", food)
	activateOneHot(features, "State_", state)

	return features
}

func setIfKnown(features map[string]float64, col string, v float64) {
	if _, ok := features[col]; ok {
		features[col] = v
	}
}

func activateOneHot(features map[string]float64, prefix, value string) {
	if value == "" {
		return
	}
	for col := range features {
		if strings.HasPrefix(col, prefix) && strings.EqualFold(strings.TrimPrefix(col, prefix), value) {
			features[col] = 1
		}
	}
}
