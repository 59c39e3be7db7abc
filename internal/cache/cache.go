// Package cache provides forecast-answer caching. Forecasts are the only
// expensive resolution path, so identical forecast queries are served from
// cache instead of re-invoking the predictor.
package cache

import (
	"fmt"
	"sort"
	"strings"

	domain "github.com/abubakar-xyz/ChopWise-Improved/internal/domain/models"
)

// Key derives the cache key for a forecast query. Foods are sorted so that
// "rice and beans" and "beans and rice" share an entry.
func Key(foods []string, state string, horizon domain.Horizon) string {
	sorted := make([]string, len(foods))
	for i, f := range foods {
		sorted[i] = strings.ToLower(f)
	}
	sort.Strings(sorted)

	return fmt.Sprintf("%s|%s|%d|%s", strings.Join(sorted, ","), strings.ToLower(state), horizon.Count, horizon.Unit)
}
