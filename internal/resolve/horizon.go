package resolve

import (
	"regexp"
	"strconv"
	"strings"

	domain "github.com/abubakar-xyz/ChopWise-Improved/internal/domain/models"
)

// Horizon phrases the resolver understands, tried in order:
// "in 3 months" / "after 2 weeks" / "within 10 days",
// "next week" / "next 2 months",
// "3 weeks ahead" / "2 months from now".
var (
	horizonPrepositionRe = regexp.MustCompile(`(?i)\b(?:in|after|within)\s+(\d+)\s*(day|week|month)s?\b`)
	horizonNextRe        = regexp.MustCompile(`(?i)\bnext\s+(?:(\d+)\s*)?(day|week|month)s?\b`)
	horizonTrailingRe    = regexp.MustCompile(`(?i)\b(\d+)\s*(day|week|month)s?\s+(?:ahead|from now|later)\b`)
)

// parseHorizon extracts a forecast horizon from the message. The boolean is
// false when no horizon phrase is present, which sends the resolver down the
// non-forecast path instead of erroring.
func parseHorizon(text string) (domain.Horizon, bool) {
	for _, re := range []*regexp.Regexp{horizonPrepositionRe, horizonTrailingRe} {
		if m := re.FindStringSubmatch(text); m != nil {
			count, err := strconv.Atoi(m[1])
			if err != nil || count <= 0 {
				continue
			}
			return domain.Horizon{Count: count, Unit: unitOf(m[2])}, true
		}
	}

	if m := horizonNextRe.FindStringSubmatch(text); m != nil {
		count := 1
		if m[1] != "" {
			n, err := strconv.Atoi(m[1])
			if err != nil || n <= 0 {
				return domain.Horizon{}, false
			}
			count = n
		}
		return domain.Horizon{Count: count, Unit: unitOf(m[2])}, true
	}

	return domain.Horizon{}, false
}

func unitOf(word string) domain.HorizonUnit {
	switch strings.ToLower(word) {
	case "week":
		return domain.HorizonWeek
	case "month":
		return domain.HorizonMonth
	default:
		return domain.HorizonDay
	}
}
