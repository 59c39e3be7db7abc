package extract

// Keyword sets that signal the user is trying to name a particular entity
// type. A bare keyword like "cheapest lga for rice" asks ABOUT LGAs rather
// than naming one, so a signal only fires when the keyword sits next to a
// candidate token that looks like an attempted value.
var (
	stateKeywords  = map[string]bool{"state": true}
	lgaKeywords    = map[string]bool{"lga": true}
	outletKeywords = map[string]bool{"outlet": true, "market": true}
)

var signalStopwords = map[string]bool{
	"a": true, "an": true, "any": true, "best": true, "cheapest": true,
	"each": true, "every": true, "for": true, "in": true, "is": true,
	"my": true, "of": true, "on": true, "per": true, "the": true,
	"this": true, "to": true, "what": true, "which": true, "your": true,
}

// signalsEntity reports whether the text explicitly tried to specify an
// entity of this type and failed. unmatched is true when extraction found
// no value of the type; a successful match suppresses the signal.
func signalsEntity(tokens []string, keywords map[string]bool, unmatched bool) bool {
	if !unmatched {
		return false
	}
	for i, tok := range tokens {
		if !keywords[tok] {
			continue
		}
		if i > 0 && isCandidate(tokens[i-1], keywords) {
			return true
		}
		if i+1 < len(tokens) && isCandidate(tokens[i+1], keywords) {
			return true
		}
	}
	return false
}

func isCandidate(tok string, keywords map[string]bool) bool {
	return !signalStopwords[tok] && !keywords[tok]
}
