// Package extract matches free text against the lexicon to find which
// foods, states, LGAs and outlet types a message refers to.
package extract

import (
	"sort"
	"strings"

	domain "github.com/abubakar-xyz/ChopWise-Improved/internal/domain/models"
	"github.com/abubakar-xyz/ChopWise-Improved/internal/lexicon"
)

// Extractor resolves entity mentions in user text. Matching is purely
// lexical: exact containment first, then token overlap, then an
// edit-distance fallback. For a fixed lexicon the same input always
// yields the same output.
type Extractor struct {
	lex *lexicon.Lexicon

	// acceptThreshold is the minimum similarity for a fuzzy match to be
	// accepted outright; suggestThreshold is the minimum for a value to
	// appear as a "did you mean" suggestion.
	acceptThreshold  float64
	suggestThreshold float64
}

const maxSuggestions = 3

func NewExtractor(lex *lexicon.Lexicon, acceptThreshold, suggestThreshold float64) *Extractor {
	return &Extractor{
		lex:              lex,
		acceptThreshold:  acceptThreshold,
		suggestThreshold: suggestThreshold,
	}
}

// Extract finds every entity the text mentions. Foods may match more than
// one lexicon entry (a generic "rice" matches every rice variant); state,
// LGA and outlet are single optional values.
func (e *Extractor) Extract(text string) domain.ExtractedEntities {
	lowered := strings.ToLower(text)
	tokens := tokenize(lowered)

	ents := domain.ExtractedEntities{
		Foods:      e.matchMulti(e.lex.Foods, lowered, tokens),
		State:      e.matchSingle(e.lex.States, lowered, tokens),
		LGA:        e.matchSingle(e.lex.LGAs, lowered, tokens),
		OutletType: e.matchSingle(e.lex.Outlets, lowered, tokens),
	}

	if len(ents.Foods) == 0 {
		ents.Suggestions = e.fuzzyCandidates(e.lex.Foods, lowered, tokens, e.suggestThreshold, maxSuggestions)
	}

	ents.WantsState = signalsEntity(tokens, stateKeywords, ents.State == "")
	ents.WantsLGA = signalsEntity(tokens, lgaKeywords, ents.LGA == "")
	ents.WantsOutlet = signalsEntity(tokens, outletKeywords, ents.OutletType == "")

	return ents
}

// Suggest returns up to n lexicon values of the given kind closest to the
// text, for "did you mean" phrasing.
func (e *Extractor) Suggest(kind string, text string, n int) []string {
	entries := e.entriesFor(kind)
	lowered := strings.ToLower(text)
	return e.fuzzyCandidates(entries, lowered, tokenize(lowered), e.suggestThreshold, n)
}

func (e *Extractor) entriesFor(kind string) []lexicon.Entry {
	switch kind {
	case "state":
		return e.lex.States
	case "lga":
		return e.lex.LGAs
	case "outlet":
		return e.lex.Outlets
	default:
		return e.lex.Foods
	}
}

// matchMulti collects every entry matching by containment or token overlap.
// Foods never fuzzy-accept: a near miss becomes a suggestion, not a match.
func (e *Extractor) matchMulti(entries []lexicon.Entry, lowered string, tokens []string) []string {
	var matches []string
	for _, entry := range entries {
		if containmentMatch(entry.Lower, lowered) || tokenOverlapMatch(entry.Lower, tokens) {
			matches = append(matches, entry.Display)
		}
	}
	return matches
}

// matchSingle returns the first matching entry in sorted order, or the best
// fuzzy match above the accept threshold.
func (e *Extractor) matchSingle(entries []lexicon.Entry, lowered string, tokens []string) string {
	for _, entry := range entries {
		if containmentMatch(entry.Lower, lowered) || tokenOverlapMatch(entry.Lower, tokens) {
			return entry.Display
		}
	}
	if best, ok := e.bestFuzzy(entries, lowered, tokens); ok {
		return best
	}
	return ""
}

func (e *Extractor) bestFuzzy(entries []lexicon.Entry, lowered string, tokens []string) (string, bool) {
	best := ""
	bestScore := 0.0
	for _, entry := range entries {
		score := bestSimilarity(lowered, tokens, entry.Lower)
		if score > bestScore {
			best = entry.Display
			bestScore = score
		}
	}
	if bestScore >= e.acceptThreshold {
		return best, true
	}
	return "", false
}

func (e *Extractor) fuzzyCandidates(entries []lexicon.Entry, lowered string, tokens []string, threshold float64, n int) []string {
	type scored struct {
		display string
		score   float64
	}
	var candidates []scored
	for _, entry := range entries {
		if score := bestSimilarity(lowered, tokens, entry.Lower); score >= threshold {
			candidates = append(candidates, scored{display: entry.Display, score: score})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })

	if len(candidates) > n {
		candidates = candidates[:n]
	}
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.display)
	}
	return out
}

// containmentMatch checks substring containment in either direction: a full
// value embedded in a sentence matches, and so does a bare "rice" message
// that sits inside "imported rice".
func containmentMatch(value, lowered string) bool {
	return strings.Contains(lowered, value) || strings.Contains(value, lowered)
}

// tokenOverlapMatch reports whether any token of the lexicon value equals
// or is contained in any input token.
func tokenOverlapMatch(value string, inputTokens []string) bool {
	for _, vt := range tokenize(value) {
		for _, it := range inputTokens {
			if vt == it || strings.Contains(it, vt) {
				return true
			}
		}
	}
	return false
}

func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'))
	})
}

// bestSimilarity scores a lexicon value against the whole input and each
// input token, keeping the best. A typo like "beens" sits inside a long
// sentence, so whole-text distance alone would bury it.
func bestSimilarity(lowered string, tokens []string, value string) float64 {
	best := similarity(lowered, value)
	for _, tok := range tokens {
		if s := similarity(tok, value); s > best {
			best = s
		}
	}
	return best
}

// similarity is 1 - levenshtein(a,b)/max(len(a),len(b)).
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein(a, b))/float64(longest)
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
