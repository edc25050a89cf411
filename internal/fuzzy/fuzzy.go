// Package fuzzy scores entry names against a search term.
package fuzzy

import (
	"github.com/sahilm/fuzzy"
)

// scoreOffset lifts every match above zero. sahilm/fuzzy penalises unmatched
// characters, so a weak but valid match can score negative.
const scoreOffset = 1 << 12

// Scorer matches a term against a name. A false result means no match.
type Scorer interface {
	Score(term, name string) (int, bool)
}

// Matcher is the default Scorer: a case-insensitive subsequence match.
type Matcher struct{}

func New() Matcher {
	return Matcher{}
}

func (Matcher) Score(term, name string) (int, bool) {
	if term == "" {
		return 0, false
	}
	matches := fuzzy.Find(term, []string{name})
	if len(matches) == 0 {
		return 0, false
	}
	score := matches[0].Score + scoreOffset
	if score < 1 {
		score = 1
	}
	return score, true
}

// Highlights returns the byte offsets of the runes in name matched by term.
func Highlights(term, name string) []int {
	if term == "" {
		return nil
	}
	matches := fuzzy.Find(term, []string{name})
	if len(matches) == 0 {
		return nil
	}
	return matches[0].MatchedIndexes
}
