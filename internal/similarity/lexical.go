package similarity

import (
	"context"
	"strings"

	"github.com/avvvet/hangoutbot/internal/corpus"
	"github.com/pmezard/go-difflib/difflib"
)

// LexicalScorer matches by exact text, then substring, then the
// difflib.SequenceMatcher character ratio. Matching ignores case.
type LexicalScorer struct {
	minScore float64
}

// NewLexicalScorer creates a lexical scorer. A minScore of 0 means every
// non-zero ratio counts as a match.
func NewLexicalScorer(minScore float64) *LexicalScorer {
	return &LexicalScorer{minScore: minScore}
}

func (s *LexicalScorer) Name() string {
	return StrategyLexical
}

func (s *LexicalScorer) MinScore() float64 {
	return s.minScore
}

func (s *LexicalScorer) Score(_ context.Context, input string, phrases []string) (MatchResult, error) {
	in := corpus.Normalize(input)
	if in == "" || len(phrases) == 0 {
		return MatchResult{}, nil
	}

	normalized := make([]string, len(phrases))
	for i, p := range phrases {
		normalized[i] = corpus.Normalize(p)
	}

	// An exact hit must beat a shorter phrase that happens to be a substring,
	// otherwise "ไม่ใช่" would resolve to "ใช่".
	for i, p := range normalized {
		if p != "" && p == in {
			return MatchResult{Phrase: phrases[i], Score: 1.0}, nil
		}
	}

	for i, p := range normalized {
		if p != "" && strings.Contains(in, p) {
			return MatchResult{Phrase: phrases[i], Score: 1.0}, nil
		}
	}

	inRunes := splitRunes(in)
	var best MatchResult
	for i, p := range normalized {
		ratio := difflib.NewMatcher(inRunes, splitRunes(p)).Ratio()
		if ratio > best.Score {
			best = MatchResult{Phrase: phrases[i], Score: ratio}
		}
	}

	return best, nil
}

func splitRunes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
