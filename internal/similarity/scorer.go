// Package similarity scores free text against a corpus of example phrases.
//
// Two strategies share the Scorer contract: a dense-embedding scorer backed by
// a langchaingo Embedder and a lexical scorer that needs no model. Each one
// declares its own confidence cutoff through MinScore.
package similarity

import "context"

// Strategy names accepted by configuration.
const (
	StrategyLexical   = "lexical"
	StrategyEmbedding = "embedding"
)

// MatchResult is the best phrase of a corpus for an input.
// An empty Phrase means nothing matched at all.
type MatchResult struct {
	Phrase string  `json:"phrase"`
	Score  float64 `json:"score"`
}

// Matched reports whether a phrase was selected.
func (m MatchResult) Matched() bool {
	return m.Phrase != ""
}

// Scorer picks the corpus phrase closest to the input. Ties go to the phrase
// that comes first in corpus order.
type Scorer interface {
	Score(ctx context.Context, input string, phrases []string) (MatchResult, error)
	// MinScore is the lowest score callers may treat as a confident match.
	MinScore() float64
	Name() string
}
