// Package intent turns an utterance into one intent tag.
package intent

import (
	"context"
	"strings"

	"github.com/avvvet/hangoutbot/internal/corpus"
	"github.com/avvvet/hangoutbot/internal/similarity"
	"go.uber.org/zap"
)

// lookupOrder decides which corpus owns a matched phrase when it appears in
// more than one.
var lookupOrder = []corpus.Tag{
	corpus.Cancel,
	corpus.Thanks,
	corpus.Greeting,
	corpus.HangoutInfo,
	corpus.Recommend,
	corpus.Confirm,
	corpus.Deny,
	corpus.Ranking,
	corpus.Location,
	corpus.ListStores,
	corpus.Detail,
}

// Classification is the outcome for one utterance.
type Classification struct {
	Intent corpus.Tag
	Match  similarity.MatchResult
	// Confident is false when the scorer found nothing above its cutoff.
	Confident bool
	// Direct is true when the listing corpus matched verbatim and the scorer
	// was never consulted.
	Direct bool
}

type Classifier struct {
	registry *corpus.Registry
	scorer   similarity.Scorer
	logger   *zap.Logger
}

func NewClassifier(registry *corpus.Registry, scorer similarity.Scorer, logger *zap.Logger) *Classifier {
	return &Classifier{
		registry: registry,
		scorer:   scorer,
		logger:   logger.With(zap.String("component", "classifier"), zap.String("scorer", scorer.Name())),
	}
}

// Classify resolves input to an intent. Confirm and Deny only make sense while
// a dialogue is running; outside one they come back as Unknown.
func (c *Classifier) Classify(ctx context.Context, input string, dialogueInProgress bool) Classification {
	text := strings.TrimSpace(input)
	if text == "" {
		return Classification{Intent: corpus.Unknown}
	}

	if tag, ok := c.registry.ListingTag(text); ok {
		return Classification{
			Intent:    tag,
			Match:     similarity.MatchResult{Phrase: text, Score: 1.0},
			Confident: true,
			Direct:    true,
		}
	}

	match, err := c.scorer.Score(ctx, text, c.registry.All())
	if err != nil {
		c.logger.Warn("scoring failed", zap.Error(err))
		return Classification{Intent: corpus.Unknown}
	}

	if !match.Matched() || match.Score < c.scorer.MinScore() {
		c.logger.Debug("no confident match",
			zap.String("best_phrase", match.Phrase),
			zap.Float64("score", match.Score),
		)
		return Classification{Intent: corpus.Unknown, Match: match}
	}

	result := Classification{Intent: corpus.Unknown, Match: match, Confident: true}
	for _, tag := range lookupOrder {
		if c.registry.Contains(tag, match.Phrase) {
			result.Intent = tag
			break
		}
	}

	if result.Intent.IsAnswer() && !dialogueInProgress {
		result.Intent = corpus.Unknown
	}

	return result
}

// ScorerName names the similarity strategy in use.
func (c *Classifier) ScorerName() string {
	return c.scorer.Name()
}
