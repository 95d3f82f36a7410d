package similarity

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
)

// DefaultEmbeddingMinScore is the cosine similarity below which an embedding
// match is not trusted.
const DefaultEmbeddingMinScore = 0.6

// EmbeddingScorer ranks phrases by cosine similarity of dense embeddings.
// Phrase vectors are computed once and cached for the life of the scorer.
type EmbeddingScorer struct {
	embedder embeddings.Embedder
	minScore float64

	mu      sync.RWMutex
	vectors map[string][]float32
}

// NewOllamaEmbedder builds an Embedder talking to an Ollama server.
func NewOllamaEmbedder(serverURL, model string) (embeddings.Embedder, error) {
	llm, err := ollama.New(ollama.WithServerURL(serverURL), ollama.WithModel(model))
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}

	embedder, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}
	return embedder, nil
}

func NewEmbeddingScorer(embedder embeddings.Embedder, minScore float64) *EmbeddingScorer {
	return &EmbeddingScorer{
		embedder: embedder,
		minScore: minScore,
		vectors:  make(map[string][]float32),
	}
}

func (s *EmbeddingScorer) Name() string {
	return StrategyEmbedding
}

func (s *EmbeddingScorer) MinScore() float64 {
	return s.minScore
}

// Warm embeds the phrases ahead of the first request.
func (s *EmbeddingScorer) Warm(ctx context.Context, phrases []string) error {
	_, err := s.phraseVectors(ctx, phrases)
	return err
}

func (s *EmbeddingScorer) Score(ctx context.Context, input string, phrases []string) (MatchResult, error) {
	if len(phrases) == 0 {
		return MatchResult{}, nil
	}

	vectors, err := s.phraseVectors(ctx, phrases)
	if err != nil {
		return MatchResult{}, err
	}

	query, err := s.embedder.EmbedQuery(ctx, input)
	if err != nil {
		return MatchResult{}, fmt.Errorf("failed to embed input: %w", err)
	}

	best := MatchResult{Score: math.Inf(-1)}
	for i, v := range vectors {
		sim, err := cosine(query, v)
		if err != nil {
			return MatchResult{}, fmt.Errorf("phrase %q: %w", phrases[i], err)
		}
		if sim > best.Score {
			best = MatchResult{Phrase: phrases[i], Score: sim}
		}
	}

	return best, nil
}

func (s *EmbeddingScorer) phraseVectors(ctx context.Context, phrases []string) ([][]float32, error) {
	out := make([][]float32, len(phrases))
	var missing []string

	s.mu.RLock()
	for i, p := range phrases {
		if v, ok := s.vectors[p]; ok {
			out[i] = v
		} else {
			missing = append(missing, p)
		}
	}
	s.mu.RUnlock()

	if len(missing) == 0 {
		return out, nil
	}

	embedded, err := s.embedder.EmbedDocuments(ctx, missing)
	if err != nil {
		return nil, fmt.Errorf("failed to embed corpus: %w", err)
	}
	if len(embedded) != len(missing) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d phrases", len(embedded), len(missing))
	}

	s.mu.Lock()
	for i, p := range missing {
		s.vectors[p] = embedded[i]
	}
	for i, p := range phrases {
		out[i] = s.vectors[p]
	}
	s.mu.Unlock()

	return out, nil
}

func cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector length mismatch: %d != %d", len(a), len(b))
	}

	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb)), nil
}
