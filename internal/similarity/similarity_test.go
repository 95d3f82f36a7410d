package similarity

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/avvvet/hangoutbot/internal/corpus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexicalScorer(t *testing.T) {
	s := NewLexicalScorer(0)
	ctx := context.Background()

	tests := []struct {
		name      string
		input     string
		phrases   []string
		wantMatch string
		wantScore float64
	}{
		{name: "exact beats earlier substring", input: "ไม่ใช่", phrases: []string{"ใช่", "ไม่ใช่"}, wantMatch: "ไม่ใช่", wantScore: 1},
		{name: "substring in corpus order", input: "สวัสดีครับ", phrases: []string{"สวัสดี", "ครับ"}, wantMatch: "สวัสดี", wantScore: 1},
		{name: "case insensitive", input: "HELLO there", phrases: []string{"bar", "hello"}, wantMatch: "hello", wantScore: 1},
		{name: "best ratio", input: "abcd", phrases: []string{"abxy", "abcx"}, wantMatch: "abcx", wantScore: 0.75},
		{name: "ratio tie keeps first", input: "ab", phrases: []string{"ax", "bx"}, wantMatch: "ax", wantScore: 0.5},
		{name: "no common characters", input: "zz", phrases: []string{"ab"}, wantMatch: "", wantScore: 0},
		{name: "empty corpus", input: "ab", phrases: nil, wantMatch: "", wantScore: 0},
		{name: "blank input", input: "   ", phrases: []string{"ab"}, wantMatch: "", wantScore: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Score(ctx, tt.input, tt.phrases)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMatch, got.Phrase)
			assert.InDelta(t, tt.wantScore, got.Score, 1e-9)
		})
	}
}

func TestLexicalScorerEveryCorpusPhrase(t *testing.T) {
	r, err := corpus.Default()
	require.NoError(t, err)

	s := NewLexicalScorer(0)
	all := r.All()
	for _, p := range all {
		got, err := s.Score(context.Background(), p, all)
		require.NoError(t, err)
		assert.Equal(t, p, got.Phrase)
		assert.Equal(t, 1.0, got.Score)
	}
}

func TestLexicalScorerContract(t *testing.T) {
	s := NewLexicalScorer(0.3)
	assert.Equal(t, StrategyLexical, s.Name())
	assert.Equal(t, 0.3, s.MinScore())
}

type fakeEmbedder struct {
	vectors  map[string][]float32
	docCalls int
	fail     error
}

func (f *fakeEmbedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	f.docCalls++
	if f.fail != nil {
		return nil, f.fail
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		v, ok := f.vectors[text]
		if !ok {
			return nil, fmt.Errorf("no vector for %q", text)
		}
		out[i] = v
	}
	return out, nil
}

func (f *fakeEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	v, ok := f.vectors[text]
	if !ok {
		return nil, fmt.Errorf("no vector for %q", text)
	}
	return v, nil
}

func newFakeEmbedder() *fakeEmbedder {
	return &fakeEmbedder{vectors: map[string][]float32{
		"bar":     {1, 0, 0},
		"pub":     {1, 0, 0},
		"hello":   {0, 1, 0},
		"a drink": {0.9, 0.1, 0},
		"weather": {0, 0, 1},
		"hi bar":  {0.5, 0.5, 0},
	}}
}

func TestEmbeddingScorer(t *testing.T) {
	ctx := context.Background()
	emb := newFakeEmbedder()
	s := NewEmbeddingScorer(emb, DefaultEmbeddingMinScore)
	phrases := []string{"bar", "pub", "hello"}

	require.NoError(t, s.Warm(ctx, phrases))
	assert.Equal(t, 1, emb.docCalls)

	got, err := s.Score(ctx, "a drink", phrases)
	require.NoError(t, err)
	assert.Equal(t, "bar", got.Phrase, "equal scores keep corpus order")
	assert.InDelta(t, 0.9939, got.Score, 1e-3)
	assert.Equal(t, 1, emb.docCalls, "cached phrase vectors are reused")

	got, err = s.Score(ctx, "weather", phrases)
	require.NoError(t, err)
	assert.Less(t, got.Score, s.MinScore())
	assert.Equal(t, "bar", got.Phrase)

	got, err = s.Score(ctx, "hi bar", phrases)
	require.NoError(t, err)
	assert.InDelta(t, 0.7071, got.Score, 1e-3)
	assert.GreaterOrEqual(t, got.Score, s.MinScore())
}

func TestEmbeddingScorerErrors(t *testing.T) {
	ctx := context.Background()

	emb := newFakeEmbedder()
	emb.fail = errors.New("model offline")
	s := NewEmbeddingScorer(emb, DefaultEmbeddingMinScore)
	_, err := s.Score(ctx, "bar", []string{"bar"})
	assert.ErrorIs(t, err, emb.fail)

	s = NewEmbeddingScorer(newFakeEmbedder(), DefaultEmbeddingMinScore)
	_, err = s.Score(ctx, "unseen", []string{"bar"})
	assert.Error(t, err)

	got, err := s.Score(ctx, "bar", nil)
	require.NoError(t, err)
	assert.False(t, got.Matched())

	assert.Equal(t, StrategyEmbedding, s.Name())
}

func TestCosine(t *testing.T) {
	sim, err := cosine([]float32{1, 0}, []float32{1, 0})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, sim, 1e-9)

	sim, err = cosine([]float32{0, 0}, []float32{1, 0})
	require.NoError(t, err)
	assert.Equal(t, 0.0, sim)

	_, err = cosine([]float32{1}, []float32{1, 0})
	assert.Error(t, err)
}
