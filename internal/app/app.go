// Package app assembles the chat service from its configuration.
package app

import (
	"context"
	"fmt"

	"github.com/avvvet/hangoutbot/internal/config"
	"github.com/avvvet/hangoutbot/internal/corpus"
	"github.com/avvvet/hangoutbot/internal/handlers"
	"github.com/avvvet/hangoutbot/internal/intent"
	"github.com/avvvet/hangoutbot/internal/memory"
	"github.com/avvvet/hangoutbot/internal/metrics"
	"github.com/avvvet/hangoutbot/internal/similarity"
	"github.com/avvvet/hangoutbot/internal/venue"
	"go.uber.org/zap"
)

// App holds the long-lived components shared by every request.
type App struct {
	Registry   *corpus.Registry
	Scorer     similarity.Scorer
	Classifier *intent.Classifier
	Venues     *venue.Repository
	Sessions   *memory.Manager
	Handler    *handlers.ChatHandler
}

// New loads the corpus and the venue dataset, connects the session store and
// builds the chat handler.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	registry, err := LoadRegistry(cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("corpus loaded", zap.Int("version", registry.Version()), zap.Int("phrases", len(registry.All())))

	scorer, err := NewScorer(ctx, cfg, registry, logger)
	if err != nil {
		return nil, err
	}

	venues, err := LoadVenues(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if len(venues) == 0 {
		logger.Warn("venue dataset is empty; venue questions will get the no-data reply")
	}
	repo := venue.NewRepository(venues)
	logger.Info("venues loaded", zap.String("source", cfg.VenueSource), zap.Int("count", repo.Len()))

	store, err := NewStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	sessions := memory.NewManager(store, logger)

	classifier := intent.NewClassifier(registry, scorer, logger)
	return &App{
		Registry:   registry,
		Scorer:     scorer,
		Classifier: classifier,
		Venues:     repo,
		Sessions:   sessions,
		Handler:    handlers.NewChatHandler(classifier, sessions, repo, cfg.RankingTopN, logger),
	}, nil
}

// LoadRegistry returns the embedded corpus unless a corpus file is configured.
func LoadRegistry(cfg *config.Config) (*corpus.Registry, error) {
	if cfg.CorpusPath == "" {
		return corpus.Default()
	}
	return corpus.Load(cfg.CorpusPath)
}

// NewScorer builds the configured similarity strategy. The embedding scorer
// has every corpus phrase encoded before it is returned.
func NewScorer(ctx context.Context, cfg *config.Config, registry *corpus.Registry, logger *zap.Logger) (similarity.Scorer, error) {
	if cfg.ScorerStrategy != config.ScorerEmbedding {
		return similarity.NewLexicalScorer(cfg.MinScore()), nil
	}

	embedder, err := similarity.NewOllamaEmbedder(cfg.EmbeddingServerURL, cfg.EmbeddingModel)
	if err != nil {
		return nil, err
	}
	scorer := similarity.NewEmbeddingScorer(embedder, cfg.MinScore())
	if err := scorer.Warm(ctx, registry.All()); err != nil {
		return nil, fmt.Errorf("failed to encode corpus: %w", err)
	}
	logger.Info("embedding model ready",
		zap.String("server", cfg.EmbeddingServerURL),
		zap.String("model", cfg.EmbeddingModel),
	)
	return scorer, nil
}

// LoadVenues reads the dataset from the configured source.
func LoadVenues(ctx context.Context, cfg *config.Config) ([]venue.Venue, error) {
	if cfg.VenueSource != config.VenueSourcePostgres {
		return venue.LoadCSVFile(cfg.VenueCSVPath)
	}

	db, err := venue.OpenPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return venue.LoadPostgres(ctx, db)
}

// NewStore connects the configured session backend. The local store gets a
// janitor that runs until ctx is cancelled.
func NewStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (memory.Store, error) {
	if cfg.SessionBackend == config.SessionBackendRedis {
		store, err := memory.NewRedisStore(cfg.RedisURL, cfg.SessionIdleTimeout)
		if err != nil {
			return nil, err
		}
		logger.Info("redis session store connected", zap.Duration("idle_timeout", cfg.SessionIdleTimeout))
		return store, nil
	}

	store := memory.NewLocalStore(cfg.SessionIdleTimeout)
	store.Start(ctx, cfg.SessionSweepInterval, func(removed int) {
		metrics.SessionsEvicted.Add(float64(removed))
		metrics.ActiveSessions.Set(float64(store.Len()))
		if removed > 0 {
			logger.Debug("idle sessions evicted", zap.Int("removed", removed))
		}
	})
	logger.Info("local session store ready", zap.Duration("idle_timeout", cfg.SessionIdleTimeout))
	return store, nil
}

// Close releases the session store.
func (a *App) Close() error {
	return a.Sessions.Close()
}
