package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	SessionBackendLocal = "local"
	SessionBackendRedis = "redis"

	ScorerLexical   = "lexical"
	ScorerEmbedding = "embedding"

	VenueSourceCSV      = "csv"
	VenueSourcePostgres = "postgres"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	// NATS configuration
	NatsURL            string
	NatsRequestSubject string
	NatsTimeout        time.Duration
	RequestTimeout     time.Duration

	// Session configuration
	SessionBackend       string
	RedisURL             string
	SessionIdleTimeout   time.Duration
	SessionSweepInterval time.Duration

	// Intent matching
	ScorerStrategy     string
	LexicalMinScore    float64
	EmbeddingMinScore  float64
	EmbeddingServerURL string
	EmbeddingModel     string
	CorpusPath         string

	// Venue data
	VenueSource  string
	VenueCSVPath string
	DatabaseURL  string
	RankingTopN  int

	// Service configuration
	ServiceName string
	MetricsAddr string
	LogLevel    string
	LogFormat   string
}

// Load reads the configuration from the environment. A .env file, if any,
// must already have been loaded into it.
func Load() (*Config, error) {
	v := viper.New()
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	// NATS settings
	v.SetDefault("NATS_URL", "nats://localhost:4222")
	v.SetDefault("NATS_REQUEST_SUBJECT", "hangout.chat")
	v.SetDefault("NATS_TIMEOUT", "30s")
	v.SetDefault("REQUEST_TIMEOUT", "10s")

	// Session settings
	v.SetDefault("SESSION_BACKEND", SessionBackendLocal)
	v.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	v.SetDefault("SESSION_IDLE_TIMEOUT", "30m")
	v.SetDefault("SESSION_SWEEP_INTERVAL", "1m")

	// Matching settings
	v.SetDefault("SCORER_STRATEGY", ScorerLexical)
	v.SetDefault("LEXICAL_MIN_SCORE", 0.0)
	v.SetDefault("EMBEDDING_MIN_SCORE", 0.6)
	v.SetDefault("EMBEDDING_SERVER_URL", "http://localhost:11434")
	v.SetDefault("EMBEDDING_MODEL", "paraphrase-multilingual")
	v.SetDefault("CORPUS_PATH", "")

	// Venue settings
	v.SetDefault("VENUE_SOURCE", VenueSourceCSV)
	v.SetDefault("VENUE_CSV_PATH", "hangout_info.csv")
	v.SetDefault("DATABASE_URL", "postgres://localhost:5432/hangout?sslmode=disable")
	v.SetDefault("RANKING_TOP_N", 5)

	// Service settings
	v.SetDefault("SERVICE_NAME", "hangoutbot")
	v.SetDefault("METRICS_ADDR", ":9090")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	cfg := &Config{
		NatsURL:            v.GetString("NATS_URL"),
		NatsRequestSubject: v.GetString("NATS_REQUEST_SUBJECT"),
		NatsTimeout:        v.GetDuration("NATS_TIMEOUT"),
		RequestTimeout:     v.GetDuration("REQUEST_TIMEOUT"),

		SessionBackend:       strings.ToLower(v.GetString("SESSION_BACKEND")),
		RedisURL:             v.GetString("REDIS_URL"),
		SessionIdleTimeout:   v.GetDuration("SESSION_IDLE_TIMEOUT"),
		SessionSweepInterval: v.GetDuration("SESSION_SWEEP_INTERVAL"),

		ScorerStrategy:     strings.ToLower(v.GetString("SCORER_STRATEGY")),
		LexicalMinScore:    v.GetFloat64("LEXICAL_MIN_SCORE"),
		EmbeddingMinScore:  v.GetFloat64("EMBEDDING_MIN_SCORE"),
		EmbeddingServerURL: v.GetString("EMBEDDING_SERVER_URL"),
		EmbeddingModel:     v.GetString("EMBEDDING_MODEL"),
		CorpusPath:         v.GetString("CORPUS_PATH"),

		VenueSource:  strings.ToLower(v.GetString("VENUE_SOURCE")),
		VenueCSVPath: v.GetString("VENUE_CSV_PATH"),
		DatabaseURL:  v.GetString("DATABASE_URL"),
		RankingTopN:  v.GetInt("RANKING_TOP_N"),

		ServiceName: v.GetString("SERVICE_NAME"),
		MetricsAddr: v.GetString("METRICS_ADDR"),
		LogLevel:    strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFormat:   strings.ToLower(v.GetString("LOG_FORMAT")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.SessionBackend {
	case SessionBackendLocal, SessionBackendRedis:
	default:
		return fmt.Errorf("%w: SESSION_BACKEND %q (want local or redis)", ErrInvalid, c.SessionBackend)
	}

	switch c.ScorerStrategy {
	case ScorerLexical, ScorerEmbedding:
	default:
		return fmt.Errorf("%w: SCORER_STRATEGY %q (want lexical or embedding)", ErrInvalid, c.ScorerStrategy)
	}

	switch c.VenueSource {
	case VenueSourceCSV, VenueSourcePostgres:
	default:
		return fmt.Errorf("%w: VENUE_SOURCE %q (want csv or postgres)", ErrInvalid, c.VenueSource)
	}

	if c.SessionIdleTimeout <= 0 {
		return fmt.Errorf("%w: SESSION_IDLE_TIMEOUT must be positive", ErrInvalid)
	}
	if c.SessionBackend == SessionBackendLocal && c.SessionSweepInterval <= 0 {
		return fmt.Errorf("%w: SESSION_SWEEP_INTERVAL must be positive", ErrInvalid)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("%w: REQUEST_TIMEOUT must be positive", ErrInvalid)
	}
	if c.LexicalMinScore < 0 || c.LexicalMinScore > 1 || c.EmbeddingMinScore < -1 || c.EmbeddingMinScore > 1 {
		return fmt.Errorf("%w: min scores must be within [-1, 1] (lexical within [0, 1])", ErrInvalid)
	}
	return nil
}

// MinScore is the cutoff for the configured scorer strategy.
func (c *Config) MinScore() float64 {
	if c.ScorerStrategy == ScorerEmbedding {
		return c.EmbeddingMinScore
	}
	return c.LexicalMinScore
}
