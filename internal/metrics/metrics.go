package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hangoutbot_messages_total",
			Help: "Total number of chat messages answered, by classified intent",
		},
		[]string{"intent"},
	)

	LowConfidenceTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hangoutbot_low_confidence_total",
			Help: "Messages whose best match scored under the scorer cutoff",
		},
		[]string{"scorer"},
	)

	DialogueActions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hangoutbot_dialogue_actions_total",
			Help: "Dialogue state machine actions taken",
		},
		[]string{"action"},
	)

	RecommendationResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hangoutbot_recommendation_results",
			Help:    "Number of venues returned at the end of an interview",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13},
		},
	)

	ReplyDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "hangoutbot_reply_duration_seconds",
			Help: "Duration of producing one reply in seconds",
		},
		[]string{"scorer"},
	)

	SessionStoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hangoutbot_session_store_errors_total",
			Help: "Session store failures, by operation",
		},
		[]string{"operation"},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hangoutbot_active_sessions",
			Help: "Interviews currently held by the in-process session store",
		},
	)

	SessionsEvicted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hangoutbot_sessions_evicted_total",
			Help: "Sessions dropped after the idle timeout",
		},
	)
)
