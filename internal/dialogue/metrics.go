package dialogue

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	turnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flickfusion_chat_turns_total",
			Help: "Total number of chat turns by classified intent",
		},
		[]string{"intent"},
	)

	turnDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "flickfusion_chat_turn_duration_seconds",
			Help:    "Time spent answering one chat turn",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	panicsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "flickfusion_chat_panics_total",
			Help: "Chat turns that failed internally and were answered with an apology",
		},
	)

	journalErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "flickfusion_journal_errors_total",
			Help: "Chat turns that could not be written to the interaction journal",
		},
	)

	activeSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "flickfusion_sessions",
			Help: "Number of sessions with a conversation log",
		},
	)

	sessionsEvicted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "flickfusion_sessions_evicted_total",
			Help: "Conversation logs dropped for idleness or to stay under the session cap",
		},
	)
)
