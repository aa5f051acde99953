package journal

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pendingTurns = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "flickfusion_journal_pending",
			Help: "Chat turns queued for the interaction journal",
		},
	)

	writtenTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "flickfusion_journal_written_total",
			Help: "Chat turns saved to the interaction journal",
		},
	)

	failedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "flickfusion_journal_failed_total",
			Help: "Chat turns the interaction store rejected",
		},
	)

	droppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "flickfusion_journal_dropped_total",
			Help: "Chat turns dropped because the journal queue was full",
		},
	)
)
