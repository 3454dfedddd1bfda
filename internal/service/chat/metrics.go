package chat

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// exchangesTotal counts completed user turns by kind and result
	exchangesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "assistant_exchanges_total",
		Help: "Completed user turns by kind and result",
	}, []string{"kind", "result"})

	// typingDelaySeconds tracks the simulated typing period
	typingDelaySeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "assistant_typing_delay_seconds",
		Help:    "Simulated typing delay before each bot reply",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 1.5, 2, 3},
	})

	// activeSessions tracks conversations currently held in memory
	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "assistant_active_sessions",
		Help: "Conversations currently held in memory",
	})
)
