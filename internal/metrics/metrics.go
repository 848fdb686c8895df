package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "slayer"

// OutcomeAbandoned labels battles swept while still in progress.
const OutcomeAbandoned = "abandoned"

// BattleBuckets bound the number of player turns per battle.
var BattleBuckets = []float64{1, 2, 3, 4, 6, 8, 12, 20}

// BattleMetrics collects gameplay counters.
type BattleMetrics struct {
	BattlesStarted  *prometheus.CounterVec
	BattlesFinished *prometheus.CounterVec
	Actions         *prometheus.CounterVec
	BattleTurns     *prometheus.HistogramVec
	ActiveSessions  prometheus.Gauge
}

// NewBattleMetrics registers the battle collectors with registerer. A nil
// registerer uses the Prometheus default registry.
func NewBattleMetrics(registerer prometheus.Registerer) *BattleMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)
	return &BattleMetrics{
		BattlesStarted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "battles_started_total",
			Help:      "Battles started, including restarts, by skin",
		}, []string{"skin"}),
		BattlesFinished: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "battles_finished_total",
			Help:      "Battles finished by skin and outcome (won/lost/escaped/abandoned)",
		}, []string{"skin", "outcome"}),
		Actions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_total",
			Help:      "Player actions resolved by skin and action",
		}, []string{"skin", "action"}),
		BattleTurns: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "battle_turns",
			Help:      "Player turns taken before a battle finished",
			Buckets:   BattleBuckets,
		}, []string{"skin"}),
		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Battle sessions currently held by this process",
		}),
	}
}

func (m *BattleMetrics) RecordStart(skin string) {
	m.BattlesStarted.WithLabelValues(skin).Inc()
}

func (m *BattleMetrics) RecordAction(skin, action string) {
	m.Actions.WithLabelValues(skin, action).Inc()
}

// RecordFinish counts a finished battle and its length in turns.
func (m *BattleMetrics) RecordFinish(skin, outcome string, turns int) {
	m.BattlesFinished.WithLabelValues(skin, outcome).Inc()
	m.BattleTurns.WithLabelValues(skin).Observe(float64(turns))
}

// HTTPMetrics counts API requests.
type HTTPMetrics struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

func NewHTTPMetrics(registerer prometheus.Registerer) *HTTPMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)
	return &HTTPMetrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		Duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// Middleware records every request under its route template so battle IDs
// do not explode label cardinality.
func (m *HTTPMetrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.Requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.Duration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
