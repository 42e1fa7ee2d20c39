package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type TableMetrics struct {
	dealsStartedCounter   prometheus.Counter
	dealsAbandonedCounter prometheus.Counter
	dealsWonCounter       prometheus.Counter
	sessionsEndedCounter  prometheus.Counter
	callsMadeCounter      prometheus.Counter
	cardsPlayedCounter    prometheus.Counter
	rejectedCounter       *prometheus.CounterVec
	seatedPlayersGauge    prometheus.Gauge
}

// NewTableMetrics registers the table collectors with reg.
func NewTableMetrics(reg prometheus.Registerer) *TableMetrics {
	factory := promauto.With(reg)
	return &TableMetrics{
		dealsStartedCounter: factory.NewCounter(prometheus.CounterOpts{
			Name: "bridge_deals_started_total",
			Help: "Total number of deals dealt",
		}),
		dealsAbandonedCounter: factory.NewCounter(prometheus.CounterOpts{
			Name: "bridge_deals_abandoned_total",
			Help: "Total number of deals thrown in or abandoned",
		}),
		dealsWonCounter: factory.NewCounter(prometheus.CounterOpts{
			Name: "bridge_deals_won_total",
			Help: "Total number of deals played out and scored",
		}),
		sessionsEndedCounter: factory.NewCounter(prometheus.CounterOpts{
			Name: "bridge_sessions_ended_total",
			Help: "Total number of sessions ended",
		}),
		callsMadeCounter: factory.NewCounter(prometheus.CounterOpts{
			Name: "bridge_calls_made_total",
			Help: "Total number of accepted calls",
		}),
		cardsPlayedCounter: factory.NewCounter(prometheus.CounterOpts{
			Name: "bridge_cards_played_total",
			Help: "Total number of accepted card plays",
		}),
		rejectedCounter: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bridge_rejected_actions_total",
			Help: "Calls and plays rejected by the table, by reason",
		}, []string{"reason"}),
		seatedPlayersGauge: factory.NewGauge(prometheus.GaugeOpts{
			Name: "bridge_seated_players",
			Help: "Players currently seated",
		}),
	}
}

// Metrics is registered with the default prometheus registry.
var Metrics = NewTableMetrics(prometheus.DefaultRegisterer)

func (m *TableMetrics) DealStarted() {
	m.dealsStartedCounter.Inc()
}

func (m *TableMetrics) DealAbandoned() {
	m.dealsAbandonedCounter.Inc()
}

func (m *TableMetrics) DealWon() {
	m.dealsWonCounter.Inc()
}

func (m *TableMetrics) SessionEnded() {
	m.sessionsEndedCounter.Inc()
}

func (m *TableMetrics) CallMade() {
	m.callsMadeCounter.Inc()
}

func (m *TableMetrics) CardPlayed() {
	m.cardsPlayedCounter.Inc()
}

func (m *TableMetrics) Rejected(reason string) {
	m.rejectedCounter.WithLabelValues(reason).Inc()
}

func (m *TableMetrics) PlayerSeated() {
	m.seatedPlayersGauge.Inc()
}

func (m *TableMetrics) PlayerLeft() {
	m.seatedPlayersGauge.Dec()
}

func (m *TableMetrics) DealsStarted() prometheus.Counter {
	return m.dealsStartedCounter
}

func (m *TableMetrics) DealsAbandoned() prometheus.Counter {
	return m.dealsAbandonedCounter
}

func (m *TableMetrics) DealsWon() prometheus.Counter {
	return m.dealsWonCounter
}

func (m *TableMetrics) CallsMade() prometheus.Counter {
	return m.callsMadeCounter
}

func (m *TableMetrics) CardsPlayed() prometheus.Counter {
	return m.cardsPlayedCounter
}

func (m *TableMetrics) RejectedFor(reason string) prometheus.Counter {
	return m.rejectedCounter.WithLabelValues(reason)
}

func (m *TableMetrics) SeatedPlayers() prometheus.Gauge {
	return m.seatedPlayersGauge
}
