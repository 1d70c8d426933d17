package evaluation

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"thepass/internal/models"
)

// MetricsCollector handles service metrics collection and reporting.
// It satisfies the shift observer hooks so it can be attached to a machine directly.
type MetricsCollector struct {
	registry *prometheus.Registry
	metrics  map[string]prometheus.Collector
}

// NewMetricsCollector creates a new metrics collector on a private registry
func NewMetricsCollector() *MetricsCollector {
	registry := prometheus.NewRegistry()

	ticketsSpawned := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thepass_tickets_spawned_total",
			Help: "Tickets printed at the pass",
		},
		[]string{"tier"},
	)

	pendingTickets := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "thepass_pending_tickets",
			Help: "Tickets waiting behind the one being judged",
		},
	)

	dishesServed := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thepass_dishes_served_total",
			Help: "Dishes sent to the dining room",
		},
		[]string{"grade"},
	)

	prepTime := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "thepass_dish_prep_seconds",
			Help:    "Seconds between a ticket reaching the pass and its dish going out",
			Buckets: prometheus.LinearBuckets(0, 10, 12),
		},
		[]string{"difficulty"},
	)

	accuracyGauge := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "thepass_dish_accuracy_percent",
			Help: "Normalized score of the last dish served per recipe",
		},
		[]string{"recipe"},
	)

	profit := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "thepass_service_profit_total",
			Help: "Money earned from served dishes",
		},
	)

	rejections := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thepass_dishes_rejected_total",
			Help: "Dishes sent back at the pass, by whether the call was right",
		},
		[]string{"correct"},
	)

	shifts := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thepass_shifts_ended_total",
			Help: "Shifts ended, by outcome",
		},
		[]string{"status"},
	)

	metrics := map[string]prometheus.Collector{
		"tickets_spawned": ticketsSpawned,
		"pending":         pendingTickets,
		"dishes_served":   dishesServed,
		"prep_time":       prepTime,
		"accuracy":        accuracyGauge,
		"profit":          profit,
		"rejections":      rejections,
		"shifts":          shifts,
	}

	for _, metric := range metrics {
		registry.MustRegister(metric)
	}

	return &MetricsCollector{
		registry: registry,
		metrics:  metrics,
	}
}

// Registry exposes the private registry, mainly for tests
func (mc *MetricsCollector) Registry() *prometheus.Registry {
	return mc.registry
}

// Handler serves the collected metrics in the Prometheus text format
func (mc *MetricsCollector) Handler() http.Handler {
	return promhttp.HandlerFor(mc.registry, promhttp.HandlerOpts{})
}

// TicketSpawned records a new ticket
func (mc *MetricsCollector) TicketSpawned(ticket models.Ticket, pending int) {
	if counter, ok := mc.metrics["tickets_spawned"].(*prometheus.CounterVec); ok {
		counter.WithLabelValues(string(ticket.Recipe.Tier)).Inc()
	}
	if gauge, ok := mc.metrics["pending"].(prometheus.Gauge); ok {
		gauge.Set(float64(pending))
	}
}

// DishServed records a served dish
func (mc *MetricsCollector) DishServed(entry models.ServiceLogEntry, recipe models.Recipe, prepSeconds, accuracy float64) {
	if counter, ok := mc.metrics["dishes_served"].(*prometheus.CounterVec); ok {
		counter.WithLabelValues(string(entry.Grade)).Inc()
	}
	if histogram, ok := mc.metrics["prep_time"].(*prometheus.HistogramVec); ok {
		histogram.WithLabelValues(recipe.DifficultyLabel()).Observe(prepSeconds)
	}
	if gauge, ok := mc.metrics["accuracy"].(*prometheus.GaugeVec); ok {
		gauge.WithLabelValues(recipe.Name).Set(accuracy)
	}
	if counter, ok := mc.metrics["profit"].(prometheus.Counter); ok && entry.ProfitLoss > 0 {
		counter.Add(float64(entry.ProfitLoss))
	}
}

// DishRejected records a dish sent back
func (mc *MetricsCollector) DishRejected(recipe models.Recipe, correct bool) {
	label := "false"
	if correct {
		label = "true"
	}
	if counter, ok := mc.metrics["rejections"].(*prometheus.CounterVec); ok {
		counter.WithLabelValues(label).Inc()
	}
}

// ShiftEnded records the end of a shift
func (mc *MetricsCollector) ShiftEnded(status models.GameStatus, summary models.ShiftSummary) {
	if counter, ok := mc.metrics["shifts"].(*prometheus.CounterVec); ok {
		counter.WithLabelValues(string(status)).Inc()
	}
	if gauge, ok := mc.metrics["pending"].(prometheus.Gauge); ok {
		gauge.Set(0)
	}
}
