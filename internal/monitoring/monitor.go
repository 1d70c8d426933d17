package monitoring

import (
	"sync"
	"time"

	"thepass/internal/models"
)

// Monitor keeps a JSON friendly snapshot of service activity. It implements shift.Observer.
type Monitor struct {
	metrics      map[string]interface{}
	metricsMutex sync.RWMutex
	startTime    time.Time
}

// NewMonitor creates a new monitoring instance
func NewMonitor() *Monitor {
	return &Monitor{
		metrics:   make(map[string]interface{}),
		startTime: time.Now(),
	}
}

// RecordMetric records a metric value
func (m *Monitor) RecordMetric(name string, value interface{}) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.metrics[name] = value
}

// GetMetric returns a specific metric value
func (m *Monitor) GetMetric(name string) (interface{}, bool) {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()
	value, exists := m.metrics[name]
	return value, exists
}

// GetMetrics returns all current metrics
func (m *Monitor) GetMetrics() map[string]interface{} {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()

	metrics := make(map[string]interface{}, len(m.metrics)+1)
	for k, v := range m.metrics {
		metrics[k] = v
	}
	metrics["uptime_seconds"] = time.Since(m.startTime).Seconds()

	return metrics
}

// Reset clears all metrics
func (m *Monitor) Reset() {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.metrics = make(map[string]interface{})
}

// increment must be called with metricsMutex held
func (m *Monitor) increment(name string, delta int) {
	n, _ := m.metrics[name].(int)
	m.metrics[name] = n + delta
}

// TicketSpawned counts printed tickets and tracks the queue length
func (m *Monitor) TicketSpawned(ticket models.Ticket, pending int) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.increment("tickets_spawned", 1)
	m.metrics["pending_tickets"] = pending
	m.metrics["last_ticket_recipe"] = ticket.Recipe.Name
}

// DishServed records the grade and takings of a served dish
func (m *Monitor) DishServed(entry models.ServiceLogEntry, recipe models.Recipe, prepSeconds, accuracy float64) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.increment("dishes_served", 1)
	m.increment("grade_"+string(entry.Grade), 1)
	m.increment("total_profit", entry.ProfitLoss)
	m.metrics["last_dish"] = entry.DishName
	m.metrics["last_grade"] = string(entry.Grade)
	m.metrics["last_accuracy"] = accuracy
	m.metrics["last_prep_seconds"] = prepSeconds
	m.metrics["last_served_at"] = time.Now().Format(time.RFC3339)
}

// DishRejected counts rejections by whether they were warranted
func (m *Monitor) DishRejected(recipe models.Recipe, correct bool) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	if correct {
		m.increment("rejections_correct", 1)
	} else {
		m.increment("rejections_wasted", 1)
	}
}

// ShiftEnded records how the shift ended and its summary
func (m *Monitor) ShiftEnded(status models.GameStatus, summary models.ShiftSummary) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.increment("shifts_"+string(status), 1)
	m.metrics["last_shift_status"] = string(status)
	m.metrics["last_shift_summary"] = summary
	m.metrics["pending_tickets"] = 0
}
