package monitoring

import (
	"testing"

	"thepass/internal/models"
)

func TestMonitor_GetMetrics(t *testing.T) {
	m := NewMonitor()
	m.RecordMetric("test_metric", 42)

	metrics := m.GetMetrics()

	value, exists := metrics["test_metric"]
	if !exists {
		t.Fatalf("Expected 'test_metric' to be present in metrics, but it was not")
	}
	if value != 42 {
		t.Errorf("Expected 'test_metric' to be 42, but got %v", value)
	}

	if _, exists = metrics["uptime_seconds"]; !exists {
		t.Errorf("Expected 'uptime_seconds' to be present in metrics, but it was not")
	}
}

func TestMonitor_ServiceEvents(t *testing.T) {
	m := NewMonitor()
	caesar := models.Recipe{ID: 1, Name: "Caesar Salad"}

	m.TicketSpawned(models.Ticket{Recipe: caesar}, 0)
	m.TicketSpawned(models.Ticket{Recipe: caesar}, 3)
	m.DishServed(models.ServiceLogEntry{DishName: "Caesar Salad", Grade: models.GradeS, ProfitLoss: 45}, caesar, 4, 100)
	m.DishServed(models.ServiceLogEntry{DishName: "Caesar Salad", Grade: models.GradeF, ProfitLoss: 0}, caesar, 9, 0)
	m.DishRejected(caesar, true)
	m.DishRejected(caesar, false)

	metrics := m.GetMetrics()
	expect := map[string]interface{}{
		"tickets_spawned":    2,
		"pending_tickets":    3,
		"dishes_served":      2,
		"grade_S":            1,
		"grade_F":            1,
		"total_profit":       45,
		"last_grade":         "F",
		"rejections_correct": 1,
		"rejections_wasted":  1,
	}
	for name, want := range expect {
		if got := metrics[name]; got != want {
			t.Errorf("Expected %s to be %v, but got %v", name, want, got)
		}
	}

	m.ShiftEnded(models.StatusSurvived, models.ShiftSummary{TotalSales: 45})
	if got, _ := m.GetMetric("shifts_survived"); got != 1 {
		t.Errorf("Expected shifts_survived to be 1, but got %v", got)
	}
	if got, _ := m.GetMetric("pending_tickets"); got != 0 {
		t.Errorf("Expected pending_tickets to reset to 0, but got %v", got)
	}
}

func TestMonitor_Reset(t *testing.T) {
	m := NewMonitor()
	m.RecordMetric("test_metric", 42)

	m.Reset()

	metrics := m.GetMetrics()
	if _, exists := metrics["test_metric"]; exists {
		t.Errorf("Expected 'test_metric' to be removed after Reset(), but it was present")
	}
	if _, exists := metrics["uptime_seconds"]; !exists {
		t.Errorf("Expected 'uptime_seconds' to be present in metrics, but it was not")
	}
}
