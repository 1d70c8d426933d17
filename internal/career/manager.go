package career

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"thepass/internal/models"
)

const (
	// SaveKey stores the career record
	SaveKey = "the_pass_save_data_v1"
	// SettingsKey stores user preferences
	SettingsKey = "the_pass_settings_v1"
	// SchemaVersion is stamped on every career record written
	SchemaVersion = 1
)

// savedCareer is the stored shape of a career record
type savedCareer struct {
	models.CareerStats
	Version   int   `json:"version"`
	LastSaved int64 `json:"lastSaved"`
}

// Manager reads and writes the career and settings records. Storage failures never
// escape: reads degrade to "no save" and writes report false.
type Manager struct {
	kv  KV
	now func() time.Time
}

// NewManager creates a save manager over kv
func NewManager(kv KV) *Manager {
	return &Manager{kv: kv, now: time.Now}
}

// SaveCareer writes the career record
func (m *Manager) SaveCareer(ctx context.Context, stats models.CareerStats) bool {
	record := savedCareer{
		CareerStats: stats,
		Version:     SchemaVersion,
		LastSaved:   m.now().UnixMilli(),
	}
	data, err := json.Marshal(record)
	if err != nil {
		log.Printf("career: failed to encode save: %v", err)
		return false
	}
	if err := m.kv.Put(ctx, SaveKey, data); err != nil {
		log.Printf("career: write failed: %v", err)
		return false
	}
	return true
}

// LoadCareer reads the career record. It returns nil when there is no usable save,
// and fresh defaults when the stored record is not recognisably a career.
func (m *Manager) LoadCareer(ctx context.Context) *models.CareerStats {
	data, ok, err := m.kv.Get(ctx, SaveKey)
	if err != nil {
		log.Printf("career: load failed: %v", err)
		return nil
	}
	if !ok || len(data) == 0 {
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		log.Printf("career: save is corrupt: %v", err)
		return nil
	}
	_, hasVersion := fields["version"]
	_, hasMoney := fields["careerMoney"]
	if !hasVersion && !hasMoney {
		log.Println("career: save has an unknown shape, starting from defaults")
		stats := models.DefaultCareerStats()
		return &stats
	}

	stats, err := migrate(data)
	if err != nil {
		log.Printf("career: migration failed: %v", err)
		return nil
	}
	return &stats
}

// migrate decodes a stored record over the current defaults so fields added since the
// record was written pick up their default values.
func migrate(data []byte) (models.CareerStats, error) {
	record := savedCareer{CareerStats: models.DefaultCareerStats()}
	if err := json.Unmarshal(data, &record); err != nil {
		return models.CareerStats{}, fmt.Errorf("failed to decode save: %w", err)
	}
	record.Version = SchemaVersion

	stats := record.CareerStats
	defaults := models.DefaultKitchenStaff()
	if stats.KitchenStaff == nil {
		stats.KitchenStaff = defaults
	}
	for name, def := range defaults {
		if _, ok := stats.KitchenStaff[name]; !ok {
			stats.KitchenStaff[name] = def
		}
	}
	for name, staff := range stats.KitchenStaff {
		if staff.Skill < 1 {
			staff.Skill = 1
		}
		if staff.Speed < 1 {
			staff.Speed = 1
		}
		if staff.Name == "" {
			staff.Name = defaults[name].Name
			if staff.Name == "" {
				staff.Name = name + " Station"
			}
		}
		stats.KitchenStaff[name] = staff
	}
	if stats.UnlockedRecipes == nil {
		stats.UnlockedRecipes = append([]int{}, models.StarterRecipes...)
	}
	if stats.CurrentShiftNumber < 1 {
		stats.CurrentShiftNumber = stats.TotalShiftsCompleted + 1
	}
	stats.CurrentMilestone = models.MilestoneFor(stats.TotalShiftsCompleted)
	return stats, nil
}

// ClearCareer deletes the career record. Settings are untouched.
func (m *Manager) ClearCareer(ctx context.Context) bool {
	if err := m.kv.Delete(ctx, SaveKey); err != nil {
		log.Printf("career: clear failed: %v", err)
		return false
	}
	return true
}

// HasSave reports whether a career record exists
func (m *Manager) HasSave(ctx context.Context) bool {
	data, ok, err := m.kv.Get(ctx, SaveKey)
	return err == nil && ok && len(data) > 0
}

// SaveSettings writes user preferences
func (m *Manager) SaveSettings(ctx context.Context, settings models.Settings) bool {
	data, err := json.Marshal(settings)
	if err != nil {
		log.Printf("career: failed to encode settings: %v", err)
		return false
	}
	if err := m.kv.Put(ctx, SettingsKey, data); err != nil {
		log.Printf("career: settings write failed: %v", err)
		return false
	}
	return true
}

// LoadSettings reads user preferences merged over defaults
func (m *Manager) LoadSettings(ctx context.Context, defaults models.Settings) models.Settings {
	data, ok, err := m.kv.Get(ctx, SettingsKey)
	if err != nil {
		log.Printf("career: settings load failed: %v", err)
		return defaults
	}
	if !ok {
		return defaults
	}
	merged := defaults
	if err := json.Unmarshal(data, &merged); err != nil {
		log.Printf("career: settings are corrupt: %v", err)
		return defaults
	}
	return merged
}

// ExportDocument is the downloadable backup document
type ExportDocument struct {
	CareerStats models.CareerStats `json:"careerStats"`
	Settings    models.Settings    `json:"settings"`
}

// Export serializes the career and settings into one JSON document
func (m *Manager) Export(stats models.CareerStats, settings models.Settings) ([]byte, error) {
	data, err := json.MarshalIndent(ExportDocument{CareerStats: stats, Settings: settings}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to export career: %w", err)
	}
	return data, nil
}
