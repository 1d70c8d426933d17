package career

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thepass/internal/models"
)

type brokenKV struct{}

func (brokenKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, errors.New("storage unavailable")
}
func (brokenKV) Put(ctx context.Context, key string, value []byte) error {
	return errors.New("storage unavailable")
}
func (brokenKV) Delete(ctx context.Context, key string) error {
	return errors.New("storage unavailable")
}

func newTestManager() (*Manager, *MemoryKV) {
	kv := NewMemoryKV()
	m := NewManager(kv)
	m.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return m, kv
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	m, kv := newTestManager()

	assert.False(t, m.HasSave(ctx))
	assert.Nil(t, m.LoadCareer(ctx))

	stats := models.DefaultCareerStats()
	stats.CareerMoney = 1234
	stats.TotalShiftsCompleted = 11
	stats.CurrentMilestone = models.MilestoneExecutiveChef
	stats.UnlockedRecipes = append(stats.UnlockedRecipes, 10)
	stats.KitchenStaff["Grill"] = models.Staff{Skill: 3, Speed: 2, Name: "Grill Station"}

	require.True(t, m.SaveCareer(ctx, stats))
	assert.True(t, m.HasSave(ctx))

	raw, _, _ := kv.Get(ctx, SaveKey)
	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Equal(t, float64(SchemaVersion), fields["version"])
	assert.Equal(t, float64(1700000000000), fields["lastSaved"])
	assert.Contains(t, fields, "kitchenStaff")

	loaded := m.LoadCareer(ctx)
	require.NotNil(t, loaded)
	assert.Equal(t, stats, *loaded)
}

func TestLoadCareerMigratesOldSave(t *testing.T) {
	ctx := context.Background()
	m, kv := newTestManager()

	old := `{"careerMoney": 50, "totalShiftsCompleted": 6, "kitchenStaff": {"Grill": {"skill": 4}, "Pastry": {"skill": 2, "speed": 2}}}`
	require.NoError(t, kv.Put(ctx, SaveKey, []byte(old)))

	loaded := m.LoadCareer(ctx)
	require.NotNil(t, loaded)

	assert.Equal(t, 50, loaded.CareerMoney)
	assert.Equal(t, models.MilestoneHeadChef, loaded.CurrentMilestone)
	assert.Equal(t, 1, loaded.CurrentShiftNumber)
	assert.Equal(t, models.StarterRecipes, loaded.UnlockedRecipes)

	assert.Equal(t, models.Staff{Skill: 4, Speed: 1, Name: "Grill Station"}, loaded.KitchenStaff["Grill"])
	assert.Equal(t, models.Staff{Skill: 1, Speed: 1, Name: "Sauté Station"}, loaded.KitchenStaff["Sauté"])
	assert.Equal(t, models.Staff{Skill: 2, Speed: 2, Name: "Pastry Station"}, loaded.KitchenStaff["Pastry"])
}

func TestLoadCareerDegrades(t *testing.T) {
	ctx := context.Background()

	m, kv := newTestManager()
	require.NoError(t, kv.Put(ctx, SaveKey, []byte("{not json")))
	assert.Nil(t, m.LoadCareer(ctx))

	require.NoError(t, kv.Put(ctx, SaveKey, []byte(`{"hello": "world"}`)))
	loaded := m.LoadCareer(ctx)
	require.NotNil(t, loaded)
	assert.Equal(t, models.DefaultCareerStats(), *loaded)

	broken := NewManager(brokenKV{})
	assert.Nil(t, broken.LoadCareer(ctx))
	assert.False(t, broken.SaveCareer(ctx, models.DefaultCareerStats()))
	assert.False(t, broken.ClearCareer(ctx))
	assert.False(t, broken.HasSave(ctx))
	assert.Equal(t, models.DefaultSettings(), broken.LoadSettings(ctx, models.DefaultSettings()))
}

func TestClearCareerKeepsSettings(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager()

	settings := models.DefaultSettings()
	settings.MasterVolume = 30
	require.True(t, m.SaveSettings(ctx, settings))
	require.True(t, m.SaveCareer(ctx, models.DefaultCareerStats()))

	require.True(t, m.ClearCareer(ctx))
	assert.False(t, m.HasSave(ctx))
	assert.Equal(t, 30, m.LoadSettings(ctx, models.DefaultSettings()).MasterVolume)
}

func TestLoadSettingsMergesDefaults(t *testing.T) {
	ctx := context.Background()
	m, kv := newTestManager()

	require.NoError(t, kv.Put(ctx, SettingsKey, []byte(`{"accuracyRequirement": 92, "colorBlindMode": true}`)))

	s := m.LoadSettings(ctx, models.DefaultSettings())
	assert.Equal(t, 92.0, s.AccuracyRequirement)
	assert.True(t, s.ColorBlindMode)
	assert.Equal(t, 1.0, s.PrepTimeMultiplier)
	assert.Equal(t, "normal", s.UIScale)

	require.NoError(t, kv.Put(ctx, SettingsKey, []byte(`[1,2`)))
	assert.Equal(t, models.DefaultSettings(), m.LoadSettings(ctx, models.DefaultSettings()))
}

func TestExport(t *testing.T) {
	m, _ := newTestManager()

	data, err := m.Export(models.DefaultCareerStats(), models.DefaultSettings())
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, doc, "careerStats")
	assert.Contains(t, doc, "settings")
	assert.Len(t, doc, 2)
}
