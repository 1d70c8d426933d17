package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thepass/internal/career"
	"thepass/internal/models"
	"thepass/internal/monitoring"
	"thepass/internal/scheduler"
	"thepass/internal/shift"
)

// steadyRandom keeps every dish clean and always picks the first option
type steadyRandom struct{}

func (steadyRandom) Float64() float64 { return 0.99 }
func (steadyRandom) Intn(int) int     { return 0 }

type harness struct {
	api   *PassAPI
	saves *career.Manager
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	return newHarnessOn(t, career.NewMemoryKV(), opts)
}

func newHarnessOn(t *testing.T, kv career.KV, opts Options) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	saves := career.NewManager(kv)
	monitor := monitoring.NewMonitor()
	machine := shift.NewMachine(shift.Options{
		Random:    steadyRandom{},
		Clock:     scheduler.NewFakeClock(time.Now()),
		Store:     saves,
		Observers: []shift.Observer{monitor},
		Money:     shift.InitialMoney,
	})
	t.Cleanup(machine.Close)

	return &harness{api: NewPassAPI(machine, saves, monitor, opts), saves: saves}
}

func (h *harness) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req, _ = http.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	h.api.Router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func TestHealth(t *testing.T) {
	h := newHarness(t, Options{})
	w := h.do(t, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecipes(t *testing.T) {
	h := newHarness(t, Options{})

	w := h.do(t, "GET", "/api/v1/recipes", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var all []models.Recipe
	decode(t, w, &all)
	assert.Len(t, all, 25)

	w = h.do(t, "GET", "/api/v1/recipes?tier=french", "")
	var french []models.Recipe
	decode(t, w, &french)
	assert.Len(t, french, 5)

	w = h.do(t, "GET", "/api/v1/recipes?tier=dessert", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	w = h.do(t, "GET", "/api/v1/recipes/10", "")
	var duck models.Recipe
	decode(t, w, &duck)
	assert.Equal(t, "Duck Confit", duck.Name)

	assert.Equal(t, http.StatusNotFound, h.do(t, "GET", "/api/v1/recipes/9999", "").Code)
	assert.Equal(t, http.StatusBadRequest, h.do(t, "GET", "/api/v1/recipes/abc", "").Code)
}

func TestShiftFlow(t *testing.T) {
	h := newHarness(t, Options{})

	w := h.do(t, "POST", "/api/v1/shift/menu", `{"recipeIds":[2,3]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = h.do(t, "POST", "/api/v1/shift/start", "")
	require.Equal(t, http.StatusOK, w.Code)
	var state shift.State
	decode(t, w, &state)
	assert.Equal(t, models.ShiftService, state.ShiftPhase)
	require.NotNil(t, state.CurrentTicket)
	assert.Equal(t, 2, state.CurrentTicket.Recipe.ID)

	assert.Equal(t, http.StatusConflict, h.do(t, "POST", "/api/v1/shift/start", "").Code)

	w = h.do(t, "POST", "/api/v1/shift/serve", "")
	require.Equal(t, http.StatusOK, w.Code)
	var served shift.ServeResult
	decode(t, w, &served)
	assert.Equal(t, models.GradeS, served.Entry.Grade)
	assert.Equal(t, "Tomato Soup", served.Entry.DishName)

	assert.Equal(t, http.StatusConflict, h.do(t, "POST", "/api/v1/shift/serve", "").Code)

	w = h.do(t, "POST", "/api/v1/shift/tickets", "")
	assert.Equal(t, http.StatusCreated, w.Code)

	w = h.do(t, "POST", "/api/v1/shift/refire", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = h.do(t, "POST", "/api/v1/shift/reject", "")
	require.Equal(t, http.StatusOK, w.Code)
	var rejected shift.RejectResult
	decode(t, w, &rejected)
	assert.False(t, rejected.Correct)
	assert.Equal(t, 12, rejected.MoneyLost)

	w = h.do(t, "POST", "/api/v1/shift/pause", "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = h.do(t, "POST", "/api/v1/shift/resume", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = h.do(t, "GET", "/api/v1/shift/quip", "")
	var quip map[string]string
	decode(t, w, &quip)
	assert.Equal(t, "Marco", quip["speaker"])

	w = h.do(t, "GET", "/api/v1/metrics", "")
	var metrics map[string]interface{}
	decode(t, w, &metrics)
	assert.Equal(t, 1.0, metrics["dishes_served"])
	assert.Contains(t, metrics, "uptime_seconds")
}

func TestMenuErrors(t *testing.T) {
	h := newHarness(t, Options{})

	assert.Equal(t, http.StatusBadRequest, h.do(t, "POST", "/api/v1/shift/menu", `{}`).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, h.do(t, "POST", "/api/v1/shift/menu", `{"recipeIds":[1,2,3,4,5,6]}`).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, h.do(t, "POST", "/api/v1/shift/menu", `{"recipeIds":[200]}`).Code)
}

func TestStaffUpgrades(t *testing.T) {
	h := newHarness(t, Options{})

	w := h.do(t, "POST", "/api/v1/staff/Grill/train", "")
	require.Equal(t, http.StatusOK, w.Code)
	var res shift.UpgradeResult
	decode(t, w, &res)
	assert.Equal(t, 2, res.Staff.Skill)
	assert.True(t, res.Saved)

	assert.Equal(t, http.StatusNotFound, h.do(t, "POST", "/api/v1/staff/Pastry/hire", "").Code)
	assert.Equal(t, http.StatusOK, h.do(t, "POST", "/api/v1/staff/Prep/hire", "").Code)
	assert.Equal(t, http.StatusUnprocessableEntity, h.do(t, "POST", "/api/v1/staff/Prep/train", "").Code)
}

func TestCareerEndpoints(t *testing.T) {
	h := newHarness(t, Options{})
	h.do(t, "POST", "/api/v1/staff/Grill/hire", "")

	w := h.do(t, "GET", "/api/v1/career", "")
	var body struct {
		CareerStats models.CareerStats `json:"careerStats"`
		Money       int                `json:"money"`
		HasSave     bool               `json:"hasSave"`
	}
	decode(t, w, &body)
	assert.True(t, body.HasSave)
	assert.Equal(t, 800, body.Money)
	assert.Equal(t, 2, body.CareerStats.KitchenStaff["Grill"].Speed)

	w = h.do(t, "GET", "/api/v1/career/export", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	var export map[string]json.RawMessage
	decode(t, w, &export)
	assert.Contains(t, export, "careerStats")
	assert.Contains(t, export, "settings")

	assert.Equal(t, http.StatusBadRequest, h.do(t, "DELETE", "/api/v1/career", "").Code)
	assert.True(t, h.saves.HasSave(context.Background()))

	w = h.do(t, "DELETE", "/api/v1/career?confirm=true", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, h.saves.HasSave(context.Background()))

	var state shift.State
	decode(t, w, &state)
	assert.Equal(t, 1, state.Career.KitchenStaff["Grill"].Speed)
	assert.Equal(t, 0, state.Money)
}

// stuckKV refuses deletes
type stuckKV struct {
	*career.MemoryKV
}

func (stuckKV) Delete(context.Context, string) error {
	return errors.New("disk is read-only")
}

func TestClearCareerKeepsCareerWhenDeleteFails(t *testing.T) {
	h := newHarnessOn(t, stuckKV{career.NewMemoryKV()}, Options{})
	h.do(t, "POST", "/api/v1/staff/Grill/hire", "")

	w := h.do(t, "DELETE", "/api/v1/career?confirm=true", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.True(t, h.saves.HasSave(context.Background()))

	s := h.api.Machine.Snapshot()
	assert.Equal(t, 2, s.Career.KitchenStaff["Grill"].Speed)
	assert.Equal(t, 800, s.Money)
}

func TestSettings(t *testing.T) {
	h := newHarness(t, Options{})

	w := h.do(t, "PUT", "/api/v1/settings", `{"masterVolume":35,"uiScale":"large"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = h.do(t, "GET", "/api/v1/settings", "")
	var settings models.Settings
	decode(t, w, &settings)
	assert.Equal(t, 35, settings.MasterVolume)
	assert.Equal(t, "large", settings.UIScale)
	assert.Equal(t, 80.0, settings.AccuracyRequirement)

	stored := h.saves.LoadSettings(context.Background(), models.DefaultSettings())
	assert.Equal(t, 35, stored.MasterVolume)

	assert.Equal(t, http.StatusBadRequest, h.do(t, "PUT", "/api/v1/settings", `{"prepTimeMultiplier":0}`).Code)
}

func signToken(t *testing.T, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		Subject:   "expo",
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	})
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestAuthMiddleware(t *testing.T) {
	h := newHarness(t, Options{AuthSecret: "s3cret"})

	assert.Equal(t, http.StatusOK, h.do(t, "GET", "/health", "").Code)
	assert.Equal(t, http.StatusUnauthorized, h.do(t, "GET", "/api/v1/shift", "").Code)

	req, _ := http.NewRequest("GET", "/api/v1/shift", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "s3cret"))
	w := httptest.NewRecorder()
	h.api.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req, _ = http.NewRequest("GET", "/api/v1/shift", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "wrong"))
	w = httptest.NewRecorder()
	h.api.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = h.do(t, "GET", "/api/v1/shift?token="+signToken(t, "s3cret"), "")
	assert.Equal(t, http.StatusOK, w.Code)
}
