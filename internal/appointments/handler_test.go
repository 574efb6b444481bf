package appointments

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drojedanicolas-commits/drojedanicolas/internal/catalog"
)

func newHandlerFixture() (*Handler, *MemoryRepository) {
	repo := NewMemoryRepository()
	return NewHandler(repo, catalog.Default(), nil), repo
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestHandlerCreateDefaults(t *testing.T) {
	h, repo := newHandlerFixture()

	body, _ := json.Marshal(map[string]any{
		"patientName": "Carlos Díaz",
		"date":        "2024-07-01",
		"time":        "10:00",
		"service":     ServiceFollowUp,
	})
	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)

	var created Appointment
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, StatusPending, created.Status)
	assert.Equal(t, 3000, created.Cost)
	assert.True(t, created.IsFollowUp)
	assert.Equal(t, SourceWeb, created.Source)

	apts, _ := repo.List(context.Background())
	require.Len(t, apts, 1)
	assert.Equal(t, created.ID, apts[0].ID)
}

func TestHandlerCreateKeepsExplicitCost(t *testing.T) {
	h, _ := newHandlerFixture()

	body, _ := json.Marshal(map[string]any{
		"patientName": "Carlos Díaz",
		"date":        "2024-07-01",
		"time":        "10:00",
		"service":     ServiceTraumatology,
		"cost":        7000,
		"source":      SourceEmail,
	})
	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewReader(body)))

	var created Appointment
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, 7000, created.Cost)
	assert.Equal(t, SourceEmail, created.Source)
}

func TestHandlerCreateValidation(t *testing.T) {
	h, repo := newHandlerFixture()

	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/api/appointments", strings.NewReader("{bad")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body, _ := json.Marshal(map[string]any{"date": "2024-07-01", "time": "10:00"})
	rec = httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	n, _ := repo.Len(context.Background())
	assert.Zero(t, n)
}

func TestHandlerUpdateStatus(t *testing.T) {
	h, repo := newHandlerFixture()
	_ = repo.Add(context.Background(), testAppointment("a1"))

	body, _ := json.Marshal(map[string]string{"status": StatusCompleted})
	req := withURLParam(httptest.NewRequest(http.MethodPost, "/api/appointments/a1/status", bytes.NewReader(body)), "id", "a1")
	rec := httptest.NewRecorder()
	h.UpdateStatus(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	apts, _ := repo.List(context.Background())
	assert.Equal(t, StatusCompleted, apts[0].Status)
}

func TestHandlerUpdateStatusRejectsUnknownStatus(t *testing.T) {
	h, repo := newHandlerFixture()
	_ = repo.Add(context.Background(), testAppointment("a1"))

	body, _ := json.Marshal(map[string]string{"status": "archived"})
	req := withURLParam(httptest.NewRequest(http.MethodPost, "/api/appointments/a1/status", bytes.NewReader(body)), "id", "a1")
	rec := httptest.NewRecorder()
	h.UpdateStatus(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	apts, _ := repo.List(context.Background())
	assert.Equal(t, StatusConfirmed, apts[0].Status)
}

func TestHandlerUpdateStatusUnknownID(t *testing.T) {
	h, _ := newHandlerFixture()

	body, _ := json.Marshal(map[string]string{"status": StatusCancelled})
	req := withURLParam(httptest.NewRequest(http.MethodPost, "/api/appointments/nope/status", bytes.NewReader(body)), "id", "nope")
	rec := httptest.NewRecorder()
	h.UpdateStatus(rec, req)

	// Unknown ids are a silent no-op, not an error.
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandlerList(t *testing.T) {
	h, repo := newHandlerFixture()
	_ = repo.Add(context.Background(), testAppointment("a1"))
	_ = repo.Add(context.Background(), testAppointment("a2"))

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/appointments", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Appointments []Appointment `json:"appointments"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Appointments, 2)
	assert.Equal(t, "a2", resp.Appointments[0].ID)
}
