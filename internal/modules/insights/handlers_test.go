package insights

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listResponse struct {
	Insights    []Insight `json:"insights"`
	UnreadCount int       `json:"unread_count"`
}

func setupHandlerTest(t *testing.T) (*chi.Mux, *Service) {
	t.Helper()

	svc, _ := setupInsights(t, &stubSnapshotter{valued: twoStockPortfolio()}, time.Hour)

	router := chi.NewRouter()
	router.Route("/api/insights", NewHandler(svc, zerolog.Nop()).Routes)

	return router, svc
}

func TestGenerateEndpoint(t *testing.T) {
	router, _ := setupHandlerTest(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/insights/generate", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Added    []Insight `json:"added"`
		Insights []Insight `json:"insights"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Added)
	assert.Len(t, resp.Insights, len(resp.Added))
}

func TestListEndpoint(t *testing.T) {
	router, svc := setupHandlerTest(t)
	added := svc.Generate()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/insights/", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp listResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Insights, len(added))
	assert.Equal(t, len(added), resp.UnreadCount)

	// Sorted by priority, urgent first
	for i := 1; i < len(resp.Insights); i++ {
		assert.GreaterOrEqual(t,
			resp.Insights[i-1].Priority.Rank(),
			resp.Insights[i].Priority.Rank())
	}
}

func TestMarkReadEndpoint(t *testing.T) {
	router, svc := setupHandlerTest(t)
	added := svc.Generate()
	require.NotEmpty(t, added)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/insights/"+added[0].ID+"/read", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, len(added)-1, svc.UnreadCount())
}

func TestMarkReadUnknownEndpoint(t *testing.T) {
	router, _ := setupHandlerTest(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/insights/unknown-id/read", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDismissEndpoint(t *testing.T) {
	router, svc := setupHandlerTest(t)
	added := svc.Generate()
	require.NotEmpty(t, added)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/insights/"+added[0].ID, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, svc.List(), len(added)-1)
}

func TestClearEndpoint(t *testing.T) {
	router, svc := setupHandlerTest(t)
	require.NotEmpty(t, svc.Generate())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/insights/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, svc.List())
}
