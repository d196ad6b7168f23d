package analytics

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/stockport/portfolio-engine/internal/domain"
)

// Handler handles analytics HTTP requests
type Handler struct {
	service *Service
	log     zerolog.Logger
}

// NewHandler creates a new analytics handler
func NewHandler(service *Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "analytics").Logger(),
	}
}

// Routes mounts the analytics endpoints
func (h *Handler) Routes(r chi.Router) {
	r.Get("/metrics", h.HandleGetMetrics)
	r.Get("/distribution", h.HandleGetDistribution)
	r.Get("/health", h.HandleGetHealth)
	r.Get("/history", h.HandleGetHistory)
	r.Get("/performance", h.HandleGetPerformance)
	r.Get("/positions", h.HandleGetPositions)
	r.Get("/indicators/{symbol}", h.HandleGetIndicators)
}

// HandleGetMetrics returns the aggregate portfolio metrics
func (h *Handler) HandleGetMetrics(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.Metrics())
}

// HandleGetDistribution returns the category distribution
func (h *Handler) HandleGetDistribution(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.Distribution())
}

// HandleGetHealth returns the composite portfolio health score
func (h *Handler) HandleGetHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.Health())
}

// HandleGetHistory returns the daily performance series
func (h *Handler) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	days := 30
	if daysParam := r.URL.Query().Get("days"); daysParam != "" {
		if parsed, err := strconv.Atoi(daysParam); err == nil && parsed > 0 && parsed <= 365 {
			days = parsed
		}
	}
	h.writeJSON(w, http.StatusOK, h.service.History(days))
}

// HandleGetPerformance returns the history summary statistics
func (h *Handler) HandleGetPerformance(w http.ResponseWriter, r *http.Request) {
	days := 30
	if daysParam := r.URL.Query().Get("days"); daysParam != "" {
		if parsed, err := strconv.Atoi(daysParam); err == nil && parsed > 0 && parsed <= 365 {
			days = parsed
		}
	}
	h.writeJSON(w, http.StatusOK, h.service.Performance(days))
}

// HandleGetPositions returns the valued positions of the current portfolio
func (h *Handler) HandleGetPositions(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.ValuedSnapshot())
}

// HandleGetIndicators returns technical indicators for one symbol
func (h *Handler) HandleGetIndicators(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	report, err := h.service.Indicators(symbol)
	if err != nil {
		if errors.Is(err, domain.ErrQuoteUnavailable) {
			h.writeError(w, http.StatusNotFound, "no quote for symbol")
			return
		}
		h.log.Error().Err(err).Str("symbol", symbol).Msg("Failed to compute indicators")
		h.writeError(w, http.StatusInternalServerError, "failed to compute indicators")
		return
	}

	h.writeJSON(w, http.StatusOK, report)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
