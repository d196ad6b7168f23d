package alerts

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/stockport/portfolio-engine/internal/domain"
)

// Handler handles alert HTTP requests
type Handler struct {
	service *Service
	log     zerolog.Logger
}

// NewHandler creates a new alert handler
func NewHandler(service *Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "alerts").Logger(),
	}
}

// Routes mounts the alert endpoints
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)
	r.Post("/check", h.HandleCheck)
	r.Post("/{id}/cancel", h.HandleCancel)
	r.Delete("/{id}", h.HandleDelete)
}

type createRequest struct {
	Symbol      string  `json:"symbol"`
	Condition   string  `json:"condition"`
	TargetPrice float64 `json:"target_price"`
}

// HandleList returns all alerts, active first
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	list := h.service.List()
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"alerts": list,
		"count":  len(list),
	})
}

// HandleCreate registers a new price alert
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	alert, err := h.service.Create(req.Symbol, Condition(req.Condition), req.TargetPrice)
	if err != nil {
		if errors.Is(err, ErrInvalidCondition) || errors.Is(err, domain.ErrInvalidPrice) {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Error().Err(err).Msg("Failed to create alert")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusCreated, alert)
}

// HandleCheck runs an on-demand alert evaluation pass
func (h *Handler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	fired := h.service.CheckAll()
	if fired == nil {
		fired = []Alert{}
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"triggered": fired,
		"count":     len(fired),
	})
}

// HandleCancel marks an alert cancelled
func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Cancel(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "alert not found")
			return
		}
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

// HandleDelete removes an alert
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Delete(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "alert not found")
			return
		}
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
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
