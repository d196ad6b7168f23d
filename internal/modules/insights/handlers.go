package insights

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler handles insight HTTP requests
type Handler struct {
	service *Service
	log     zerolog.Logger
}

// NewHandler creates a new insight handler
func NewHandler(service *Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "insights").Logger(),
	}
}

// Routes mounts the insight endpoints
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.HandleList)
	r.Post("/generate", h.HandleGenerate)
	r.Post("/{id}/read", h.HandleMarkRead)
	r.Delete("/{id}", h.HandleDismiss)
	r.Delete("/", h.HandleClear)
}

// HandleList returns all active insights, already sorted
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	list := h.service.List()
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"insights":     list,
		"unread_count": h.service.UnreadCount(),
	})
}

// HandleGenerate triggers a fresh rule scan
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	added := h.service.Generate()
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"added":    added,
		"insights": h.service.List(),
	})
}

// HandleMarkRead flags an insight as read
func (h *Handler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.MarkRead(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "insight not found")
			return
		}
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "read"})
}

// HandleDismiss removes an insight
func (h *Handler) HandleDismiss(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Dismiss(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "insight not found")
			return
		}
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "dismissed"})
}

// HandleClear removes every insight
func (h *Handler) HandleClear(w http.ResponseWriter, r *http.Request) {
	h.service.Clear()
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
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
