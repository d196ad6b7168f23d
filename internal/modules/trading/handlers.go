package trading

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/stockport/portfolio-engine/internal/domain"
)

// Handler handles trading HTTP requests
type Handler struct {
	service *Service
	log     zerolog.Logger
}

// NewHandler creates a new trading handler
func NewHandler(service *Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "trading").Logger(),
	}
}

// Routes mounts the trading endpoints
func (h *Handler) Routes(r chi.Router) {
	r.Post("/buy", h.HandleBuy)
	r.Post("/sell", h.HandleSell)
	r.Get("/transactions", h.HandleTransactions)
	r.Get("/transactions/{symbol}", h.HandleTransactionsForSymbol)
}

type orderRequest struct {
	Symbol   string  `json:"symbol"`
	Quantity int64   `json:"quantity"`
	Price    float64 `json:"price"`
}

// HandleBuy executes a buy order. Price is optional; omitted or zero fills
// at the current quote.
func (h *Handler) HandleBuy(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tx, err := h.service.Buy(req.Symbol, req.Quantity, req.Price)
	if err != nil {
		h.writeOrderError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, tx)
}

// HandleSell executes a sell order
func (h *Handler) HandleSell(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tx, err := h.service.Sell(req.Symbol, req.Quantity, req.Price)
	if err != nil {
		h.writeOrderError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, tx)
}

// HandleTransactions returns recent transactions, newest first. Accepts an
// optional ?limit= query parameter.
func (h *Handler) HandleTransactions(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			h.writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	txs, err := h.service.History(limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load transactions")
		h.writeError(w, http.StatusInternalServerError, "failed to load transactions")
		return
	}
	if txs == nil {
		txs = []Transaction{}
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": txs,
		"count":        len(txs),
	})
}

// HandleTransactionsForSymbol returns the history for one symbol
func (h *Handler) HandleTransactionsForSymbol(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	txs, err := h.service.HistoryForSymbol(symbol)
	if err != nil {
		h.log.Error().Err(err).Str("symbol", symbol).Msg("Failed to load transactions")
		h.writeError(w, http.StatusInternalServerError, "failed to load transactions")
		return
	}
	if txs == nil {
		txs = []Transaction{}
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"symbol":       symbol,
		"transactions": txs,
		"count":        len(txs),
	})
}

// writeOrderError maps domain errors onto HTTP status codes
func (h *Handler) writeOrderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity), errors.Is(err, domain.ErrInvalidPrice):
		h.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInsufficientShares):
		h.writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrQuoteUnavailable):
		h.writeError(w, http.StatusBadGateway, err.Error())
	default:
		h.log.Error().Err(err).Msg("Order failed")
		h.writeError(w, http.StatusInternalServerError, err.Error())
	}
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
