package gateway

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"taker_go/internal/domain"
	"taker_go/internal/infra"
	"taker_go/internal/infra/storage"
	"taker_go/internal/service"

	"github.com/go-chi/chi/v5"
)

// Handlers serves the web shell's local API. All form mutations go through
// the FormService; handlers only translate HTTP to operations.
type Handlers struct {
	form   *service.FormService
	store  *storage.Storage
	wallet domain.BalanceProvider
	theme  string // Default theme from config, used until a preference is saved.
	logger *slog.Logger
}

func NewHandlers(form *service.FormService, store *storage.Storage, wallet domain.BalanceProvider, defaultTheme string, logger *slog.Logger) *Handlers {
	return &Handlers{
		form:   form,
		store:  store,
		wallet: wallet,
		theme:  defaultTheme,
		logger: logger,
	}
}

// GetForm returns the full form view: quote, account, draft, derived terms,
// evaluation and flow state.
func (h *Handlers) GetForm(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.form.Snapshot())
}

type quantityRequest struct {
	Quantity string `json:"quantity"` // Raw field content, not yet validated.
}

func (h *Handlers) SetQuantity(w http.ResponseWriter, r *http.Request) {
	var req quantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.form.SetQuantityInput(req.Quantity)
	writeJSON(w, http.StatusOK, h.form.Snapshot())
}

type directionRequest struct {
	Direction string `json:"direction"`
}

func (h *Handlers) BeginConfirmation(w http.ResponseWriter, r *http.Request) {
	var req directionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	direction, err := domain.ParseDirection(req.Direction)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.form.BeginConfirmation(direction); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}

	if h.store != nil {
		if err := h.store.SavePreference(domain.PrefLastDirection, string(direction)); err != nil {
			h.logger.Warn("Failed to persist direction", slog.Any("error", err))
		}
	}
	writeJSON(w, http.StatusOK, h.form.Snapshot())
}

func (h *Handlers) Confirm(w http.ResponseWriter, r *http.Request) {
	err := h.form.ConfirmSubmit(r.Context())
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, h.form.Snapshot())
	case errors.Is(err, domain.ErrNoConfirmation),
		errors.Is(err, domain.ErrSubmissionInFlight),
		errors.Is(err, domain.ErrNotEligible):
		writeError(w, http.StatusConflict, err.Error())
	default:
		// Daemon rejection or transport failure; the form stays editable.
		writeError(w, http.StatusBadGateway, err.Error())
	}
}

func (h *Handlers) Cancel(w http.ResponseWriter, r *http.Request) {
	h.form.CancelConfirmation()
	writeJSON(w, http.StatusOK, h.form.Snapshot())
}

// GetWallet backs the wallet navigation target with a fresh balance from
// the daemon, independent of the feed snapshot the form holds.
func (h *Handlers) GetWallet(w http.ResponseWriter, r *http.Request) {
	balance, err := h.wallet.GetWalletBalance(r.Context())
	if err != nil {
		h.logger.Warn("Failed to fetch wallet balance", slog.Any("error", err))
		writeError(w, http.StatusBadGateway, "daemon unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"balance": balance.String()})
}

func (h *Handlers) GetMarkets(w http.ResponseWriter, r *http.Request) {
	markets, err := h.store.FindAll()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load markets")
		return
	}
	writeJSON(w, http.StatusOK, markets)
}

func (h *Handlers) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	isFav, err := h.store.ToggleFavorite(symbol)
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown market")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"is_favorite": isFav})
}

type themePayload struct {
	Theme string `json:"theme"`
}

func (h *Handlers) GetTheme(w http.ResponseWriter, r *http.Request) {
	theme := h.theme
	if h.store != nil {
		if saved, err := h.store.GetPreference(domain.PrefTheme); err == nil && saved != "" {
			theme = saved
		}
	}
	writeJSON(w, http.StatusOK, themePayload{Theme: theme})
}

func (h *Handlers) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req themePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Theme == "" {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.store.SavePreference(domain.PrefTheme, req.Theme); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save theme")
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (h *Handlers) GetMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, infra.GlobalMetrics.Snapshot())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
