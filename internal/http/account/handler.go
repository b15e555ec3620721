package account

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/tilapiasuite/tilapia/internal/account"
	"github.com/tilapiasuite/tilapia/internal/actor"
)

type Handler struct {
	svc *account.Service
}

func NewHandler(svc *account.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{code}", h.get)
	r.Patch("/{code}", h.update)
	r.Delete("/{code}", h.delete)
}

type accountResponse struct {
	Code             string          `json:"code"`
	Name             string          `json:"name"`
	Type             string          `json:"type"`
	NormalBalance    string          `json:"normal_balance"`
	BeginningBalance decimal.Decimal `json:"beginning_balance"`
}

func toResponse(acc *account.Account) accountResponse {
	return accountResponse{
		Code:             acc.Code,
		Name:             acc.Name,
		Type:             string(acc.Type),
		NormalBalance:    string(acc.NormalBalance),
		BeginningBalance: acc.BeginningBalance,
	}
}

type createAccountRequest struct {
	Code             string          `json:"code"`
	Name             string          `json:"name"`
	NormalBalance    string          `json:"normal_balance,omitempty"`
	BeginningBalance decimal.Decimal `json:"beginning_balance"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	act, ok := actor.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	acc, err := h.svc.Register(r.Context(), act, account.RegisterParams{
		Code:             req.Code,
		Name:             req.Name,
		NormalBalance:    account.NormalBalance(req.NormalBalance),
		BeginningBalance: req.BeginningBalance,
	})
	if err != nil {
		switch {
		case errors.Is(err, account.ErrForbidden):
			http.Error(w, err.Error(), http.StatusForbidden)
		case errors.Is(err, account.ErrInvalidCode):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		case errors.Is(err, account.ErrDuplicate):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(acc)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	accs, err := h.svc.List(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := make([]accountResponse, len(accs))
	for i, acc := range accs {
		resp[i] = toResponse(acc)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	acc, err := h.svc.Get(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			http.Error(w, "account not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(acc)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateAccountRequest struct {
	Name             string          `json:"name"`
	BeginningBalance decimal.Decimal `json:"beginning_balance"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	act, ok := actor.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req updateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err := h.svc.RenameOrAdjust(r.Context(), act, chi.URLParam(r, "code"), req.Name, req.BeginningBalance)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrForbidden):
			http.Error(w, err.Error(), http.StatusForbidden)
		case errors.Is(err, account.ErrNotFound):
			http.Error(w, "account not found", http.StatusNotFound)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	act, ok := actor.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	if err := h.svc.Remove(r.Context(), act, chi.URLParam(r, "code")); err != nil {
		switch {
		case errors.Is(err, account.ErrForbidden):
			http.Error(w, err.Error(), http.StatusForbidden)
		case errors.Is(err, account.ErrNotFound):
			http.Error(w, "account not found", http.StatusNotFound)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
