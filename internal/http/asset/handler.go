package asset

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/tilapiasuite/tilapia/internal/actor"
	"github.com/tilapiasuite/tilapia/internal/asset"
	"github.com/tilapiasuite/tilapia/internal/journal"
)

type Handler struct {
	svc *asset.Service
}

func NewHandler(svc *asset.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.register)
	r.Get("/", h.list)
	r.Get("/{code}", h.get)
	r.Delete("/{code}", h.remove)
	r.Get("/{code}/schedule", h.schedule)
	r.Post("/{code}/depreciation", h.postDepreciation)
}

type assetResponse struct {
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	Cost            decimal.Decimal `json:"cost"`
	SalvageValue    decimal.Decimal `json:"salvage_value"`
	UsefulLifeYears int             `json:"useful_life_years"`
	Method          string          `json:"method"`
	PurchaseDate    time.Time       `json:"purchase_date"`

	ExpenseAccountCode     string `json:"expense_account_code"`
	AccumulatedAccountCode string `json:"accumulated_account_code"`

	AccumulatedDepreciation decimal.Decimal `json:"accumulated_depreciation"`
	BookValue               decimal.Decimal `json:"book_value"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func toResponse(a *asset.Asset) assetResponse {
	return assetResponse{
		Code:                    a.Code,
		Name:                    a.Name,
		Cost:                    a.Cost,
		SalvageValue:            a.SalvageValue,
		UsefulLifeYears:         a.UsefulLifeYears,
		Method:                  string(a.Method),
		PurchaseDate:            a.PurchaseDate,
		ExpenseAccountCode:      a.ExpenseAccountCode,
		AccumulatedAccountCode:  a.AccumulatedAccountCode,
		AccumulatedDepreciation: a.AccumulatedDepreciation,
		BookValue:               a.BookValue(),
		CreatedAt:               a.CreatedAt,
		UpdatedAt:               a.UpdatedAt,
	}
}

type registerRequest struct {
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	Cost            decimal.Decimal `json:"cost"`
	SalvageValue    decimal.Decimal `json:"salvage_value"`
	UsefulLifeYears int             `json:"useful_life_years"`
	Method          string          `json:"method"`
	PurchaseDate    time.Time       `json:"purchase_date"`

	ExpenseAccountCode     string `json:"expense_account_code"`
	AccumulatedAccountCode string `json:"accumulated_account_code"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	act, ok := actor.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	a, err := h.svc.Register(r.Context(), act, asset.RegisterParams{
		Code:                   req.Code,
		Name:                   req.Name,
		Cost:                   req.Cost,
		SalvageValue:           req.SalvageValue,
		UsefulLifeYears:        req.UsefulLifeYears,
		Method:                 asset.Method(req.Method),
		PurchaseDate:           req.PurchaseDate,
		ExpenseAccountCode:     req.ExpenseAccountCode,
		AccumulatedAccountCode: req.AccumulatedAccountCode,
	})
	if err != nil {
		switch {
		case errors.Is(err, asset.ErrForbidden):
			http.Error(w, err.Error(), http.StatusForbidden)
		case errors.Is(err, asset.ErrDuplicate):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, asset.ErrInvalidMethod),
			errors.Is(err, asset.ErrInvalidSchedule):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(a)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	assets, err := h.svc.List(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := make([]assetResponse, len(assets))
	for i, a := range assets {
		resp[i] = toResponse(a)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.Get(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		if errors.Is(err, asset.ErrNotFound) {
			http.Error(w, "asset not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(a)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	act, ok := actor.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	if err := h.svc.Remove(r.Context(), act, chi.URLParam(r, "code")); err != nil {
		switch {
		case errors.Is(err, asset.ErrForbidden):
			http.Error(w, err.Error(), http.StatusForbidden)
		case errors.Is(err, asset.ErrNotFound):
			http.Error(w, "asset not found", http.StatusNotFound)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type scheduleEntryResponse struct {
	Year        int             `json:"year"`
	Expense     decimal.Decimal `json:"expense"`
	Accumulated decimal.Decimal `json:"accumulated"`
	BookValue   decimal.Decimal `json:"book_value"`
}

func (h *Handler) schedule(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.Get(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		if errors.Is(err, asset.ErrNotFound) {
			http.Error(w, "asset not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	entries, err := a.Schedule()
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	resp := make([]scheduleEntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = scheduleEntryResponse{
			Year:        e.Year,
			Expense:     e.Expense,
			Accumulated: e.Accumulated,
			BookValue:   e.BookValue,
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type postDepreciationRequest struct {
	Year int `json:"year"`
}

func (h *Handler) postDepreciation(w http.ResponseWriter, r *http.Request) {
	act, ok := actor.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req postDepreciationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	lines, err := h.svc.PostDepreciation(r.Context(), act, chi.URLParam(r, "code"), req.Year)
	if err != nil {
		switch {
		case errors.Is(err, asset.ErrForbidden), errors.Is(err, journal.ErrForbidden):
			http.Error(w, err.Error(), http.StatusForbidden)
		case errors.Is(err, asset.ErrNotFound):
			http.Error(w, "asset not found", http.StatusNotFound)
		case errors.Is(err, asset.ErrAlreadyPosted):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, asset.ErrYearOutOfRange):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(map[string]any{
		"reference_code": asset.DepreciationReference(chi.URLParam(r, "code"), req.Year),
		"lines_posted":   len(lines),
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
