package inventory

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tilapiasuite/tilapia/internal/actor"
	"github.com/tilapiasuite/tilapia/internal/inventory"
)

type Handler struct {
	svc *inventory.Service
}

func NewHandler(svc *inventory.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/purchases", h.recordPurchase)
	r.Post("/sales", h.recordSale)
	r.Get("/card", h.card)
	r.Post("/recalculate", h.recalculate)
}

type cardRowResponse struct {
	ID            uuid.UUID `json:"id"`
	Date          time.Time `json:"date"`
	ReferenceCode string    `json:"reference_code,omitempty"`
	Description   string    `json:"description"`
	ProductName   string    `json:"product_name"`

	PurchaseQuantity  decimal.Decimal `json:"purchase_quantity"`
	PurchaseUnitPrice decimal.Decimal `json:"purchase_unit_price"`
	PurchaseAmount    decimal.Decimal `json:"purchase_amount"`

	SalesQuantity  decimal.Decimal `json:"sales_quantity"`
	SalesUnitPrice decimal.Decimal `json:"sales_unit_price"`
	SalesAmount    decimal.Decimal `json:"sales_amount"`

	BalanceQuantity  decimal.Decimal `json:"balance_quantity"`
	BalanceUnitPrice decimal.Decimal `json:"balance_unit_price"`
	BalanceAmount    decimal.Decimal `json:"balance_amount"`

	Employee  string     `json:"employee"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func toResponse(row *inventory.CardRow) cardRowResponse {
	return cardRowResponse{
		ID:                row.ID,
		Date:              row.Date,
		ReferenceCode:     row.ReferenceCode,
		Description:       row.Description,
		ProductName:       row.ProductName,
		PurchaseQuantity:  row.PurchaseQuantity,
		PurchaseUnitPrice: row.PurchaseUnitPrice,
		PurchaseAmount:    row.PurchaseAmount,
		SalesQuantity:     row.SalesQuantity,
		SalesUnitPrice:    row.SalesUnitPrice,
		SalesAmount:       row.SalesAmount,
		BalanceQuantity:   row.BalanceQuantity,
		BalanceUnitPrice:  row.BalanceUnitPrice,
		BalanceAmount:     row.BalanceAmount,
		Employee:          row.Employee,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}
}

type purchaseRequest struct {
	Product       string          `json:"product"`
	Date          time.Time       `json:"date"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Description   string          `json:"description"`
	ReferenceCode string          `json:"reference_code"`
}

func (h *Handler) recordPurchase(w http.ResponseWriter, r *http.Request) {
	act, ok := actor.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req purchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	row, err := h.svc.RecordPurchase(r.Context(), act, inventory.PurchaseParams{
		Product:       req.Product,
		Date:          req.Date,
		Quantity:      req.Quantity,
		UnitPrice:     req.UnitPrice,
		Description:   req.Description,
		ReferenceCode: req.ReferenceCode,
	})
	if err != nil {
		writeMoveError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(row)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type saleRequest struct {
	Product       string          `json:"product"`
	Date          time.Time       `json:"date"`
	Quantity      decimal.Decimal `json:"quantity"`
	Description   string          `json:"description"`
	ReferenceCode string          `json:"reference_code"`
}

func (h *Handler) recordSale(w http.ResponseWriter, r *http.Request) {
	act, ok := actor.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req saleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	row, err := h.svc.RecordSale(r.Context(), act, inventory.SaleParams{
		Product:       req.Product,
		Date:          req.Date,
		Quantity:      req.Quantity,
		Description:   req.Description,
		ReferenceCode: req.ReferenceCode,
	})
	if err != nil {
		writeMoveError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(row)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeMoveError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, inventory.ErrForbidden):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, inventory.ErrInsufficientStock),
		errors.Is(err, inventory.ErrNonPositiveQuantity),
		errors.Is(err, inventory.ErrNegativePrice):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (h *Handler) card(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.Card(r.Context(), r.URL.Query().Get("product"))
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := make([]cardRowResponse, len(rows))
	for i, row := range rows {
		resp[i] = toResponse(row)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) recalculate(w http.ResponseWriter, r *http.Request) {
	act, ok := actor.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	if err := h.svc.RecalculateAll(r.Context(), act); err != nil {
		if errors.Is(err, inventory.ErrForbidden) {
			http.Error(w, err.Error(), http.StatusForbidden)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
