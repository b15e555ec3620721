package journal

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
	"github.com/tilapiasuite/tilapia/internal/journal"
)

type Handler struct {
	svc *journal.Service
}

func NewHandler(svc *journal.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.post)
	r.Get("/", h.list)
	r.Delete("/reference/{ref}", h.void)
	r.Patch("/{id}", h.updateLine)
	r.Delete("/{id}", h.deleteLine)
}

type entryLineRequest struct {
	AccountCode string          `json:"account_code"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

type postEntryRequest struct {
	Date          time.Time          `json:"date"`
	Class         string             `json:"class"`
	ReferenceCode string             `json:"reference_code"`
	Lines         []entryLineRequest `json:"lines"`
}

type lineResponse struct {
	ID            uuid.UUID       `json:"id"`
	Date          time.Time       `json:"date"`
	AccountCode   string          `json:"account_code"`
	AccountName   string          `json:"account_name"`
	Description   string          `json:"description"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Class         string          `json:"class"`
	ReferenceCode string          `json:"reference_code,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     *time.Time      `json:"updated_at,omitempty"`
}

func toResponse(l *journal.Line) lineResponse {
	return lineResponse{
		ID:            l.ID,
		Date:          l.Date,
		AccountCode:   l.AccountCode,
		AccountName:   l.AccountName,
		Description:   l.Description,
		Debit:         l.Debit,
		Credit:        l.Credit,
		Class:         string(l.Class),
		ReferenceCode: l.ReferenceCode,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}

func toResponseList(lines []*journal.Line) []lineResponse {
	resp := make([]lineResponse, len(lines))
	for i, l := range lines {
		resp[i] = toResponse(l)
	}

	return resp
}

func (h *Handler) post(w http.ResponseWriter, r *http.Request) {
	act, ok := actor.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req postEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	class := journal.Class(req.Class)
	if class == "" {
		class = journal.ClassGeneral
	}

	lines := make([]journal.EntryLine, len(req.Lines))
	for i, el := range req.Lines {
		lines[i] = journal.EntryLine{
			AccountCode: el.AccountCode,
			Description: el.Description,
			Debit:       el.Debit,
			Credit:      el.Credit,
		}
	}

	posted, err := h.svc.Post(r.Context(), act, journal.PostParams{
		Date:          req.Date,
		Class:         class,
		ReferenceCode: req.ReferenceCode,
		Lines:         lines,
	})
	if err != nil {
		switch {
		case errors.Is(err, journal.ErrForbidden):
			http.Error(w, err.Error(), http.StatusForbidden)
		case errors.Is(err, journal.ErrUnbalanced),
			errors.Is(err, journal.ErrEmptyEntry),
			errors.Is(err, journal.ErrBothSides),
			errors.Is(err, journal.ErrNegativeAmount),
			errors.Is(err, journal.ErrUnknownAccount):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponseList(posted)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := journal.ListFilter{}

	q := r.URL.Query()

	for _, c := range q["class"] {
		filter.Classes = append(filter.Classes, journal.Class(c))
	}

	if s := q.Get("start_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.StartDate = &t
		}
	}

	if s := q.Get("end_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.EndDate = &t
		}
	}

	if s := q.Get("account_code"); s != "" {
		filter.AccountCode = &s
	}

	if s := q.Get("reference_code"); s != "" {
		filter.ReferenceCode = &s
	}

	lines, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(lines)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) void(w http.ResponseWriter, r *http.Request) {
	act, ok := actor.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	if err := h.svc.Void(r.Context(), act, chi.URLParam(r, "ref")); err != nil {
		if errors.Is(err, journal.ErrForbidden) {
			http.Error(w, err.Error(), http.StatusForbidden)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type updateLineRequest struct {
	Date        *time.Time       `json:"date,omitempty"`
	AccountCode *string          `json:"account_code,omitempty"`
	Description *string          `json:"description,omitempty"`
	Debit       *decimal.Decimal `json:"debit,omitempty"`
	Credit      *decimal.Decimal `json:"credit,omitempty"`
}

func (h *Handler) updateLine(w http.ResponseWriter, r *http.Request) {
	act, ok := actor.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// An optional reference_code query narrows the lookup; without it the
	// line is searched across the whole journal.
	ref := refFilterFromQuery(r)

	lines, err := h.svc.List(r.Context(), journal.ListFilter{ReferenceCode: ref})
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	var line *journal.Line

	for _, l := range lines {
		if l.ID == id {
			line = l
			break
		}
	}

	if line == nil {
		http.Error(w, "line not found", http.StatusNotFound)
		return
	}

	if req.Date != nil {
		line.Date = *req.Date
	}

	if req.AccountCode != nil {
		line.AccountCode = *req.AccountCode
	}

	if req.Description != nil {
		line.Description = *req.Description
	}

	if req.Debit != nil {
		line.Debit = *req.Debit
	}

	if req.Credit != nil {
		line.Credit = *req.Credit
	}

	if err := h.svc.UpdateLine(r.Context(), act, line); err != nil {
		if errors.Is(err, journal.ErrForbidden) {
			http.Error(w, err.Error(), http.StatusForbidden)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(line)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) deleteLine(w http.ResponseWriter, r *http.Request) {
	act, ok := actor.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteLine(r.Context(), act, id); err != nil {
		if errors.Is(err, journal.ErrForbidden) {
			http.Error(w, err.Error(), http.StatusForbidden)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func refFilterFromQuery(r *http.Request) *string {
	if s := r.URL.Query().Get("reference_code"); s != "" {
		return &s
	}

	return nil
}
