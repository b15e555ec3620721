package importcsv

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
	"github.com/tilapiasuite/tilapia/internal/importer"
	"github.com/tilapiasuite/tilapia/internal/journal"
)

type Handler struct {
	svc *importer.Service
}

func NewHandler(svc *importer.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type lineResponse struct {
	ID            uuid.UUID       `json:"id"`
	Date          time.Time       `json:"date"`
	AccountCode   string          `json:"account_code"`
	Description   string          `json:"description"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	ReferenceCode string          `json:"reference_code"`
}

type importResponse struct {
	Imported int            `json:"imported"`
	Lines    []lineResponse `json:"lines"`
}

func toResponse(lines []*journal.Line) importResponse {
	resp := importResponse{
		Imported: len(lines),
		Lines:    make([]lineResponse, len(lines)),
	}

	for i, l := range lines {
		resp.Lines[i] = lineResponse{
			ID:            l.ID,
			Date:          l.Date,
			AccountCode:   l.AccountCode,
			Description:   l.Description,
			Debit:         l.Debit,
			Credit:        l.Credit,
			ReferenceCode: l.ReferenceCode,
		}
	}

	return resp
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	act, ok := actor.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	posted, err := h.svc.Import(r.Context(), act, file)
	if err != nil {
		switch {
		case errors.Is(err, importer.ErrUnknownFormat):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		case errors.Is(err, journal.ErrForbidden):
			http.Error(w, err.Error(), http.StatusForbidden)
		default:
			// Posting stops at the first failing movement; report how far
			// it got so the caller can fix the file and re-import the rest.
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)

			resp := struct {
				importResponse
				Error string `json:"error"`
			}{toResponse(posted), err.Error()}

			if err := json.NewEncoder(w).Encode(resp); err != nil {
				slog.Error("failed to encode response", "error", err)
			}
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(posted)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
