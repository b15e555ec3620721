package report

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/tilapiasuite/tilapia/internal/account"
	"github.com/tilapiasuite/tilapia/internal/actor"
	"github.com/tilapiasuite/tilapia/internal/journal"
	"github.com/tilapiasuite/tilapia/internal/ledger"
	"github.com/tilapiasuite/tilapia/internal/report"
)

type Handler struct {
	reports *report.Service
	ledger  *ledger.Service
}

func NewHandler(reports *report.Service, ledgerSvc *ledger.Service) *Handler {
	return &Handler{reports: reports, ledger: ledgerSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/trial-balance", h.trialBalance)
	r.Get("/adjusted-trial-balance", h.adjustedTrialBalance)
	r.Get("/income-statement", h.incomeStatement)
	r.Get("/equity-statement", h.equityStatement)
	r.Get("/balance-sheet", h.balanceSheet)
	r.Get("/worksheet", h.worksheet)
	r.Get("/cash-flow", h.cashFlow)
	r.Post("/close", h.closeBooks)
}

func asOfFromQuery(r *http.Request) *time.Time {
	if s := r.URL.Query().Get("as_of"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			return &t
		}
	}

	return nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type trialBalanceRowResponse struct {
	Code   string          `json:"code"`
	Name   string          `json:"name"`
	Debit  decimal.Decimal `json:"debit"`
	Credit decimal.Decimal `json:"credit"`
}

type trialBalanceResponse struct {
	Rows               []trialBalanceRowResponse `json:"rows"`
	TotalDebit         decimal.Decimal           `json:"total_debit"`
	TotalCredit        decimal.Decimal           `json:"total_credit"`
	TotalDebitDisplay  string                    `json:"total_debit_display"`
	TotalCreditDisplay string                    `json:"total_credit_display"`
	Balanced           bool                      `json:"balanced"`
}

func toTrialBalanceResponse(tb *report.TrialBalance) trialBalanceResponse {
	rows := make([]trialBalanceRowResponse, len(tb.Rows))
	for i, row := range tb.Rows {
		rows[i] = trialBalanceRowResponse{
			Code:   row.Code,
			Name:   row.Name,
			Debit:  row.Debit,
			Credit: row.Credit,
		}
	}

	return trialBalanceResponse{
		Rows:               rows,
		TotalDebit:         tb.TotalDebit,
		TotalCredit:        tb.TotalCredit,
		TotalDebitDisplay:  display(tb.TotalDebit),
		TotalCreditDisplay: display(tb.TotalCredit),
		Balanced:           tb.Balanced,
	}
}

func (h *Handler) trialBalance(w http.ResponseWriter, r *http.Request) {
	tb, err := h.reports.TrialBalance(r.Context(), asOfFromQuery(r))
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, toTrialBalanceResponse(tb))
}

func (h *Handler) adjustedTrialBalance(w http.ResponseWriter, r *http.Request) {
	tb, err := h.reports.AdjustedTrialBalance(r.Context(), asOfFromQuery(r))
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, toTrialBalanceResponse(tb))
}

type statementLineResponse struct {
	Code   string          `json:"code"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

func toStatementLines(lines []report.StatementLine) []statementLineResponse {
	out := make([]statementLineResponse, len(lines))
	for i, l := range lines {
		out[i] = statementLineResponse{Code: l.Code, Name: l.Name, Amount: l.Amount}
	}

	return out
}

type incomeStatementResponse struct {
	Revenues         []statementLineResponse `json:"revenues"`
	TotalRevenue     decimal.Decimal         `json:"total_revenue"`
	Expenses         []statementLineResponse `json:"expenses"`
	TotalExpense     decimal.Decimal         `json:"total_expense"`
	NetIncome        decimal.Decimal         `json:"net_income"`
	NetIncomeDisplay string                  `json:"net_income_display"`
}

func (h *Handler) incomeStatement(w http.ResponseWriter, r *http.Request) {
	is, err := h.reports.IncomeStatement(r.Context(), asOfFromQuery(r))
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, incomeStatementResponse{
		Revenues:         toStatementLines(is.Revenues),
		TotalRevenue:     is.TotalRevenue,
		Expenses:         toStatementLines(is.Expenses),
		TotalExpense:     is.TotalExpense,
		NetIncome:        is.NetIncome,
		NetIncomeDisplay: display(is.NetIncome),
	})
}

type equityStatementResponse struct {
	InitialEquity      decimal.Decimal `json:"initial_equity"`
	NetIncome          decimal.Decimal `json:"net_income"`
	Drawings           decimal.Decimal `json:"drawings"`
	FinalEquity        decimal.Decimal `json:"final_equity"`
	FinalEquityDisplay string          `json:"final_equity_display"`
}

func toEquityResponse(es *report.EquityStatement) equityStatementResponse {
	return equityStatementResponse{
		InitialEquity:      es.InitialEquity,
		NetIncome:          es.NetIncome,
		Drawings:           es.Drawings,
		FinalEquity:        es.FinalEquity,
		FinalEquityDisplay: display(es.FinalEquity),
	}
}

func (h *Handler) equityStatement(w http.ResponseWriter, r *http.Request) {
	es, err := h.reports.EquityStatement(r.Context(), asOfFromQuery(r))
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, toEquityResponse(es))
}

type balanceSheetResponse struct {
	Assets             []statementLineResponse `json:"assets"`
	TotalAssets        decimal.Decimal         `json:"total_assets"`
	TotalAssetsDisplay string                  `json:"total_assets_display"`
	Liabilities        []statementLineResponse `json:"liabilities"`
	TotalLiabilities   decimal.Decimal         `json:"total_liabilities"`
	Equity             equityStatementResponse `json:"equity"`
	TotalLiabEquity    decimal.Decimal         `json:"total_liabilities_equity"`
	Balanced           bool                    `json:"balanced"`
	ReconciliationNote string                  `json:"reconciliation_note,omitempty"`
}

func (h *Handler) balanceSheet(w http.ResponseWriter, r *http.Request) {
	bs, err := h.reports.BalanceSheet(r.Context(), asOfFromQuery(r))
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := balanceSheetResponse{
		Assets:             toStatementLines(bs.Assets),
		TotalAssets:        bs.TotalAssets,
		TotalAssetsDisplay: display(bs.TotalAssets),
		Liabilities:        toStatementLines(bs.Liabilities),
		TotalLiabilities:   bs.TotalLiabilities,
		Equity:             toEquityResponse(&bs.Equity),
		TotalLiabEquity:    bs.TotalLiabEquity,
		Balanced:           bs.Balanced,
	}

	if !bs.Balanced {
		resp.ReconciliationNote = "assets do not equal liabilities plus equity"
	}

	writeJSON(w, resp)
}

type pairResponse struct {
	Debit  decimal.Decimal `json:"debit"`
	Credit decimal.Decimal `json:"credit"`
}

func toPair(p report.Pair) pairResponse {
	return pairResponse{Debit: p.Debit, Credit: p.Credit}
}

type worksheetRowResponse struct {
	Code                 string       `json:"code"`
	Name                 string       `json:"name"`
	TrialBalance         pairResponse `json:"trial_balance"`
	Adjustments          pairResponse `json:"adjustments"`
	AdjustedTrialBalance pairResponse `json:"adjusted_trial_balance"`
	IncomeStatement      pairResponse `json:"income_statement"`
	BalanceSheet         pairResponse `json:"balance_sheet"`
}

type worksheetResponse struct {
	Rows             []worksheetRowResponse `json:"rows"`
	NetIncome        decimal.Decimal        `json:"net_income"`
	NetIncomeDisplay string                 `json:"net_income_display"`
	IncomeTotals     pairResponse           `json:"income_totals"`
	BalanceTotals    pairResponse           `json:"balance_totals"`
	Balanced         bool                   `json:"balanced"`
}

func (h *Handler) worksheet(w http.ResponseWriter, r *http.Request) {
	ws, err := h.reports.Worksheet(r.Context(), asOfFromQuery(r))
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	rows := make([]worksheetRowResponse, len(ws.Rows))
	for i, row := range ws.Rows {
		rows[i] = worksheetRowResponse{
			Code:                 row.Code,
			Name:                 row.Name,
			TrialBalance:         toPair(row.TrialBalance),
			Adjustments:          toPair(row.Adjustments),
			AdjustedTrialBalance: toPair(row.AdjustedTrialBalance),
			IncomeStatement:      toPair(row.IncomeStatement),
			BalanceSheet:         toPair(row.BalanceSheet),
		}
	}

	writeJSON(w, worksheetResponse{
		Rows:             rows,
		NetIncome:        ws.NetIncome,
		NetIncomeDisplay: display(ws.NetIncome),
		IncomeTotals:     toPair(ws.IncomeTotals),
		BalanceTotals:    toPair(ws.BalanceTotals),
		Balanced:         ws.Balanced,
	})
}

type cashFlowItemResponse struct {
	AccountCode string          `json:"account_code"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

type cashFlowSectionResponse struct {
	Inflows  []cashFlowItemResponse `json:"inflows"`
	Outflows []cashFlowItemResponse `json:"outflows"`
	TotalIn  decimal.Decimal        `json:"total_in"`
	TotalOut decimal.Decimal        `json:"total_out"`
	Net      decimal.Decimal        `json:"net"`
}

type cashFlowResponse struct {
	Operating          cashFlowSectionResponse `json:"operating"`
	Investing          cashFlowSectionResponse `json:"investing"`
	Financing          cashFlowSectionResponse `json:"financing"`
	Unclassified       []cashFlowItemResponse  `json:"unclassified,omitempty"`
	BeginningCash      decimal.Decimal         `json:"beginning_cash"`
	NetChange          decimal.Decimal         `json:"net_change"`
	EndingCash         decimal.Decimal         `json:"ending_cash"`
	EndingCashDisplay  string                  `json:"ending_cash_display"`
	ActualCash         decimal.Decimal         `json:"actual_cash"`
	Reconciled         bool                    `json:"reconciled"`
	ReconciliationNote string                  `json:"reconciliation_note,omitempty"`
}

func toItems(items []report.CashFlowItem) []cashFlowItemResponse {
	out := make([]cashFlowItemResponse, len(items))
	for i, item := range items {
		out[i] = cashFlowItemResponse{
			AccountCode: item.AccountCode,
			Description: item.Description,
			Amount:      item.Amount,
		}
	}

	return out
}

func toSection(s report.CashFlowSection) cashFlowSectionResponse {
	return cashFlowSectionResponse{
		Inflows:  toItems(s.Inflows),
		Outflows: toItems(s.Outflows),
		TotalIn:  s.TotalIn,
		TotalOut: s.TotalOut,
		Net:      s.Net,
	}
}

func (h *Handler) cashFlow(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	start, err := time.Parse(time.DateOnly, q.Get("start_date"))
	if err != nil {
		http.Error(w, "start_date is required (YYYY-MM-DD)", http.StatusBadRequest)
		return
	}

	end, err := time.Parse(time.DateOnly, q.Get("end_date"))
	if err != nil {
		http.Error(w, "end_date is required (YYYY-MM-DD)", http.StatusBadRequest)
		return
	}

	stmt, err := h.reports.CashFlow(r.Context(), start, end)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			http.Error(w, "cash account not configured", http.StatusUnprocessableEntity)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	resp := cashFlowResponse{
		Operating:         toSection(stmt.Operating),
		Investing:         toSection(stmt.Investing),
		Financing:         toSection(stmt.Financing),
		Unclassified:      toItems(stmt.Unclassified),
		BeginningCash:     stmt.BeginningCash,
		NetChange:         stmt.NetChange,
		EndingCash:        stmt.EndingCash,
		EndingCashDisplay: display(stmt.EndingCash),
		ActualCash:        stmt.ActualCash,
		Reconciled:        stmt.Reconciled,
	}

	if !stmt.Reconciled {
		resp.ReconciliationNote = "derived ending cash does not match the ledger balance"
	}

	writeJSON(w, resp)
}

type closeBooksRequest struct {
	AsOf              time.Time `json:"as_of"`
	EquityAccountCode string    `json:"equity_account_code"`
}

func (h *Handler) closeBooks(w http.ResponseWriter, r *http.Request) {
	act, ok := actor.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req closeBooksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	lines, err := h.ledger.CloseBooks(r.Context(), act, req.AsOf, req.EquityAccountCode)
	if err != nil {
		switch {
		case errors.Is(err, journal.ErrForbidden):
			http.Error(w, err.Error(), http.StatusForbidden)
		case errors.Is(err, ledger.ErrAlreadyClosed):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, account.ErrNotFound):
			http.Error(w, "equity account not found", http.StatusUnprocessableEntity)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(map[string]int{"lines_posted": len(lines)}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
