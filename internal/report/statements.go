package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tilapiasuite/tilapia/internal/account"
	"github.com/tilapiasuite/tilapia/internal/journal"
	"github.com/tilapiasuite/tilapia/internal/ledger"
)

// StatementLine is one account's contribution to a statement section.
type StatementLine struct {
	Code   string
	Name   string
	Amount decimal.Decimal
}

// IncomeStatement reports revenue, expenses and net income over
// general plus adjustment entries.
type IncomeStatement struct {
	Revenues     []StatementLine
	TotalRevenue decimal.Decimal
	Expenses     []StatementLine
	TotalExpense decimal.Decimal
	NetIncome    decimal.Decimal
}

// EquityStatement rolls beginning equity forward to final equity.
type EquityStatement struct {
	InitialEquity decimal.Decimal
	NetIncome     decimal.Decimal
	Drawings      decimal.Decimal
	FinalEquity   decimal.Decimal
}

// BalanceSheet is the classified statement of financial position.
// Contra-asset balances appear as negative asset lines so the asset
// total is already net of them.
type BalanceSheet struct {
	Assets           []StatementLine
	TotalAssets      decimal.Decimal
	Liabilities      []StatementLine
	TotalLiabilities decimal.Decimal
	Equity           EquityStatement
	TotalLiabEquity  decimal.Decimal
	Balanced         bool
}

func (s *Service) IncomeStatement(ctx context.Context, asOf *time.Time) (*IncomeStatement, error) {
	balances, err := s.balances.FinalBalances(ctx, asOf, generalAndAdjustment)
	if err != nil {
		return nil, err
	}

	return buildIncomeStatement(balances), nil
}

func buildIncomeStatement(balances []ledger.AccountBalance) *IncomeStatement {
	is := &IncomeStatement{
		TotalRevenue: decimal.Zero,
		TotalExpense: decimal.Zero,
	}

	for _, b := range balances {
		line := StatementLine{Code: b.Code, Name: b.Name, Amount: b.Amount}

		switch b.Type {
		case account.TypeRevenue:
			is.Revenues = append(is.Revenues, line)
			is.TotalRevenue = is.TotalRevenue.Add(b.Amount)
		case account.TypeExpense:
			is.Expenses = append(is.Expenses, line)
			is.TotalExpense = is.TotalExpense.Add(b.Amount)
		}
	}

	is.NetIncome = is.TotalRevenue.Sub(is.TotalExpense)

	return is
}

func (s *Service) EquityStatement(ctx context.Context, asOf *time.Time) (*EquityStatement, error) {
	balances, err := s.balances.FinalBalances(ctx, asOf, generalAndAdjustment)
	if err != nil {
		return nil, err
	}

	return s.buildEquityStatement(balances), nil
}

func (s *Service) buildEquityStatement(balances []ledger.AccountBalance) *EquityStatement {
	es := &EquityStatement{
		InitialEquity: decimal.Zero,
		Drawings:      decimal.Zero,
	}

	for _, b := range balances {
		if b.Type != account.TypeEquity {
			continue
		}

		if b.Code == s.cfg.DrawingsAccountCode {
			// The drawings account is debit-normal; its folded amount is
			// the total drawn during the period.
			es.Drawings = es.Drawings.Add(b.Amount)
			continue
		}

		es.InitialEquity = es.InitialEquity.Add(b.Amount)
	}

	es.NetIncome = buildIncomeStatement(balances).NetIncome
	es.FinalEquity = es.InitialEquity.Add(es.NetIncome).Sub(es.Drawings)

	return es
}

func (s *Service) BalanceSheet(ctx context.Context, asOf *time.Time) (*BalanceSheet, error) {
	balances, err := s.balances.FinalBalances(ctx, asOf, generalAndAdjustment)
	if err != nil {
		return nil, err
	}

	bs := &BalanceSheet{
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
	}

	for _, b := range balances {
		switch b.Type {
		case account.TypeAsset:
			amount := b.Amount
			if b.NormalBalance == account.NormalCredit {
				// Contra asset: reduces the asset total.
				amount = amount.Neg()
			}

			bs.Assets = append(bs.Assets, StatementLine{Code: b.Code, Name: b.Name, Amount: amount})
			bs.TotalAssets = bs.TotalAssets.Add(amount)
		case account.TypeLiability:
			bs.Liabilities = append(bs.Liabilities, StatementLine{Code: b.Code, Name: b.Name, Amount: b.Amount})
			bs.TotalLiabilities = bs.TotalLiabilities.Add(b.Amount)
		}
	}

	bs.Equity = *s.buildEquityStatement(balances)
	bs.TotalLiabEquity = bs.TotalLiabilities.Add(bs.Equity.FinalEquity)
	bs.Balanced = journal.WithinTolerance(bs.TotalAssets, bs.TotalLiabEquity)

	return bs, nil
}
