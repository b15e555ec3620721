package report

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tilapiasuite/tilapia/internal/account"
	"github.com/tilapiasuite/tilapia/internal/journal"
)

// CashFlowItem is an aggregated flow against one counterpart account.
type CashFlowItem struct {
	AccountCode string
	Description string
	Amount      decimal.Decimal
}

// CashFlowSection is one activity class of the statement.
type CashFlowSection struct {
	Inflows  []CashFlowItem
	Outflows []CashFlowItem
	TotalIn  decimal.Decimal
	TotalOut decimal.Decimal
	Net      decimal.Decimal
}

// CashFlowStatement classifies the period's cash movements into
// operating, investing and financing activities and reconciles beginning
// to ending cash. Reconciled compares the derived ending balance against
// the ledger's actual cash balance; unpaired cash movements (listed under
// Unclassified) are the usual cause of a mismatch.
type CashFlowStatement struct {
	Operating    CashFlowSection
	Investing    CashFlowSection
	Financing    CashFlowSection
	Unclassified []CashFlowItem

	BeginningCash decimal.Decimal
	NetChange     decimal.Decimal
	EndingCash    decimal.Decimal
	ActualCash    decimal.Decimal
	Reconciled    bool
}

type flowClass int

const (
	flowOperating flowClass = iota
	flowInvesting
	flowFinancing
	flowUnclassified
)

// CashFlow builds the cash-flow statement for [start, end].
//
// Lines are grouped into transactions by reference code (a line without one
// forms its own group and can never pair). Within each group, every cash
// line is paired with the first non-cash line whose movement offsets the
// cash movement within tolerance; later candidates are not reconsidered for
// that cash line. The pairing is ambiguous when a multi-leg transaction has
// several counterpart lines of the same magnitude; first match wins.
func (s *Service) CashFlow(ctx context.Context, start, end time.Time) (*CashFlowStatement, error) {
	lines, err := s.lines.List(ctx, journal.ListFilter{
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return nil, err
	}

	groups, order := groupByTransaction(lines)

	var (
		pairs        []classifiedFlow
		unclassified []CashFlowItem
	)

	for _, key := range order {
		group := groups[key]

		var cash, others []*journal.Line

		for _, l := range group {
			if l.AccountCode == s.cfg.CashAccountCode {
				cash = append(cash, l)
			} else {
				others = append(others, l)
			}
		}

		if len(cash) == 0 {
			continue // non-cash transaction
		}

		for _, cashLine := range cash {
			movement := cashLine.Movement()
			if movement.IsZero() {
				continue
			}

			counterpart := matchCounterpart(movement, others)
			if counterpart == nil {
				unclassified = append(unclassified, CashFlowItem{
					AccountCode: cashLine.AccountCode,
					Description: cashLine.Description,
					Amount:      movement,
				})

				continue
			}

			flow := s.classifyPair(movement, counterpart)
			if flow.class == flowUnclassified {
				unclassified = append(unclassified, flow.item)
				continue
			}

			pairs = append(pairs, flow)
		}
	}

	stmt := &CashFlowStatement{Unclassified: unclassified}
	stmt.Operating = buildSection(pairs, flowOperating)
	stmt.Investing = buildSection(pairs, flowInvesting)
	stmt.Financing = buildSection(pairs, flowFinancing)

	stmt.NetChange = stmt.Operating.Net.Add(stmt.Investing.Net).Add(stmt.Financing.Net)

	dayBefore := start.AddDate(0, 0, -1)

	stmt.BeginningCash, err = s.balances.BalanceOf(ctx, s.cfg.CashAccountCode, &dayBefore, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning cash balance: %w", err)
	}

	stmt.ActualCash, err = s.balances.BalanceOf(ctx, s.cfg.CashAccountCode, &end, nil)
	if err != nil {
		return nil, fmt.Errorf("ending cash balance: %w", err)
	}

	stmt.EndingCash = stmt.BeginningCash.Add(stmt.NetChange)
	stmt.Reconciled = journal.WithinTolerance(stmt.EndingCash, stmt.ActualCash)

	return stmt, nil
}

// groupByTransaction buckets lines by reference code, preserving first-seen
// order. Lines without a reference get a synthetic per-row key so they
// never pair with anything.
func groupByTransaction(lines []*journal.Line) (map[string][]*journal.Line, []string) {
	groups := make(map[string][]*journal.Line)

	var order []string

	for i, l := range lines {
		key := l.ReferenceCode
		if key == "" {
			key = fmt.Sprintf("~row-%d", i)
		}

		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}

		groups[key] = append(groups[key], l)
	}

	return groups, order
}

// matchCounterpart returns the first non-cash line whose movement offsets
// the cash movement within tolerance, or nil.
func matchCounterpart(cashMovement decimal.Decimal, candidates []*journal.Line) *journal.Line {
	for _, c := range candidates {
		if journal.WithinTolerance(cashMovement.Add(c.Movement()), decimal.Zero) {
			return c
		}
	}

	return nil
}

type classifiedFlow struct {
	class  flowClass
	inflow bool
	item   CashFlowItem
}

// classifyPair maps a matched (cash, counterpart) pair to an activity
// class and direction by the counterpart's account-code prefix:
//
//	4-*            revenue received            -> operating inflow
//	5-*/6-*        expense paid                -> operating outflow
//	1-1* (noncash) current asset               -> operating outflow
//	2-1*           current liability           -> operating outflow
//	1-2*           fixed asset                 -> investing, by cash sign
//	2-2*, 3-*      long-term debt and equity   -> financing, by cash sign
//	                (drawings always an outflow)
func (s *Service) classifyPair(cashMovement decimal.Decimal, counterpart *journal.Line) classifiedFlow {
	amount := cashMovement.Abs()
	cashIn := cashMovement.IsPositive()

	item := CashFlowItem{
		AccountCode: counterpart.AccountCode,
		Description: counterpart.AccountName,
		Amount:      amount,
	}

	code := counterpart.AccountCode
	typ, _ := account.Classify(code)

	switch {
	case typ == account.TypeRevenue:
		return classifiedFlow{class: flowOperating, inflow: true, item: item}

	case typ == account.TypeExpense,
		strings.HasPrefix(code, "1-1"),
		strings.HasPrefix(code, "2-1"):
		return classifiedFlow{class: flowOperating, inflow: false, item: item}

	case strings.HasPrefix(code, "1-2"):
		return classifiedFlow{class: flowInvesting, inflow: cashIn, item: item}

	case strings.HasPrefix(code, "2-2"), typ == account.TypeEquity:
		if code == s.cfg.DrawingsAccountCode {
			return classifiedFlow{class: flowFinancing, inflow: false, item: item}
		}

		return classifiedFlow{class: flowFinancing, inflow: cashIn, item: item}
	}

	return classifiedFlow{class: flowUnclassified, item: item}
}

// buildSection aggregates one activity class, merging flows by counterpart
// account code.
func buildSection(pairs []classifiedFlow, class flowClass) CashFlowSection {
	section := CashFlowSection{
		TotalIn:  decimal.Zero,
		TotalOut: decimal.Zero,
	}

	in := make(map[string]*CashFlowItem)
	out := make(map[string]*CashFlowItem)

	var inOrder, outOrder []string

	for _, p := range pairs {
		if p.class != class {
			continue
		}

		bucket, keys := out, &outOrder
		if p.inflow {
			bucket, keys = in, &inOrder
		}

		existing, ok := bucket[p.item.AccountCode]
		if !ok {
			item := p.item
			bucket[p.item.AccountCode] = &item
			*keys = append(*keys, p.item.AccountCode)

			continue
		}

		existing.Amount = existing.Amount.Add(p.item.Amount)
	}

	sort.Strings(inOrder)
	sort.Strings(outOrder)

	for _, code := range inOrder {
		section.Inflows = append(section.Inflows, *in[code])
		section.TotalIn = section.TotalIn.Add(in[code].Amount)
	}

	for _, code := range outOrder {
		section.Outflows = append(section.Outflows, *out[code])
		section.TotalOut = section.TotalOut.Add(out[code].Amount)
	}

	section.Net = section.TotalIn.Sub(section.TotalOut)

	return section
}
