package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tilapiasuite/tilapia/internal/actor"
)

var (
	// ErrInsufficientStock is returned when a sale asks for more than the
	// product's current balance quantity. Nothing is written.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrNonPositiveQuantity is returned when a movement's quantity is zero or negative.
	ErrNonPositiveQuantity = errors.New("quantity must be positive")
	// ErrNegativePrice is returned when a purchase unit price is negative.
	ErrNegativePrice = errors.New("negative unit price")
	// ErrForbidden is returned when the actor's role does not permit the operation.
	ErrForbidden = errors.New("role not permitted for inventory operation")
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=inventory
type Repository interface {
	ListRows(ctx context.Context, product string) ([]*CardRow, error)

	// BeginMove opens the transactional boundary for a card mutation. The
	// transaction must lock the rows it reads so that the balance a
	// movement is computed from cannot change before the row is written.
	BeginMove(ctx context.Context) (MoveTx, error)
}

type MoveTx interface {
	// LatestBalance returns the most recent row for the product, locked
	// for update, or nil when the card is empty.
	LatestBalance(ctx context.Context, product string) (*CardRow, error)
	CreateRow(ctx context.Context, row *CardRow) error

	// AllRowsForUpdate returns every card row ordered by
	// (date, created_at, id), locked for the duration of the transaction.
	AllRowsForUpdate(ctx context.Context) ([]*CardRow, error)
	UpdateBalances(ctx context.Context, row *CardRow) error

	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// PurchaseParams describes a stock receipt.
type PurchaseParams struct {
	Product       string
	Date          time.Time
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
	Description   string
	ReferenceCode string
}

// SaleParams describes a stock issue. The cost basis is taken from the
// card, not from the caller.
type SaleParams struct {
	Product       string
	Date          time.Time
	Quantity      decimal.Decimal
	Description   string
	ReferenceCode string
}

// RecordPurchase appends a purchase row and rolls the running balance
// forward: quantity and amount accumulate, and the average unit cost is
// reweighted.
func (s *Service) RecordPurchase(ctx context.Context, act actor.Actor, params PurchaseParams) (*CardRow, error) {
	if !act.CanRecordInventory() {
		return nil, ErrForbidden
	}

	if !params.Quantity.IsPositive() {
		return nil, ErrNonPositiveQuantity
	}

	if params.UnitPrice.IsNegative() {
		return nil, ErrNegativePrice
	}

	tx, err := s.repo.BeginMove(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin purchase: %w", err)
	}
	defer tx.Rollback()

	priorQty, priorAmount, err := priorBalance(ctx, tx, params.Product)
	if err != nil {
		return nil, err
	}

	amount := params.Quantity.Mul(params.UnitPrice)
	balanceQty := priorQty.Add(params.Quantity)
	balanceAmount := priorAmount.Add(amount)

	row := &CardRow{
		Date:          params.Date,
		ReferenceCode: params.ReferenceCode,
		Description:   params.Description,
		ProductName:   params.Product,

		PurchaseQuantity:  params.Quantity,
		PurchaseUnitPrice: params.UnitPrice,
		PurchaseAmount:    amount,

		SalesQuantity:  decimal.Zero,
		SalesUnitPrice: decimal.Zero,
		SalesAmount:    decimal.Zero,

		BalanceQuantity:  balanceQty,
		BalanceUnitPrice: averageCost(balanceAmount, balanceQty),
		BalanceAmount:    balanceAmount,

		Employee: act.UserID,
	}

	if err := tx.CreateRow(ctx, row); err != nil {
		return nil, fmt.Errorf("create purchase row: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit purchase: %w", err)
	}

	return row, nil
}

// RecordSale appends a sale row costed at the current moving average. The
// sale fails with ErrInsufficientStock when the quantity exceeds the
// current balance, leaving the card unchanged.
func (s *Service) RecordSale(ctx context.Context, act actor.Actor, params SaleParams) (*CardRow, error) {
	if !act.CanRecordInventory() {
		return nil, ErrForbidden
	}

	if !params.Quantity.IsPositive() {
		return nil, ErrNonPositiveQuantity
	}

	tx, err := s.repo.BeginMove(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin sale: %w", err)
	}
	defer tx.Rollback()

	prior, err := tx.LatestBalance(ctx, params.Product)
	if err != nil {
		return nil, fmt.Errorf("reading balance for %s: %w", params.Product, err)
	}

	priorQty := decimal.Zero
	priorAmount := decimal.Zero
	unitCost := decimal.Zero

	if prior != nil {
		priorQty = prior.BalanceQuantity
		priorAmount = prior.BalanceAmount
		unitCost = prior.BalanceUnitPrice
	}

	if params.Quantity.GreaterThan(priorQty) {
		return nil, fmt.Errorf("%w: %s on hand %s, requested %s",
			ErrInsufficientStock, params.Product, priorQty.String(), params.Quantity.String())
	}

	salesAmount := params.Quantity.Mul(unitCost)
	balanceQty := priorQty.Sub(params.Quantity)
	balanceAmount := priorAmount.Sub(salesAmount)

	row := &CardRow{
		Date:          params.Date,
		ReferenceCode: params.ReferenceCode,
		Description:   params.Description,
		ProductName:   params.Product,

		PurchaseQuantity:  decimal.Zero,
		PurchaseUnitPrice: decimal.Zero,
		PurchaseAmount:    decimal.Zero,

		SalesQuantity:  params.Quantity,
		SalesUnitPrice: unitCost,
		SalesAmount:    salesAmount,

		BalanceQuantity:  balanceQty,
		BalanceUnitPrice: averageCost(balanceAmount, balanceQty),
		BalanceAmount:    balanceAmount,

		Employee: act.UserID,
	}

	if err := tx.CreateRow(ctx, row); err != nil {
		return nil, fmt.Errorf("create sale row: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit sale: %w", err)
	}

	return row, nil
}

// Card returns the product's full card in chronological order.
func (s *Service) Card(ctx context.Context, product string) ([]*CardRow, error) {
	return s.repo.ListRows(ctx, product)
}

// RecalculateAll replays every card row in (date, created_at, id) order
// and re-derives the running balance fields per product, starting from
// zero. Movement fields are left as recorded. This is the repair routine
// for the denormalized balances after a manual edit or delete; it holds
// the row locks for its whole duration.
func (s *Service) RecalculateAll(ctx context.Context, act actor.Actor) error {
	if !act.CanAdjust() {
		return ErrForbidden
	}

	tx, err := s.repo.BeginMove(ctx)
	if err != nil {
		return fmt.Errorf("begin recalculation: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.AllRowsForUpdate(ctx)
	if err != nil {
		return fmt.Errorf("reading card rows: %w", err)
	}

	type running struct {
		qty    decimal.Decimal
		amount decimal.Decimal
	}

	totals := make(map[string]running)

	for _, row := range rows {
		r := totals[row.ProductName]

		r.qty = r.qty.Add(row.PurchaseQuantity).Sub(row.SalesQuantity)
		r.amount = r.amount.Add(row.PurchaseAmount).Sub(row.SalesAmount)
		totals[row.ProductName] = r

		avg := averageCost(r.amount, r.qty)

		if row.BalanceQuantity.Equal(r.qty) &&
			row.BalanceAmount.Equal(r.amount) &&
			row.BalanceUnitPrice.Equal(avg) {
			continue
		}

		row.BalanceQuantity = r.qty
		row.BalanceAmount = r.amount
		row.BalanceUnitPrice = avg

		if err := tx.UpdateBalances(ctx, row); err != nil {
			return fmt.Errorf("updating balances for row %s: %w", row.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit recalculation: %w", err)
	}

	return nil
}

func priorBalance(ctx context.Context, tx MoveTx, product string) (qty, amount decimal.Decimal, err error) {
	prior, err := tx.LatestBalance(ctx, product)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("reading balance for %s: %w", product, err)
	}

	if prior == nil {
		return decimal.Zero, decimal.Zero, nil
	}

	return prior.BalanceQuantity, prior.BalanceAmount, nil
}
