// Package inventory keeps a perpetual moving-average cost card per
// product. Every purchase or sale appends a row carrying the movement and
// the recomputed running balance; the running totals are denormalized and
// can be repaired by a full chronological replay.
package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CardRow is one movement on a product's inventory card. A row records
// either a purchase or a sale, never both. SalesUnitPrice is the cost
// basis at the time of sale (the moving average), not the selling price.
type CardRow struct {
	ID            uuid.UUID
	Date          time.Time
	ReferenceCode string
	Description   string
	ProductName   string

	PurchaseQuantity  decimal.Decimal
	PurchaseUnitPrice decimal.Decimal
	PurchaseAmount    decimal.Decimal

	SalesQuantity  decimal.Decimal
	SalesUnitPrice decimal.Decimal
	SalesAmount    decimal.Decimal

	BalanceQuantity  decimal.Decimal
	BalanceUnitPrice decimal.Decimal
	BalanceAmount    decimal.Decimal

	Employee  string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// averageCost returns amount/quantity, or zero when the quantity is not
// positive. Keeping the zero case explicit avoids a division panic on an
// emptied card.
func averageCost(amount, quantity decimal.Decimal) decimal.Decimal {
	if !quantity.IsPositive() {
		return decimal.Zero
	}

	return amount.Div(quantity)
}
