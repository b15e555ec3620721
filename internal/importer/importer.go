// Package importer turns CSV exports from the POS register and the bank
// portal into posted journal entries. The column layout is auto-detected
// against known profiles, so cashiers upload whatever file their system
// produces.
package importer

import (
	"time"

	"github.com/shopspring/decimal"
)

// Movement is one parsed cash movement from an export. Amount is always
// positive; Inflow carries the direction.
type Movement struct {
	Date          time.Time
	Description   string
	ReferenceCode string
	Amount        decimal.Decimal
	Inflow        bool
}
