package account

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// Type classifies an account in the chart of accounts.
type Type string

const (
	TypeAsset     Type = "asset"
	TypeLiability Type = "liability"
	TypeEquity    Type = "equity"
	TypeRevenue   Type = "revenue"
	TypeExpense   Type = "expense"
)

// NormalBalance is the side on which an account's balance increases.
type NormalBalance string

const (
	NormalDebit  NormalBalance = "debit"
	NormalCredit NormalBalance = "credit"
)

// Account represents a row in the chart of accounts.
type Account struct {
	Code             string
	Name             string
	Type             Type
	NormalBalance    NormalBalance
	BeginningBalance decimal.Decimal
}

// codePattern is the required account code format: class digit, dash, four digits.
var codePattern = regexp.MustCompile(`^[1-6]-\d{4}$`)

// ValidCode reports whether code matches the <class-digit>-<4-digit> convention.
func ValidCode(code string) bool {
	return codePattern.MatchString(code)
}

// Classify maps an account code to its type by class digit:
// 1=asset, 2=liability, 3=equity, 4=revenue, 5 and 6=expense.
// Every prefix test in the statement builders goes through this single
// function so the partitioning rule cannot drift between reports.
func Classify(code string) (Type, bool) {
	if len(code) == 0 {
		return "", false
	}

	switch code[0] {
	case '1':
		return TypeAsset, true
	case '2':
		return TypeLiability, true
	case '3':
		return TypeEquity, true
	case '4':
		return TypeRevenue, true
	case '5', '6':
		return TypeExpense, true
	}

	return "", false
}

// DefaultNormalBalance returns the conventional normal side for a type.
// Contra accounts (e.g. accumulated depreciation, an asset with credit
// normal balance) override this at registration time.
func DefaultNormalBalance(t Type) NormalBalance {
	switch t {
	case TypeAsset, TypeExpense:
		return NormalDebit
	default:
		return NormalCredit
	}
}

// IsContraAsset reports whether the account reduces the asset total:
// asset-classified but carrying a credit normal balance.
func (a Account) IsContraAsset() bool {
	return a.Type == TypeAsset && a.NormalBalance == NormalCredit
}
