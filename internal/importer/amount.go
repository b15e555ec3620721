package importer

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseIndonesianAmount parses an Indonesian-formatted amount string.
// Dots are thousands separators and the comma is the decimal mark:
// "1.234,56" -> 1234.56, "-12.500,00" -> -12500. An optional "Rp" prefix
// is tolerated.
func parseIndonesianAmount(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "Rp")
	clean = strings.TrimSpace(clean)
	clean = strings.ReplaceAll(clean, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")

	return decimal.NewFromString(clean)
}

// cellValue safely gets a trimmed cell value; a negative or out-of-range
// index yields the empty string.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
