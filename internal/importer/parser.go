package importer

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	enc "github.com/tilapiasuite/tilapia/internal/encoding"
)

// ErrUnknownFormat is returned when no profile matches the file's header.
var ErrUnknownFormat = errors.New("no matching export format found")

// Parser reads CSV exports and produces cash movements. The encoding,
// field separator and column layout are all detected from the file itself.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]Movement, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	br := bufio.NewReader(utf8r)

	reader := csv.NewReader(br)
	reader.Comma = detectSeparator(br)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, ErrUnknownFormat
	}

	return parseRows(profile, cols, rows[headerIdx+1:])
}

// detectSeparator peeks the first line and picks whichever of ';' and ','
// occurs more often outside quotes. Indonesian exports use both, and the
// decimal comma makes ',' ambiguous, so ';' wins ties.
func detectSeparator(br *bufio.Reader) rune {
	head, _ := br.Peek(1024)

	line, _, _ := strings.Cut(string(head), "\n")

	if strings.Count(line, ",") > strings.Count(line, ";") {
		return ','
	}

	return ';'
}

// colIndex maps trimmed column names to their position in the row.
type colIndex map[string]int

// detectProfile scans for the first row whose cells satisfy a known
// profile's required columns. Exports often carry preamble rows (bank
// name, period, account holder) before the real header.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			if name := strings.TrimSpace(cell); name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows extracts movements from the data rows. Rows whose date cell
// does not parse are skipped; exports end with totals and footer rows.
func parseRows(p *Profile, cols colIndex, rows [][]string) ([]Movement, error) {
	dateIdx := cols[p.DateCol]
	descIdx := cols[p.DescCol]

	refIdx := -1
	if p.RefCol != "" {
		if i, ok := cols[p.RefCol]; ok {
			refIdx = i
		}
	}

	var movements []Movement

	for _, row := range rows {
		date, ok := parseDate(p, cellValue(row, dateIdx))
		if !ok {
			continue
		}

		amount, inflow, ok := parseMovementAmount(p, cols, row)
		if !ok {
			continue
		}

		movements = append(movements, Movement{
			Date:          date,
			Description:   cellValue(row, descIdx),
			ReferenceCode: cellValue(row, refIdx),
			Amount:        amount,
			Inflow:        inflow,
		})
	}

	return movements, nil
}

func parseDate(p *Profile, s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range p.DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// parseMovementAmount reads the amount per the profile's mode and returns
// it as a positive value plus direction.
func parseMovementAmount(p *Profile, cols colIndex, row []string) (decimal.Decimal, bool, bool) {
	switch p.AmountMode {
	case amountSigned:
		return parseSignedAmount(cellValue(row, cols[p.AmountCol]))
	case amountSplit:
		return parseSplitAmount(cellValue(row, cols[p.InCol]), cellValue(row, cols[p.OutCol]))
	}

	return decimal.Zero, false, false
}

func parseSignedAmount(s string) (decimal.Decimal, bool, bool) {
	if s == "" {
		return decimal.Zero, false, false
	}

	d, err := parseIndonesianAmount(s)
	if err != nil || d.IsZero() {
		return decimal.Zero, false, false
	}

	if d.IsNegative() {
		return d.Neg(), false, true
	}

	return d, true, true
}

func parseSplitAmount(in, out string) (decimal.Decimal, bool, bool) {
	if in != "" {
		if d, err := parseIndonesianAmount(in); err == nil && !d.IsZero() {
			return d.Abs(), true, true
		}
	}

	if out != "" {
		if d, err := parseIndonesianAmount(out); err == nil && !d.IsZero() {
			return d.Abs(), false, true
		}
	}

	return decimal.Zero, false, false
}
