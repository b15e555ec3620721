package importer

// amountMode determines how a movement's amount is read from a row.
type amountMode int

const (
	// amountSigned means one signed column ("Jumlah" with "-12.500,00").
	amountSigned amountMode = iota
	// amountSplit means separate inflow and outflow columns ("Kredit"/"Debet").
	amountSplit
)

// Profile describes the column layout of one known export format.
// Supporting a new POS or bank export is just another entry in profiles.
type Profile struct {
	Name       string
	DateCol    string
	DescCol    string
	RefCol     string // optional; empty means the export carries no reference
	AmountMode amountMode
	AmountCol  string // amountSigned
	InCol      string // amountSplit
	OutCol     string // amountSplit

	DateLayouts []string
}

// requiredCols returns the columns a header row must contain for this
// profile to match. The reference column is optional and not required.
func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.DescCol}

	switch p.AmountMode {
	case amountSigned:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.InCol, p.OutCol)
	}

	return cols
}

// profiles is the ordered list of export formats to try. More specific
// layouts come first so a bank statement is never mistaken for a POS
// export.
var profiles = []Profile{
	{
		Name:        "mutasi bank",
		DateCol:     "Tanggal",
		DescCol:     "Keterangan",
		RefCol:      "No. Referensi",
		AmountMode:  amountSplit,
		InCol:       "Kredit",
		OutCol:      "Debet",
		DateLayouts: []string{"02/01/2006", "02-01-2006"},
	},
	{
		Name:        "penjualan kasir",
		DateCol:     "Tanggal",
		DescCol:     "Keterangan",
		RefCol:      "No. Transaksi",
		AmountMode:  amountSigned,
		AmountCol:   "Jumlah",
		DateLayouts: []string{"02/01/2006", "2006-01-02"},
	},
}
