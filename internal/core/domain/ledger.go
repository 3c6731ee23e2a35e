package domain

// LedgerLineKind tags a statement line.
type LedgerLineKind string

const (
	LineOpening LedgerLineKind = "opening"
	LineSale    LedgerLineKind = "sale"
	LinePayment LedgerLineKind = "payment"
)

// LedgerLine is one row of a store account statement. Balance follows the
// statement's sign convention: positive means the store owes the business,
// negative means the business owes the store.
type LedgerLine struct {
	Date    string         `json:"date"` // normalized YYYY-MM-DD, or raw when unparsable
	Kind    LedgerLineKind `json:"kind"`
	Debit   float64        `json:"debit,omitempty"`  // sale amount
	Credit  float64        `json:"credit,omitempty"` // payment amount
	Balance float64        `json:"balance"`          // running balance after this line
	RefID   string         `json:"refID"`
	Notes   string         `json:"notes,omitempty"`
	Flagged bool           `json:"flagged,omitempty"` // date could not be parsed
}

// StatementTotals aggregates a statement for the summary row renderers print.
type StatementTotals struct {
	TotalDebit   float64 `json:"totalDebit"`
	TotalCredit  float64 `json:"totalCredit"`
	FinalBalance float64 `json:"finalBalance"`
}

// LedgerStatement is the reconstructed running-balance statement for one
// store over one period.
type LedgerStatement struct {
	Lines           []LedgerLine    `json:"lines"`
	Totals          StatementTotals `json:"totals"`
	PreviousBalance float64         `json:"previousBalance"`
}

// FinalBalance is the balance after the last statement line, or the opening
// balance when the period had no activity.
func (s LedgerStatement) FinalBalance() float64 {
	return s.Totals.FinalBalance
}
