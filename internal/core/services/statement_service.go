package services

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/cardledger/card_ledger_app/internal/core/domain"
	"github.com/cardledger/card_ledger_app/internal/utils/dates"
)

// StatementOptions tunes ledger reconstruction.
type StatementOptions struct {
	// StrictChronological disables the intra-day reorder heuristic and
	// keeps each day's lines in input order. The heuristic makes printed
	// statements show payments first on days where the store already owed
	// money; strict mode is for callers that want plain chronology.
	StrictChronological bool
}

// StatementService rebuilds a store's running-balance account statement
// from its raw sales and payments. It is pure: inputs are never mutated and
// identical inputs always produce identical statements.
type StatementService struct {
	BaseService
}

func NewStatementService() *StatementService {
	return &StatementService{}
}

// statementEntry is the merged working form of a sale or payment line.
type statementEntry struct {
	day    string // normalized YYYY-MM-DD
	kind   domain.LedgerLineKind
	amount float64
	refID  string
	notes  string
	ok     bool // date parsed
}

// Build merges sales and payments into one chronologically ordered statement
// with a running balance per line.
//
// Ordering: entries sort by calendar day (stable; same-day entries keep
// their input order as the secondary key). Within a day, unless strict mode
// is on, the order depends on the balance entering that day: a positive
// entering balance emits payments before sales, otherwise sales come first.
// The heuristic never crosses a day boundary, so the final balance is
// independent of it.
//
// Entries whose date cannot be parsed are appended after all day buckets,
// flagged for caller-side reporting; they still count towards the balance,
// a bad date must not lose money.
func (s *StatementService) Build(ctx context.Context, sales []domain.Sale, payments []domain.Payment, previousBalance float64, opts StatementOptions) domain.LedgerStatement {
	entries := make([]statementEntry, 0, len(sales)+len(payments))
	for _, sale := range sales {
		day, ok := dates.Normalize(sale.Date)
		entries = append(entries, statementEntry{day: day, kind: domain.LineSale, amount: sale.Amount, refID: sale.SaleID, notes: sale.Notes, ok: ok})
	}
	for _, payment := range payments {
		day, ok := dates.Normalize(payment.Date)
		entries = append(entries, statementEntry{day: day, kind: domain.LinePayment, amount: payment.Amount, refID: payment.PaymentID, notes: payment.Notes, ok: ok})
	}

	dated := make([]statementEntry, 0, len(entries))
	undated := make([]statementEntry, 0)
	for _, e := range entries {
		if e.ok {
			dated = append(dated, e)
		} else {
			undated = append(undated, e)
		}
	}
	if len(undated) > 0 {
		s.LogDebug(ctx, "Statement entries with unparsable dates appended at end",
			slog.Int("count", len(undated)))
	}

	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].day < dated[j].day
	})

	lines := make([]domain.LedgerLine, 0, len(entries)+1)
	balance := previousBalance

	if previousBalance != 0 {
		lines = append(lines, domain.LedgerLine{
			Kind:    domain.LineOpening,
			Balance: previousBalance,
			Notes:   "previous balance",
		})
	}

	emit := func(e statementEntry) {
		line := domain.LedgerLine{
			Date:    e.day,
			Kind:    e.kind,
			RefID:   e.refID,
			Notes:   e.notes,
			Flagged: !e.ok,
		}
		if e.kind == domain.LineSale {
			balance += e.amount
			line.Debit = e.amount
		} else {
			balance -= e.amount
			line.Credit = e.amount
		}
		line.Balance = balance
		lines = append(lines, line)
	}

	for start := 0; start < len(dated); {
		end := start
		for end < len(dated) && dated[end].day == dated[start].day {
			end++
		}
		day := dated[start:end]

		if opts.StrictChronological {
			for _, e := range day {
				emit(e)
			}
		} else {
			// Entering balance decides the day's order: when the store
			// already owes money, settle payments first so the statement
			// never overstates the debt mid-day.
			paymentsFirst := balance > 0 && hasKind(day, domain.LinePayment)
			if paymentsFirst {
				emitKind(day, domain.LinePayment, emit)
				emitKind(day, domain.LineSale, emit)
			} else {
				emitKind(day, domain.LineSale, emit)
				emitKind(day, domain.LinePayment, emit)
			}
		}
		start = end
	}

	for _, e := range undated {
		emit(e)
	}

	var totalDebit, totalCredit float64
	for _, line := range lines {
		totalDebit += line.Debit
		totalCredit += line.Credit
	}

	return domain.LedgerStatement{
		Lines: lines,
		Totals: domain.StatementTotals{
			TotalDebit:   totalDebit,
			TotalCredit:  totalCredit,
			FinalBalance: balance,
		},
		PreviousBalance: previousBalance,
	}
}

// PreviousBalance computes a store's balance accumulated strictly before
// the given date: cumulative sales minus cumulative payments. Records with
// unparsable dates are excluded here, they already surface flagged inside
// the statement itself.
func (s *StatementService) PreviousBalance(sales []domain.Sale, payments []domain.Payment, before time.Time) float64 {
	cutoff := domain.DateOnly(before)
	var balance float64
	for _, sale := range sales {
		if d, ok := dates.Parse(sale.Date); ok && d.Before(cutoff) {
			balance += sale.Amount
		}
	}
	for _, payment := range payments {
		if d, ok := dates.Parse(payment.Date); ok && d.Before(cutoff) {
			balance -= payment.Amount
		}
	}
	return balance
}

func hasKind(entries []statementEntry, kind domain.LedgerLineKind) bool {
	for _, e := range entries {
		if e.kind == kind {
			return true
		}
	}
	return false
}

func emitKind(entries []statementEntry, kind domain.LedgerLineKind, emit func(statementEntry)) {
	for _, e := range entries {
		if e.kind == kind {
			emit(e)
		}
	}
}
