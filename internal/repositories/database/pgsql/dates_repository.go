package pgsql

import (
	"context"
	"fmt"
	"time"

	portsrepo "github.com/cardledger/card_ledger_app/internal/core/ports/repositories"
	"github.com/cardledger/card_ledger_app/internal/utils/dates"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxRecordDatesRepository finds the earliest record date across sales,
// payments and expenses. Record dates are stored as the raw operator-entered
// text, so the minimum cannot be taken in SQL; the rows are parsed here and
// unparsable dates are skipped.
type PgxRecordDatesRepository struct {
	BaseRepository
}

func newPgxRecordDatesRepository(db *pgxpool.Pool) portsrepo.RecordDatesReader {
	return &PgxRecordDatesRepository{BaseRepository{Pool: db}}
}

// Ensure PgxRecordDatesRepository implements portsrepo.RecordDatesReader
var _ portsrepo.RecordDatesReader = (*PgxRecordDatesRepository)(nil)

func (r *PgxRecordDatesRepository) FindEarliestRecordDate(ctx context.Context) (time.Time, bool, error) {
	query := `
		SELECT sale_date FROM sales
		UNION ALL
		SELECT payment_date FROM payments
		UNION ALL
		SELECT expense_date FROM expenses;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to query record dates: %w", err)
	}
	defer rows.Close()

	var earliest time.Time
	found := false
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return time.Time{}, false, fmt.Errorf("failed to scan record date: %w", err)
		}
		day, ok := dates.Parse(raw)
		if !ok {
			continue
		}
		if !found || day.Before(earliest) {
			earliest = day
			found = true
		}
	}
	if err := rows.Err(); err != nil {
		return time.Time{}, false, fmt.Errorf("failed iterating record dates: %w", err)
	}
	return earliest, found, nil
}
