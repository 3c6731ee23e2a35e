package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cardledger/card_ledger_app/internal/apperrors"
	"github.com/cardledger/card_ledger_app/internal/core/domain"
	portsrepo "github.com/cardledger/card_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSaleRepository struct {
	BaseRepository
}

func newPgxSaleRepository(db *pgxpool.Pool) portsrepo.SaleRepositoryFacade {
	return &PgxSaleRepository{BaseRepository{Pool: db}}
}

// Ensure PgxSaleRepository implements portsrepo.SaleRepositoryFacade
var _ portsrepo.SaleRepositoryFacade = (*PgxSaleRepository)(nil)

const saleColumns = `sale_id, store_id, sale_date, package_ref, quantity, amount, notes,
	created_at, created_by, last_updated_at, last_updated_by`

func scanSale(row pgx.Row) (domain.Sale, error) {
	var s domain.Sale
	err := row.Scan(
		&s.SaleID,
		&s.StoreID,
		&s.Date,
		&s.PackageRef,
		&s.Quantity,
		&s.Amount,
		&s.Notes,
		&s.CreatedAt,
		&s.CreatedBy,
		&s.LastUpdatedAt,
		&s.LastUpdatedBy,
	)
	return s, err
}

func (r *PgxSaleRepository) SaveSale(ctx context.Context, sale domain.Sale) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		sale.SaleID,
		sale.StoreID,
		sale.Date,
		sale.PackageRef,
		sale.Quantity,
		sale.Amount,
		sale.Notes,
		sale.CreatedAt,
		sale.CreatedBy,
		sale.LastUpdatedAt,
		sale.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save sale: %w", err)
	}
	return nil
}

func (r *PgxSaleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE sale_id = $1;`
	sale, err := scanSale(r.Pool.QueryRow(ctx, query, saleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find sale by ID %s: %w", saleID, err)
	}
	return &sale, nil
}

func (r *PgxSaleRepository) FindSales(ctx context.Context, storeID string) ([]domain.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales`
	args := []any{}
	if storeID != "" {
		query += ` WHERE store_id = $1`
		args = append(args, storeID)
	}
	query += ` ORDER BY created_at;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer rows.Close()

	var sales []domain.Sale
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		sales = append(sales, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating sales: %w", err)
	}
	return sales, nil
}

func (r *PgxSaleRepository) UpdateSale(ctx context.Context, sale domain.Sale) error {
	query := `
		UPDATE sales SET
			sale_date = $2,
			package_ref = $3,
			quantity = $4,
			amount = $5,
			notes = $6,
			last_updated_at = $7,
			last_updated_by = $8
		WHERE sale_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		sale.SaleID,
		sale.Date,
		sale.PackageRef,
		sale.Quantity,
		sale.Amount,
		sale.Notes,
		sale.LastUpdatedAt,
		sale.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update sale %s: %w", sale.SaleID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxSaleRepository) DeleteSale(ctx context.Context, saleID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM sales WHERE sale_id = $1;`, saleID)
	if err != nil {
		return fmt.Errorf("failed to delete sale %s: %w", saleID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
