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

type PgxStoreRepository struct {
	BaseRepository
}

func newPgxStoreRepository(db *pgxpool.Pool) portsrepo.StoreRepositoryFacade {
	return &PgxStoreRepository{BaseRepository{Pool: db}}
}

// Ensure PgxStoreRepository implements portsrepo.StoreRepositoryFacade
var _ portsrepo.StoreRepositoryFacade = (*PgxStoreRepository)(nil)

const storeColumns = `store_id, name, phone, address,
	created_at, created_by, last_updated_at, last_updated_by`

func scanStore(row pgx.Row) (domain.Store, error) {
	var s domain.Store
	err := row.Scan(
		&s.StoreID,
		&s.Name,
		&s.Phone,
		&s.Address,
		&s.CreatedAt,
		&s.CreatedBy,
		&s.LastUpdatedAt,
		&s.LastUpdatedBy,
	)
	return s, err
}

func (r *PgxStoreRepository) SaveStore(ctx context.Context, store domain.Store) error {
	query := `
		INSERT INTO stores (` + storeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		store.StoreID,
		store.Name,
		store.Phone,
		store.Address,
		store.CreatedAt,
		store.CreatedBy,
		store.LastUpdatedAt,
		store.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save store: %w", err)
	}
	return nil
}

func (r *PgxStoreRepository) FindStoreByID(ctx context.Context, storeID string) (*domain.Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores WHERE store_id = $1;`
	store, err := scanStore(r.Pool.QueryRow(ctx, query, storeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find store by ID %s: %w", storeID, err)
	}
	return &store, nil
}

func (r *PgxStoreRepository) FindStores(ctx context.Context) ([]domain.Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query stores: %w", err)
	}
	defer rows.Close()

	var stores []domain.Store
	for rows.Next() {
		store, err := scanStore(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan store: %w", err)
		}
		stores = append(stores, store)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating stores: %w", err)
	}
	return stores, nil
}

func (r *PgxStoreRepository) UpdateStore(ctx context.Context, store domain.Store) error {
	query := `
		UPDATE stores SET
			name = $2,
			phone = $3,
			address = $4,
			last_updated_at = $5,
			last_updated_by = $6
		WHERE store_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		store.StoreID,
		store.Name,
		store.Phone,
		store.Address,
		store.LastUpdatedAt,
		store.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update store %s: %w", store.StoreID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteStore removes a store together with its sales and payments. All three
// deletes happen in one transaction so a partial failure cannot orphan records.
func (r *PgxStoreRepository) DeleteStore(ctx context.Context, storeID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM sales WHERE store_id = $1;`, storeID); err != nil {
		return fmt.Errorf("failed to delete sales for store %s: %w", storeID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM payments WHERE store_id = $1;`, storeID); err != nil {
		return fmt.Errorf("failed to delete payments for store %s: %w", storeID, err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM stores WHERE store_id = $1;`, storeID)
	if err != nil {
		return fmt.Errorf("failed to delete store %s: %w", storeID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}
