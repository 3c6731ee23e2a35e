package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cardledger/card_ledger_app/internal/apperrors"
	"github.com/cardledger/card_ledger_app/internal/core/domain"
	portsrepo "github.com/cardledger/card_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPartnerRepository struct {
	BaseRepository
}

func newPgxPartnerRepository(db *pgxpool.Pool) portsrepo.PartnerRepositoryFacade {
	return &PgxPartnerRepository{BaseRepository{Pool: db}}
}

// Ensure PgxPartnerRepository implements portsrepo.PartnerRepositoryFacade
var _ portsrepo.PartnerRepositoryFacade = (*PgxPartnerRepository)(nil)

// The partner setup is a singleton: partners_config holds exactly one row
// keyed by config_id = 1.
const partnersConfigID = 1

func (r *PgxPartnerRepository) GetPartnersConfig(ctx context.Context) (*domain.PartnersConfig, error) {
	cfg := domain.PartnersConfig{
		Distribution: domain.DistributionEqual,
		Carryover:    domain.CarryoverMap{},
	}

	var carryoverJSON []byte
	err := r.Pool.QueryRow(ctx,
		`SELECT partner_count, distribution, carryover FROM partners_config WHERE config_id = $1;`,
		partnersConfigID,
	).Scan(&cfg.Count, &cfg.Distribution, &carryoverJSON)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to load partners config: %w", err)
	}
	if len(carryoverJSON) > 0 {
		if err := json.Unmarshal(carryoverJSON, &cfg.Carryover); err != nil {
			return nil, fmt.Errorf("failed to decode carryover balances: %w", err)
		}
	}

	partners, err := r.findPartners(ctx)
	if err != nil {
		return nil, err
	}
	cfg.List = partners

	adjustments, err := r.findAdjustments(ctx)
	if err != nil {
		return nil, err
	}
	cfg.Adjustments = adjustments

	return &cfg, nil
}

func (r *PgxPartnerRepository) findPartners(ctx context.Context) ([]domain.Partner, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT partner_id, name, share_percent FROM partners ORDER BY position;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query partners: %w", err)
	}
	defer rows.Close()

	var partners []domain.Partner
	for rows.Next() {
		var p domain.Partner
		if err := rows.Scan(&p.PartnerID, &p.Name, &p.SharePercent); err != nil {
			return nil, fmt.Errorf("failed to scan partner: %w", err)
		}
		partners = append(partners, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating partners: %w", err)
	}
	return partners, nil
}

const adjustmentColumns = `adjustment_id, partner_id, amount, adjustment_date, notes,
	created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxPartnerRepository) findAdjustments(ctx context.Context) ([]domain.Adjustment, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT `+adjustmentColumns+` FROM adjustments ORDER BY created_at;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query adjustments: %w", err)
	}
	defer rows.Close()

	var adjustments []domain.Adjustment
	for rows.Next() {
		var a domain.Adjustment
		err := rows.Scan(
			&a.AdjustmentID,
			&a.PartnerID,
			&a.Amount,
			&a.Date,
			&a.Notes,
			&a.CreatedAt,
			&a.CreatedBy,
			&a.LastUpdatedAt,
			&a.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan adjustment: %w", err)
		}
		adjustments = append(adjustments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating adjustments: %w", err)
	}
	return adjustments, nil
}

// SavePartnersConfig replaces the singleton config row and the roster in one
// transaction. Adjustments are left untouched.
func (r *PgxPartnerRepository) SavePartnersConfig(ctx context.Context, cfg domain.PartnersConfig) error {
	carryoverJSON, err := json.Marshal(cfg.Carryover)
	if err != nil {
		return fmt.Errorf("failed to encode carryover balances: %w", err)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	query := `
		INSERT INTO partners_config (config_id, partner_count, distribution, carryover)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (config_id) DO UPDATE SET
			partner_count = EXCLUDED.partner_count,
			distribution = EXCLUDED.distribution,
			carryover = EXCLUDED.carryover;
	`
	if _, err := tx.Exec(ctx, query, partnersConfigID, cfg.Count, cfg.Distribution, carryoverJSON); err != nil {
		return fmt.Errorf("failed to save partners config: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM partners;`); err != nil {
		return fmt.Errorf("failed to clear partner roster: %w", err)
	}
	for i, p := range cfg.List {
		_, err := tx.Exec(ctx,
			`INSERT INTO partners (partner_id, name, share_percent, position) VALUES ($1, $2, $3, $4);`,
			p.PartnerID, p.Name, p.SharePercent, i,
		)
		if err != nil {
			return fmt.Errorf("failed to save partner %s: %w", p.PartnerID, err)
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxPartnerRepository) SaveAdjustment(ctx context.Context, adjustment domain.Adjustment) error {
	query := `
		INSERT INTO adjustments (` + adjustmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		adjustment.AdjustmentID,
		adjustment.PartnerID,
		adjustment.Amount,
		adjustment.Date,
		adjustment.Notes,
		adjustment.CreatedAt,
		adjustment.CreatedBy,
		adjustment.LastUpdatedAt,
		adjustment.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save adjustment: %w", err)
	}
	return nil
}

func (r *PgxPartnerRepository) DeleteAdjustment(ctx context.Context, adjustmentID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM adjustments WHERE adjustment_id = $1;`, adjustmentID)
	if err != nil {
		return fmt.Errorf("failed to delete adjustment %s: %w", adjustmentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
