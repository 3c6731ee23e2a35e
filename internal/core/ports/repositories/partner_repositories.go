package repositories

import (
	"context"

	"github.com/cardledger/card_ledger_app/internal/core/domain"
)

// PartnerConfigReader defines read operations for the partner setup
type PartnerConfigReader interface {
	// GetPartnersConfig loads the full partner configuration: roster,
	// distribution mode, adjustments and carryover balances.
	GetPartnersConfig(ctx context.Context) (*domain.PartnersConfig, error)
}

// PartnerConfigWriter defines write operations for the partner setup
type PartnerConfigWriter interface {
	// SavePartnersConfig replaces the roster, distribution mode and
	// carryover balances. Adjustments are managed separately.
	SavePartnersConfig(ctx context.Context, cfg domain.PartnersConfig) error

	// SaveAdjustment persists a new partner withdrawal.
	SaveAdjustment(ctx context.Context, adjustment domain.Adjustment) error

	// DeleteAdjustment removes a withdrawal.
	DeleteAdjustment(ctx context.Context, adjustmentID string) error
}

// PartnerRepositoryFacade combines all partner repository interfaces
type PartnerRepositoryFacade interface {
	PartnerConfigReader
	PartnerConfigWriter
}
