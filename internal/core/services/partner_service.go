package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cardledger/card_ledger_app/internal/apperrors"
	"github.com/cardledger/card_ledger_app/internal/core/domain"
	portsrepo "github.com/cardledger/card_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/cardledger/card_ledger_app/internal/core/ports/services"
	"github.com/cardledger/card_ledger_app/pkg/cache"
	"github.com/google/uuid"
)

// partnerService implements the PartnerSvcFacade interface
type partnerService struct {
	BaseService
	repos portsrepo.RepositoryProvider
	cache cache.Cache
	now   func() time.Time
}

// PartnerServiceOption is a functional option for configuring the partner service
type PartnerServiceOption func(*partnerService)

// WithPartnerCache sets the cache partner mutations invalidate.
func WithPartnerCache(c cache.Cache) PartnerServiceOption {
	return func(s *partnerService) {
		s.cache = c
	}
}

// WithPartnerClock overrides the audit timestamp source. Used by tests.
func WithPartnerClock(now func() time.Time) PartnerServiceOption {
	return func(s *partnerService) {
		s.now = now
	}
}

// NewPartnerService creates a new partner service with the provided options
func NewPartnerService(repos portsrepo.RepositoryProvider, options ...PartnerServiceOption) portssvc.PartnerSvcFacade {
	svc := &partnerService{
		repos: repos,
		cache: cache.Passthrough{},
		now:   time.Now,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure partnerService implements the PartnerSvcFacade interface
var _ portssvc.PartnerSvcFacade = (*partnerService)(nil)

func (s *partnerService) GetPartnersConfig(ctx context.Context) (*domain.PartnersConfig, error) {
	return s.repos.PartnerRepo.GetPartnersConfig(ctx)
}

// SavePartnersConfig replaces the roster, mode and carryover balances. A
// percent roster whose shares do not sum to 100 is stored as-is; the
// distribution engine normalizes and the report surfaces a warning.
func (s *partnerService) SavePartnersConfig(ctx context.Context, cfg domain.PartnersConfig) (*domain.PartnersConfig, error) {
	if cfg.Count < 0 {
		return nil, apperrors.NewAppError(400, "partner count cannot be negative", apperrors.ErrValidation)
	}
	switch cfg.Distribution {
	case domain.DistributionEqual, domain.DistributionPercent:
	case "":
		cfg.Distribution = domain.DistributionEqual
	default:
		return nil, apperrors.NewAppError(400, fmt.Sprintf("unknown distribution mode %q", cfg.Distribution), apperrors.ErrValidation)
	}
	for i := range cfg.List {
		if cfg.List[i].PartnerID == "" {
			cfg.List[i].PartnerID = uuid.NewString()
		}
		if p := cfg.List[i].SharePercent; p != nil && (*p < 0 || math.IsNaN(*p)) {
			return nil, apperrors.NewAppError(400, "share percent cannot be negative", apperrors.ErrValidation)
		}
	}
	if len(cfg.List) > 0 {
		cfg.Count = len(cfg.List)
	}

	if err := s.repos.PartnerRepo.SavePartnersConfig(ctx, cfg); err != nil {
		s.LogError(ctx, err, "Failed to save partner configuration")
		return nil, fmt.Errorf("failed to save partner configuration: %w", err)
	}

	s.cache.InvalidateTag(TagPartnerReports)
	s.LogInfo(ctx, "Partner configuration saved",
		slog.Int("partners", cfg.Count),
		slog.String("distribution", string(cfg.Distribution)))
	return &cfg, nil
}

func (s *partnerService) AddAdjustment(ctx context.Context, adjustment domain.Adjustment) (*domain.Adjustment, error) {
	if err := validateAmount(adjustment.Amount); err != nil {
		return nil, err
	}
	if adjustment.PartnerID == "" {
		return nil, apperrors.NewAppError(400, "withdrawal requires a partner", apperrors.ErrValidation)
	}

	if adjustment.AdjustmentID == "" {
		adjustment.AdjustmentID = uuid.NewString()
	}
	now := s.now()
	adjustment.CreatedAt = now
	adjustment.LastUpdatedAt = now

	if err := s.repos.PartnerRepo.SaveAdjustment(ctx, adjustment); err != nil {
		s.LogError(ctx, err, "Failed to save withdrawal", slog.String("partner_id", adjustment.PartnerID))
		return nil, fmt.Errorf("failed to save withdrawal: %w", err)
	}

	s.cache.InvalidateTag(TagPartnerReports)
	s.LogInfo(ctx, "Partner withdrawal recorded",
		slog.String("adjustment_id", adjustment.AdjustmentID),
		slog.String("partner_id", adjustment.PartnerID),
		slog.Float64("amount", adjustment.Amount))
	return &adjustment, nil
}

func (s *partnerService) DeleteAdjustment(ctx context.Context, adjustmentID string) error {
	if err := s.repos.PartnerRepo.DeleteAdjustment(ctx, adjustmentID); err != nil {
		return err
	}

	s.cache.InvalidateTag(TagPartnerReports)
	s.LogInfo(ctx, "Partner withdrawal deleted", slog.String("adjustment_id", adjustmentID))
	return nil
}
