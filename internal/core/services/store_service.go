package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cardledger/card_ledger_app/internal/apperrors"
	"github.com/cardledger/card_ledger_app/internal/core/domain"
	portsrepo "github.com/cardledger/card_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/cardledger/card_ledger_app/internal/core/ports/services"
	"github.com/cardledger/card_ledger_app/pkg/cache"
	"github.com/google/uuid"
)

// storeService implements the StoreSvcFacade interface
type storeService struct {
	BaseService
	repos portsrepo.RepositoryProvider
	cache cache.Cache
	now   func() time.Time
}

// StoreServiceOption is a functional option for configuring the store service
type StoreServiceOption func(*storeService)

// WithStoreCache sets the cache store mutations invalidate.
func WithStoreCache(c cache.Cache) StoreServiceOption {
	return func(s *storeService) {
		s.cache = c
	}
}

// WithStoreClock overrides the audit timestamp source. Used by tests.
func WithStoreClock(now func() time.Time) StoreServiceOption {
	return func(s *storeService) {
		s.now = now
	}
}

// NewStoreService creates a new store service with the provided options
func NewStoreService(repos portsrepo.RepositoryProvider, options ...StoreServiceOption) portssvc.StoreSvcFacade {
	svc := &storeService{
		repos: repos,
		cache: cache.Passthrough{},
		now:   time.Now,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure storeService implements the StoreSvcFacade interface
var _ portssvc.StoreSvcFacade = (*storeService)(nil)

func (s *storeService) CreateStore(ctx context.Context, store domain.Store) (*domain.Store, error) {
	store.Name = strings.TrimSpace(store.Name)
	if store.Name == "" {
		return nil, apperrors.NewAppError(400, "store name is required", apperrors.ErrValidation)
	}

	if store.StoreID == "" {
		store.StoreID = uuid.NewString()
	}
	now := s.now()
	store.CreatedAt = now
	store.LastUpdatedAt = now

	if err := s.repos.StoreRepo.SaveStore(ctx, store); err != nil {
		s.LogError(ctx, err, "Failed to save store", slog.String("name", store.Name))
		return nil, fmt.Errorf("failed to save store: %w", err)
	}

	s.cache.InvalidateTag(TagDebtReports)
	s.LogInfo(ctx, "Store created",
		slog.String("store_id", store.StoreID),
		slog.String("name", store.Name))
	return &store, nil
}

func (s *storeService) UpdateStore(ctx context.Context, store domain.Store) (*domain.Store, error) {
	store.Name = strings.TrimSpace(store.Name)
	if store.Name == "" {
		return nil, apperrors.NewAppError(400, "store name is required", apperrors.ErrValidation)
	}
	existing, err := s.repos.StoreRepo.FindStoreByID(ctx, store.StoreID)
	if err != nil {
		return nil, err
	}
	store.CreatedAt = existing.CreatedAt
	store.CreatedBy = existing.CreatedBy
	store.LastUpdatedAt = s.now()

	if err := s.repos.StoreRepo.UpdateStore(ctx, store); err != nil {
		return nil, fmt.Errorf("failed to update store: %w", err)
	}

	// The store name is embedded in cached balance and debt rows.
	s.cache.InvalidateTag(BalanceTag(store.StoreID))
	s.cache.InvalidateTag(TagDebtReports)
	s.LogInfo(ctx, "Store updated", slog.String("store_id", store.StoreID))
	return &store, nil
}

func (s *storeService) DeleteStore(ctx context.Context, storeID string) error {
	if _, err := s.repos.StoreRepo.FindStoreByID(ctx, storeID); err != nil {
		return err
	}
	if err := s.repos.StoreRepo.DeleteStore(ctx, storeID); err != nil {
		return fmt.Errorf("failed to delete store: %w", err)
	}

	// Deleting a store removes its sales and payments, which feed every
	// aggregate report.
	s.cache.InvalidateTag(BalanceTag(storeID))
	s.cache.InvalidateTag(TagDebtReports)
	s.cache.InvalidateTag(TagProfitReports)
	s.cache.InvalidateTag(TagPartnerReports)
	s.LogInfo(ctx, "Store deleted with its sales and payments", slog.String("store_id", storeID))
	return nil
}

func (s *storeService) GetStore(ctx context.Context, storeID string) (*domain.Store, error) {
	return s.repos.StoreRepo.FindStoreByID(ctx, storeID)
}

func (s *storeService) ListStores(ctx context.Context) ([]domain.Store, error) {
	return s.repos.StoreRepo.FindStores(ctx)
}
