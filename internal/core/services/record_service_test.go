package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cardledger/card_ledger_app/internal/apperrors"
	"github.com/cardledger/card_ledger_app/internal/core/domain"
	portsrepo "github.com/cardledger/card_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/cardledger/card_ledger_app/internal/core/ports/services"
	"github.com/cardledger/card_ledger_app/internal/core/services"
	"github.com/cardledger/card_ledger_app/pkg/cache"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type RecordServiceTestSuite struct {
	suite.Suite
	mockSales    *MockSaleRepository
	mockPayments *MockPaymentRepository
	mockExpenses *MockExpenseRepository
	mockStores   *MockStoreRepository
	mockPartners *MockPartnerRepository
	cache        *cache.MemoryCache
	records      portssvc.RecordSvcFacade
	partners     portssvc.PartnerSvcFacade
	ctx          context.Context
}

func (s *RecordServiceTestSuite) SetupTest() {
	s.mockSales = new(MockSaleRepository)
	s.mockPayments = new(MockPaymentRepository)
	s.mockExpenses = new(MockExpenseRepository)
	s.mockStores = new(MockStoreRepository)
	s.mockPartners = new(MockPartnerRepository)
	s.cache = cache.NewMemoryCache()
	repos := portsrepo.RepositoryProvider{
		SaleRepo:    s.mockSales,
		PaymentRepo: s.mockPayments,
		ExpenseRepo: s.mockExpenses,
		StoreRepo:   s.mockStores,
		PartnerRepo: s.mockPartners,
	}
	fixed := func() time.Time { return time.Date(2024, 3, 13, 12, 0, 0, 0, time.UTC) }
	s.records = services.NewRecordService(repos,
		services.WithRecordCache(s.cache),
		services.WithRecordClock(fixed))
	s.partners = services.NewPartnerService(repos,
		services.WithPartnerCache(s.cache),
		services.WithPartnerClock(fixed))
	s.ctx = context.Background()
}

func (s *RecordServiceTestSuite) TestCreateSale() {
	s.mockStores.On("FindStoreByID", s.ctx, "s1").Return(&domain.Store{StoreID: "s1", Name: "Alpha"}, nil).Once()
	s.mockSales.On("SaveSale", s.ctx, mock.AnythingOfType("domain.Sale")).Return(nil).Once()

	created, err := s.records.CreateSale(s.ctx, domain.Sale{
		StoreID: "s1",
		Date:    "2024-03-13",
		Amount:  250,
	})

	s.Require().NoError(err)
	s.NotEmpty(created.SaleID, "an ID is assigned on create")
	s.False(created.CreatedAt.IsZero())
	s.mockSales.AssertExpectations(s.T())
}

func (s *RecordServiceTestSuite) TestCreateSaleRejectsNonPositiveAmount() {
	_, err := s.records.CreateSale(s.ctx, domain.Sale{StoreID: "s1", Amount: 0})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockSales.AssertNotCalled(s.T(), "SaveSale", mock.Anything, mock.Anything)
}

func (s *RecordServiceTestSuite) TestCreateSaleUnknownStore() {
	s.mockStores.On("FindStoreByID", s.ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.records.CreateSale(s.ctx, domain.Sale{StoreID: "ghost", Amount: 10})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *RecordServiceTestSuite) TestSaleMutationInvalidatesStoreReports() {
	s.cache.Set("report_profit_2024-03-01_2024-03-31", 1, time.Minute, services.TagProfitReports)
	s.cache.Set("report_partners_2024-03-01_2024-03-31", 2, time.Minute, services.TagPartnerReports)
	s.cache.Set("report_debt_all", 3, time.Minute, services.TagDebtReports)
	s.cache.Set("balance_s1", 4, time.Minute, services.BalanceTag("s1"))
	s.cache.Set("balance_s2", 5, time.Minute, services.BalanceTag("s2"))

	s.mockStores.On("FindStoreByID", s.ctx, "s1").Return(&domain.Store{StoreID: "s1"}, nil).Once()
	s.mockSales.On("SaveSale", s.ctx, mock.AnythingOfType("domain.Sale")).Return(nil).Once()

	_, err := s.records.CreateSale(s.ctx, domain.Sale{StoreID: "s1", Date: "2024-03-13", Amount: 100})
	s.Require().NoError(err)

	_, ok := s.cache.Get("report_profit_2024-03-01_2024-03-31")
	s.False(ok)
	_, ok = s.cache.Get("report_partners_2024-03-01_2024-03-31")
	s.False(ok)
	_, ok = s.cache.Get("report_debt_all")
	s.False(ok)
	_, ok = s.cache.Get("balance_s1")
	s.False(ok)
	_, ok = s.cache.Get("balance_s2")
	s.True(ok, "other stores' balances survive")
}

func (s *RecordServiceTestSuite) TestUpdateSaleKeepsStoreAndAudit() {
	existing := &domain.Sale{
		SaleID:  "sl1",
		StoreID: "s1",
		Date:    "2024-03-01",
		Amount:  100,
		AuditFields: domain.AuditFields{
			CreatedAt: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
			CreatedBy: "admin",
		},
	}
	s.mockSales.On("FindSaleByID", s.ctx, "sl1").Return(existing, nil).Once()
	s.mockSales.On("UpdateSale", s.ctx, mock.MatchedBy(func(sale domain.Sale) bool {
		return sale.StoreID == "s1" && sale.CreatedBy == "admin" && sale.Amount == 150
	})).Return(nil).Once()

	updated, err := s.records.UpdateSale(s.ctx, domain.Sale{
		SaleID:  "sl1",
		StoreID: "s2", // must be ignored
		Amount:  150,
	})

	s.Require().NoError(err)
	s.Equal("s1", updated.StoreID)
	s.Equal(existing.CreatedAt, updated.CreatedAt)
	s.mockSales.AssertExpectations(s.T())
}

func (s *RecordServiceTestSuite) TestDeletePaymentInvalidatesByOwningStore() {
	s.cache.Set("balance_s7", 1, time.Minute, services.BalanceTag("s7"))
	s.mockPayments.On("FindPaymentByID", s.ctx, "p1").Return(&domain.Payment{
		PaymentID: "p1", StoreID: "s7", Amount: 40,
	}, nil).Once()
	s.mockPayments.On("DeletePayment", s.ctx, "p1").Return(nil).Once()

	s.Require().NoError(s.records.DeletePayment(s.ctx, "p1"))

	_, ok := s.cache.Get("balance_s7")
	s.False(ok)
}

func (s *RecordServiceTestSuite) TestExpenseMutationLeavesBalancesAlone() {
	s.cache.Set("balance_s1", 1, time.Minute, services.BalanceTag("s1"))
	s.cache.Set("report_profit_x", 2, time.Minute, services.TagProfitReports)
	s.mockExpenses.On("SaveExpense", s.ctx, mock.AnythingOfType("domain.Expense")).Return(nil).Once()

	_, err := s.records.CreateExpense(s.ctx, domain.Expense{Date: "2024-03-13", Amount: 75, Type: "rent"})
	s.Require().NoError(err)

	_, ok := s.cache.Get("report_profit_x")
	s.False(ok)
	_, ok = s.cache.Get("balance_s1")
	s.True(ok, "expenses never touch store balances")
}

func (s *RecordServiceTestSuite) TestRepositoryFailureSurfaces() {
	s.mockStores.On("FindStoreByID", s.ctx, "s1").Return(&domain.Store{StoreID: "s1"}, nil).Once()
	s.mockSales.On("SaveSale", s.ctx, mock.AnythingOfType("domain.Sale")).Return(errors.New("connection reset")).Once()

	_, err := s.records.CreateSale(s.ctx, domain.Sale{StoreID: "s1", Amount: 10})

	s.Require().Error(err)
	s.Contains(err.Error(), "failed to save sale")
}

func (s *RecordServiceTestSuite) TestSavePartnersConfigValidatesMode() {
	_, err := s.partners.SavePartnersConfig(s.ctx, domain.PartnersConfig{
		Distribution: "thirds",
	})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *RecordServiceTestSuite) TestSavePartnersConfigDefaultsAndInvalidates() {
	s.cache.Set("report_partners_x", 1, time.Minute, services.TagPartnerReports)
	s.mockPartners.On("SavePartnersConfig", s.ctx, mock.MatchedBy(func(cfg domain.PartnersConfig) bool {
		return cfg.Distribution == domain.DistributionEqual && cfg.Count == 2
	})).Return(nil).Once()

	saved, err := s.partners.SavePartnersConfig(s.ctx, domain.PartnersConfig{
		List: []domain.Partner{{Name: "A"}, {Name: "B"}},
	})

	s.Require().NoError(err)
	s.Equal(2, saved.Count, "count follows the roster when one is set")
	s.NotEmpty(saved.List[0].PartnerID)

	_, ok := s.cache.Get("report_partners_x")
	s.False(ok)
}

func (s *RecordServiceTestSuite) TestAddAdjustment() {
	s.mockPartners.On("SaveAdjustment", s.ctx, mock.AnythingOfType("domain.Adjustment")).Return(nil).Once()

	adj, err := s.partners.AddAdjustment(s.ctx, domain.Adjustment{
		PartnerID: "p1",
		Amount:    120,
		Date:      "2024-03-13",
	})

	s.Require().NoError(err)
	s.NotEmpty(adj.AdjustmentID)

	_, err = s.partners.AddAdjustment(s.ctx, domain.Adjustment{PartnerID: "", Amount: 10})
	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func TestRecordServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RecordServiceTestSuite))
}
