package pgsql

import (
	portsrepo "github.com/cardledger/card_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider creates all pgx-backed repositories over one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		SaleRepo:    newPgxSaleRepository(dbPool),
		PaymentRepo: newPgxPaymentRepository(dbPool),
		ExpenseRepo: newPgxExpenseRepository(dbPool),
		StoreRepo:   newPgxStoreRepository(dbPool),
		PartnerRepo: newPgxPartnerRepository(dbPool),
		DatesRepo:   newPgxRecordDatesRepository(dbPool),
	}
}
