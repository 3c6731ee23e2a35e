package dto

import (
	"time"

	"github.com/cardledger/card_ledger_app/internal/core/domain"
	"github.com/cardledger/card_ledger_app/internal/utils/money"
	"github.com/shopspring/decimal"
)

// PeriodParams selects a reporting period via query parameters.
type PeriodParams struct {
	Period string `form:"period,default=from_start"`
	From   string `form:"from"`
	To     string `form:"to"`
}

// ToSelection maps the query parameters to a domain period selection.
func (p PeriodParams) ToSelection() domain.PeriodSelection {
	return domain.PeriodSelection{
		Token: domain.PeriodToken(p.Period),
		From:  p.From,
		To:    p.To,
	}
}

// SetPeriodRequest changes the active reporting period.
type SetPeriodRequest struct {
	Token string `json:"token" binding:"required"`
	From  string `json:"from"`
	To    string `json:"to"`
}

// ToSelection maps the request to a domain period selection.
func (r SetPeriodRequest) ToSelection() domain.PeriodSelection {
	return domain.PeriodSelection{
		Token: domain.PeriodToken(r.Token),
		From:  r.From,
		To:    r.To,
	}
}

// ProfitSummaryResponse is the headline report. Amounts are rounded to two
// decimals at this boundary.
type ProfitSummaryResponse struct {
	From          string          `json:"from"`
	To            string          `json:"to"`
	TotalSales    decimal.Decimal `json:"totalSales"`
	TotalPayments decimal.Decimal `json:"totalPayments"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetProfit     decimal.Decimal `json:"netProfit"`
}

// ToProfitSummaryResponse converts a domain.ProfitSummary to its DTO.
func ToProfitSummaryResponse(s *domain.ProfitSummary, period domain.PeriodRange) ProfitSummaryResponse {
	return ProfitSummaryResponse{
		From:          period.From.Format(time.DateOnly),
		To:            period.To.Format(time.DateOnly),
		TotalSales:    money.Round2(s.TotalSales),
		TotalPayments: money.Round2(s.TotalPayments),
		TotalExpenses: money.Round2(s.TotalExpenses),
		NetProfit:     money.Round2(s.NetProfit),
	}
}

// PartnerShareRowResponse is one partner's settlement row.
type PartnerShareRowResponse struct {
	PartnerID    string           `json:"partnerID"`
	Name         string           `json:"name"`
	SharePercent *decimal.Decimal `json:"sharePercent,omitempty"`
	Base         decimal.Decimal  `json:"base"`
	Withdrawals  decimal.Decimal  `json:"withdrawals"`
	Carryover    decimal.Decimal  `json:"carryover"`
	Net          decimal.Decimal  `json:"net"`
	Status       string           `json:"status"`
}

// WarningResponse is an advisory finding attached to a report.
type WarningResponse struct {
	Code      string          `json:"code"`
	Message   string          `json:"message"`
	PartnerID string          `json:"partnerID,omitempty"`
	Amount    decimal.Decimal `json:"amount,omitempty"`
}

// MonthlyDistributionResponse is one month of a multi-month breakdown.
type MonthlyDistributionResponse struct {
	Month            string                    `json:"month"`
	TotalPayments    decimal.Decimal           `json:"totalPayments"`
	TotalExpenses    decimal.Decimal           `json:"totalExpenses"`
	TotalWithdrawals decimal.Decimal           `json:"totalWithdrawals"`
	NetProfit        decimal.Decimal           `json:"netProfit"`
	Rows             []PartnerShareRowResponse `json:"rows"`
}

// PartnerReportResponse is the full partner distribution report.
type PartnerReportResponse struct {
	Summary     ProfitSummaryResponse         `json:"summary"`
	Rows        []PartnerShareRowResponse     `json:"rows"`
	Warnings    []WarningResponse             `json:"warnings"`
	Adjustments []AdjustmentResponse          `json:"adjustments"`
	Months      []MonthlyDistributionResponse `json:"months,omitempty"`
}

func toPartnerShareRows(rows []domain.PartnerShareRow) []PartnerShareRowResponse {
	res := make([]PartnerShareRowResponse, len(rows))
	for i, row := range rows {
		res[i] = PartnerShareRowResponse{
			PartnerID:    row.PartnerID,
			Name:         row.Name,
			SharePercent: money.Round2Ptr(row.SharePercent),
			Base:         money.Round2(row.Base),
			Withdrawals:  money.Round2(row.Withdrawals),
			Carryover:    money.Round2(row.Carryover),
			Net:          money.Round2(row.Net),
			Status:       string(row.Status),
		}
	}
	return res
}

// ToPartnerReportResponse converts a domain.PartnerReport to its DTO.
func ToPartnerReportResponse(r *domain.PartnerReport) PartnerReportResponse {
	warnings := make([]WarningResponse, len(r.Warnings))
	for i, w := range r.Warnings {
		warnings[i] = WarningResponse{
			Code:      string(w.Code),
			Message:   w.Message,
			PartnerID: w.PartnerID,
			Amount:    money.Round2(w.Amount),
		}
	}
	months := make([]MonthlyDistributionResponse, len(r.Months))
	for i, m := range r.Months {
		months[i] = MonthlyDistributionResponse{
			Month:            m.Month,
			TotalPayments:    money.Round2(m.TotalPayments),
			TotalExpenses:    money.Round2(m.TotalExpenses),
			TotalWithdrawals: money.Round2(m.TotalWithdrawals),
			NetProfit:        money.Round2(m.NetProfit),
			Rows:             toPartnerShareRows(m.Rows),
		}
	}
	if len(months) == 0 {
		months = nil
	}
	return PartnerReportResponse{
		Summary:     ToProfitSummaryResponse(&r.Summary, r.Period),
		Rows:        toPartnerShareRows(r.Rows),
		Warnings:    warnings,
		Adjustments: ToListAdjustmentResponse(r.Adjustments),
		Months:      months,
	}
}

// LedgerLineResponse is one statement row.
type LedgerLineResponse struct {
	Date    string          `json:"date"`
	Kind    string          `json:"kind"`
	Debit   decimal.Decimal `json:"debit"`
	Credit  decimal.Decimal `json:"credit"`
	Balance decimal.Decimal `json:"balance"`
	RefID   string          `json:"refID,omitempty"`
	Notes   string          `json:"notes,omitempty"`
	Flagged bool            `json:"flagged,omitempty"`
}

// StatementResponse is a store's reconstructed account statement.
type StatementResponse struct {
	StoreID         string               `json:"storeID"`
	From            string               `json:"from"`
	To              string               `json:"to"`
	PreviousBalance decimal.Decimal      `json:"previousBalance"`
	Lines           []LedgerLineResponse `json:"lines"`
	TotalDebit      decimal.Decimal      `json:"totalDebit"`
	TotalCredit     decimal.Decimal      `json:"totalCredit"`
	FinalBalance    decimal.Decimal      `json:"finalBalance"`
}

// ToStatementResponse converts a domain.LedgerStatement to its DTO.
func ToStatementResponse(stmt *domain.LedgerStatement, storeID string, period domain.PeriodRange) StatementResponse {
	lines := make([]LedgerLineResponse, len(stmt.Lines))
	for i, line := range stmt.Lines {
		lines[i] = LedgerLineResponse{
			Date:    line.Date,
			Kind:    string(line.Kind),
			Debit:   money.Round2(line.Debit),
			Credit:  money.Round2(line.Credit),
			Balance: money.Round2(line.Balance),
			RefID:   line.RefID,
			Notes:   line.Notes,
			Flagged: line.Flagged,
		}
	}
	return StatementResponse{
		StoreID:         storeID,
		From:            period.From.Format(time.DateOnly),
		To:              period.To.Format(time.DateOnly),
		PreviousBalance: money.Round2(stmt.PreviousBalance),
		Lines:           lines,
		TotalDebit:      money.Round2(stmt.Totals.TotalDebit),
		TotalCredit:     money.Round2(stmt.Totals.TotalCredit),
		FinalBalance:    money.Round2(stmt.Totals.FinalBalance),
	}
}

// StoreBalanceResponse is one row of the debt report.
type StoreBalanceResponse struct {
	StoreID       string          `json:"storeID"`
	StoreName     string          `json:"storeName"`
	TotalSales    decimal.Decimal `json:"totalSales"`
	TotalPayments decimal.Decimal `json:"totalPayments"`
	Balance       decimal.Decimal `json:"balance"`
}

// ToStoreBalanceResponse converts a domain.StoreBalance to its DTO.
func ToStoreBalanceResponse(b *domain.StoreBalance) StoreBalanceResponse {
	return StoreBalanceResponse{
		StoreID:       b.StoreID,
		StoreName:     b.StoreName,
		TotalSales:    money.Round2(b.TotalSales),
		TotalPayments: money.Round2(b.TotalPayments),
		Balance:       money.Round2(b.Balance),
	}
}

func ToListStoreBalanceResponse(balances []domain.StoreBalance) []StoreBalanceResponse {
	res := make([]StoreBalanceResponse, len(balances))
	for i := range balances {
		res[i] = ToStoreBalanceResponse(&balances[i])
	}
	return res
}

// PeriodResponse echoes the resolved period range.
type PeriodResponse struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ToPeriodResponse converts a resolved range to its DTO.
func ToPeriodResponse(rng domain.PeriodRange) PeriodResponse {
	return PeriodResponse{
		From: rng.From.Format(time.DateOnly),
		To:   rng.To.Format(time.DateOnly),
	}
}
