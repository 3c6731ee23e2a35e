package domain

// Epsilon is the tolerance used by every floating-point sum or equality
// check in the distribution engine.
const Epsilon = 0.001

// ShareStatus says which direction the final settlement points.
type ShareStatus string

const (
	OwedToPartner ShareStatus = "owed_to_partner" // business pays the partner
	OwedByPartner ShareStatus = "owed_by_partner" // partner owes the business
)

// PartnerShareRow is one partner's settlement for a period.
// Net is stored as an absolute value; Status carries the sign.
type PartnerShareRow struct {
	PartnerID    string   `json:"partnerID"`
	Name         string   `json:"name"`
	SharePercent *float64 `json:"sharePercent,omitempty"` // echo of the configured percent
	Base         float64  `json:"base"`                   // share of net profit before adjustments
	Withdrawals  float64  `json:"withdrawals"`
	Carryover    float64  `json:"carryover"`
	Net          float64  `json:"net"` // abs(base - withdrawals + carryover)
	Status       ShareStatus
}

// WarningCode classifies advisory findings from the distribution validator.
type WarningCode string

const (
	WarnPercentSum     WarningCode = "percent_sum_mismatch"
	WarnOverWithdrawal WarningCode = "over_withdrawal"
	WarnLoss           WarningCode = "loss_distribution"
)

// Warning is a non-fatal data-quality or configuration finding. Warnings
// annotate computed results; they never change them.
type Warning struct {
	Code      WarningCode `json:"code"`
	Message   string      `json:"message"`
	PartnerID string      `json:"partnerID,omitempty"`
	Amount    float64     `json:"amount,omitempty"` // offending value (sum, excess, loss)
}

// ProfitSummary is the period's headline numbers. Net profit follows the
// cash view the business runs on: collected payments minus expenses, not
// booked sales.
type ProfitSummary struct {
	TotalSales    float64 `json:"totalSales"`
	TotalPayments float64 `json:"totalPayments"`
	TotalExpenses float64 `json:"totalExpenses"`
	NetProfit     float64 `json:"netProfit"` // totalPayments - totalExpenses
}

// MonthlyDistribution is a per-month slice of a multi-month partner report.
// Carryover applies to the period as a whole, so inside a single month it is
// always zero.
type MonthlyDistribution struct {
	Month            string            `json:"month"` // YYYY-MM
	TotalPayments    float64           `json:"totalPayments"`
	TotalExpenses    float64           `json:"totalExpenses"`
	TotalWithdrawals float64           `json:"totalWithdrawals"`
	NetProfit        float64           `json:"netProfit"`
	Rows             []PartnerShareRow `json:"rows"`
}

// PartnerReport bundles everything the partner-report renderer and the
// export modules consume.
type PartnerReport struct {
	Period      PeriodRange           `json:"period"`
	Summary     ProfitSummary         `json:"summary"`
	Rows        []PartnerShareRow     `json:"rows"`
	Warnings    []Warning             `json:"warnings"`
	Adjustments []Adjustment          `json:"adjustments"` // withdrawals inside the period
	Months      []MonthlyDistribution `json:"months,omitempty"`
}

// StoreBalance is one row of the debt report.
type StoreBalance struct {
	StoreID       string  `json:"storeID"`
	StoreName     string  `json:"storeName"`
	TotalSales    float64 `json:"totalSales"`
	TotalPayments float64 `json:"totalPayments"`
	Balance       float64 `json:"balance"` // totalSales - totalPayments
}
