package domain

// Sale records a prepaid-card sale to a store. A sale increases the store's
// debt towards the business.
//
// Date is kept as the string the operator entered. The legacy data this
// system inherits mixes ISO dates, day-first dates and Arabic-Indic digits,
// so normalization happens at read time (see internal/utils/dates), never
// at write time.
type Sale struct {
	SaleID     string  `json:"saleID"`
	StoreID    string  `json:"storeID"`
	Date       string  `json:"date"`
	PackageRef string  `json:"packageRef,omitempty"` // package id or "custom"
	Quantity   int     `json:"quantity,omitempty"`
	Amount     float64 `json:"amount"` // total sale value, > 0
	Notes      string  `json:"notes,omitempty"`
	AuditFields
}

// Payment records a store paying down its debt.
type Payment struct {
	PaymentID string  `json:"paymentID"`
	StoreID   string  `json:"storeID"`
	Date      string  `json:"date"`
	Amount    float64 `json:"amount"` // > 0
	Method    string  `json:"method,omitempty"`
	Notes     string  `json:"notes,omitempty"`
	AuditFields
}

// Expense is a business expense. Expenses reduce partner net profit but do
// not touch store balances.
type Expense struct {
	ExpenseID string  `json:"expenseID"`
	Date      string  `json:"date"`
	Amount    float64 `json:"amount"` // > 0
	Type      string  `json:"type"`
	AddLater  bool    `json:"addLater"` // recorded now, paid later
	Notes     string  `json:"notes,omitempty"`
	AuditFields
}

// Store is a reseller point of sale that buys cards on credit.
type Store struct {
	StoreID string `json:"storeID"`
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	AuditFields
}
