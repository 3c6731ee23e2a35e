package domain

// DistributionMode selects how net profit is split between partners.
type DistributionMode string

const (
	DistributionEqual   DistributionMode = "equal"
	DistributionPercent DistributionMode = "percent"
)

// Partner is a profit-sharing participant. SharePercent is only meaningful
// under DistributionPercent; nil means the partner is an equal-split
// participant (or gets zero in percent mode, a data-quality problem the
// validator reports, not an error).
type Partner struct {
	PartnerID    string   `json:"partnerID"`
	Name         string   `json:"name"`
	SharePercent *float64 `json:"sharePercent,omitempty"`
}

// Adjustment is a partner withdrawal (cash draw against their share).
// It belongs to whichever computation period its date falls in.
type Adjustment struct {
	AdjustmentID string  `json:"adjustmentID"`
	PartnerID    string  `json:"partnerID"`
	Amount       float64 `json:"amount"` // > 0, validated upstream
	Date         string  `json:"date"`
	Notes        string  `json:"notes,omitempty"`
	AuditFields
}

// CarryoverMap carries signed per-partner balances rolled in from a prior
// period. Maintained externally; read-only to the engine.
type CarryoverMap map[string]float64

// PartnersConfig is the fully-resolved partner setup handed to the engine.
// The engine never reaches into ambient settings state; callers build this
// value object and pass it in.
type PartnersConfig struct {
	Count        int              `json:"count"` // used when List is empty
	List         []Partner        `json:"list"`
	Distribution DistributionMode `json:"distribution"`
	Adjustments  []Adjustment     `json:"adjustments"` // all periods; scoped by date
	Carryover    CarryoverMap     `json:"carryover"`
}
