package dto

import (
	"github.com/cardledger/card_ledger_app/internal/core/domain"
)

// PartnerRequest is one roster entry in a partner configuration update.
type PartnerRequest struct {
	PartnerID    string   `json:"partnerID"`
	Name         string   `json:"name" binding:"required"`
	SharePercent *float64 `json:"sharePercent" binding:"omitempty,gte=0,lte=100"`
}

// SavePartnersConfigRequest replaces the partner setup.
type SavePartnersConfigRequest struct {
	Count        int                `json:"count" binding:"gte=0"`
	List         []PartnerRequest   `json:"list" binding:"dive"`
	Distribution string             `json:"distribution" binding:"omitempty,oneof=equal percent"`
	Carryover    map[string]float64 `json:"carryover"`
}

// CreateAdjustmentRequest records a partner withdrawal.
type CreateAdjustmentRequest struct {
	PartnerID string  `json:"partnerID" binding:"required"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	Date      string  `json:"date" binding:"required"`
	Notes     string  `json:"notes"`
}

// PartnersConfigResponse mirrors domain.PartnersConfig.
type PartnersConfigResponse struct {
	Count        int                  `json:"count"`
	List         []domain.Partner     `json:"list"`
	Distribution string               `json:"distribution"`
	Adjustments  []AdjustmentResponse `json:"adjustments"`
	Carryover    map[string]float64   `json:"carryover"`
}

// AdjustmentResponse mirrors domain.Adjustment.
type AdjustmentResponse struct {
	AdjustmentID string  `json:"adjustmentID"`
	PartnerID    string  `json:"partnerID"`
	Amount       float64 `json:"amount"`
	Date         string  `json:"date"`
	Notes        string  `json:"notes,omitempty"`
}

func (r SavePartnersConfigRequest) ToDomain() domain.PartnersConfig {
	list := make([]domain.Partner, len(r.List))
	for i, p := range r.List {
		list[i] = domain.Partner{
			PartnerID:    p.PartnerID,
			Name:         p.Name,
			SharePercent: p.SharePercent,
		}
	}
	return domain.PartnersConfig{
		Count:        r.Count,
		List:         list,
		Distribution: domain.DistributionMode(r.Distribution),
		Carryover:    r.Carryover,
	}
}

func (r CreateAdjustmentRequest) ToDomain() domain.Adjustment {
	return domain.Adjustment{
		PartnerID: r.PartnerID,
		Amount:    r.Amount,
		Date:      r.Date,
		Notes:     r.Notes,
	}
}

// ToAdjustmentResponse converts a domain.Adjustment to AdjustmentResponse DTO
func ToAdjustmentResponse(a *domain.Adjustment) AdjustmentResponse {
	return AdjustmentResponse{
		AdjustmentID: a.AdjustmentID,
		PartnerID:    a.PartnerID,
		Amount:       a.Amount,
		Date:         a.Date,
		Notes:        a.Notes,
	}
}

func ToListAdjustmentResponse(adjustments []domain.Adjustment) []AdjustmentResponse {
	res := make([]AdjustmentResponse, len(adjustments))
	for i := range adjustments {
		res[i] = ToAdjustmentResponse(&adjustments[i])
	}
	return res
}

// ToPartnersConfigResponse converts a domain.PartnersConfig to its DTO.
func ToPartnersConfigResponse(cfg *domain.PartnersConfig) PartnersConfigResponse {
	return PartnersConfigResponse{
		Count:        cfg.Count,
		List:         cfg.List,
		Distribution: string(cfg.Distribution),
		Adjustments:  ToListAdjustmentResponse(cfg.Adjustments),
		Carryover:    cfg.Carryover,
	}
}
