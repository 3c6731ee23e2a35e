package handlers

import (
	"net/http"

	portssvc "github.com/cardledger/card_ledger_app/internal/core/ports/services"
	"github.com/cardledger/card_ledger_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// partnerHandler handles HTTP requests for the partner setup
type partnerHandler struct {
	partnerService portssvc.PartnerSvcFacade
}

func newPartnerHandler(ps portssvc.PartnerSvcFacade) *partnerHandler {
	return &partnerHandler{partnerService: ps}
}

// registerPartnerRoutes registers routes related to partners
func registerPartnerRoutes(rg *gin.RouterGroup, ps portssvc.PartnerSvcFacade) {
	h := newPartnerHandler(ps)

	partners := rg.Group("/partners")
	{
		partners.GET("/config", h.getConfig)
		partners.PUT("/config", h.saveConfig)
		partners.POST("/adjustments", h.addAdjustment)
		partners.DELETE("/adjustments/:adjustment_id", h.deleteAdjustment)
	}
}

// getConfig godoc
// @Summary Get the partner configuration
// @Tags partners
// @Produce json
// @Success 200 {object} dto.PartnersConfigResponse
// @Security BearerAuth
// @Router /partners/config [get]
func (h *partnerHandler) getConfig(c *gin.Context) {
	cfg, err := h.partnerService.GetPartnersConfig(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPartnersConfigResponse(cfg))
}

// saveConfig godoc
// @Summary Replace the partner configuration
// @Tags partners
// @Accept json
// @Produce json
// @Param config body dto.SavePartnersConfigRequest true "Partner configuration"
// @Success 200 {object} dto.PartnersConfigResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /partners/config [put]
func (h *partnerHandler) saveConfig(c *gin.Context) {
	var req dto.SavePartnersConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	cfg, err := h.partnerService.SavePartnersConfig(c.Request.Context(), req.ToDomain())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPartnersConfigResponse(cfg))
}

// addAdjustment godoc
// @Summary Record a partner withdrawal
// @Tags partners
// @Accept json
// @Produce json
// @Param adjustment body dto.CreateAdjustmentRequest true "Withdrawal"
// @Success 201 {object} dto.AdjustmentResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /partners/adjustments [post]
func (h *partnerHandler) addAdjustment(c *gin.Context) {
	var req dto.CreateAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	adj, err := h.partnerService.AddAdjustment(c.Request.Context(), req.ToDomain())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToAdjustmentResponse(adj))
}

// deleteAdjustment godoc
// @Summary Delete a partner withdrawal
// @Tags partners
// @Param adjustment_id path string true "Adjustment ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /partners/adjustments/{adjustment_id} [delete]
func (h *partnerHandler) deleteAdjustment(c *gin.Context) {
	if err := h.partnerService.DeleteAdjustment(c.Request.Context(), c.Param("adjustment_id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
