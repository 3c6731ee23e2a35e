package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/cardledger/card_ledger_app/internal/core/ports/services"
	"github.com/cardledger/card_ledger_app/internal/dto"
	"github.com/cardledger/card_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// storeHandler handles HTTP requests for stores and their derived reports
type storeHandler struct {
	storeService     portssvc.StoreSvcFacade
	reportingService portssvc.ReportingSvcFacade
	periodService    portssvc.PeriodSvcFacade
}

func newStoreHandler(ss portssvc.StoreSvcFacade, rs portssvc.ReportingSvcFacade, ps portssvc.PeriodSvcFacade) *storeHandler {
	return &storeHandler{
		storeService:     ss,
		reportingService: rs,
		periodService:    ps,
	}
}

// registerStoreRoutes registers routes related to stores
func registerStoreRoutes(rg *gin.RouterGroup, ss portssvc.StoreSvcFacade, rs portssvc.ReportingSvcFacade, ps portssvc.PeriodSvcFacade) {
	h := newStoreHandler(ss, rs, ps)

	stores := rg.Group("/stores")
	{
		stores.GET("", h.listStores)
		stores.POST("", h.createStore)
		stores.GET("/:store_id", h.getStore)
		stores.PUT("/:store_id", h.updateStore)
		stores.DELETE("/:store_id", h.deleteStore)
		stores.GET("/:store_id/balance", h.getBalance)
		stores.GET("/:store_id/statement", h.getStatement)
	}
}

// listStores godoc
// @Summary List stores
// @Tags stores
// @Produce json
// @Success 200 {array} dto.StoreResponse
// @Security BearerAuth
// @Router /stores [get]
func (h *storeHandler) listStores(c *gin.Context) {
	stores, err := h.storeService.ListStores(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListStoreResponse(stores))
}

// createStore godoc
// @Summary Register a store
// @Tags stores
// @Accept json
// @Produce json
// @Param store body dto.CreateStoreRequest true "Store"
// @Success 201 {object} dto.StoreResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /stores [post]
func (h *storeHandler) createStore(c *gin.Context) {
	var req dto.CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	store, err := h.storeService.CreateStore(c.Request.Context(), req.ToDomain())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToStoreResponse(store))
}

// getStore godoc
// @Summary Get a store
// @Tags stores
// @Produce json
// @Param store_id path string true "Store ID"
// @Success 200 {object} dto.StoreResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /stores/{store_id} [get]
func (h *storeHandler) getStore(c *gin.Context) {
	store, err := h.storeService.GetStore(c.Request.Context(), c.Param("store_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToStoreResponse(store))
}

// updateStore godoc
// @Summary Update a store
// @Tags stores
// @Accept json
// @Produce json
// @Param store_id path string true "Store ID"
// @Param store body dto.UpdateStoreRequest true "Store"
// @Success 200 {object} dto.StoreResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /stores/{store_id} [put]
func (h *storeHandler) updateStore(c *gin.Context) {
	var req dto.UpdateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	store, err := h.storeService.UpdateStore(c.Request.Context(), req.ToDomain(c.Param("store_id")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToStoreResponse(store))
}

// deleteStore godoc
// @Summary Delete a store and its records
// @Tags stores
// @Param store_id path string true "Store ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /stores/{store_id} [delete]
func (h *storeHandler) deleteStore(c *gin.Context) {
	if err := h.storeService.DeleteStore(c.Request.Context(), c.Param("store_id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// getBalance godoc
// @Summary Get a store's lifetime balance
// @Tags stores
// @Produce json
// @Param store_id path string true "Store ID"
// @Success 200 {object} dto.StoreBalanceResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /stores/{store_id}/balance [get]
func (h *storeHandler) getBalance(c *gin.Context) {
	balance, err := h.reportingService.StoreBalance(c.Request.Context(), c.Param("store_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToStoreBalanceResponse(balance))
}

// getStatement godoc
// @Summary Reconstruct a store's account statement
// @Description Merges the store's sales and payments into a running-balance statement over the selected period.
// @Tags stores
// @Produce json
// @Param store_id path string true "Store ID"
// @Param period query string false "Period token" default(from_start)
// @Param from query string false "Custom period start (YYYY-MM-DD)"
// @Param to query string false "Custom period end (YYYY-MM-DD)"
// @Success 200 {object} dto.StatementResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /stores/{store_id}/statement [get]
func (h *storeHandler) getStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	storeID := c.Param("store_id")

	var params dto.PeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid period parameters"})
		return
	}
	period := h.periodService.Resolve(params.ToSelection())

	stmt, err := h.reportingService.AccountStatement(c.Request.Context(), storeID, period)
	if err != nil {
		logger.Error("Failed to build account statement",
			slog.String("store_id", storeID),
			slog.String("error", err.Error()))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToStatementResponse(stmt, storeID, period))
}
