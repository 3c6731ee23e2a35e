package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/cardledger/card_ledger_app/internal/core/ports/services"
	"github.com/cardledger/card_ledger_app/internal/dto"
	"github.com/cardledger/card_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportHandler handles HTTP requests for the aggregate reports
type reportHandler struct {
	reportingService portssvc.ReportingSvcFacade
	periodService    portssvc.PeriodSvcFacade
}

func newReportHandler(rs portssvc.ReportingSvcFacade, ps portssvc.PeriodSvcFacade) *reportHandler {
	return &reportHandler{
		reportingService: rs,
		periodService:    ps,
	}
}

// registerReportRoutes registers routes related to reports
func registerReportRoutes(rg *gin.RouterGroup, rs portssvc.ReportingSvcFacade, ps portssvc.PeriodSvcFacade) {
	h := newReportHandler(rs, ps)

	reports := rg.Group("/reports")
	{
		reports.GET("/profit", h.getProfitSummary)
		reports.GET("/partners", h.getPartnerReport)
		reports.GET("/debts", h.getDebtReport)
	}
}

// getProfitSummary godoc
// @Summary Profit summary for a period
// @Description Sums sales, payments and expenses over the selected period. Net profit is payments minus expenses.
// @Tags reports
// @Produce json
// @Param period query string false "Period token (today, this_week, this_month, prev_month, from_start, custom)" default(from_start)
// @Param from query string false "Custom period start (YYYY-MM-DD)"
// @Param to query string false "Custom period end (YYYY-MM-DD)"
// @Success 200 {object} dto.ProfitSummaryResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/profit [get]
func (h *reportHandler) getProfitSummary(c *gin.Context) {
	var params dto.PeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid period parameters"})
		return
	}
	period := h.periodService.Resolve(params.ToSelection())

	summary, err := h.reportingService.ProfitSummary(c.Request.Context(), period)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProfitSummaryResponse(summary, period))
}

// getPartnerReport godoc
// @Summary Partner distribution report
// @Description Splits the period's net profit across the partner roster, with withdrawals, carryover and advisory warnings.
// @Tags reports
// @Produce json
// @Param period query string false "Period token" default(from_start)
// @Param from query string false "Custom period start (YYYY-MM-DD)"
// @Param to query string false "Custom period end (YYYY-MM-DD)"
// @Success 200 {object} dto.PartnerReportResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/partners [get]
func (h *reportHandler) getPartnerReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.PeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid period parameters"})
		return
	}
	period := h.periodService.Resolve(params.ToSelection())

	report, err := h.reportingService.PartnerReport(c.Request.Context(), period)
	if err != nil {
		logger.Error("Failed to generate partner report", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPartnerReportResponse(report))
}

// getDebtReport godoc
// @Summary Store debt report
// @Description Lists every store's lifetime balance, largest debt first.
// @Tags reports
// @Produce json
// @Success 200 {array} dto.StoreBalanceResponse
// @Security BearerAuth
// @Router /reports/debts [get]
func (h *reportHandler) getDebtReport(c *gin.Context) {
	report, err := h.reportingService.DebtReport(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListStoreBalanceResponse(report))
}

// registerPeriodRoutes registers the active-period routes
func registerPeriodRoutes(rg *gin.RouterGroup, ps portssvc.PeriodSvcFacade) {
	h := &periodHandler{periodService: ps}

	period := rg.Group("/period")
	{
		period.GET("", h.getPeriod)
		period.PUT("", h.setPeriod)
	}
}

type periodHandler struct {
	periodService portssvc.PeriodSvcFacade
}

// getPeriod godoc
// @Summary Get the active reporting period
// @Tags period
// @Produce json
// @Success 200 {object} dto.PeriodResponse
// @Security BearerAuth
// @Router /period [get]
func (h *periodHandler) getPeriod(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToPeriodResponse(h.periodService.Current()))
}

// setPeriod godoc
// @Summary Set the active reporting period
// @Tags period
// @Accept json
// @Produce json
// @Param selection body dto.SetPeriodRequest true "Period selection"
// @Success 200 {object} dto.PeriodResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /period [put]
func (h *periodHandler) setPeriod(c *gin.Context) {
	var req dto.SetPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	rng := h.periodService.SetPeriod(req.ToSelection())
	c.JSON(http.StatusOK, dto.ToPeriodResponse(rng))
}
