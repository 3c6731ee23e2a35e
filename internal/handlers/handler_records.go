package handlers

import (
	"net/http"

	portssvc "github.com/cardledger/card_ledger_app/internal/core/ports/services"
	"github.com/cardledger/card_ledger_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// recordHandler handles HTTP requests for sales, payments and expenses
type recordHandler struct {
	recordService portssvc.RecordSvcFacade
}

func newRecordHandler(rs portssvc.RecordSvcFacade) *recordHandler {
	return &recordHandler{recordService: rs}
}

// registerRecordRoutes registers routes related to ledger records
func registerRecordRoutes(rg *gin.RouterGroup, rs portssvc.RecordSvcFacade) {
	h := newRecordHandler(rs)

	sales := rg.Group("/sales")
	{
		sales.GET("", h.listSales)
		sales.POST("", h.createSale)
		sales.PUT("/:sale_id", h.updateSale)
		sales.DELETE("/:sale_id", h.deleteSale)
	}
	payments := rg.Group("/payments")
	{
		payments.GET("", h.listPayments)
		payments.POST("", h.createPayment)
		payments.PUT("/:payment_id", h.updatePayment)
		payments.DELETE("/:payment_id", h.deletePayment)
	}
	expenses := rg.Group("/expenses")
	{
		expenses.GET("", h.listExpenses)
		expenses.POST("", h.createExpense)
		expenses.PUT("/:expense_id", h.updateExpense)
		expenses.DELETE("/:expense_id", h.deleteExpense)
	}
}

// listSales godoc
// @Summary List sales
// @Tags records
// @Produce json
// @Param storeID query string false "Filter by store"
// @Success 200 {array} dto.SaleResponse
// @Security BearerAuth
// @Router /sales [get]
func (h *recordHandler) listSales(c *gin.Context) {
	sales, err := h.recordService.ListSales(c.Request.Context(), c.Query("storeID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListSaleResponse(sales))
}

// createSale godoc
// @Summary Record a sale
// @Tags records
// @Accept json
// @Produce json
// @Param sale body dto.CreateSaleRequest true "Sale"
// @Success 201 {object} dto.SaleResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /sales [post]
func (h *recordHandler) createSale(c *gin.Context) {
	var req dto.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	sale, err := h.recordService.CreateSale(c.Request.Context(), req.ToDomain())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToSaleResponse(sale))
}

// updateSale godoc
// @Summary Edit a sale
// @Tags records
// @Accept json
// @Produce json
// @Param sale_id path string true "Sale ID"
// @Param sale body dto.UpdateSaleRequest true "Sale"
// @Success 200 {object} dto.SaleResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /sales/{sale_id} [put]
func (h *recordHandler) updateSale(c *gin.Context) {
	var req dto.UpdateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	sale, err := h.recordService.UpdateSale(c.Request.Context(), req.ToDomain(c.Param("sale_id")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}

// deleteSale godoc
// @Summary Delete a sale
// @Tags records
// @Param sale_id path string true "Sale ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /sales/{sale_id} [delete]
func (h *recordHandler) deleteSale(c *gin.Context) {
	if err := h.recordService.DeleteSale(c.Request.Context(), c.Param("sale_id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// listPayments godoc
// @Summary List payments
// @Tags records
// @Produce json
// @Param storeID query string false "Filter by store"
// @Success 200 {array} dto.PaymentResponse
// @Security BearerAuth
// @Router /payments [get]
func (h *recordHandler) listPayments(c *gin.Context) {
	payments, err := h.recordService.ListPayments(c.Request.Context(), c.Query("storeID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListPaymentResponse(payments))
}

// createPayment godoc
// @Summary Record a payment
// @Tags records
// @Accept json
// @Produce json
// @Param payment body dto.CreatePaymentRequest true "Payment"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /payments [post]
func (h *recordHandler) createPayment(c *gin.Context) {
	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	payment, err := h.recordService.CreatePayment(c.Request.Context(), req.ToDomain())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment))
}

// updatePayment godoc
// @Summary Edit a payment
// @Tags records
// @Accept json
// @Produce json
// @Param payment_id path string true "Payment ID"
// @Param payment body dto.UpdatePaymentRequest true "Payment"
// @Success 200 {object} dto.PaymentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /payments/{payment_id} [put]
func (h *recordHandler) updatePayment(c *gin.Context) {
	var req dto.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	payment, err := h.recordService.UpdatePayment(c.Request.Context(), req.ToDomain(c.Param("payment_id")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

// deletePayment godoc
// @Summary Delete a payment
// @Tags records
// @Param payment_id path string true "Payment ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /payments/{payment_id} [delete]
func (h *recordHandler) deletePayment(c *gin.Context) {
	if err := h.recordService.DeletePayment(c.Request.Context(), c.Param("payment_id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// listExpenses godoc
// @Summary List expenses
// @Tags records
// @Produce json
// @Success 200 {array} dto.ExpenseResponse
// @Security BearerAuth
// @Router /expenses [get]
func (h *recordHandler) listExpenses(c *gin.Context) {
	expenses, err := h.recordService.ListExpenses(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListExpenseResponse(expenses))
}

// createExpense godoc
// @Summary Record an expense
// @Tags records
// @Accept json
// @Produce json
// @Param expense body dto.CreateExpenseRequest true "Expense"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses [post]
func (h *recordHandler) createExpense(c *gin.Context) {
	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	expense, err := h.recordService.CreateExpense(c.Request.Context(), req.ToDomain())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense))
}

// updateExpense godoc
// @Summary Edit an expense
// @Tags records
// @Accept json
// @Produce json
// @Param expense_id path string true "Expense ID"
// @Param expense body dto.UpdateExpenseRequest true "Expense"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/{expense_id} [put]
func (h *recordHandler) updateExpense(c *gin.Context) {
	var req dto.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	expense, err := h.recordService.UpdateExpense(c.Request.Context(), req.ToDomain(c.Param("expense_id")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// deleteExpense godoc
// @Summary Delete an expense
// @Tags records
// @Param expense_id path string true "Expense ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/{expense_id} [delete]
func (h *recordHandler) deleteExpense(c *gin.Context) {
	if err := h.recordService.DeleteExpense(c.Request.Context(), c.Param("expense_id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
