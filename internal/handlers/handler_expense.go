package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/sgaviria/finanzapp/internal/core/ports/services"
	"github.com/sgaviria/finanzapp/internal/dto"
	"github.com/sgaviria/finanzapp/internal/middleware"
)

// expenseHandler handles HTTP requests related to expenses.
type expenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
}

func newExpenseHandler(es portssvc.ExpenseSvcFacade) *expenseHandler {
	return &expenseHandler{expenseService: es}
}

// registerExpenseRoutes registers routes related to expenses.
func registerExpenseRoutes(rg *gin.RouterGroup, es portssvc.ExpenseSvcFacade) {
	h := newExpenseHandler(es)

	expenses := rg.Group("/expenses")
	{
		expenses.GET("", h.listExpenses)
		expenses.POST("", h.createExpense)
		expenses.PUT("/:id", h.updateExpense)
		expenses.DELETE("/:id", h.deleteExpense)
	}
}

// listExpenses godoc
// @Summary List expenses
// @Description Lists expenses, optionally filtered by debt and date window
// @Tags expenses
// @Produce json
// @Param debtId query string false "Filter by debt"
// @Param from query string false "Window start (YYYY-MM-DD)"
// @Param to query string false "Window end (YYYY-MM-DD)"
// @Success 200 {object} dto.Envelope{data=[]dto.ExpenseResponse}
// @Failure 400 {object} dto.Envelope "Invalid date filter"
// @Security BearerAuth
// @Router /expenses [get]
func (h *expenseHandler) listExpenses(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	filter := portssvc.ExpenseListFilter{
		DebtID: c.Query("debtId"),
		From:   c.Query("from"),
		To:     c.Query("to"),
	}
	expenses, err := h.expenseService.ListExpenses(c.Request.Context(), userID, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Success(dto.ToExpenseResponses(expenses)))
}

// createExpense godoc
// @Summary Record an expense
// @Description Records a dated charge or payment, optionally tied to a debt and a category
// @Tags expenses
// @Accept json
// @Produce json
// @Param expense body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} dto.Envelope{data=dto.ExpenseResponse}
// @Failure 400 {object} dto.Envelope "Invalid input"
// @Security BearerAuth
// @Router /expenses [post]
func (h *expenseHandler) createExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Error("Invalid request format: "+err.Error()))
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.Success(dto.ToExpenseResponse(expense)))
}

// updateExpense godoc
// @Summary Update an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Param id path string true "Expense ID"
// @Param expense body dto.UpdateExpenseRequest true "Fields to update"
// @Success 200 {object} dto.Envelope{data=dto.ExpenseResponse}
// @Failure 400 {object} dto.Envelope "Invalid input"
// @Failure 404 {object} dto.Envelope "Expense not found"
// @Security BearerAuth
// @Router /expenses/{id} [put]
func (h *expenseHandler) updateExpense(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("Invalid request format: "+err.Error()))
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Success(dto.ToExpenseResponse(expense)))
}

// deleteExpense godoc
// @Summary Delete an expense
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope "Expense not found"
// @Security BearerAuth
// @Router /expenses/{id} [delete]
func (h *expenseHandler) deleteExpense(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	if err := h.expenseService.DeleteExpense(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Success(gin.H{"deleted": true}))
}
