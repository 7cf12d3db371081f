package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/sgaviria/finanzapp/internal/core/ports/services"
	"github.com/sgaviria/finanzapp/internal/dto"
	"github.com/sgaviria/finanzapp/internal/middleware"
)

// debtHandler handles HTTP requests related to debts, their statements and
// the accrual endpoints.
type debtHandler struct {
	debtService    portssvc.DebtSvcFacade
	accrualService portssvc.AccrualSvcFacade
}

func newDebtHandler(ds portssvc.DebtSvcFacade, as portssvc.AccrualSvcFacade) *debtHandler {
	return &debtHandler{debtService: ds, accrualService: as}
}

// RegisterDebtRoutes registers routes related to debts. Exported so the
// handler tests can mount the group on their own router.
func RegisterDebtRoutes(rg *gin.RouterGroup, ds portssvc.DebtSvcFacade, as portssvc.AccrualSvcFacade) {
	h := newDebtHandler(ds, as)

	debts := rg.Group("/debts")
	{
		debts.GET("", h.listDebts)
		debts.POST("", h.createDebt)
		debts.GET("/summary", h.listDebtSummaries)
		debts.PUT("/:id", h.updateDebt)
		debts.DELETE("/:id", h.deleteDebt)
		debts.GET("/:id/summary", h.getDebtSummary)
		debts.GET("/:id/statements", h.listStatements)
		debts.GET("/:id/installments", h.projectInstallments)
		debts.POST("/:id/accrue", h.accrue)
		debts.GET("/:id/statement-preview", h.statementPreview)
	}
}

// listDebts godoc
// @Summary List all debts
// @Tags debts
// @Produce json
// @Success 200 {object} dto.Envelope{data=[]dto.DebtResponse}
// @Failure 401 {object} dto.Envelope
// @Security BearerAuth
// @Router /debts [get]
func (h *debtHandler) listDebts(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	debts, err := h.debtService.ListDebts(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Success(dto.ToDebtResponses(debts)))
}

// createDebt godoc
// @Summary Create a new debt
// @Tags debts
// @Accept json
// @Produce json
// @Param debt body dto.CreateDebtRequest true "Debt details"
// @Success 201 {object} dto.Envelope{data=dto.DebtResponse}
// @Failure 400 {object} dto.Envelope "Invalid input"
// @Failure 401 {object} dto.Envelope
// @Security BearerAuth
// @Router /debts [post]
func (h *debtHandler) createDebt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.CreateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createDebt", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Error("Invalid request format: "+err.Error()))
		return
	}

	debt, err := h.debtService.CreateDebt(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.Success(dto.ToDebtResponse(debt)))
}

// updateDebt godoc
// @Summary Update a debt
// @Description Applies a partial update; omitted fields are left untouched
// @Tags debts
// @Accept json
// @Produce json
// @Param id path string true "Debt ID"
// @Param debt body dto.UpdateDebtRequest true "Fields to update"
// @Success 200 {object} dto.Envelope{data=dto.DebtResponse}
// @Failure 400 {object} dto.Envelope "Invalid input"
// @Failure 404 {object} dto.Envelope "Debt not found"
// @Security BearerAuth
// @Router /debts/{id} [put]
func (h *debtHandler) updateDebt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateDebt", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Error("Invalid request format: "+err.Error()))
		return
	}

	debt, err := h.debtService.UpdateDebt(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Success(dto.ToDebtResponse(debt)))
}

// deleteDebt godoc
// @Summary Delete a debt
// @Tags debts
// @Produce json
// @Param id path string true "Debt ID"
// @Success 200 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope "Debt not found"
// @Security BearerAuth
// @Router /debts/{id} [delete]
func (h *debtHandler) deleteDebt(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	if err := h.debtService.DeleteDebt(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Success(gin.H{"deleted": true}))
}

// getDebtSummary godoc
// @Summary Get a debt summary
// @Description Returns balance, utilization, next cutoff and due dates, and the last statement
// @Tags debts
// @Produce json
// @Param id path string true "Debt ID"
// @Success 200 {object} dto.Envelope{data=dto.DebtSummaryResponse}
// @Failure 404 {object} dto.Envelope "Debt not found"
// @Security BearerAuth
// @Router /debts/{id}/summary [get]
func (h *debtHandler) getDebtSummary(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	summary, err := h.debtService.GetDebtSummary(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Success(summary))
}

// listDebtSummaries godoc
// @Summary List summaries for all debts
// @Tags debts
// @Produce json
// @Success 200 {object} dto.Envelope{data=[]dto.DebtSummaryResponse}
// @Failure 401 {object} dto.Envelope
// @Security BearerAuth
// @Router /debts/summary [get]
func (h *debtHandler) listDebtSummaries(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	summaries, err := h.debtService.ListDebtSummaries(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Success(summaries))
}

// listStatements godoc
// @Summary List the statement ledger of a debt
// @Tags debts
// @Produce json
// @Param id path string true "Debt ID"
// @Success 200 {object} dto.Envelope{data=[]dto.StatementResponse}
// @Failure 404 {object} dto.Envelope "Debt not found"
// @Security BearerAuth
// @Router /debts/{id}/statements [get]
func (h *debtHandler) listStatements(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	statements, err := h.debtService.ListStatements(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Success(statements))
}

// projectInstallments godoc
// @Summary Project future statements
// @Description Projects months future cycles from the start month (YYYY-MM, default current) assuming no new activity
// @Tags debts
// @Produce json
// @Param id path string true "Debt ID"
// @Param months query int false "Cycles to project (1-60)" default(12)
// @Param start query string false "Start month (YYYY-MM)"
// @Success 200 {object} dto.Envelope{data=[]dto.InstallmentProjection}
// @Failure 400 {object} dto.Envelope "Invalid months or start"
// @Failure 404 {object} dto.Envelope "Debt not found"
// @Security BearerAuth
// @Router /debts/{id}/installments [get]
func (h *debtHandler) projectInstallments(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	months := 12
	if raw := c.Query("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.Error("Invalid months: "+raw))
			return
		}
		months = parsed
	}

	projections, err := h.debtService.ProjectInstallments(
		c.Request.Context(), userID, c.Param("id"), months, c.Query("start"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Success(projections))
}

// accrue godoc
// @Summary Run the billing-cycle accrual for a debt
// @Description Computes and persists the statement closing the cycle. An existing statement for the resolved date is skipped unless recompute=true, which overwrites it in place.
// @Tags debts
// @Produce json
// @Param id path string true "Debt ID"
// @Param period query string false "Billing period (YYYY-MM)"
// @Param date query string false "Explicit statement date (YYYY-MM-DD)"
// @Param recompute query bool false "Overwrite an existing statement"
// @Success 200 {object} dto.Envelope{data=dto.AccrualResult}
// @Failure 400 {object} dto.Envelope "Invalid period or date"
// @Failure 404 {object} dto.Envelope "Debt not found"
// @Security BearerAuth
// @Router /debts/{id}/accrue [post]
func (h *debtHandler) accrue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.AccrueRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("Invalid query parameters: "+err.Error()))
		return
	}

	result, err := h.accrualService.Accrue(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		logger.Error("Accrual failed",
			slog.String("debt_id", c.Param("id")), slog.String("error", err.Error()))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Success(result))
}

// statementPreview godoc
// @Summary Preview the statement for a cycle
// @Description Computes the statement that the accrue endpoint would persist, with itemized charge and payment breakdowns. Nothing is written.
// @Tags debts
// @Produce json
// @Param id path string true "Debt ID"
// @Param period query string false "Billing period (YYYY-MM)"
// @Param date query string false "Explicit statement date (YYYY-MM-DD)"
// @Param recompute query bool false "Preview even when a statement already exists"
// @Success 200 {object} dto.Envelope{data=dto.StatementPreview}
// @Failure 400 {object} dto.Envelope "Invalid period or date"
// @Failure 404 {object} dto.Envelope "Debt not found"
// @Security BearerAuth
// @Router /debts/{id}/statement-preview [get]
func (h *debtHandler) statementPreview(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.AccrueRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("Invalid query parameters: "+err.Error()))
		return
	}

	preview, err := h.accrualService.Preview(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Success(preview))
}
