package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/sgaviria/finanzapp/internal/core/ports/services"
	"github.com/sgaviria/finanzapp/internal/dto"
	"github.com/sgaviria/finanzapp/internal/middleware"
)

// categoryHandler handles HTTP requests related to categories.
type categoryHandler struct {
	categoryService portssvc.CategorySvcFacade
}

func newCategoryHandler(cs portssvc.CategorySvcFacade) *categoryHandler {
	return &categoryHandler{categoryService: cs}
}

// registerCategoryRoutes registers routes related to categories.
func registerCategoryRoutes(rg *gin.RouterGroup, cs portssvc.CategorySvcFacade) {
	h := newCategoryHandler(cs)

	categories := rg.Group("/categories")
	{
		categories.GET("", h.listCategories)
		categories.POST("", h.createCategory)
		categories.GET("/spend", h.monthlySpend)
		categories.PUT("/:id", h.updateCategory)
		categories.DELETE("/:id", h.deleteCategory)
	}
}

// listCategories godoc
// @Summary List all categories
// @Tags categories
// @Produce json
// @Success 200 {object} dto.Envelope{data=[]dto.CategoryResponse}
// @Failure 401 {object} dto.Envelope
// @Security BearerAuth
// @Router /categories [get]
func (h *categoryHandler) listCategories(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	categories, err := h.categoryService.ListCategories(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, dto.ToCategoryResponse(&categories[i]))
	}
	c.JSON(http.StatusOK, dto.Success(out))
}

// createCategory godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Param category body dto.CreateCategoryRequest true "Category details"
// @Success 201 {object} dto.Envelope{data=dto.CategoryResponse}
// @Failure 400 {object} dto.Envelope "Invalid input"
// @Security BearerAuth
// @Router /categories [post]
func (h *categoryHandler) createCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createCategory", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Error("Invalid request format: "+err.Error()))
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.Success(dto.ToCategoryResponse(category)))
}

// monthlySpend godoc
// @Summary Report spent-vs-budget per category
// @Tags categories
// @Produce json
// @Param period query string true "Month to report (YYYY-MM)"
// @Success 200 {object} dto.Envelope{data=[]dto.CategorySpendResponse}
// @Failure 400 {object} dto.Envelope "Invalid period"
// @Security BearerAuth
// @Router /categories/spend [get]
func (h *categoryHandler) monthlySpend(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	report, err := h.categoryService.MonthlySpend(c.Request.Context(), userID, c.Query("period"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Success(report))
}

// updateCategory godoc
// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param category body dto.UpdateCategoryRequest true "Fields to update"
// @Success 200 {object} dto.Envelope{data=dto.CategoryResponse}
// @Failure 404 {object} dto.Envelope "Category not found"
// @Security BearerAuth
// @Router /categories/{id} [put]
func (h *categoryHandler) updateCategory(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("Invalid request format: "+err.Error()))
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Success(dto.ToCategoryResponse(category)))
}

// deleteCategory godoc
// @Summary Delete a category
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope "Category not found"
// @Security BearerAuth
// @Router /categories/{id} [delete]
func (h *categoryHandler) deleteCategory(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	if err := h.categoryService.DeleteCategory(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Success(gin.H{"deleted": true}))
}
