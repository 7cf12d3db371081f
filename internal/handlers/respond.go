package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sgaviria/finanzapp/internal/apperrors"
	"github.com/sgaviria/finanzapp/internal/dto"
	"github.com/sgaviria/finanzapp/internal/middleware"
)

// respondError maps service errors to HTTP statuses and writes the failure
// envelope. AppError carries its own status; sentinel errors map by kind.
func respondError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, dto.Error(appErr.Message))
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.Error(err.Error()))
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.Error(err.Error()))
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, dto.Error(err.Error()))
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, dto.Error(err.Error()))
	case errors.Is(err, apperrors.ErrSchemaMismatch):
		c.JSON(http.StatusBadGateway, dto.Error(err.Error()))
	case errors.Is(err, apperrors.ErrUpstream):
		c.JSON(http.StatusBadGateway, dto.Error(err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, dto.Error("Internal server error"))
	}
}

// mustUserID pulls the authenticated user id set by the auth middleware. A
// missing id means the middleware did not run; treat it as unauthorized.
func mustUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Error("Unauthorized"))
		return "", false
	}
	return userID, true
}
