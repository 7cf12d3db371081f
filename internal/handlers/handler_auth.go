package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sgaviria/finanzapp/internal/core/domain"
	portssvc "github.com/sgaviria/finanzapp/internal/core/ports/services"
	"github.com/sgaviria/finanzapp/internal/dto"
	"github.com/sgaviria/finanzapp/internal/middleware"
)

// authHandler handles Google OAuth sign-in and the authenticated user's own
// profile and spreadsheet linking.
type authHandler struct {
	googleOAuthService portssvc.GoogleOAuthSvcFacade
	userService        portssvc.UserSvcFacade
	tokenService       portssvc.TokenSvcFacade
}

func newAuthHandler(
	googleOAuthService portssvc.GoogleOAuthSvcFacade,
	userService portssvc.UserSvcFacade,
	tokenService portssvc.TokenSvcFacade,
) *authHandler {
	return &authHandler{
		googleOAuthService: googleOAuthService,
		userService:        userService,
		tokenService:       tokenService,
	}
}

// registerAuthRoutes registers the public authentication routes.
func registerAuthRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	h := newAuthHandler(services.GoogleOAuth, services.User, services.TokenSvc)
	auth := r.Group("/auth/google")
	{
		auth.GET("/login-url", h.getLoginURL)
		auth.POST("/exchange-code", h.exchangeCode)
	}
}

// registerMeRoutes registers the authenticated user's own routes under /api/v1.
func registerMeRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newAuthHandler(services.GoogleOAuth, services.User, services.TokenSvc)
	me := rg.Group("/me")
	{
		me.GET("", h.getMe)
		me.POST("/link-spreadsheet", h.linkSpreadsheet)
	}
}

// getLoginURL godoc
// @Summary Get the Google consent URL
// @Description Returns the Google OAuth consent URL together with the CSRF state the frontend must verify on redirect
// @Tags auth
// @Produce json
// @Success 200 {object} dto.Envelope{data=dto.LoginURLResponse}
// @Failure 500 {object} dto.Envelope
// @Router /auth/google/login-url [get]
func (h *authHandler) getLoginURL(c *gin.Context) {
	ctx := c.Request.Context()
	state, err := h.googleOAuthService.GenerateStateString(ctx)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to generate OAuth state", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Success(dto.LoginURLResponse{
		URL:   h.googleOAuthService.GetGoogleLoginURL(ctx, state),
		State: state,
	}))
}

// exchangeCode godoc
// @Summary Exchange a Google authorization code for an app JWT
// @Description Exchanges the code for Google tokens, validates the ID token, finds or creates the user, stores the Google credentials for the nightly runner and returns the application JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param code body dto.ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.Envelope{data=dto.ExchangeCodeResponse}
// @Failure 400 {object} dto.Envelope "Invalid or expired authorization code"
// @Failure 401 {object} dto.Envelope "Invalid Google ID token"
// @Router /auth/google/exchange-code [post]
func (h *authHandler) exchangeCode(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for exchange code request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Error("Invalid request payload: "+err.Error()))
		return
	}

	oauthToken, err := h.googleOAuthService.ExchangeCodeForToken(ctx, req.Code)
	if err != nil {
		logger.Error("Failed to exchange authorization code with Google", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	idTokenString, ok := oauthToken.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		logger.Error("ID token missing from Google's token response")
		c.JSON(http.StatusBadGateway, dto.Error("Failed to retrieve ID token from Google"))
		return
	}

	payload, err := h.googleOAuthService.ValidateGoogleIDToken(ctx, idTokenString)
	if err != nil {
		logger.Error("Google ID token validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, dto.Error("Invalid Google ID token"))
		return
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	emailVerified, _ := payload.Claims["email_verified"].(bool)
	if email == "" || payload.Subject == "" {
		logger.Error("Essential claims missing from Google ID token payload")
		c.JSON(http.StatusBadGateway, dto.Error("Essential user information missing from Google token"))
		return
	}

	user, err := h.userService.CreateOAuthUser(ctx, name, email, domain.ProviderGoogle, payload.Subject, emailVerified)
	if err != nil {
		logger.Error("Failed to create or get OAuth user",
			slog.String("error", err.Error()), slog.String("google_user_id", payload.Subject))
		respondError(c, err)
		return
	}

	// The refresh token only comes back on first consent; StoreGoogleCredentials
	// keeps the previously stored one when this field is empty.
	if err := h.userService.StoreGoogleCredentials(ctx, user.UserID,
		oauthToken.AccessToken, oauthToken.RefreshToken, oauthToken.Expiry); err != nil {
		logger.Error("Failed to store Google credentials",
			slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		respondError(c, err)
		return
	}

	accessToken, _, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		logger.Error("Failed to generate application access token",
			slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		respondError(c, err)
		return
	}

	logger.Info("User authenticated via Google OAuth",
		slog.String("user_id", user.UserID), slog.String("email", user.Email))
	c.JSON(http.StatusOK, dto.Success(dto.ExchangeCodeResponse{Token: accessToken}))
}

// getMe godoc
// @Summary Get the authenticated user's profile
// @Tags me
// @Produce json
// @Success 200 {object} dto.Envelope{data=dto.UserResponse}
// @Failure 401 {object} dto.Envelope
// @Security BearerAuth
// @Router /me [get]
func (h *authHandler) getMe(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Success(dto.ToUserResponse(user)))
}

// linkSpreadsheet godoc
// @Summary Link the user's spreadsheet
// @Description Binds the authenticated user to the spreadsheet document that will hold their data
// @Tags me
// @Accept json
// @Produce json
// @Param body body dto.LinkSpreadsheetRequest true "Spreadsheet to link"
// @Success 200 {object} dto.Envelope{data=dto.UserResponse}
// @Failure 400 {object} dto.Envelope
// @Failure 401 {object} dto.Envelope
// @Security BearerAuth
// @Router /me/link-spreadsheet [post]
func (h *authHandler) linkSpreadsheet(c *gin.Context) {
	ctx := c.Request.Context()
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.LinkSpreadsheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("Invalid request payload: "+err.Error()))
		return
	}

	if err := h.userService.LinkSpreadsheet(ctx, userID, req.SpreadsheetID); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to link spreadsheet",
			slog.String("error", err.Error()), slog.String("user_id", userID))
		respondError(c, err)
		return
	}

	user, err := h.userService.GetUserByID(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	middleware.GetLoggerFromCtx(ctx).Info("Spreadsheet linked", slog.String("user_id", userID))
	c.JSON(http.StatusOK, dto.Success(dto.ToUserResponse(user)))
}
