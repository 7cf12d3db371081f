package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sgaviria/finanzapp/internal/apperrors"
	"github.com/sgaviria/finanzapp/internal/core/domain"
	portsrepo "github.com/sgaviria/finanzapp/internal/core/ports/repositories"
	portssvc "github.com/sgaviria/finanzapp/internal/core/ports/services"
	"github.com/sgaviria/finanzapp/internal/middleware"
)

// userService manages the tenant registry.
type userService struct {
	users portsrepo.UserRepositoryFacade
	now   func() time.Time
}

// NewUserService creates a new UserService.
func NewUserService(users portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{users: users, now: time.Now}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// GetUserByID implements portssvc.UserSvcFacade.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindUserByID(ctx, userID)
}

// CreateOAuthUser implements portssvc.UserSvcFacade: find the user by
// identity-provider subject or create a fresh one.
func (s *userService) CreateOAuthUser(ctx context.Context, name, email string, provider domain.AuthProvider, providerUserID string, emailVerified bool) (*domain.User, error) {
	existing, err := s.users.FindUserByProviderID(ctx, provider, providerUserID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := s.now()
	user := domain.User{
		UserID:         uuid.NewString(),
		Name:           name,
		Email:          email,
		AuthProvider:   provider,
		ProviderUserID: providerUserID,
		EmailVerified:  emailVerified,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if err := s.users.AppendUser(ctx, user); err != nil {
		return nil, err
	}
	middleware.GetLoggerFromCtx(ctx).Info("User registered",
		slog.String("user_id", user.UserID), slog.String("email", user.Email))
	return &user, nil
}

// StoreGoogleCredentials implements portssvc.UserSvcFacade.
func (s *userService) StoreGoogleCredentials(ctx context.Context, userID, accessToken, refreshToken string, expiry time.Time) error {
	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	user.GoogleAccessToken = accessToken
	if refreshToken != "" {
		// Google only returns the refresh token on first consent; keep the
		// stored one when the exchange omits it.
		user.GoogleRefreshToken = refreshToken
	}
	user.GoogleTokenExpiry = &expiry
	user.LastUpdatedAt = s.now()
	return s.users.UpdateUser(ctx, *user)
}

// LinkSpreadsheet implements portssvc.UserSvcFacade.
func (s *userService) LinkSpreadsheet(ctx context.Context, userID, spreadsheetID string) error {
	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	user.SpreadsheetID = spreadsheetID
	user.LastUpdatedAt = s.now()
	return s.users.UpdateUser(ctx, *user)
}
