package services

import (
	"context"
	"time"

	"github.com/sgaviria/finanzapp/internal/core/domain"
)

// UserSvcFacade manages the tenant registry.
type UserSvcFacade interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// CreateOAuthUser finds or creates the user for a validated identity
	// provider token.
	CreateOAuthUser(ctx context.Context, name, email string, provider domain.AuthProvider, providerUserID string, emailVerified bool) (*domain.User, error)

	// StoreGoogleCredentials persists the tokens obtained from a code exchange
	// so the batch runner can act for the user later.
	StoreGoogleCredentials(ctx context.Context, userID, accessToken, refreshToken string, expiry time.Time) error

	// LinkSpreadsheet binds the tenant to their spreadsheet document.
	LinkSpreadsheet(ctx context.Context, userID, spreadsheetID string) error
}
