package services

import (
	"context"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"

	"github.com/sgaviria/finanzapp/internal/core/domain"
)

// TokenSvcFacade issues application JWTs.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}

// GoogleOAuthSvcFacade wraps the Google identity-provider interactions:
// consent URL generation, code exchange, ID-token validation and credential
// refresh for the batch runner.
type GoogleOAuthSvcFacade interface {
	GenerateStateString(ctx context.Context) (string, error)
	GetGoogleLoginURL(ctx context.Context, state string) string
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	ValidateGoogleIDToken(ctx context.Context, idToken string) (*idtoken.Payload, error)

	// RefreshAccessToken exchanges a stored refresh token for a fresh access
	// token. Fails with apperrors.ErrUnauthorized when the refresh token is
	// invalid or revoked.
	RefreshAccessToken(ctx context.Context, refreshToken string) (*oauth2.Token, error)
}
