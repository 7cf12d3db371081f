package repositories

import (
	"context"

	"github.com/sgaviria/finanzapp/internal/core/domain"
)

// UserReader defines read operations over the tenant registry.
type UserReader interface {
	// ListUsers returns every registered tenant.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// FindUserByID returns the user with the given id, or apperrors.ErrNotFound.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByProviderID looks a user up by identity provider subject, or
	// apperrors.ErrNotFound.
	FindUserByProviderID(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error)
}

// UserWriter defines write operations over the tenant registry.
type UserWriter interface {
	AppendUser(ctx context.Context, user domain.User) error
	UpdateUser(ctx context.Context, user domain.User) error
}

// UserRepositoryFacade combines all user repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
