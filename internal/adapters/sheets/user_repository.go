package sheets

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sgaviria/finanzapp/internal/apperrors"
	"github.com/sgaviria/finanzapp/internal/core/domain"
	portsrepo "github.com/sgaviria/finanzapp/internal/core/ports/repositories"
)

// UserRepository persists the tenant registry as rows of the Users tab in the
// master spreadsheet. Unlike the tenant repositories it is constructed once
// with application-level credentials, not per request.
type UserRepository struct {
	client *Client
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(client *Client) *UserRepository {
	return &UserRepository{client: client}
}

var _ portsrepo.UserRepositoryFacade = (*UserRepository)(nil)

func parseUserRow(row []interface{}) (domain.User, error) {
	var user domain.User
	var err error

	user.UserID = cellString(row, userColID)
	user.Name = cellString(row, userColName)
	user.Email = cellString(row, userColEmail)
	user.AuthProvider = domain.AuthProvider(cellString(row, userColProvider))
	user.ProviderUserID = cellString(row, userColProviderUserID)
	if user.EmailVerified, err = cellBool(row, userColEmailVerified); err != nil {
		return user, err
	}
	user.SpreadsheetID = cellString(row, userColSpreadsheetID)
	user.GoogleRefreshToken = cellString(row, userColRefreshToken)
	user.GoogleAccessToken = cellString(row, userColAccessToken)
	expiry, err := cellTime(row, userColTokenExpiry)
	if err != nil {
		return user, err
	}
	if !expiry.IsZero() {
		user.GoogleTokenExpiry = &expiry
	}
	if user.CreatedAt, err = cellTime(row, userColCreatedAt); err != nil {
		return user, err
	}
	if user.LastUpdatedAt, err = cellTime(row, userColUpdatedAt); err != nil {
		return user, err
	}
	return user, nil
}

func userRow(u domain.User) []interface{} {
	var expiry time.Time
	if u.GoogleTokenExpiry != nil {
		expiry = *u.GoogleTokenExpiry
	}
	return []interface{}{
		u.UserID,
		u.Name,
		u.Email,
		string(u.AuthProvider),
		u.ProviderUserID,
		strconv.FormatBool(u.EmailVerified),
		u.SpreadsheetID,
		u.GoogleRefreshToken,
		u.GoogleAccessToken,
		timeCell(expiry),
		timeCell(u.CreatedAt),
		timeCell(u.LastUpdatedAt),
	}
}

// ListUsers implements portsrepo.UserReader.
func (r *UserRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.client.readRows(ctx, tabUsers, userColCount)
	if err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(rows))
	for i, row := range rows {
		user, err := parseUserRow(row)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", tabUsers, i+2, err)
		}
		if user.UserID == "" {
			continue
		}
		users = append(users, user)
	}
	return users, nil
}

func (r *UserRepository) findRow(ctx context.Context, match func([]interface{}) bool, desc string) (*domain.User, int64, error) {
	rows, err := r.client.readRows(ctx, tabUsers, userColCount)
	if err != nil {
		return nil, 0, err
	}
	for i, row := range rows {
		if !match(row) {
			continue
		}
		user, err := parseUserRow(row)
		if err != nil {
			return nil, 0, fmt.Errorf("%s row %d: %w", tabUsers, i+2, err)
		}
		return &user, int64(i + 2), nil
	}
	return nil, 0, fmt.Errorf("user %s: %w", desc, apperrors.ErrNotFound)
}

// FindUserByID implements portsrepo.UserReader.
func (r *UserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, _, err := r.findRow(ctx, func(row []interface{}) bool {
		return cellString(row, userColID) == userID
	}, userID)
	return user, err
}

// FindUserByProviderID implements portsrepo.UserReader.
func (r *UserRepository) FindUserByProviderID(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error) {
	user, _, err := r.findRow(ctx, func(row []interface{}) bool {
		return cellString(row, userColProvider) == string(provider) &&
			cellString(row, userColProviderUserID) == providerUserID
	}, fmt.Sprintf("%s/%s", provider, providerUserID))
	return user, err
}

// AppendUser implements portsrepo.UserWriter.
func (r *UserRepository) AppendUser(ctx context.Context, user domain.User) error {
	return r.client.appendRow(ctx, tabUsers, userColCount, userRow(user))
}

// UpdateUser implements portsrepo.UserWriter.
func (r *UserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	_, row, err := r.findRow(ctx, func(row []interface{}) bool {
		return cellString(row, userColID) == user.UserID
	}, user.UserID)
	if err != nil {
		return err
	}
	return r.client.updateRow(ctx, tabUsers, row, userColCount, userRow(user))
}
