package domain

import "time"

// AuthProvider identifies the external identity provider a user signed up with.
type AuthProvider string

const (
	ProviderGoogle AuthProvider = "GOOGLE"
)

// User represents a tenant of the application. Each user links their own
// spreadsheet, which holds all of their debts, expenses and statements.
type User struct {
	UserID         string       `json:"userID"` // Primary Key (UUID)
	Name           string       `json:"name"`
	Email          string       `json:"email"`
	AuthProvider   AuthProvider `json:"authProvider"`
	ProviderUserID string       `json:"providerUserID"` // Google 'sub' claim
	EmailVerified  bool         `json:"emailVerified"`

	// SpreadsheetID is the Google Sheets document backing this tenant's data.
	// Empty until the user links a spreadsheet; the batch runner skips such users.
	SpreadsheetID string `json:"spreadsheetID"`

	// Google OAuth credentials used by the batch runner to act on the user's
	// behalf. The access token is cached alongside its expiry so the runner can
	// probe validity before refreshing.
	GoogleRefreshToken string     `json:"-"`
	GoogleAccessToken  string     `json:"-"`
	GoogleTokenExpiry  *time.Time `json:"-"`

	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// HasLinkedStorage reports whether the user can be processed by the batch
// runner: a spreadsheet plus a refresh token.
func (u User) HasLinkedStorage() bool {
	return u.SpreadsheetID != "" && u.GoogleRefreshToken != ""
}
