package dto

import "github.com/sgaviria/finanzapp/internal/core/domain"

// UserResponse is the API representation of the authenticated user. OAuth
// credentials are never exposed; only whether storage is linked.
type UserResponse struct {
	UserID        string `json:"userID"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"emailVerified"`
	SpreadsheetID string `json:"spreadsheetID,omitempty"`
	StorageLinked bool   `json:"storageLinked"`
}

// ToUserResponse maps a domain user to its API shape.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:        u.UserID,
		Name:          u.Name,
		Email:         u.Email,
		EmailVerified: u.EmailVerified,
		SpreadsheetID: u.SpreadsheetID,
		StorageLinked: u.HasLinkedStorage(),
	}
}
