package domain

import "time"

// AuditFields is embedded by every persisted entity. The By fields hold the
// UserID of the tenant owner who made the change.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}
