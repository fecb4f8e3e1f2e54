package models

import (
	"time"
)

// Profile holds a user's display name and default dining preferences.
// One row per user, created on registration or first save via upsert.
type Profile struct {
	UserID           uint      `gorm:"primaryKey" json:"id"`
	FullName         *string   `gorm:"size:255" json:"full_name"`
	DietPreference   string    `gorm:"size:20;not null;default:'any'" json:"diet_preference"`
	BudgetPreference string    `gorm:"size:20;not null;default:'moderate'" json:"budget_preference"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

// DisplayName returns the profile's full name, or "Anonymous" when unset
func (p Profile) DisplayName() string {
	if p.FullName != nil && *p.FullName != "" {
		return *p.FullName
	}
	return "Anonymous"
}
