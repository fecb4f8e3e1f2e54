package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Diet types a request can be tagged with.
const (
	DietAny    = "any"
	DietVeg    = "veg"
	DietNonVeg = "non-veg"
)

// Budget tiers.
const (
	BudgetLow      = "budget"
	BudgetModerate = "moderate"
	BudgetPremium  = "premium"
)

// Request statuses. Only open requests are surfaced on the browse view.
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

type DiningRequest struct {
	ID              string    `gorm:"type:uuid;primaryKey" json:"id"`
	RestaurantName  string    `gorm:"size:255;not null" json:"restaurant_name"`
	Location        string    `gorm:"size:255;not null" json:"location"`
	DateTime        time.Time `gorm:"index;not null" json:"date_time"`
	CuisineType     *string   `gorm:"size:100" json:"cuisine_type"`
	DietType        string    `gorm:"size:20;not null;default:'any'" json:"diet_type"`
	Budget          string    `gorm:"size:20;not null;default:'moderate'" json:"budget"`
	MaxParticipants int       `gorm:"not null" json:"max_participants"`
	Description     *string   `gorm:"type:text" json:"description"`
	CreatorID       uint      `gorm:"index;not null" json:"creator_id"`
	Creator         User      `gorm:"foreignKey:CreatorID" json:"-"`
	Status          string    `gorm:"size:20;not null;default:'open'" json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (DiningRequest) TableName() string {
	return "dining_requests"
}

// BeforeCreate assigns a UUID primary key
func (r *DiningRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// ValidDietType reports whether s is one of the accepted diet types
func ValidDietType(s string) bool {
	return s == DietAny || s == DietVeg || s == DietNonVeg
}

// ValidBudget reports whether s is one of the accepted budget tiers
func ValidBudget(s string) bool {
	return s == BudgetLow || s == BudgetModerate || s == BudgetPremium
}
