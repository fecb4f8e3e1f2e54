package models

import (
	"time"
)

// Participant is a membership row linking a user to a dining request they
// intend to attend. A user may join a given request at most once; the
// composite primary key enforces that at the store level. The creator of a
// request never has a participant row.
type Participant struct {
	RequestID string    `gorm:"type:uuid;primaryKey" json:"request_id"`
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Participant) TableName() string {
	return "dining_participants"
}
