package model

import "time"

// LoginEvent is an audit row recorded by the shell at login time. Read-only
// afterwards; exportable as CSV for the admin.
type LoginEvent struct {
	ID        uint64 `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"type:varchar(100);not null" json:"name"`
	Role      string `gorm:"type:varchar(16);not null" json:"role"`
	Email     string `gorm:"type:varchar(255);not null" json:"email"`
	Principal string `gorm:"index;not null" json:"principal"`

	CreatedAt time.Time `json:"timestamp"`
}
