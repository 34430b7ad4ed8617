package model

import "time"

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
	RoleGuest UserRole = "guest"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleGuest:
		return true
	}
	return false
}

// UserProfile is keyed by the caller principal, which is assigned by the
// identity gateway and never stored anywhere else.
type UserProfile struct {
	Principal    string `gorm:"primaryKey" json:"principal"`
	DisplayName  string `gorm:"type:varchar(100);not null" json:"display_name"`
	IsTechnician bool   `gorm:"not null;default:false" json:"is_technician"`
	AvatarURL    string `gorm:"type:text" json:"avatar_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RoleAssignment maps a principal to its role. The first principal to
// initialize access control becomes admin; everyone after that starts as user.
type RoleAssignment struct {
	Principal string   `gorm:"primaryKey" json:"principal"`
	Role      UserRole `gorm:"type:varchar(16);not null" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TechnicianAvailability is toggled by the technician and polled by customers
// when picking a technician for a new ticket.
type TechnicianAvailability struct {
	Technician  string    `gorm:"primaryKey" json:"technician"`
	IsAvailable bool      `gorm:"not null;default:false" json:"is_available"`
	LastUpdated time.Time `json:"last_updated"`
}

func (TechnicianAvailability) TableName() string { return "technician_availability" }
