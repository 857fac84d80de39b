package users

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser    Role = "USER"
	RoleManager Role = "MANAGER"
	RoleAdmin   Role = "ADMIN"
)

type User struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	FirstName string    `json:"first_name" gorm:"not null"`
	LastName  string    `json:"last_name" gorm:"not null"`
	Password  string    `json:"-" gorm:"not null"` // hide in json
	Role      Role      `json:"role" gorm:"not null;default:'USER'"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func IsValidRole(role string) bool {
	switch role {
	case string(RoleUser), string(RoleManager), string(RoleAdmin):
		return true
	default:
		return false
	}
}

// FullName returns the user's display name, used as the default attendee name.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// CanManageGate reports whether the user may operate gate check-in.
func (u *User) CanManageGate() bool {
	return u.Role == RoleManager || u.Role == RoleAdmin
}
