package models

import (
	"time"
)

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleChef     UserRole = "chef"
	RoleRider    UserRole = "rider"
	RoleAdmin    UserRole = "admin"
)

// ValidRole reports whether s is one of the four known roles.
func ValidRole(s UserRole) bool {
	switch s {
	case RoleCustomer, RoleChef, RoleRider, RoleAdmin:
		return true
	}
	return false
}

// User is the auth identity: credentials only. Everything user-facing
// lives on the Profile row created alongside it.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Profile      *Profile  `json:"profile,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile carries the role and display attributes. The role is assigned at
// creation and cannot be changed through the exposed API; admin provisioning
// is the only path that sets role "admin".
type Profile struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	FullName  string    `json:"full_name" gorm:"not null"`
	Role      UserRole  `json:"role" gorm:"not null;default:'customer'"`
	Phone     string    `json:"phone"`
	AvatarURL string    `json:"avatar_url"`
	Bio       string    `json:"bio"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
