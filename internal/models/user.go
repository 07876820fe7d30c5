package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Role is a permission group a user can hold.
type Role string

const (
	RoleUser      Role = "user"
	RoleSuperUser Role = "super-user"
	RoleAdmin     Role = "admin"
)

// User represents an account of the store.
type User struct {
	ID        string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email     string      `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Password  string      `json:"-" gorm:"type:varchar(255);not null"` // bcrypt hash, never serialized
	FullName  string      `json:"fullName" gorm:"type:varchar(255);not null"`
	IsActive  bool        `json:"isActive" gorm:"not null"`
	Roles     StringArray `json:"roles" gorm:"not null"`
	CreatedAt time.Time   `json:"-"`
	UpdatedAt time.Time   `json:"-"`
}

// BeforeSave keeps stored emails trimmed and lowercased.
func (u *User) BeforeSave(tx *gorm.DB) error {
	u.Email = NormalizeEmail(u.Email)
	return nil
}

// NormalizeEmail returns the canonical stored form of an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// HasRole reports whether the user holds at least one of roles.
func (u *User) HasRole(roles ...Role) bool {
	for _, held := range u.Roles {
		for _, r := range roles {
			if held == string(r) {
				return true
			}
		}
	}
	return false
}
