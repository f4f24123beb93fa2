package models

import "time"

// Account roles. RoleAdmin is granted only to the seeded administrator row.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account stored in the database.
type User struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Username     string `gorm:"type:text;not null;uniqueIndex"` // Unique login name.
	PasswordHash string `gorm:"type:text;not null"`             // bcrypt digest, never plaintext.

	Role string `gorm:"type:text;not null;default:user"` // RoleUser or RoleAdmin.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// IsAdmin reports whether the account carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
