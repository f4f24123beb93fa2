package models

import "time"

// Session is the durable server-side login state referenced by the client's
// cookie. The admin flag is captured once at login; it is not re-checked
// against the users table on later requests.
type Session struct {
	ID string `gorm:"type:text;primaryKey"` // Opaque token (UUID).

	UserID   uint64 `gorm:"not null;index"`         // Owning account.
	Username string `gorm:"type:text;not null"`     // Login name at session start.
	IsAdmin  bool   `gorm:"not null;default:false"` // Role snapshot at session start.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Login timestamp.
	ExpiresAt time.Time `gorm:"not null;index"`          // Idle expiry deadline.
}
