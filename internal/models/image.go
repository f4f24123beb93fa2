package models

import "time"

// Image is the single uploaded picture attached to a recipe. At most one row
// exists per recipe; replacing an upload rewrites this row and the superseded
// file becomes garbage for best-effort cleanup.
type Image struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	RecipeID uint64 `gorm:"not null;index"` // Owning recipe.

	Filename string `gorm:"type:text;not null"` // Web-servable path ("/img/<name>.<ext>").

	UploadedAt time.Time `gorm:"not null"` // Last upload timestamp.
}
