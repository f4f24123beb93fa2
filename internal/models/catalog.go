package models

import "time"

// Category groups recipes on the browse pages.
type Category struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Name        string `gorm:"type:text;not null;uniqueIndex"` // Display name.
	Description string `gorm:"type:text"`                      // Short blurb for the listing page.
}

// Recipe is a single dish. The core treats recipes as read-only; rows are
// owned by the seed data / external tooling.
type Recipe struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	CategoryID uint64 `gorm:"not null;index"` // Owning category.

	Title        string `gorm:"type:text;not null"` // Display title.
	Summary      string `gorm:"type:text"`          // One-line teaser.
	Instructions string `gorm:"type:text"`          // Newline-separated steps.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp, drives list order.
}

// Ingredient is one line of a recipe's ingredient list.
type Ingredient struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key, drives display order.

	RecipeID uint64 `gorm:"not null;index"` // Owning recipe.

	Name   string `gorm:"type:text;not null"` // Ingredient name.
	Amount string `gorm:"type:text"`          // Free-form quantity ("2 tbsp").
}
