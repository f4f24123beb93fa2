// Package settings reads site tunables from the database, falling back to
// defaults when no row exists. Values are stored as JSON so new keys need no
// schema change.
package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/oumaimabzd/recipe-project/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Setting keys and defaults.
const (
	// SiteTitleKey is the DB key for the site title shown in views.
	SiteTitleKey = "SITE_TITLE"
	// DefaultSiteTitle is the fallback site title.
	DefaultSiteTitle = "Recipe Book"
	// RecipesPerPageKey is the DB key for the recipe list page size.
	RecipesPerPageKey = "RECIPES_PER_PAGE"
	// DefaultRecipesPerPage is the fallback page size.
	DefaultRecipesPerPage = 3
)

// Site holds the resolved site settings.
type Site struct {
	Title          string
	RecipesPerPage int
}

// Load reads all settings rows and resolves them against defaults.
func Load(ctx context.Context, db *gorm.DB) (Site, error) {
	site := Site{Title: DefaultSiteTitle, RecipesPerPage: DefaultRecipesPerPage}

	var rows []models.Setting
	if errFind := db.WithContext(ctx).Find(&rows).Error; errFind != nil {
		return Site{}, fmt.Errorf("settings: load: %w", errFind)
	}

	for _, row := range rows {
		switch strings.TrimSpace(row.Key) {
		case SiteTitleKey:
			var title string
			if errDecode := json.Unmarshal(row.Value, &title); errDecode == nil && title != "" {
				site.Title = title
			}
		case RecipesPerPageKey:
			var perPage int
			if errDecode := json.Unmarshal(row.Value, &perPage); errDecode == nil && perPage > 0 {
				site.RecipesPerPage = perPage
			}
		}
	}
	return site, nil
}

// Put upserts one settings row with a JSON-encoded value.
func Put(ctx context.Context, db *gorm.DB, key string, value any) error {
	encoded, errEncode := json.Marshal(value)
	if errEncode != nil {
		return fmt.Errorf("settings: encode %s: %w", key, errEncode)
	}
	row := models.Setting{Key: key, Value: datatypes.JSON(encoded)}
	res := db.WithContext(ctx).Model(&models.Setting{}).Where("key = ?", key).Update("value", row.Value)
	if res.Error != nil {
		return fmt.Errorf("settings: update %s: %w", key, res.Error)
	}
	if res.RowsAffected == 0 {
		if errCreate := db.WithContext(ctx).Create(&row).Error; errCreate != nil {
			return fmt.Errorf("settings: insert %s: %w", key, errCreate)
		}
	}
	return nil
}
