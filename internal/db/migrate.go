package db

import (
	"fmt"

	"github.com/oumaimabzd/recipe-project/internal/models"
	"github.com/oumaimabzd/recipe-project/internal/security"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Migrate creates or updates the schema for all models.
func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Category{},
		&models.Recipe{},
		&models.Ingredient{},
		&models.Image{},
		&models.Setting{},
	); err != nil {
		return fmt.Errorf("db: migrate: %w", err)
	}
	return nil
}

// seedAccount pairs a fixture username with its plaintext password.
type seedAccount struct {
	username string
	password string
	role     string
}

// Seed inserts the fixture accounts when the users table is empty: the
// administrator plus user1..user9. Running it again is a no-op.
func Seed(conn *gorm.DB) error {
	var count int64
	if err := conn.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("db: count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	seeds := []seedAccount{{username: "admin", password: "wdf#2025", role: models.RoleAdmin}}
	for i := 1; i <= 9; i++ {
		seeds = append(seeds, seedAccount{
			username: fmt.Sprintf("user%d", i),
			password: fmt.Sprintf("pw%d", i),
			role:     models.RoleUser,
		})
	}

	for _, seed := range seeds {
		hash, errHash := security.HashPassword(seed.password)
		if errHash != nil {
			return fmt.Errorf("db: hash seed password: %w", errHash)
		}
		user := models.User{Username: seed.username, PasswordHash: hash, Role: seed.role}
		if errCreate := conn.Create(&user).Error; errCreate != nil {
			return fmt.Errorf("db: seed user %s: %w", seed.username, errCreate)
		}
	}
	log.WithField("users", len(seeds)).Info("seeded fixture accounts")
	return nil
}
