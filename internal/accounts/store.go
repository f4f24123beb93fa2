// Package accounts implements the credential store: durable account rows with
// bcrypt digests and the verify/create/update/delete operations over them.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	dbutil "github.com/oumaimabzd/recipe-project/internal/db"
	"github.com/oumaimabzd/recipe-project/internal/models"
	"github.com/oumaimabzd/recipe-project/internal/security"
	"gorm.io/gorm"
)

// Credential store errors.
var (
	// ErrInvalidCredentials covers both unknown usernames and wrong
	// passwords; callers must not distinguish the two.
	ErrInvalidCredentials = errors.New("accounts: invalid credentials")
	// ErrDuplicateUsername indicates the username is already taken.
	ErrDuplicateUsername = errors.New("accounts: username already taken")
	// ErrNotFound indicates no account exists for the given ID.
	ErrNotFound = errors.New("accounts: not found")
	// ErrInvalidInput indicates a blank username or password.
	ErrInvalidInput = errors.New("accounts: username and password are required")
)

// Store provides account persistence. Every call round-trips to the database.
type Store struct {
	db *gorm.DB
}

// NewStore constructs a Store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Verify checks a username/password pair and returns the account on success.
// Unknown username and wrong password both yield ErrInvalidCredentials.
func (s *Store) Verify(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	errFind := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("accounts: lookup %q: %w", username, errFind)
	}
	if !security.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// Create registers a new account with the non-privileged role.
func (s *Store) Create(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return nil, ErrInvalidInput
	}

	var count int64
	if errCount := s.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error; errCount != nil {
		return nil, fmt.Errorf("accounts: check username: %w", errCount)
	}
	if count > 0 {
		return nil, ErrDuplicateUsername
	}

	hash, errHash := security.HashPassword(password)
	if errHash != nil {
		return nil, fmt.Errorf("accounts: hash password: %w", errHash)
	}

	user := models.User{Username: username, PasswordHash: hash, Role: models.RoleUser}
	if errCreate := s.db.WithContext(ctx).Create(&user).Error; errCreate != nil {
		return nil, fmt.Errorf("accounts: create %q: %w", username, errCreate)
	}
	return &user, nil
}

// Update renames an account and, when newPassword is non-blank, replaces its
// digest. A blank newPassword leaves the existing digest untouched.
func (s *Store) Update(ctx context.Context, id uint64, username, newPassword string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrInvalidInput
	}

	updates := map[string]any{"username": username, "updated_at": time.Now().UTC()}
	if strings.TrimSpace(newPassword) != "" {
		hash, errHash := security.HashPassword(newPassword)
		if errHash != nil {
			return fmt.Errorf("accounts: hash password: %w", errHash)
		}
		updates["password_hash"] = hash
	}

	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("accounts: update %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an account.
func (s *Store) Delete(ctx context.Context, id uint64) error {
	res := s.db.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return fmt.Errorf("accounts: delete %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Get returns a single account by ID.
func (s *Store) Get(ctx context.Context, id uint64) (*models.User, error) {
	var user models.User
	if errFind := s.db.WithContext(ctx).First(&user, id).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("accounts: get %d: %w", id, errFind)
	}
	return &user, nil
}

// List returns accounts ordered by ID, optionally filtered by a
// case-insensitive username substring.
func (s *Store) List(ctx context.Context, usernameFilter string) ([]models.User, error) {
	q := s.db.WithContext(ctx).Model(&models.User{})
	if trimmed := strings.TrimSpace(usernameFilter); trimmed != "" {
		pattern := dbutil.NormalizeLikePattern(s.db, "%"+trimmed+"%")
		q = q.Where(dbutil.CaseInsensitiveLikeExpr(s.db, "username"), pattern)
	}
	var users []models.User
	if errFind := q.Order("id ASC").Find(&users).Error; errFind != nil {
		return nil, fmt.Errorf("accounts: list: %w", errFind)
	}
	return users, nil
}
