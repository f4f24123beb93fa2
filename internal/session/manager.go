// Package session implements durable server-side login sessions. Each session
// is a database row keyed by an opaque UUID; the client carries a signed
// cookie referencing that row, so sessions survive process restarts and a
// forged cookie is rejected without touching the database.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/oumaimabzd/recipe-project/internal/models"
	"github.com/oumaimabzd/recipe-project/internal/security"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CookieName is the session cookie used by the HTTP layer.
const CookieName = "recipe_session"

// Manager issues, resolves, and destroys sessions.
type Manager struct {
	db     *gorm.DB
	secret string
	ttl    time.Duration
}

// NewManager constructs a Manager.
func NewManager(db *gorm.DB, secret string, ttl time.Duration) *Manager {
	return &Manager{db: db, secret: secret, ttl: ttl}
}

// TTL returns the configured idle expiry.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Start creates a session for a verified account and returns the row together
// with the signed cookie value. The admin flag is snapshotted from the
// account's role at this moment and not re-checked afterwards.
func (m *Manager) Start(ctx context.Context, user *models.User) (*models.Session, string, error) {
	now := time.Now().UTC()
	sess := models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Username:  user.Username,
		IsAdmin:   user.IsAdmin(),
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if errCreate := m.db.WithContext(ctx).Create(&sess).Error; errCreate != nil {
		return nil, "", fmt.Errorf("session: create: %w", errCreate)
	}
	token, errSign := security.SignSessionToken(m.secret, sess.ID, m.ttl)
	if errSign != nil {
		return nil, "", fmt.Errorf("session: sign token: %w", errSign)
	}
	return &sess, token, nil
}

// Resolve maps a cookie value to its session row. Anonymous requests (no
// token, a bad signature, an expired token, a missing or expired row)
// resolve to (nil, nil); only storage failures surface as errors.
func (m *Manager) Resolve(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, nil
	}
	sessionID, errParse := security.ParseSessionToken(m.secret, token)
	if errParse != nil {
		return nil, nil
	}

	var sess models.Session
	errFind := m.db.WithContext(ctx).First(&sess, "id = ?", sessionID).Error
	if errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("session: lookup: %w", errFind)
	}
	if time.Now().UTC().After(sess.ExpiresAt) {
		if errDel := m.db.WithContext(ctx).Delete(&models.Session{}, "id = ?", sess.ID).Error; errDel != nil {
			log.WithError(errDel).Warn("delete expired session")
		}
		return nil, nil
	}
	return &sess, nil
}

// Destroy invalidates a session so later requests carrying its token are
// treated as anonymous. Destroying an already-absent session is a no-op.
func (m *Manager) Destroy(ctx context.Context, sessionID string) error {
	if errDel := m.db.WithContext(ctx).Delete(&models.Session{}, "id = ?", sessionID).Error; errDel != nil {
		return fmt.Errorf("session: destroy: %w", errDel)
	}
	return nil
}

// Sweep removes expired session rows and returns how many were deleted.
func (m *Manager) Sweep(ctx context.Context) (int64, error) {
	res := m.db.WithContext(ctx).Where("expires_at < ?", time.Now().UTC()).Delete(&models.Session{})
	if res.Error != nil {
		return 0, fmt.Errorf("session: sweep: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// RunSweeper prunes expired sessions on the given interval until ctx is done.
func (m *Manager) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := m.Sweep(ctx)
			if err != nil {
				log.WithError(err).Warn("session sweep failed")
				continue
			}
			if deleted > 0 {
				log.WithField("deleted", deleted).Debug("pruned expired sessions")
			}
		}
	}
}
