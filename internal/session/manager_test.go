package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/oumaimabzd/recipe-project/internal/models"
	"github.com/oumaimabzd/recipe-project/internal/security"
	"gorm.io/gorm"
)

func setupSessionTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:sessions_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, errOpen := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if errOpen != nil {
		t.Fatalf("open db: %v", errOpen)
	}
	if errMigrate := db.AutoMigrate(&models.Session{}); errMigrate != nil {
		t.Fatalf("migrate db: %v", errMigrate)
	}
	return db
}

func TestStartAndResolve(t *testing.T) {
	manager := NewManager(setupSessionTestDB(t), "secret", time.Hour)
	ctx := context.Background()

	admin := &models.User{ID: 1, Username: "admin", Role: models.RoleAdmin}
	sess, token, errStart := manager.Start(ctx, admin)
	if errStart != nil {
		t.Fatalf("start: %v", errStart)
	}
	if !sess.IsAdmin {
		t.Fatalf("admin session should carry the admin flag")
	}

	resolved, errResolve := manager.Resolve(ctx, token)
	if errResolve != nil {
		t.Fatalf("resolve: %v", errResolve)
	}
	if resolved == nil {
		t.Fatalf("expected a session, got anonymous")
	}
	if resolved.ID != sess.ID || resolved.UserID != 1 || resolved.Username != "admin" {
		t.Fatalf("resolved session mismatch: %+v", resolved)
	}
}

func TestRegularUserIsNotAdmin(t *testing.T) {
	manager := NewManager(setupSessionTestDB(t), "secret", time.Hour)
	ctx := context.Background()

	user := &models.User{ID: 2, Username: "user1", Role: models.RoleUser}
	sess, _, errStart := manager.Start(ctx, user)
	if errStart != nil {
		t.Fatalf("start: %v", errStart)
	}
	if sess.IsAdmin {
		t.Fatalf("regular user session must not carry the admin flag")
	}
}

func TestResolveAnonymousInputs(t *testing.T) {
	manager := NewManager(setupSessionTestDB(t), "secret", time.Hour)
	ctx := context.Background()

	if sess, err := manager.Resolve(ctx, ""); err != nil || sess != nil {
		t.Fatalf("empty token: got (%v, %v), want (nil, nil)", sess, err)
	}
	if sess, err := manager.Resolve(ctx, "garbage"); err != nil || sess != nil {
		t.Fatalf("garbage token: got (%v, %v), want (nil, nil)", sess, err)
	}

	forged, errSign := security.SignSessionToken("wrong-secret", uuid.NewString(), time.Hour)
	if errSign != nil {
		t.Fatalf("sign forged token: %v", errSign)
	}
	if sess, err := manager.Resolve(ctx, forged); err != nil || sess != nil {
		t.Fatalf("forged token: got (%v, %v), want (nil, nil)", sess, err)
	}
}

func TestDestroyInvalidatesToken(t *testing.T) {
	manager := NewManager(setupSessionTestDB(t), "secret", time.Hour)
	ctx := context.Background()

	_, token, errStart := manager.Start(ctx, &models.User{ID: 3, Username: "user3"})
	if errStart != nil {
		t.Fatalf("start: %v", errStart)
	}
	sess, errResolve := manager.Resolve(ctx, token)
	if errResolve != nil || sess == nil {
		t.Fatalf("resolve before destroy: (%v, %v)", sess, errResolve)
	}

	if errDestroy := manager.Destroy(ctx, sess.ID); errDestroy != nil {
		t.Fatalf("destroy: %v", errDestroy)
	}
	if again, err := manager.Resolve(ctx, token); err != nil || again != nil {
		t.Fatalf("after destroy: got (%v, %v), want (nil, nil)", again, err)
	}

	// Destroying again is a no-op.
	if errDestroy := manager.Destroy(ctx, sess.ID); errDestroy != nil {
		t.Fatalf("second destroy: %v", errDestroy)
	}
}

func TestExpiredRowResolvesAnonymousAndIsPruned(t *testing.T) {
	db := setupSessionTestDB(t)
	manager := NewManager(db, "secret", time.Hour)
	ctx := context.Background()

	expired := models.Session{
		ID:        uuid.NewString(),
		UserID:    4,
		Username:  "user4",
		CreatedAt: time.Now().UTC().Add(-2 * time.Hour),
		ExpiresAt: time.Now().UTC().Add(-time.Hour),
	}
	if errCreate := db.Create(&expired).Error; errCreate != nil {
		t.Fatalf("insert expired session: %v", errCreate)
	}
	token, errSign := security.SignSessionToken("secret", expired.ID, time.Hour)
	if errSign != nil {
		t.Fatalf("sign token: %v", errSign)
	}

	if sess, err := manager.Resolve(ctx, token); err != nil || sess != nil {
		t.Fatalf("expired session: got (%v, %v), want (nil, nil)", sess, err)
	}

	var count int64
	if errCount := db.Model(&models.Session{}).Count(&count).Error; errCount != nil {
		t.Fatalf("count sessions: %v", errCount)
	}
	if count != 0 {
		t.Fatalf("expired row should be pruned on resolve, %d rows remain", count)
	}
}

func TestSweepRemovesOnlyExpiredRows(t *testing.T) {
	db := setupSessionTestDB(t)
	manager := NewManager(db, "secret", time.Hour)
	ctx := context.Background()

	now := time.Now().UTC()
	rows := []models.Session{
		{ID: uuid.NewString(), UserID: 1, Username: "a", CreatedAt: now, ExpiresAt: now.Add(-time.Minute)},
		{ID: uuid.NewString(), UserID: 2, Username: "b", CreatedAt: now, ExpiresAt: now.Add(time.Hour)},
	}
	for i := range rows {
		if errCreate := db.Create(&rows[i]).Error; errCreate != nil {
			t.Fatalf("insert session: %v", errCreate)
		}
	}

	deleted, errSweep := manager.Sweep(ctx)
	if errSweep != nil {
		t.Fatalf("sweep: %v", errSweep)
	}
	if deleted != 1 {
		t.Fatalf("sweep deleted %d rows, want 1", deleted)
	}
}
