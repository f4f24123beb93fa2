package db

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/oumaimabzd/recipe-project/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestDetectDialectFromDSN(t *testing.T) {
	cases := []struct {
		dsn  string
		want string
	}{
		{"postgres://app:pw@localhost:5432/recipes", DialectPostgres},
		{"postgresql://app@localhost/recipes", DialectPostgres},
		{"host=localhost user=app dbname=recipes sslmode=disable", DialectPostgres},
		{"data/recipes.db", DialectSQLite},
		{"file:recipes.db?cache=shared", DialectSQLite},
		{"sqlite://recipes.db", DialectSQLite},
		{":memory:", DialectSQLite},
	}
	for _, tc := range cases {
		got, err := detectDialectFromDSN(tc.dsn)
		if err != nil {
			t.Fatalf("detectDialectFromDSN(%q) error = %v", tc.dsn, err)
		}
		if got != tc.want {
			t.Fatalf("detectDialectFromDSN(%q) = %q, want %q", tc.dsn, got, tc.want)
		}
	}

	if _, err := detectDialectFromDSN("mysql://nope"); err == nil {
		t.Fatalf("unknown scheme should be rejected")
	}
}

func TestEnsureSQLiteParams(t *testing.T) {
	withDefaults := ensureSQLiteParams("data/recipes.db")
	for _, param := range []string{"_busy_timeout=5000", "_journal_mode=WAL", "_foreign_keys=on", "_synchronous=NORMAL"} {
		if !strings.Contains(withDefaults, param) {
			t.Fatalf("ensureSQLiteParams() = %q, missing %q", withDefaults, param)
		}
	}

	// Existing parameters are kept, not duplicated.
	custom := ensureSQLiteParams("file:recipes.db?_journal_mode=DELETE")
	if strings.Count(custom, "_journal_mode") != 1 {
		t.Fatalf("ensureSQLiteParams() duplicated a parameter: %q", custom)
	}
	if !strings.Contains(custom, "_journal_mode=DELETE") {
		t.Fatalf("ensureSQLiteParams() overwrote a caller parameter: %q", custom)
	}
}

func TestSQLitePathFromDSN(t *testing.T) {
	cases := []struct {
		dsn  string
		want string
	}{
		{"data/recipes.db", "data/recipes.db"},
		{"file:data/recipes.db?cache=shared", "data/recipes.db"},
		{"file::memory:", ""},
		{":memory:", ""},
	}
	for _, tc := range cases {
		if got := sqlitePathFromDSN(tc.dsn); got != tc.want {
			t.Fatalf("sqlitePathFromDSN(%q) = %q, want %q", tc.dsn, got, tc.want)
		}
	}
}

func TestMigrateAndSeed(t *testing.T) {
	dsn := fmt.Sprintf("file:migrate_%d?mode=memory&cache=shared", time.Now().UnixNano())
	conn, errOpen := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if errOpen != nil {
		t.Fatalf("open db: %v", errOpen)
	}

	if errMigrate := Migrate(conn); errMigrate != nil {
		t.Fatalf("Migrate() error = %v", errMigrate)
	}
	if errSeed := Seed(conn); errSeed != nil {
		t.Fatalf("Seed() error = %v", errSeed)
	}

	var count int64
	if err := conn.Model(&models.User{}).Count(&count).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 10 {
		t.Fatalf("seeded %d users, want 10", count)
	}

	var admin models.User
	if errFind := conn.Where("username = ?", "admin").First(&admin).Error; errFind != nil {
		t.Fatalf("seeded admin not found: %v", errFind)
	}
	if admin.Role != models.RoleAdmin {
		t.Fatalf("admin role = %q, want %q", admin.Role, models.RoleAdmin)
	}
	if errCompare := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("wdf#2025")); errCompare != nil {
		t.Fatalf("seeded admin digest does not match fixture password: %v", errCompare)
	}

	// Seeding again is a no-op.
	if errSeed := Seed(conn); errSeed != nil {
		t.Fatalf("second Seed() error = %v", errSeed)
	}
	if err := conn.Model(&models.User{}).Count(&count).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 10 {
		t.Fatalf("second seed changed the user count to %d", count)
	}
}

func TestOpenSQLiteFileAndMigrate(t *testing.T) {
	path := t.TempDir() + "/nested/recipes.db"

	conn, errOpen := Open(path)
	if errOpen != nil {
		t.Fatalf("Open(%q) error = %v", path, errOpen)
	}
	sqlDB, errDB := conn.DB()
	if errDB != nil {
		t.Fatalf("unwrap sql.DB: %v", errDB)
	}
	defer func() { _ = sqlDB.Close() }()

	if errMigrate := Migrate(conn); errMigrate != nil {
		t.Fatalf("Migrate() error = %v", errMigrate)
	}
	if errCreate := conn.Create(&models.Category{Name: "Soups"}).Error; errCreate != nil {
		t.Fatalf("insert after migrate: %v", errCreate)
	}
}
