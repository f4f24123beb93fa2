// Package images manages the single uploaded picture per recipe: validated
// multipart uploads stored under generated names in a flat directory, with
// the database row as the source of truth and file cleanup as a logged,
// best-effort step that never fails the enclosing request.
package images

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oumaimabzd/recipe-project/internal/models"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Upload constraints.
const (
	// MaxUploadBytes caps accepted uploads at 5 MiB.
	MaxUploadBytes = 5 << 20
	// WebPrefix is the URL prefix under which stored files are served.
	WebPrefix = "/img/"
)

// Upload validation errors.
var (
	// ErrUnsupportedType rejects anything that is not PNG or JPEG.
	ErrUnsupportedType = errors.New("images: only PNG or JPG allowed")
	// ErrTooLarge rejects uploads over MaxUploadBytes.
	ErrTooLarge = errors.New("images: file exceeds the 5 MB limit")
)

// allowedTypes are the accepted declared MIME types.
var allowedTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
}

// lockStripes bounds the number of per-recipe mutexes.
const lockStripes = 32

// Manager owns the uploads directory and the images table.
type Manager struct {
	db  *gorm.DB
	dir string

	// locks serializes the read-check-then-write upsert per recipe, so two
	// concurrent uploads to one recipe cannot both insert.
	locks [lockStripes]sync.Mutex
}

// NewManager constructs a Manager, creating the uploads directory if needed.
func NewManager(db *gorm.DB, dir string) (*Manager, error) {
	if errMkdir := os.MkdirAll(dir, 0755); errMkdir != nil {
		return nil, fmt.Errorf("images: create uploads dir: %w", errMkdir)
	}
	return &Manager{db: db, dir: dir}, nil
}

// Dir returns the uploads directory served at WebPrefix.
func (m *Manager) Dir() string {
	return m.dir
}

// lock returns the stripe mutex for a recipe.
func (m *Manager) lock(recipeID uint64) *sync.Mutex {
	return &m.locks[recipeID%lockStripes]
}

// Accept validates an uploaded file, stores it under a generated name, and
// upserts the recipe's single image row. When a previous image existed, its
// file is unlinked best-effort after the row update; a leftover old file is
// acceptable, a row pointing at a missing file is not.
func (m *Manager) Accept(ctx context.Context, recipeID uint64, file *multipart.FileHeader) (*models.Image, error) {
	if file == nil {
		return nil, ErrUnsupportedType
	}
	declared := strings.ToLower(strings.TrimSpace(file.Header.Get("Content-Type")))
	if idx := strings.Index(declared, ";"); idx >= 0 {
		declared = strings.TrimSpace(declared[:idx])
	}
	if _, ok := allowedTypes[declared]; !ok {
		return nil, ErrUnsupportedType
	}
	if file.Size > MaxUploadBytes {
		return nil, ErrTooLarge
	}

	name := storedName(file.Filename)
	if errWrite := m.writeFile(file, name); errWrite != nil {
		return nil, errWrite
	}
	webPath := WebPrefix + name

	mu := m.lock(recipeID)
	mu.Lock()
	defer mu.Unlock()

	var existing models.Image
	errFind := m.db.WithContext(ctx).Where("recipe_id = ?", recipeID).First(&existing).Error
	switch {
	case errors.Is(errFind, gorm.ErrRecordNotFound):
		row := models.Image{RecipeID: recipeID, Filename: webPath, UploadedAt: time.Now().UTC()}
		if errCreate := m.db.WithContext(ctx).Create(&row).Error; errCreate != nil {
			m.removeFile(name)
			return nil, fmt.Errorf("images: insert row: %w", errCreate)
		}
		return &row, nil
	case errFind != nil:
		m.removeFile(name)
		return nil, fmt.Errorf("images: read row: %w", errFind)
	}

	oldPath := existing.Filename
	updates := map[string]any{"filename": webPath, "uploaded_at": time.Now().UTC()}
	if errUpd := m.db.WithContext(ctx).Model(&models.Image{}).Where("recipe_id = ?", recipeID).Updates(updates).Error; errUpd != nil {
		m.removeFile(name)
		return nil, fmt.Errorf("images: update row: %w", errUpd)
	}
	// Row committed; the old file is now garbage. Cleanup failure is logged
	// and swallowed.
	if oldPath != "" {
		m.removeFile(baseName(oldPath))
	}

	existing.Filename = webPath
	existing.UploadedAt = updates["uploaded_at"].(time.Time)
	return &existing, nil
}

// Remove deletes the recipe's image row and then best-effort unlinks the
// file. A recipe with no image is a no-op success, so the operation is
// idempotent.
func (m *Manager) Remove(ctx context.Context, recipeID uint64) error {
	mu := m.lock(recipeID)
	mu.Lock()
	defer mu.Unlock()

	var existing models.Image
	errFind := m.db.WithContext(ctx).Where("recipe_id = ?", recipeID).First(&existing).Error
	if errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("images: read row: %w", errFind)
	}

	if errDel := m.db.WithContext(ctx).Where("recipe_id = ?", recipeID).Delete(&models.Image{}).Error; errDel != nil {
		return fmt.Errorf("images: delete row: %w", errDel)
	}
	if name := baseName(existing.Filename); name != "" {
		m.removeFile(name)
	}
	return nil
}

// writeFile streams the upload to disk, enforcing the size cap even when the
// declared size lies. A partial oversized file is removed before returning.
func (m *Manager) writeFile(file *multipart.FileHeader, name string) error {
	src, errOpen := file.Open()
	if errOpen != nil {
		return fmt.Errorf("images: open upload: %w", errOpen)
	}
	defer func() { _ = src.Close() }()

	dest := filepath.Join(m.dir, name)
	out, errCreate := os.Create(dest)
	if errCreate != nil {
		return fmt.Errorf("images: create file: %w", errCreate)
	}

	written, errCopy := io.Copy(out, io.LimitReader(src, MaxUploadBytes+1))
	if errClose := out.Close(); errCopy == nil {
		errCopy = errClose
	}
	if errCopy != nil {
		m.removeFile(name)
		return fmt.Errorf("images: write file: %w", errCopy)
	}
	if written > MaxUploadBytes {
		m.removeFile(name)
		return ErrTooLarge
	}
	return nil
}

// removeFile unlinks a stored file, logging and swallowing any failure.
func (m *Manager) removeFile(name string) {
	if name == "" {
		return
	}
	if errRemove := os.Remove(filepath.Join(m.dir, name)); errRemove != nil && !os.IsNotExist(errRemove) {
		log.WithError(errRemove).WithField("file", name).Warn("remove image file")
	}
}

// storedName generates a short random file name keeping the upload's
// extension, defaulting to .jpg when it has none.
func storedName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	if ext == "" {
		ext = ".jpg"
	}
	return uuid.NewString()[:8] + ext
}

// baseName strips the web prefix and any directory components from a stored
// path, leaving just the file name under the uploads directory.
func baseName(webPath string) string {
	trimmed := strings.TrimPrefix(webPath, WebPrefix)
	if trimmed == "" {
		return ""
	}
	return filepath.Base(trimmed)
}

// WebPath normalizes a stored value into a servable URL. Legacy rows holding
// a bare file name gain the prefix on read; the stored value is never
// rewritten.
func WebPath(filename string) string {
	if strings.HasPrefix(filename, WebPrefix) {
		return filename
	}
	return WebPrefix + filename
}
