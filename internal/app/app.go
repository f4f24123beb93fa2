// Package app wires the application together: configuration, logging,
// database, components, and the HTTP server. All state is constructed here
// and passed down explicitly; no package holds process-wide mutable state.
package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/oumaimabzd/recipe-project/internal/accounts"
	"github.com/oumaimabzd/recipe-project/internal/catalog"
	"github.com/oumaimabzd/recipe-project/internal/config"
	"github.com/oumaimabzd/recipe-project/internal/db"
	internalhttp "github.com/oumaimabzd/recipe-project/internal/http"
	"github.com/oumaimabzd/recipe-project/internal/images"
	"github.com/oumaimabzd/recipe-project/internal/session"
	"github.com/oumaimabzd/recipe-project/internal/settings"
	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// sweepInterval is how often expired session rows are pruned.
const sweepInterval = time.Hour

// Run boots the server and blocks until ctx is cancelled.
func Run(ctx context.Context, cfg config.Config) error {
	setupLogging(cfg.Log)

	conn, errOpen := db.Open(cfg.DatabaseDSN)
	if errOpen != nil {
		return errOpen
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		return errMigrate
	}
	if errSeed := db.Seed(conn); errSeed != nil {
		return errSeed
	}

	site, errSettings := settings.Load(ctx, conn)
	if errSettings != nil {
		return errSettings
	}

	secret := strings.TrimSpace(cfg.Session.Secret)
	if secret == "" {
		// Ephemeral secret: sessions rows survive a restart but the cookies
		// signed with the old secret will not resolve.
		secret = randomSecret()
		log.Warn("session.secret not configured; using an ephemeral secret")
	}

	sessionManager := session.NewManager(conn, secret, cfg.Session.TTL.Std())
	accountStore := accounts.NewStore(conn)
	catalogStore := catalog.NewStore(conn)
	imageManager, errImages := images.NewManager(conn, cfg.UploadsDir)
	if errImages != nil {
		return errImages
	}

	router, errRouter := internalhttp.NewRouter(internalhttp.Deps{
		Accounts: accountStore,
		Sessions: sessionManager,
		Catalog:  catalogStore,
		Images:   imageManager,
		Site:     site,
	})
	if errRouter != nil {
		return errRouter
	}

	go sessionManager.RunSweeper(ctx, sweepInterval)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Addr).Info("server listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if errShutdown := server.Shutdown(shutdownCtx); errShutdown != nil {
			return fmt.Errorf("app: shutdown: %w", errShutdown)
		}
		return nil
	case errServe := <-errCh:
		if errServe != nil && !errors.Is(errServe, http.ErrServerClosed) {
			return fmt.Errorf("app: serve: %w", errServe)
		}
		return nil
	}
}

// setupLogging configures logrus output, with rotation when a file is set.
func setupLogging(cfg config.LogConfig) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if strings.TrimSpace(cfg.File) == "" {
		return
	}
	log.SetOutput(&lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
	})
}

// randomSecret returns a fresh hex-encoded 32-byte secret.
func randomSecret() string {
	buf := make([]byte, 32)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
