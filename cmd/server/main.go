// Package main is the entry point for the athlete platform server.
//
// main stays minimal: read configuration from the environment, build the
// logger, hand everything to internal/server. All actual logic lives in
// the imported packages.
package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/sakif/athlete-platform/internal/server"
)

func main() {
	env := getenv("APP_ENV", "development")

	level := slog.LevelDebug
	if env == "production" {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))

	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		var err error
		port, err = strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid PORT value", slog.String("value", portStr))
			os.Exit(1)
		}
	}

	// The signing secret is not optional: without it no token can be
	// verified, so the whole API is unusable. Fail fast at startup.
	// Generate one with: openssl rand -hex 32
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Error("JWT_SECRET is not set — refusing to start")
		os.Exit(1)
	}

	tokenTTL := 24 * time.Hour
	if ttlStr := os.Getenv("JWT_EXPIRE"); ttlStr != "" {
		parsed, err := time.ParseDuration(ttlStr)
		if err != nil {
			logger.Error("invalid JWT_EXPIRE value", slog.String("value", ttlStr))
			os.Exit(1)
		}
		tokenTTL = parsed
	}

	dbPath := getenv("DB_PATH", "data/athletes.db")
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", filepath.Dir(dbPath)),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	uploadDir := getenv("UPLOAD_DIR", "data/uploads")

	cfg := server.Config{
		Port:      port,
		DBPath:    dbPath,
		UploadDir: uploadDir,
		JWTSecret: jwtSecret,
		TokenTTL:  tokenTTL,
		Env:       env,
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until the server is shut down via SIGINT/SIGTERM.
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
