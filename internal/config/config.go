package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// MaxUploadBytes caps attachment uploads at 16 MiB.
const MaxUploadBytes = 16 * 1024 * 1024

// TokenTTL is how long an issued auth token stays valid.
const TokenTTL = 7 * 24 * time.Hour

// Config carries the environment-driven settings.
type Config struct {
	Port      string
	DBURL     string
	JWTSecret string
	UploadDir string
	// GCSBucket switches attachment storage to Google Cloud Storage when set.
	GCSBucket string
}

func Load() *Config {
	cfg := &Config{
		Port:      os.Getenv("PORT"),
		DBURL:     os.Getenv("DB_URL"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		UploadDir: os.Getenv("UPLOAD_DIR"),
		GCSBucket: os.Getenv("GCS_BUCKET"),
	}
	if cfg.Port == "" {
		cfg.Port = "3000"
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-secret-change-in-production"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "uploads"
	}
	return cfg
}

var allowedExtensions = map[string]struct{}{
	".txt": {}, ".pdf": {}, ".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {},
	".doc": {}, ".docx": {}, ".xls": {}, ".xlsx": {}, ".zip": {},
}

// AllowedFile reports whether the filename carries an accepted extension.
func AllowedFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	_, ok := allowedExtensions[ext]
	return ok
}
