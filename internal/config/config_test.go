package config

import (
	"flag"
	"os"
	"testing"
)

// resetFlagSet создаёт новый FlagSet перед каждым вызовом NewConfig,
// чтобы избежать повторной регистрации одних и тех же флагов между тестами.
func resetFlagSet(t *testing.T) {
	t.Helper()
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flag.CommandLine.SetOutput(os.Stderr)
}

func TestNewConfig_DefaultsWhenEnvEmpty(t *testing.T) {
	t.Setenv("DATABASE_URI", "")
	t.Setenv("AUTH_SECRET", "")
	t.Setenv("BASE_URL", "")
	t.Setenv("ENABLE_HTTPS", "")
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("UPLOAD_DIR", "")
	t.Setenv("PHOTO_MAX_MB", "")
	t.Setenv("REDIS_ADDR", "")

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.AuthSecret != "dev-secret-key" {
		t.Fatalf("AuthSecret default expected 'dev-secret-key', got %q", cfg.AuthSecret)
	}
	if cfg.PhotoMaxSizeMB != 5 {
		t.Fatalf("PhotoMaxSizeMB default expected 5, got %d", cfg.PhotoMaxSizeMB)
	}
	if cfg.StorageBackend != "fs" {
		t.Fatalf("StorageBackend default expected 'fs', got %q", cfg.StorageBackend)
	}
	if cfg.UploadDir != "uploads" {
		t.Fatalf("UploadDir default expected 'uploads', got %q", cfg.UploadDir)
	}
	if cfg.BaseURL != "localhost:8080" {
		t.Fatalf("BaseURL default expected 'localhost:8080', got %q", cfg.BaseURL)
	}
}

func TestNewConfig_EnvOverrides(t *testing.T) {
	t.Setenv("BASE_URL", "example.com:443")
	t.Setenv("ENABLE_HTTPS", "true")
	t.Setenv("AUTH_SECRET", "top")
	t.Setenv("STORAGE_BACKEND", "minio")
	t.Setenv("PHOTO_MAX_MB", "10")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.BaseURL != "example.com:443" {
		t.Fatalf("BaseURL expected 'example.com:443', got %q", cfg.BaseURL)
	}
	if !cfg.EnableHTTPS {
		t.Fatalf("EnableHTTPS expected true")
	}
	if cfg.AuthSecret != "top" {
		t.Fatalf("AuthSecret expected 'top', got %q", cfg.AuthSecret)
	}
	if cfg.StorageBackend != "minio" {
		t.Fatalf("StorageBackend expected 'minio', got %q", cfg.StorageBackend)
	}
	if cfg.PhotoMaxSizeMB != 10 {
		t.Fatalf("PhotoMaxSizeMB expected 10, got %d", cfg.PhotoMaxSizeMB)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Fatalf("RedisAddr expected 'localhost:6379', got %q", cfg.RedisAddr)
	}
}

func TestNewConfig_InvalidBaseURLFallback(t *testing.T) {
	// Невалидный BASE_URL (со схемой) должен откатиться на localhost:8080
	t.Setenv("BASE_URL", "http://bad:8080")
	t.Setenv("ENABLE_HTTPS", "false")

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.BaseURL != "localhost:8080" {
		t.Fatalf("invalid BASE_URL must fallback to 'localhost:8080', got %q", cfg.BaseURL)
	}
}

func TestNewConfig_UnknownStorageBackendFallsBackToFS(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "s3")

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.StorageBackend != "fs" {
		t.Fatalf("unknown backend must fallback to 'fs', got %q", cfg.StorageBackend)
	}
}
