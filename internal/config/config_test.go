package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"APP_ENV", "API_PORT", "DB_DSN", "CORS_ORIGIN", "JWT_SECRET", "JWT_TTL", "RATE_LIMIT_PER_MIN", "QRT_CONFIG"} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Env != "dev" || cfg.Port != "8080" || cfg.RateLimit != 200 {
		t.Fatalf("unexpected defaults: %s", cfg)
	}
	if cfg.JWTSecret != devSecret {
		t.Fatalf("expected dev secret fallback")
	}
	if cfg.JWTTTL != 30*24*time.Hour {
		t.Fatalf("ttl = %s", cfg.JWTTTL)
	}
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error when JWT_SECRET is not set in production")
	}
	t.Setenv("JWT_SECRET", "s3cret")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load with secret: %v", err)
	}
	if !cfg.Production() {
		t.Fatalf("expected production")
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "qrt.yaml")
	content := `
env: staging
port: "9090"
jwt_secret: from-file
jwt_ttl: 2h
rate_limit_per_min: 50
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("API_PORT", "7070")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Env != "staging" || cfg.JWTSecret != "from-file" || cfg.RateLimit != 50 {
		t.Fatalf("file values not applied: %s", cfg)
	}
	if cfg.JWTTTL != 2*time.Hour {
		t.Fatalf("ttl = %s", cfg.JWTTTL)
	}
	if cfg.Port != "7070" {
		t.Fatalf("env should override file, port = %s", cfg.Port)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_TTL", "forever")
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for bad JWT_TTL")
	}
	clearEnv(t)
	t.Setenv("RATE_LIMIT_PER_MIN", "lots")
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for bad RATE_LIMIT_PER_MIN")
	}
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
