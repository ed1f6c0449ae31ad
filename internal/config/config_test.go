package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("PORT", "")
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("USERS_FILE", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("SEED_USERS", "")
	t.Setenv("METRICS_ENABLED", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Env != "dev" {
		t.Fatalf("expected env dev, got %q", cfg.Env)
	}
	if cfg.HTTPAddr != ":3000" {
		t.Fatalf("expected :3000, got %q", cfg.HTTPAddr)
	}
	if cfg.StoreBackend != BackendFile || cfg.UsersFile != "users.json" {
		t.Fatalf("unexpected store config: %+v", cfg)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "http://localhost:3000" {
		t.Fatalf("unexpected origins: %v", cfg.CORSAllowedOrigins)
	}
	if cfg.SeedUsers || !cfg.MetricsEnabled {
		t.Fatalf("unexpected toggles: seed=%v metrics=%v", cfg.SeedUsers, cfg.MetricsEnabled)
	}
	if cfg.HTTPReadTimeout != 10*time.Second || cfg.HTTPIdleTimeout != time.Minute {
		t.Fatalf("unexpected timeouts: %+v", cfg)
	}
}

func TestLoad_PortFallback(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("PORT", "8081")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTPAddr != ":8081" {
		t.Fatalf("expected :8081, got %q", cfg.HTTPAddr)
	}
}

func TestLoad_RedisRequiresAddr(t *testing.T) {
	t.Setenv("STORE_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoad_RedisInvalidDB(t *testing.T) {
	t.Setenv("STORE_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "x")

	if _, err := Load(); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoad_PostgresRequiresDSN(t *testing.T) {
	t.Setenv("STORE_BACKEND", "postgres")
	t.Setenv("DB_ADDR", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoad_UnknownBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "mongo")

	if _, err := Load(); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("HTTP_READ_TIMEOUT", "soon")

	if _, err := Load(); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoad_OriginsSplitAndTrimmed(t *testing.T) {
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.github.io , ,https://b.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.CORSAllowedOrigins) != 2 ||
		cfg.CORSAllowedOrigins[0] != "https://a.github.io" ||
		cfg.CORSAllowedOrigins[1] != "https://b.example.com" {
		t.Fatalf("unexpected origins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestNewDB_EmptyDSN(t *testing.T) {
	if _, err := NewDB(""); err == nil {
		t.Fatal("expected error")
	}
}
