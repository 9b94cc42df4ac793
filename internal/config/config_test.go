package config

import "testing"

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "5001")
	t.Setenv("DATABASE_PATH", "/tmp/serverup-test.db")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("APP_ENV", "production")
	t.Setenv("ALLOWED_ORIGINS", "http://a.example,http://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ServerPort != 5001 {
		t.Fatalf("expected port 5001, got %d", cfg.ServerPort)
	}
	if cfg.DatabasePath != "/tmp/serverup-test.db" {
		t.Fatalf("unexpected database path %q", cfg.DatabasePath)
	}
	if cfg.JWTSecret != "s3cret" {
		t.Fatalf("unexpected secret %q", cfg.JWTSecret)
	}
	if !cfg.IsProduction() {
		t.Fatal("expected production profile")
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[0] != "http://a.example" {
		t.Fatalf("unexpected origins %v", cfg.AllowedOrigins)
	}
}

func TestLoadRejectsDefaultSecretInProduction(t *testing.T) {
	t.Setenv("PORT", "4000")
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "your-secret-key")

	if _, err := Load(); err == nil {
		t.Fatal("expected load to fail with the fallback secret in production")
	}
}
