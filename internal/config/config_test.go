package config

import (
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CLOUDFLARE_ACCOUNT_ID", "acc123")
	t.Setenv("R2_ACCESS_KEY_ID", "key")
	t.Setenv("R2_SECRET_ACCESS_KEY", "secret")
	t.Setenv("R2_PUBLIC_URL", "https://cdn.example.com/")
	t.Setenv("GEMINI_API_KEY", "gemini")
	t.Setenv("AUTH_PRIVATE_KEY_PATH", "/keys/private.pem")
	t.Setenv("AUTH_PUBLIC_KEY_PATH", "/keys/public.pem")
}

func TestLoadDefaultsAndOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("API_ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com ,")
	t.Setenv("SITE_MAX_REVISIONS", "5")
	t.Setenv("BASE_DOMAIN", "sites.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.API.Port != 8080 || cfg.Redis.Addr() != "localhost:6379" {
		t.Fatalf("unexpected defaults: port=%d redis=%s", cfg.API.Port, cfg.Redis.Addr())
	}
	if len(cfg.API.AllowedOrigins) != 2 || cfg.API.AllowedOrigins[1] != "https://admin.example.com" {
		t.Fatalf("allowed origins = %v", cfg.API.AllowedOrigins)
	}
	if len(cfg.API.TrustedProxies) != 0 {
		t.Fatalf("no proxy should be trusted by default, got %v", cfg.API.TrustedProxies)
	}
	if cfg.Site.MaxRevisions != 5 || cfg.Site.BaseDomain != "sites.example.com" {
		t.Fatalf("unexpected site config %+v", cfg.Site)
	}
	if cfg.Site.GenerationTTL != 10*time.Minute || cfg.Contact.RateLimitPerHour != 5 {
		t.Fatalf("unexpected limits: ttl=%s contact=%d", cfg.Site.GenerationTTL, cfg.Contact.RateLimitPerHour)
	}
	if cfg.R2.PublicURL != "https://cdn.example.com" {
		t.Fatalf("public url should be trimmed, got %q", cfg.R2.PublicURL)
	}
	if cfg.R2.ResolvedEndpoint() != "acc123.r2.cloudflarestorage.com" {
		t.Fatalf("endpoint = %q", cfg.R2.ResolvedEndpoint())
	}
	if cfg.Cloudflare.AccountID != "acc123" || cfg.Cloudflare.Enabled() {
		t.Fatalf("kv should inherit the account id but stay disabled without a token: %+v", cfg.Cloudflare)
	}
}

func TestLoadTrustedProxies(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("API_TRUSTED_PROXIES", "10.0.0.0/8, 127.0.0.1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.API.TrustedProxies) != 2 || cfg.API.TrustedProxies[0] != "10.0.0.0/8" {
		t.Fatalf("trusted proxies = %v", cfg.API.TrustedProxies)
	}
}

func TestLoadRequiresGeminiKey(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GEMINI_API_KEY", "")

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "gemini") {
		t.Fatalf("expected gemini error, got %v", err)
	}
}

func TestLoadDatabaseIgnoresServiceSettings(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("POSTGRES_DB", "sites")

	db, err := LoadDatabase()
	if err != nil {
		t.Fatalf("LoadDatabase: %v", err)
	}
	if db.Name != "sites" || !strings.Contains(db.DSN(), "dbname=sites") {
		t.Fatalf("unexpected database config %+v", db)
	}
}
