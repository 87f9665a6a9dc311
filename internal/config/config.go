package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config aggregates application settings that may be sourced from files or environment variables.
type Config struct {
	API        APIConfig        `mapstructure:"api"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	R2         R2Config         `mapstructure:"r2"`
	Cloudflare CloudflareConfig `mapstructure:"cloudflare"`
	Gemini     GeminiConfig     `mapstructure:"gemini"`
	Resend     ResendConfig     `mapstructure:"resend"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Site       SiteConfig       `mapstructure:"site"`
	Contact    ContactConfig    `mapstructure:"contact"`
	Upload     UploadConfig     `mapstructure:"upload"`
	Worker     WorkerConfig     `mapstructure:"worker"`
	Log        LogConfig        `mapstructure:"log"`
	Telemetry  TelemetryConfig  `mapstructure:"telemetry"`
}

// APIConfig contains HTTP server settings.
type APIConfig struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	// TrustedProxies 为空时不信任任何代理头，ClientIP 直接取连接地址。
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

// DatabaseConfig contains connection options for PostgreSQL.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
}

// RedisConfig 包含 Redis 连接配置。
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
}

// Addr 返回 host:port 形式的地址。
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// R2Config 描述 Cloudflare R2（S3 兼容）存储。Endpoint 为空时由 AccountID 推导。
type R2Config struct {
	AccountID       string `mapstructure:"account_id"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	Bucket          string `mapstructure:"bucket"`
	PublicURL       string `mapstructure:"public_url"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	Region          string `mapstructure:"region"`
}

// ResolvedEndpoint 返回实际连接的 S3 endpoint（不含协议）。
func (r R2Config) ResolvedEndpoint() string {
	if endpoint := strings.TrimSpace(r.Endpoint); endpoint != "" {
		endpoint = strings.TrimPrefix(endpoint, "https://")
		endpoint = strings.TrimPrefix(endpoint, "http://")
		return strings.TrimRight(endpoint, "/")
	}
	return fmt.Sprintf("%s.r2.cloudflarestorage.com", r.AccountID)
}

// CloudflareConfig contains the KV namespace used for subdomain routing.
type CloudflareConfig struct {
	AccountID     string `mapstructure:"account_id"`
	APIToken      string `mapstructure:"api_token"`
	KVNamespaceID string `mapstructure:"kv_namespace_id"`
}

// Enabled reports whether KV routing can be written.
func (c CloudflareConfig) Enabled() bool {
	return c.AccountID != "" && c.APIToken != "" && c.KVNamespaceID != ""
}

// GeminiConfig contains LLM provider settings.
type GeminiConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ResendConfig contains transactional email settings.
type ResendConfig struct {
	APIKey         string `mapstructure:"api_key"`
	FromEmail      string `mapstructure:"from_email"`
	ContactToEmail string `mapstructure:"contact_to_email"`
}

// AuthConfig 描述 JWT 密钥与有效期。
type AuthConfig struct {
	PrivateKeyPath        string        `mapstructure:"private_key_path"`
	PublicKeyPath         string        `mapstructure:"public_key_path"`
	AccessTokenTTL        time.Duration `mapstructure:"access_token_ttl"`
	RefreshTokenTTL       time.Duration `mapstructure:"refresh_token_ttl"`
	CookieDomain          string        `mapstructure:"cookie_domain"`
	LoginRateLimitPerHour int           `mapstructure:"login_rate_limit_per_hour"`
}

// SiteConfig 描述站点生成与发布的业务限制。
type SiteConfig struct {
	BaseDomain     string        `mapstructure:"base_domain"`
	MaxRevisions   int           `mapstructure:"max_revisions"`
	PortfolioLimit int           `mapstructure:"portfolio_limit"`
	GenerationTTL  time.Duration `mapstructure:"generation_ttl"`
}

// ContactConfig 描述联系表单限流。
type ContactConfig struct {
	RateLimitPerHour int `mapstructure:"rate_limit_per_hour"`
}

// UploadConfig 描述上传限制与可选的病毒扫描。
type UploadConfig struct {
	MaxImageBytes int64  `mapstructure:"max_image_bytes"`
	MaxCVBytes    int64  `mapstructure:"max_cv_bytes"`
	ClamdAddr     string `mapstructure:"clamd_addr"`
}

// WorkerConfig 描述 asynq worker 设置。
type WorkerConfig struct {
	Concurrency      int  `mapstructure:"concurrency"`
	RenderThumbnails bool `mapstructure:"render_thumbnails"`
}

// LogConfig 控制 slog handler。
type LogConfig struct {
	Format string `mapstructure:"format"`
	Level  string `mapstructure:"level"`
}

// TelemetryConfig 控制 OpenTelemetry 追踪导出，Endpoint 为空时关闭。
type TelemetryConfig struct {
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
}

// DSN builds a lib/pq compatible connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.Name,
		d.SSLMode,
	)
}

// Load reads configuration from environment variables (with optional defaults).
// A local .env file is honoured when present.
func Load() (*Config, error) {
	cfg, err := read()
	if err != nil {
		return nil, err
	}
	if err := validate(*cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDatabase 只读取并校验数据库配置，供管理命令在缺少其他服务配置时使用。
func LoadDatabase() (DatabaseConfig, error) {
	cfg, err := read()
	if err != nil {
		return DatabaseConfig{}, err
	}
	if err := validateDatabase(cfg.Database); err != nil {
		return DatabaseConfig{}, err
	}
	return cfg.Database, nil
}

func read() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.API.AllowedOrigins = splitList(v.GetString("api.allowed_origins"))
	cfg.API.TrustedProxies = splitList(v.GetString("api.trusted_proxies"))
	if cfg.Cloudflare.AccountID == "" {
		cfg.Cloudflare.AccountID = cfg.R2.AccountID
	}
	cfg.R2.PublicURL = strings.TrimRight(strings.TrimSpace(cfg.R2.PublicURL), "/")
	return &cfg, nil
}

// MustLoad wraps Load and panics on failure.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.allowed_origins", "")
	v.SetDefault("api.trusted_proxies", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "cvsite")
	v.SetDefault("database.user", "cvsite")
	v.SetDefault("database.password", "cvsite")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("r2.use_ssl", true)
	v.SetDefault("r2.region", "auto")
	v.SetDefault("r2.bucket", "cvsite")
	v.SetDefault("gemini.model", "gemini-2.0-flash")
	v.SetDefault("gemini.base_url", "")
	v.SetDefault("gemini.timeout", 90*time.Second)
	v.SetDefault("resend.from_email", "noreply@example.com")
	v.SetDefault("auth.access_token_ttl", 15*time.Minute)
	v.SetDefault("auth.refresh_token_ttl", 7*24*time.Hour)
	v.SetDefault("auth.login_rate_limit_per_hour", 10)
	v.SetDefault("site.base_domain", "localhost")
	v.SetDefault("site.max_revisions", 3)
	v.SetDefault("site.portfolio_limit", 5)
	v.SetDefault("site.generation_ttl", 10*time.Minute)
	v.SetDefault("contact.rate_limit_per_hour", 5)
	v.SetDefault("upload.max_image_bytes", 5*1024*1024)
	v.SetDefault("upload.max_cv_bytes", 10*1024*1024)
	v.SetDefault("worker.concurrency", 10)
	v.SetDefault("worker.render_thumbnails", false)
	v.SetDefault("log.format", "json")
	v.SetDefault("log.level", "info")
	v.SetDefault("telemetry.service_name", "cvsite")
}

func bindEnv(v *viper.Viper) error {
	mappings := map[string][]string{
		"api.port":                       {"API_PORT"},
		"api.allowed_origins":            {"API_ALLOWED_ORIGINS"},
		"api.trusted_proxies":            {"API_TRUSTED_PROXIES"},
		"database.host":                  {"DATABASE_HOST"},
		"database.port":                  {"DATABASE_PORT"},
		"database.name":                  {"POSTGRES_DB"},
		"database.user":                  {"POSTGRES_USER"},
		"database.password":              {"POSTGRES_PASSWORD"},
		"database.sslmode":               {"DATABASE_SSLMODE"},
		"redis.host":                     {"REDIS_HOST"},
		"redis.port":                     {"REDIS_PORT"},
		"redis.password":                 {"REDIS_PASSWORD"},
		"r2.account_id":                  {"CLOUDFLARE_ACCOUNT_ID"},
		"r2.endpoint":                    {"R2_ENDPOINT"},
		"r2.access_key_id":               {"R2_ACCESS_KEY_ID"},
		"r2.secret_access_key":           {"R2_SECRET_ACCESS_KEY"},
		"r2.bucket":                      {"R2_BUCKET_NAME"},
		"r2.public_url":                  {"R2_PUBLIC_URL"},
		"r2.use_ssl":                     {"R2_USE_SSL"},
		"r2.region":                      {"R2_REGION"},
		"cloudflare.account_id":          {"CLOUDFLARE_ACCOUNT_ID"},
		"cloudflare.api_token":           {"CLOUDFLARE_API_TOKEN"},
		"cloudflare.kv_namespace_id":     {"CLOUDFLARE_KV_NAMESPACE_ID"},
		"gemini.api_key":                 {"GEMINI_API_KEY"},
		"gemini.model":                   {"GEMINI_MODEL"},
		"gemini.base_url":                {"GEMINI_BASE_URL"},
		"gemini.timeout":                 {"GEMINI_TIMEOUT"},
		"resend.api_key":                 {"RESEND_API_KEY"},
		"resend.from_email":              {"RESEND_FROM_EMAIL"},
		"resend.contact_to_email":        {"CONTACT_TO_EMAIL"},
		"auth.private_key_path":          {"AUTH_PRIVATE_KEY_PATH"},
		"auth.public_key_path":           {"AUTH_PUBLIC_KEY_PATH"},
		"auth.access_token_ttl":          {"AUTH_ACCESS_TOKEN_TTL"},
		"auth.refresh_token_ttl":         {"AUTH_REFRESH_TOKEN_TTL"},
		"auth.cookie_domain":             {"AUTH_COOKIE_DOMAIN"},
		"auth.login_rate_limit_per_hour": {"LOGIN_RATE_LIMIT_PER_HOUR"},
		"site.base_domain":               {"BASE_DOMAIN", "NEXT_PUBLIC_BASE_DOMAIN"},
		"site.max_revisions":             {"SITE_MAX_REVISIONS"},
		"site.portfolio_limit":           {"SITE_PORTFOLIO_LIMIT"},
		"site.generation_ttl":            {"SITE_GENERATION_TTL"},
		"contact.rate_limit_per_hour":    {"CONTACT_RATE_LIMIT_PER_HOUR"},
		"upload.max_image_bytes":         {"UPLOAD_MAX_IMAGE_BYTES"},
		"upload.max_cv_bytes":            {"UPLOAD_MAX_CV_BYTES"},
		"upload.clamd_addr":              {"UPLOAD_CLAMD_ADDR"},
		"worker.concurrency":             {"WORKER_CONCURRENCY"},
		"worker.render_thumbnails":       {"WORKER_RENDER_THUMBNAILS"},
		"log.format":                     {"LOG_FORMAT"},
		"log.level":                      {"LOG_LEVEL"},
		"telemetry.endpoint":             {"OTEL_EXPORTER_OTLP_ENDPOINT"},
		"telemetry.service_name":         {"OTEL_SERVICE_NAME"},
	}

	for key, envs := range mappings {
		input := append([]string{key}, envs...)
		if err := v.BindEnv(input...); err != nil {
			return fmt.Errorf("bind %s to %v: %w", key, envs, err)
		}
	}

	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func validate(cfg Config) error {
	if cfg.API.Port <= 0 {
		return errors.New("api port must be positive")
	}
	if err := validateDatabase(cfg.Database); err != nil {
		return err
	}
	if cfg.Redis.Host == "" {
		return errors.New("redis host is required")
	}
	if cfg.Redis.Port <= 0 {
		return errors.New("redis port must be positive")
	}
	if cfg.R2.AccountID == "" && cfg.R2.Endpoint == "" {
		return errors.New("cloudflare account id or r2 endpoint is required")
	}
	if cfg.R2.AccessKeyID == "" {
		return errors.New("r2 access key id is required")
	}
	if cfg.R2.SecretAccessKey == "" {
		return errors.New("r2 secret access key is required")
	}
	if cfg.R2.Bucket == "" {
		return errors.New("r2 bucket name is required")
	}
	if cfg.R2.PublicURL == "" {
		return errors.New("r2 public url is required")
	}
	if cfg.Gemini.APIKey == "" {
		return errors.New("gemini api key is required")
	}
	if cfg.Auth.PrivateKeyPath == "" || cfg.Auth.PublicKeyPath == "" {
		return errors.New("auth key paths are required")
	}
	if cfg.Site.MaxRevisions < 0 {
		return errors.New("site max revisions must not be negative")
	}
	if cfg.Site.PortfolioLimit <= 0 {
		return errors.New("site portfolio limit must be positive")
	}
	if cfg.Contact.RateLimitPerHour <= 0 {
		return errors.New("contact rate limit must be positive")
	}
	if cfg.Upload.MaxImageBytes <= 0 {
		return errors.New("upload max image bytes must be positive")
	}
	return nil
}

func validateDatabase(db DatabaseConfig) error {
	if db.Host == "" {
		return errors.New("database host is required")
	}
	if db.Port <= 0 {
		return errors.New("database port must be positive")
	}
	if db.Name == "" {
		return errors.New("database name is required")
	}
	if db.User == "" {
		return errors.New("database user is required")
	}
	if db.Password == "" {
		return errors.New("database password is required")
	}
	if db.SSLMode == "" {
		return errors.New("database sslmode is required")
	}
	return nil
}
