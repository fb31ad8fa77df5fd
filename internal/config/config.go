package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/welldanyogia/forwarding-admin-backend/internal/validator"
)

// Config holds all configuration for the application
type Config struct {
	// Database
	DatabaseURL       string        `env:"DATABASE_URL,required,notEmpty"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"100"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"1h"`
	DBConnMaxIdleTime time.Duration `env:"DB_CONN_MAX_IDLE_TIME" envDefault:"10m"`

	// Server
	APIPort int    `env:"API_PORT" envDefault:"8080"`
	AppEnv  string `env:"APP_ENV" envDefault:"development"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Security
	AllowedOrigins string   `env:"ALLOWED_ORIGINS"`
	JWTSecret      string   `env:"JWT_SECRET"`
	JWTIssuer      string   `env:"JWT_ISSUER"`
	AdminEmail     string   `env:"ADMIN_EMAIL"`
	AdminEmails    []string `env:"ADMIN_EMAILS" envSeparator:","`

	// Rate Limiting
	RateLimitRequests float64 `env:"RATE_LIMIT_REQUESTS" envDefault:"10"`
	RateLimitBurst    int     `env:"RATE_LIMIT_BURST" envDefault:"20"`

	// Provisioning
	OrgDomain           string `env:"ORG_DOMAIN" envDefault:"gauntletai.com"`
	ImportConcurrency   int    `env:"IMPORT_CONCURRENCY" envDefault:"8"`
	RecentActivityLimit int    `env:"RECENT_ACTIVITY_LIMIT" envDefault:"10"`
}

// Load reads configuration from environment variables. A .env file in the
// working directory is loaded first when present; real environment
// variables take precedence over it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg.OrgDomain = strings.ToLower(strings.TrimSpace(cfg.OrgDomain))
	cfg.AdminEmail = validator.NormalizeEmail(cfg.AdminEmail)
	return cfg, nil
}

// LoadWithValidation loads and validates configuration, failing fast on errors
func LoadWithValidation() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Production-specific validation
	if cfg.IsProduction() {
		if err := cfg.ValidateProduction(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// IsProduction reports whether APP_ENV is production
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DatabaseURL cannot be empty")
	}
	if c.APIPort <= 0 || c.APIPort > 65535 {
		return fmt.Errorf("APIPort must be between 1 and 65535")
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("LOG_FORMAT must be json or text")
	}
	if c.ImportConcurrency < 1 {
		return fmt.Errorf("IMPORT_CONCURRENCY must be at least 1")
	}
	if c.RecentActivityLimit < 0 {
		return fmt.Errorf("RECENT_ACTIVITY_LIMIT cannot be negative")
	}
	if err := validator.ValidateDomain(c.OrgDomain); err != nil {
		return fmt.Errorf("ORG_DOMAIN is invalid: %w", err)
	}
	if c.AdminEmail != "" {
		if err := validator.ValidateEmail(c.AdminEmail); err != nil {
			return fmt.Errorf("ADMIN_EMAIL is invalid: %w", err)
		}
	}
	return nil
}

// ValidateProduction performs additional validation for production environment
func (c *Config) ValidateProduction() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required in production")
	}

	if c.AllowedOrigins == "" {
		return fmt.Errorf("ALLOWED_ORIGINS is required in production")
	}

	// Check for wildcard in production
	if strings.Contains(c.AllowedOrigins, "*") {
		return fmt.Errorf("wildcard (*) origins are not allowed in production")
	}

	// Check for sslmode=disable in database URL
	if strings.Contains(c.DatabaseURL, "sslmode=disable") {
		return fmt.Errorf("sslmode=disable is not allowed in production")
	}

	if strings.HasPrefix(c.DatabaseURL, "sqlite:") {
		return fmt.Errorf("sqlite databases are not allowed in production")
	}

	return nil
}

// Origins splits ALLOWED_ORIGINS on commas, dropping empty entries
func (c *Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// PrivilegedEmails returns the normalized set of addresses treated as
// administrators regardless of their stored role.
func (c *Config) PrivilegedEmails() []string {
	seen := make(map[string]struct{}, len(c.AdminEmails)+1)
	var emails []string
	for _, e := range append([]string{c.AdminEmail}, c.AdminEmails...) {
		e = validator.NormalizeEmail(e)
		if e == "" {
			continue
		}
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		emails = append(emails, e)
	}
	return emails
}

// LogConfig logs configuration values (excluding secrets)
func (c *Config) LogConfig(logger *slog.Logger) {
	logger.Info("configuration loaded",
		slog.Int("api_port", c.APIPort),
		slog.String("log_level", c.LogLevel),
		slog.String("log_format", c.LogFormat),
		slog.String("app_env", c.AppEnv),
		slog.String("org_domain", c.OrgDomain),
		slog.Int("import_concurrency", c.ImportConcurrency),
		slog.Bool("jwt_secret_set", c.JWTSecret != ""),
		slog.Bool("admin_email_set", c.AdminEmail != ""),
		slog.Int("admin_emails", len(c.AdminEmails)),
		slog.Bool("allowed_origins_set", c.AllowedOrigins != ""),
		slog.Float64("rate_limit_rps", c.RateLimitRequests),
		slog.Int("rate_limit_burst", c.RateLimitBurst),
	)
}
