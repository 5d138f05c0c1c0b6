package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config struct to hold the configuration settings
type Config struct {
	HTTP          HTTPConfig          `yaml:"http"`
	Database      DatabaseConfig      `yaml:"database"`
	Auth          AuthConfig          `yaml:"auth"`
	Discord       OAuthClientConfig   `yaml:"discord"`
	Roblox        OAuthClientConfig   `yaml:"roblox"`
	GitHub        OAuthClientConfig   `yaml:"github"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// HTTPConfig holds the API server settings.
type HTTPConfig struct {
	Port           string        `yaml:"port"`
	FrontendURL    string        `yaml:"frontend_url"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	SecureCookies  bool          `yaml:"secure_cookies"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
}

// DatabaseConfig selects the SQL backend.
type DatabaseConfig struct {
	Driver      string `yaml:"driver"` // sqlite|postgres
	DSN         string `yaml:"dsn"`
	AutoMigrate bool   `yaml:"auto_migrate"`
}

// AuthConfig holds token and session settings.
type AuthConfig struct {
	JWTSecret       string        `yaml:"jwt_secret"`
	StateSecret     string        `yaml:"state_secret"`
	TokenTTL        time.Duration `yaml:"token_ttl"`
	SessionTTL      time.Duration `yaml:"session_ttl"`
	BootstrapAdmins []string      `yaml:"bootstrap_admins"`
}

// OAuthClientConfig holds one OAuth provider registration.
type OAuthClientConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURL  string `yaml:"redirect_url"`
}

// Configured reports whether the provider can be used.
func (c OAuthClientConfig) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// NotificationsConfig holds the initial Discord bot settings.
type NotificationsConfig struct {
	Enabled        bool   `yaml:"enabled"`
	BotToken       string `yaml:"bot_token"`
	DefaultMessage string `yaml:"default_message"`
	StaffChannelID string `yaml:"staff_channel_id"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	Environment    string `yaml:"environment"`
	LogLevel       string `yaml:"log_level"`
	MetricsEnabled bool   `yaml:"metrics_enabled"`
}

// Defaults returns a config populated with development defaults.
func Defaults() Config {
	return Config{
		HTTP: HTTPConfig{
			Port:           "3000",
			FrontendURL:    "http://localhost:5173",
			AllowedOrigins: []string{"http://localhost:5173"},
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   30 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:      "sqlite",
			DSN:         "file:portal.db?cache=shared",
			AutoMigrate: true,
		},
		Auth: AuthConfig{
			TokenTTL:   7 * 24 * time.Hour,
			SessionTTL: 7 * 24 * time.Hour,
		},
		Observability: ObservabilityConfig{
			Environment:    "development",
			LogLevel:       "info",
			MetricsEnabled: true,
		},
	}
}

// LoadConfig loads the configuration from a YAML file, then applies
// environment overrides. A missing file falls back to environment only.
func LoadConfig(filename string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(filename)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		// env only
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := applyEnv(&cfg, os.Getenv); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	list := func(key string, dst *[]string) {
		if v := getenv(key); v != "" {
			*dst = splitList(v)
		}
	}
	boolean := func(key string, dst *bool) error {
		v := getenv(key)
		if v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s value: %w", key, err)
		}
		*dst = b
		return nil
	}
	duration := func(key string, dst *time.Duration) error {
		v := getenv(key)
		if v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s value: %w", key, err)
		}
		*dst = d
		return nil
	}

	str("PORT", &cfg.HTTP.Port)
	str("FRONTEND_URL", &cfg.HTTP.FrontendURL)
	list("ALLOWED_ORIGINS", &cfg.HTTP.AllowedOrigins)

	str("DATABASE_DRIVER", &cfg.Database.Driver)
	str("DATABASE_URL", &cfg.Database.DSN)

	str("JWT_SECRET", &cfg.Auth.JWTSecret)
	str("STATE_SECRET", &cfg.Auth.StateSecret)
	list("BOOTSTRAP_ADMINS", &cfg.Auth.BootstrapAdmins)

	str("DISCORD_CLIENT_ID", &cfg.Discord.ClientID)
	str("DISCORD_CLIENT_SECRET", &cfg.Discord.ClientSecret)
	str("DISCORD_REDIRECT_URI", &cfg.Discord.RedirectURL)
	str("ROBLOX_CLIENT_ID", &cfg.Roblox.ClientID)
	str("ROBLOX_CLIENT_SECRET", &cfg.Roblox.ClientSecret)
	str("ROBLOX_REDIRECT_URI", &cfg.Roblox.RedirectURL)
	str("GITHUB_CLIENT_ID", &cfg.GitHub.ClientID)
	str("GITHUB_CLIENT_SECRET", &cfg.GitHub.ClientSecret)
	str("GITHUB_REDIRECT_URI", &cfg.GitHub.RedirectURL)

	str("DISCORD_BOT_TOKEN", &cfg.Notifications.BotToken)
	str("NOTIFICATION_DEFAULT_MESSAGE", &cfg.Notifications.DefaultMessage)
	str("STAFF_CHANNEL_ID", &cfg.Notifications.StaffChannelID)

	str("ENV", &cfg.Observability.Environment)
	str("LOG_LEVEL", &cfg.Observability.LogLevel)

	for _, fn := range []func() error{
		func() error { return boolean("SECURE_COOKIES", &cfg.HTTP.SecureCookies) },
		func() error { return duration("HTTP_READ_TIMEOUT", &cfg.HTTP.ReadTimeout) },
		func() error { return duration("HTTP_WRITE_TIMEOUT", &cfg.HTTP.WriteTimeout) },
		func() error { return boolean("DATABASE_AUTO_MIGRATE", &cfg.Database.AutoMigrate) },
		func() error { return duration("JWT_TTL", &cfg.Auth.TokenTTL) },
		func() error { return duration("SESSION_TTL", &cfg.Auth.SessionTTL) },
		func() error { return boolean("NOTIFICATIONS_ENABLED", &cfg.Notifications.Enabled) },
		func() error { return boolean("METRICS_ENABLED", &cfg.Observability.MetricsEnabled) },
	} {
		if err := fn(); err != nil {
			return err
		}
	}
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate reports missing or inconsistent settings. All problems are
// returned together.
func (c *Config) Validate() error {
	var errs []error
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("auth.jwt_secret (JWT_SECRET) is required"))
	}
	if c.Auth.StateSecret == "" {
		errs = append(errs, errors.New("auth.state_secret (STATE_SECRET) is required"))
	}
	if !c.Discord.Configured() {
		errs = append(errs, errors.New("discord client_id and client_secret are required"))
	}
	if c.Discord.Configured() && c.Discord.RedirectURL == "" {
		errs = append(errs, errors.New("discord.redirect_url is required"))
	}
	if c.HTTP.FrontendURL == "" {
		errs = append(errs, errors.New("http.frontend_url is required"))
	}
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		errs = append(errs, fmt.Errorf("database.driver %q must be sqlite or postgres", c.Database.Driver))
	}
	if c.Database.DSN == "" {
		errs = append(errs, errors.New("database.dsn (DATABASE_URL) is required"))
	}
	if c.Auth.TokenTTL <= 0 || c.Auth.SessionTTL <= 0 {
		errs = append(errs, errors.New("auth token_ttl and session_ttl must be positive"))
	}
	return errors.Join(errs...)
}
