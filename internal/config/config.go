package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Backend drivers
const (
	DriverREST     = "rest"
	DriverPostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig `env:",prefix=SERVER_"`

	// Hosted table API configuration
	Supabase SupabaseConfig `env:",prefix=SUPABASE_"`

	// Database configuration (postgres driver only)
	Database DatabaseConfig `env:",prefix=DB_"`

	// Application configuration
	App AppConfig `env:",prefix=APP_"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port         string `env:"PORT,default=8080"`
	Host         string `env:"HOST,default=0.0.0.0"`
	ReadTimeout  int    `env:"READ_TIMEOUT,default=30"`  // seconds
	WriteTimeout int    `env:"WRITE_TIMEOUT,default=30"` // seconds
}

// SupabaseConfig holds the hosted backend endpoint and its public key
type SupabaseConfig struct {
	URL       string  `env:"URL"`
	AnonKey   string  `env:"ANON_KEY"`
	Timeout   int     `env:"TIMEOUT,default=0"`    // seconds, 0 waits forever
	RateLimit float64 `env:"RATE_LIMIT,default=0"` // requests per second, 0 disables
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host     string `env:"HOST,default=localhost"`
	Port     string `env:"PORT,default=5432"`
	User     string `env:"USER,default=postgres"`
	Password string `env:"PASSWORD,default=postgres"`
	Name     string `env:"NAME,default=postgres"`
	SSLMode  string `env:"SSL_MODE,default=disable"`
	MaxConns int    `env:"MAX_CONNS,default=10"`
	MinConns int    `env:"MIN_CONNS,default=2"`
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Environment   string `env:"ENVIRONMENT,default=development"`
	LogLevel      string `env:"LOG_LEVEL,default=info"`
	Debug         bool   `env:"DEBUG,default=false"`
	BackendDriver string `env:"BACKEND_DRIVER,default=rest"`
	OwnerUserID   int64  `env:"OWNER_USER_ID,default=3"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

// LoadFrom loads configuration from an explicit key/value set.
func LoadFrom(ctx context.Context, env map[string]string) (*Config, error) {
	return load(ctx, envconfig.MapLookuper(env))
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings the process cannot start without.
func (c *Config) Validate() error {
	switch c.App.BackendDriver {
	case DriverREST:
		var missing []string
		if strings.TrimSpace(c.Supabase.URL) == "" {
			missing = append(missing, "SUPABASE_URL")
		}
		if strings.TrimSpace(c.Supabase.AnonKey) == "" {
			missing = append(missing, "SUPABASE_ANON_KEY")
		}
		if len(missing) > 0 {
			return fmt.Errorf("missing required backend settings: %s", strings.Join(missing, ", "))
		}
	case DriverPostgres:
	default:
		return fmt.Errorf("unknown backend driver %q", c.App.BackendDriver)
	}
	if c.Supabase.RateLimit < 0 {
		return errors.New("SUPABASE_RATE_LIMIT must not be negative")
	}
	return nil
}

// GetDatabaseURL returns the PostgreSQL connection URL
func (c *DatabaseConfig) GetDatabaseURL() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// GetServerAddr returns the server address
func (c *ServerConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// RequestTimeout returns the per-call HTTP timeout for the backend.
func (c *SupabaseConfig) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// IsDevelopment returns true if running in development environment
func (c *AppConfig) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production environment
func (c *AppConfig) IsProduction() bool {
	return c.Environment == "production"
}
