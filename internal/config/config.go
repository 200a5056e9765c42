package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/ward/ward/internal/platform/db"
)

type Config struct {
	Port            string        `mapstructure:"PORT"`
	Env             string        `mapstructure:"ENV"`
	DatabaseURL     string        `mapstructure:"DATABASE_URL"`
	DBSchema        string        `mapstructure:"DB_SCHEMA"`
	DBMaxConns      int32         `mapstructure:"DB_MAX_CONNS"`
	DBMinConns      int32         `mapstructure:"DB_MIN_CONNS"`
	CORSOrigins     []string      `mapstructure:"CORS_ORIGINS"`
	AutoMigrate     bool          `mapstructure:"AUTO_MIGRATE"`
	SeedOnStart     bool          `mapstructure:"SEED_ON_START"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	LogFile         string        `mapstructure:"LOG_FILE"`
	LogFileMaxMB    int           `mapstructure:"LOG_FILE_MAX_MB"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
	RequestTimeout  time.Duration `mapstructure:"REQUEST_TIMEOUT"`
}

var keys = []string{
	"PORT", "ENV", "DATABASE_URL", "DB_SCHEMA", "DB_MAX_CONNS", "DB_MIN_CONNS",
	"CORS_ORIGINS", "AUTO_MIGRATE", "SEED_ON_START", "LOG_LEVEL", "LOG_FILE",
	"LOG_FILE_MAX_MB", "SHUTDOWN_TIMEOUT", "REQUEST_TIMEOUT",
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("AUTO_MIGRATE", true)
	v.SetDefault("SEED_ON_START", true)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE_MAX_MB", 50)
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("REQUEST_TIMEOUT", "15s")

	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	// .env is optional
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.CORSOrigins = splitList(strings.Join(cfg.CORSOrigins, ","))

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// DBConfig is the connection descriptor handed to db.NewPool.
func (c *Config) DBConfig() db.Config {
	return db.Config{
		URL:      c.DatabaseURL,
		Schema:   c.DBSchema,
		MaxConns: c.DBMaxConns,
		MinConns: c.DBMinConns,
	}
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if !c.IsDev() && !c.IsProduction() {
		return fmt.Errorf("ENV must be \"development\" or \"production\", got %q", c.Env)
	}
	port, err := strconv.Atoi(c.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("PORT must be a number between 1 and 65535, got %q", c.Port)
	}
	if c.DBMaxConns <= 0 {
		return fmt.Errorf("DB_MAX_CONNS must be positive, got %d", c.DBMaxConns)
	}
	if c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS (%d), got %d", c.DBMaxConns, c.DBMinConns)
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("LOG_LEVEL is not a valid level: %w", err)
	}
	if c.LogFile != "" && c.LogFileMaxMB <= 0 {
		return fmt.Errorf("LOG_FILE_MAX_MB must be positive when LOG_FILE is set, got %d", c.LogFileMaxMB)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	return nil
}
