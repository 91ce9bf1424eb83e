package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config application configuration root.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
	AI       AIConfig       `mapstructure:"ai"`
	Legacy   LegacyConfig   `mapstructure:"legacy"`
	Import   ImportConfig   `mapstructure:"import"`
	Cron     CronConfig     `mapstructure:"cron"`
}

// ServerConfig HTTP server settings.
type ServerConfig struct {
	Port      int        `mapstructure:"port"`
	Timezone  string     `mapstructure:"timezone"`
	BodyLimit int64      `mapstructure:"body_limit"` // bytes, spreadsheet uploads
	JSONLimit int64      `mapstructure:"json_limit"` // bytes, every other body
	CORS      CORSConfig `mapstructure:"cors"`
}

// CORSConfig cross-origin settings.
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// Location resolves the configured timezone. Validate guarantees it loads.
func (c *ServerConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// DatabaseConfig PostgreSQL settings.
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // minutes
}

// DSN builds the PostgreSQL connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// RedisConfig Redis settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig token, root credential and session settings.
type AuthConfig struct {
	JWTSecret       string        `mapstructure:"jwt_secret"`
	AccessTokenTTL  time.Duration `mapstructure:"access_token_ttl"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	RootUsername    string        `mapstructure:"root_username"`
	RootPassword    string        `mapstructure:"root_password"`
	LoginRateLimit  int           `mapstructure:"login_rate_limit"`
	LoginRateWindow time.Duration `mapstructure:"login_rate_window"`
}

// LogConfig logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// AIConfig generative summary settings.
type AIConfig struct {
	APIKey          string        `mapstructure:"api_key"`
	Model           string        `mapstructure:"model"`
	MaxRecords      int           `mapstructure:"max_records"`
	InstitutionName string        `mapstructure:"institution_name"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// LegacyConfig the single-endpoint store the data is migrated from.
type LegacyConfig struct {
	StoreURL string        `mapstructure:"store_url"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// ImportConfig spreadsheet import limits.
type ImportConfig struct {
	MaxRows     int `mapstructure:"max_rows"`
	Concurrency int `mapstructure:"concurrency"`
}

// CronConfig scheduled jobs.
type CronConfig struct {
	DailyReset string `mapstructure:"daily_reset"`
}

// Load reads configuration from file and environment.
// Precedence: env > config file > defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── defaults ──
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.timezone", "Asia/Jakarta")
	v.SetDefault("server.body_limit", 10<<20)
	v.SetDefault("server.json_limit", 1<<20)
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:5173"})

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "pptq_absensi")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "Asia/Jakarta")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", 60)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.access_token_ttl", "12h")
	v.SetDefault("auth.idle_timeout", "30m")
	v.SetDefault("auth.root_username", "superadmin")
	v.SetDefault("auth.root_password", "superadmin123")
	v.SetDefault("auth.login_rate_limit", 10)
	v.SetDefault("auth.login_rate_window", "1m")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("ai.model", "gemini-2.5-flash")
	v.SetDefault("ai.max_records", 20)
	v.SetDefault("ai.institution_name", "PPTQ Haqqul Yaqin")
	v.SetDefault("ai.timeout", "60s")

	v.SetDefault("legacy.timeout", "30s")

	v.SetDefault("import.max_rows", 1000)
	v.SetDefault("import.concurrency", 8)

	v.SetDefault("cron.daily_reset", "0 0 * * *")

	// ── config file ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── env ──
	v.SetEnvPrefix("ABSENSI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("config: auth.jwt_secret must be at least 16 characters")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port must be within 1-65535")
	}
	if _, err := time.LoadLocation(c.Server.Timezone); err != nil {
		return fmt.Errorf("config: server.timezone %q: %w", c.Server.Timezone, err)
	}
	if c.AI.MaxRecords <= 0 {
		return fmt.Errorf("config: ai.max_records must be positive")
	}
	if c.Auth.IdleTimeout <= 0 {
		return fmt.Errorf("config: auth.idle_timeout must be positive")
	}
	return nil
}
