// Package config loads settings from configs/config.yml and LINKFEED_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"linkfeed/internal/repository/db"

	"github.com/spf13/viper"
)

const envPrefix = "LINKFEED"

type Config struct {
	Port   string
	Log    LogConfig
	DB     DBConfig
	Auth   AuthConfig
	Feed   FeedConfig
	Redis  RedisConfig
	CORS   CORSConfig
	Server ServerConfig
}

type LogConfig struct {
	Level  string
	Format string
}

type DBConfig struct {
	Driver string // canonical after Validate: "sqlite" or "postgres"
	Path   string // sqlite file
	DSN    string // postgres connection string
}

// Source returns the driver specific connection string.
func (d DBConfig) Source() string {
	if dialect, err := db.ParseDialect(d.Driver); err == nil && dialect == db.Postgres {
		return d.DSN
	}
	return d.Path
}

type AuthConfig struct {
	Secret           string
	TokenTTL         time.Duration
	BcryptCost       int
	EnforceOwnership bool
}

type FeedConfig struct {
	Cache    string
	CacheTTL time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type ServerConfig struct {
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.path", "linkfeed.db")
	v.SetDefault("db.dsn", "")
	v.SetDefault("auth.secret", "")
	v.SetDefault("auth.token_ttl", 0)
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("auth.enforce_ownership", false)
	v.SetDefault("feed.cache", "memory")
	v.SetDefault("feed.cache_ttl", 30*time.Second)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("cors.allowed_origins", []string{})
	v.SetDefault("server.read_header_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
}

// Load reads config.yml from paths (a missing file is fine), applies
// environment overrides and validates the result.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Port: v.GetString("port"),
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		DB: DBConfig{
			Driver: v.GetString("db.driver"),
			Path:   v.GetString("db.path"),
			DSN:    v.GetString("db.dsn"),
		},
		Auth: AuthConfig{
			Secret:           v.GetString("auth.secret"),
			TokenTTL:         v.GetDuration("auth.token_ttl"),
			BcryptCost:       v.GetInt("auth.bcrypt_cost"),
			EnforceOwnership: v.GetBool("auth.enforce_ownership"),
		},
		Feed: FeedConfig{
			Cache:    v.GetString("feed.cache"),
			CacheTTL: v.GetDuration("feed.cache_ttl"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: v.GetStringSlice("cors.allowed_origins"),
		},
		Server: ServerConfig{
			ReadHeaderTimeout: v.GetDuration("server.read_header_timeout"),
			WriteTimeout:      v.GetDuration("server.write_timeout"),
			IdleTimeout:       v.GetDuration("server.idle_timeout"),
			ShutdownTimeout:   v.GetDuration("server.shutdown_timeout"),
		},
	}
}

// Validate rejects settings the server cannot start with and normalizes
// driver aliases such as "sqlite3" or "pgx".
func (c *Config) Validate() error {
	if c.Auth.Secret == "" {
		return errors.New("auth.secret is required (set LINKFEED_AUTH_SECRET)")
	}
	dialect, err := db.ParseDialect(c.DB.Driver)
	if err != nil {
		return err
	}
	c.DB.Driver = string(dialect)
	switch dialect {
	case db.SQLite:
		if c.DB.Path == "" {
			return errors.New("db.path is required for sqlite")
		}
	case db.Postgres:
		if c.DB.DSN == "" {
			return errors.New("db.dsn is required for postgres")
		}
	}
	if c.Auth.TokenTTL < 0 {
		return errors.New("auth.token_ttl must not be negative")
	}
	return nil
}
