package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Engine   EngineConfig   `mapstructure:"engine"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	LockTimeout     time.Duration `mapstructure:"lock_timeout"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Password     string `mapstructure:"password"`
	DB           int    `mapstructure:"db"`
	PoolSize     int    `mapstructure:"pool_size"`
	MinIdleConns int    `mapstructure:"min_idle_conns"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// EngineConfig holds the exchange engine policy knobs.
type EngineConfig struct {
	// RateStaleness is how old a feed snapshot may be before the
	// resolver refuses to use it.
	RateStaleness time.Duration `mapstructure:"rate_staleness"`
	// RateCacheTTL bounds how long a resolved rate may be served
	// from Redis without consulting the feed again.
	RateCacheTTL time.Duration `mapstructure:"rate_cache_ttl"`
	// ConflictRetries is the internal retry budget for serialization
	// and lock-timeout failures before surfacing CONC_001.
	ConflictRetries int `mapstructure:"conflict_retries"`
	// Facilitation fee policy for peer-to-peer trades. The fee rate is
	// savings_share * acceptor_savings_pct, clamped to [min, max].
	FacilitationSavingsShare float64 `mapstructure:"facilitation_savings_share"`
	FacilitationMinPct       float64 `mapstructure:"facilitation_min_pct"`
	FacilitationMaxPct       float64 `mapstructure:"facilitation_max_pct"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: PXE_ (Points Exchange).
// Nested keys use underscore: PXE_DATABASE_HOST, PXE_ENGINE_RATE_STALENESS, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "points_exchange")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.lock_timeout", "2s")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 20)
	v.SetDefault("redis.min_idle_conns", 2)
	v.SetDefault("engine.rate_staleness", "15m")
	v.SetDefault("engine.rate_cache_ttl", "1m")
	v.SetDefault("engine.conflict_retries", 3)
	v.SetDefault("engine.facilitation_savings_share", 0.10)
	v.SetDefault("engine.facilitation_min_pct", 0.005)
	v.SetDefault("engine.facilitation_max_pct", 0.05)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: PXE_DATABASE_HOST -> database.host
	v.SetEnvPrefix("PXE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (optional, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.Engine.FacilitationMinPct > cfg.Engine.FacilitationMaxPct {
		return nil, fmt.Errorf("facilitation fee: min pct %.4f exceeds max pct %.4f",
			cfg.Engine.FacilitationMinPct, cfg.Engine.FacilitationMaxPct)
	}

	return &cfg, nil
}
