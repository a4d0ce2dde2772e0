package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Поддерживаемые хранилища черновиков
const (
	DraftStorageMemory   = "memory"
	DraftStoragePostgres = "postgres"
	DraftStorageRedis    = "redis"
)

// ErrInvalidConfig возвращается, когда конфигурация не проходит валидацию
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Platform     PlatformConfig     `toml:"platform"`
	Auth         AuthConfig         `toml:"auth"`
	Drafts       DraftsConfig       `toml:"drafts"`
	Database     DatabaseConfig     `toml:"database"`
	Redis        RedisConfig        `toml:"redis"`
	Availability AvailabilityConfig `toml:"availability"`
	RateLimit    RateLimitConfig    `toml:"rate_limit"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level      string `toml:"level"`
	File       string `toml:"file"` // пусто - только stdout
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
	Compress   bool   `toml:"compress"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// PlatformConfig настройки API салонной платформы
type PlatformConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды, 0 - без таймаута
}

// AuthConfig настройки проверки токенов платформы
type AuthConfig struct {
	// JWTSecret секрет HS256. Если пуст, подпись не проверяется
	// (токен все равно проверяет платформа при каждом запросе).
	JWTSecret string `toml:"jwt_secret"`
}

// DraftsConfig настройки хранилища черновиков
type DraftsConfig struct {
	Storage string `toml:"storage"` // memory | postgres | redis
}

// RedisConfig настройки подключения к Redis для хранилища черновиков
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// DatabaseConfig настройки PostgreSQL (нужны только для storage = "postgres")
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// AvailabilityConfig настройки расписания
type AvailabilityConfig struct {
	// Timezone часовой пояс салона, в нем определяется, что слот уже начался
	Timezone string `toml:"timezone"`
}

// RateLimitConfig ограничение частоты запросов на клиента
type RateLimitConfig struct {
	Enabled bool    `toml:"enabled"`
	RPS     float64 `toml:"rps"`
	Burst   int     `toml:"burst"`
	// TrustedProxies адреса или CIDR прокси, которым доверяется X-Forwarded-For
	TrustedProxies []string `toml:"trusted_proxies"`
	IdleTTL        int      `toml:"idle_ttl"` // секунды простоя до удаления лимитера клиента
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// Location возвращает часовой пояс салона
func (c AvailabilityConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// Load читает конфигурацию из TOML файла, подставляет значения по умолчанию и валидирует
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "availability_service",
		},
		Drafts: DraftsConfig{
			Storage: DraftStorageMemory,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Availability: AvailabilityConfig{
			Timezone: domain.DefaultTimezone,
		},
		RateLimit: RateLimitConfig{
			Enabled: true,
			RPS:     10,
			Burst:   20,
			IdleTTL: 600,
		},
	}
}

// Validate проверяет обязательные поля и допустимые значения
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535", ErrInvalidConfig)
	}

	if c.Platform.URL == "" {
		return fmt.Errorf("%w: platform.url is required", ErrInvalidConfig)
	}
	if c.Platform.Timeout < 0 {
		return fmt.Errorf("%w: platform.timeout must not be negative", ErrInvalidConfig)
	}

	switch c.Drafts.Storage {
	case DraftStorageMemory:
	case DraftStoragePostgres:
		if c.Database.DBName == "" {
			return fmt.Errorf("%w: database.dbname is required for postgres draft storage", ErrInvalidConfig)
		}
	case DraftStorageRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("%w: redis.addr is required for redis draft storage", ErrInvalidConfig)
		}
		if c.Redis.DB < 0 {
			return fmt.Errorf("%w: redis.db must not be negative", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: drafts.storage must be %q, %q or %q",
			ErrInvalidConfig, DraftStorageMemory, DraftStoragePostgres, DraftStorageRedis)
	}

	if _, err := c.Availability.Location(); err != nil {
		return fmt.Errorf("%w: availability.timezone: %v", ErrInvalidConfig, err)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: rate_limit.rps and rate_limit.burst must be positive", ErrInvalidConfig)
	}
	if c.RateLimit.IdleTTL < 0 {
		return fmt.Errorf("%w: rate_limit.idle_ttl must not be negative", ErrInvalidConfig)
	}

	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("%w: metrics.path is required when metrics are enabled", ErrInvalidConfig)
	}

	return nil
}
