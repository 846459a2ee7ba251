package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Restaurant    RestaurantConfig    `toml:"restaurant"`
	Notifications NotificationsConfig `toml:"notifications"`
	RateLimit     RateLimitConfig     `toml:"rate_limit"`
	Cache         CacheConfig         `toml:"cache"`
	Security      SecurityConfig      `toml:"security"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
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

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// RestaurantConfig значения по умолчанию, пока настройки не сохранены
type RestaurantConfig struct {
	Timezone string `toml:"timezone"`
}

// NotificationsConfig канал доставки уведомлений
type NotificationsConfig struct {
	Sink           string `toml:"sink"` // rabbitmq, webhook или log
	RabbitMQURL    string `toml:"rabbitmq_url"`
	Queue          string `toml:"queue"`
	WebhookURL     string `toml:"webhook_url"`
	WebhookTimeout int    `toml:"webhook_timeout"` // секунды
	Workers        int    `toml:"workers"`
	Buffer         int    `toml:"buffer"`
}

// RateLimitConfig ограничение частоты запросов с одного IP на публичные операции записи
type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// CacheConfig кэш настроек ресторана
type CacheConfig struct {
	SettingsTTL int `toml:"settings_ttl"` // секунды, 0 - без кэша
}

// SecurityConfig граница доверия для канала dashboard
type SecurityConfig struct {
	DashboardToken string `toml:"dashboard_token"`
}

// Типы канала уведомлений
const (
	SinkRabbitMQ = "rabbitmq"
	SinkWebhook  = "webhook"
	SinkLog      = "log"
)

var (
	// ErrInvalidConfig возвращается, когда конфигурация непригодна для запуска
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Load читает .env (если есть), TOML файл и переопределения из окружения
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "reservation_service",
		},
		Restaurant: RestaurantConfig{Timezone: "Europe/Madrid"},
		Notifications: NotificationsConfig{
			Sink:           SinkLog,
			Queue:          "reservation_notifications",
			WebhookTimeout: 5,
			Workers:        2,
			Buffer:         100,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 1,
			Burst:             5,
		},
		Cache: CacheConfig{SettingsTTL: 30},
	}
}

// applyEnv переопределяет секреты и адреса из переменных окружения
func (c *Config) applyEnv() error {
	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.DBName, "DB_NAME")
	setString(&c.Database.SSLMode, "DB_SSLMODE")
	setString(&c.Notifications.RabbitMQURL, "RABBITMQ_URL")
	setString(&c.Notifications.WebhookURL, "NOTIFICATIONS_WEBHOOK_URL")
	setString(&c.Security.DashboardToken, "DASHBOARD_TOKEN")

	if v := os.Getenv("DB_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: DB_PORT must be a number, got %q", ErrInvalidConfig, v)
		}
		c.Database.Port = port
	}

	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate проверяет, что конфигурация пригодна для запуска
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535", ErrInvalidConfig)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if c.Database.Port <= 0 {
		return fmt.Errorf("%w: database.port must be positive", ErrInvalidConfig)
	}
	if _, err := time.LoadLocation(c.Restaurant.Timezone); err != nil {
		return fmt.Errorf("%w: restaurant.timezone %q: %v", ErrInvalidConfig, c.Restaurant.Timezone, err)
	}

	switch c.Notifications.Sink {
	case SinkLog:
	case SinkRabbitMQ:
		if c.Notifications.RabbitMQURL == "" || c.Notifications.Queue == "" {
			return fmt.Errorf("%w: notifications.rabbitmq_url and notifications.queue are required for rabbitmq sink", ErrInvalidConfig)
		}
	case SinkWebhook:
		if c.Notifications.WebhookURL == "" {
			return fmt.Errorf("%w: notifications.webhook_url is required for webhook sink", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown notifications.sink %q", ErrInvalidConfig, c.Notifications.Sink)
	}

	if c.Notifications.Workers <= 0 {
		return fmt.Errorf("%w: notifications.workers must be positive", ErrInvalidConfig)
	}
	if c.Notifications.Buffer < 0 {
		return fmt.Errorf("%w: notifications.buffer must not be negative", ErrInvalidConfig)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: rate_limit.requests_per_second and rate_limit.burst must be positive", ErrInvalidConfig)
	}
	if c.Cache.SettingsTTL < 0 {
		return fmt.Errorf("%w: cache.settings_ttl must not be negative", ErrInvalidConfig)
	}

	return nil
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// TTL время жизни кэша настроек
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.SettingsTTL) * time.Second
}

// Timeout таймаут запроса к webhook
func (n NotificationsConfig) Timeout() time.Duration {
	return time.Duration(n.WebhookTimeout) * time.Second
}
