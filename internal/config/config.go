package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

var (
	// ErrReadConfig ошибка чтения файла конфигурации
	ErrReadConfig = errors.New("config: failed to read config file")
	// ErrInvalidConfig конфигурация не прошла проверку
	ErrInvalidConfig = errors.New("config: invalid configuration")
	// ErrReadDotEnv .env существует, но не читается или содержит ошибку
	ErrReadDotEnv = errors.New("config: failed to load .env")
)

// dotEnvFile файл с переменными окружения для локального запуска
var dotEnvFile = ".env"

// Переменные окружения, переопределяющие значения из файла
const (
	EnvDBPassword  = "DB_PASSWORD"
	EnvJWTSecret   = "JWT_SECRET"
	EnvSlotsAPIURL = "SLOTS_API_URL"
	EnvSlotsToken  = "SLOTS_TOKEN"
)

// Config конфигурация сервиса и клиента
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	Auth        AuthConfig        `toml:"auth"`
	UserService UserServiceConfig `toml:"user_service"`
	Events      EventsConfig      `toml:"events"`
	Client      ClientConfig      `toml:"client"`
}

// ServerConfig параметры HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig подключение к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	MigrateOnStart  bool   `toml:"migrate_on_start"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig параметры логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig параметры Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AuthConfig проверка JWT токенов
type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
	Issuer    string `toml:"issuer"`
}

// UserServiceConfig интеграция с сервисом пользователей
type UserServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// TimeoutDuration таймаут запросов
func (c UserServiceConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// EventsConfig публикация событий бронирования в Kafka
type EventsConfig struct {
	Enabled bool     `toml:"enabled"`
	Brokers []string `toml:"brokers"`
	Topic   string   `toml:"topic"`
}

// ClientConfig настройки CLI клиента slotctl
type ClientConfig struct {
	APIURL  string `toml:"api_url"`
	Token   string `toml:"token"`
	Timeout int    `toml:"timeout"`
	Mode    string `toml:"mode"`
}

// TimeoutDuration таймаут запросов к API
func (c ClientConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// Load загружает конфигурацию из TOML файла.
// Перед чтением подхватывает .env (если есть) и применяет переопределения из окружения.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(dotEnvFile); err != nil {
		return nil, err
	}

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// loadDotEnv подхватывает .env; отсутствие файла не ошибка
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("%w: %s: %v", ErrReadDotEnv, path, err)
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "study-slots",
		},
		UserService: UserServiceConfig{Timeout: 5},
		Events:      EventsConfig{Topic: "study-slots.bookings"},
		Client: ClientConfig{
			APIURL:  "http://localhost:8080/api/v1",
			Timeout: 10,
			Mode:    "confirm",
		},
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDBPassword); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv(EnvJWTSecret); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv(EnvSlotsAPIURL); v != "" {
		c.Client.APIURL = v
	}
	if v := os.Getenv(EnvSlotsToken); v != "" {
		c.Client.Token = v
	}
}

// Validate проверяет конфигурацию сервера
func (c *Config) Validate() error {
	switch {
	case c.Server.HTTPPort <= 0:
		return fmt.Errorf("%w: server.http_port must be positive", ErrInvalidConfig)
	case c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "":
		return fmt.Errorf("%w: database host, dbname and user are required", ErrInvalidConfig)
	case c.Auth.JWTSecret == "":
		return fmt.Errorf("%w: auth.jwt_secret (or %s) is required", ErrInvalidConfig, EnvJWTSecret)
	case c.UserService.URL != "" && c.UserService.Timeout <= 0:
		return fmt.Errorf("%w: user_service.timeout must be positive", ErrInvalidConfig)
	case c.Events.Enabled && (len(c.Events.Brokers) == 0 || c.Events.Topic == ""):
		return fmt.Errorf("%w: events.brokers and events.topic are required when events are enabled", ErrInvalidConfig)
	}
	return nil
}

// ValidateClient проверяет настройки CLI клиента
func (c *Config) ValidateClient() error {
	switch {
	case c.Client.APIURL == "":
		return fmt.Errorf("%w: client.api_url (or %s) is required", ErrInvalidConfig, EnvSlotsAPIURL)
	case c.Client.Timeout <= 0:
		return fmt.Errorf("%w: client.timeout must be positive", ErrInvalidConfig)
	case c.Client.Mode != "confirm" && c.Client.Mode != "immediate":
		return fmt.Errorf("%w: client.mode must be confirm or immediate", ErrInvalidConfig)
	}
	return nil
}
