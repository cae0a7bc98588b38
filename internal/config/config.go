package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func init() {
	// Load .env file if it exists (silent fail if not)
	_ = godotenv.Load()
}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Server ServerConfig
	App    AppConfig
	Store  StoreDBConfig
	Cache  CacheConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `envconfig:"SERVER_HOST" default:"127.0.0.1"`
	Port            int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"15s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string `envconfig:"APP_NAME" default:"flipdeck-api"`
	Environment string `envconfig:"APP_ENV" default:"development"`
	Debug       bool   `envconfig:"APP_DEBUG" default:"false"`
	Version     string `envconfig:"APP_VERSION" default:"1.0.0"`
}

// StoreDBConfig holds snapshot persistence settings.
type StoreDBConfig struct {
	Type string `envconfig:"STORE_DB_TYPE" default:"sqlite"` // sqlite, postgres, mysql, or file
	Path string `envconfig:"STORE_DB_PATH" default:"./data/flipdeck.db"`
	// File backend settings
	FilePath string `envconfig:"STORE_FILE_PATH" default:"./data/flipdeck.json"`
	// PostgreSQL settings
	PGHost     string `envconfig:"STORE_PG_HOST" default:"localhost"`
	PGPort     int    `envconfig:"STORE_PG_PORT" default:"5432"`
	PGName     string `envconfig:"STORE_PG_NAME" default:"flipdeck"`
	PGUser     string `envconfig:"STORE_PG_USER" default:"postgres"`
	PGPassword string `envconfig:"STORE_PG_PASS" default:""`
	PGSSLMode  string `envconfig:"STORE_PG_SSLMODE" default:"disable"`
	// MySQL settings
	MyHost     string `envconfig:"STORE_MYSQL_HOST" default:"localhost"`
	MyPort     int    `envconfig:"STORE_MYSQL_PORT" default:"3306"`
	MyName     string `envconfig:"STORE_MYSQL_NAME" default:"flipdeck"`
	MyUser     string `envconfig:"STORE_MYSQL_USER" default:"root"`
	MyPassword string `envconfig:"STORE_MYSQL_PASS" default:""`
}

// CacheConfig holds cache settings.
type CacheConfig struct {
	Type string        `envconfig:"CACHE_TYPE" default:"memory"` // memory or redis
	TTL  time.Duration `envconfig:"CACHE_TTL" default:"5m"`

	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
}

// PostgresDSN returns the PostgreSQL connection string.
func (s *StoreDBConfig) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		s.PGUser, s.PGPassword, s.PGHost, s.PGPort, s.PGName, s.PGSSLMode)
}

// MySQLDSN returns the MySQL data source name.
func (s *StoreDBConfig) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		s.MyUser, s.MyPassword, s.MyHost, s.MyPort, s.MyName)
}

// Address returns the server address in host:port format.
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// RedisAddress returns the Redis address in host:port format.
func (c *CacheConfig) RedisAddress() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// IsDevelopment returns true if running in development mode.
func (a *AppConfig) IsDevelopment() bool {
	return a.Environment == "development"
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &cfg, nil
}

// MustLoad loads configuration or panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
