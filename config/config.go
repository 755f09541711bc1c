package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	CatalogSourceSeed     = "seed"
	CatalogSourceFile     = "file"
	CatalogSourcePostgres = "postgres"
)

type Config struct {
	HTTP      HTTPConfig       `yaml:"http"`
	GRPC      GRPCConfig       `yaml:"grpc"`
	Database  DatabaseConfig   `yaml:"database"`
	Redis     RedisConfig      `yaml:"redis"`
	Kafka     KafkaConfig      `yaml:"kafka"`
	Catalog   CatalogConfig    `yaml:"catalog"`
	Ledger    LedgerConfig     `yaml:"ledger"`
	Booking   BookingConfig    `yaml:"booking"`
	Log       LogConfig        `yaml:"log"`
	Operators []OperatorConfig `yaml:"operators"`
}

type HTTPConfig struct {
	Address string `yaml:"address"`
}

type GRPCConfig struct {
	Address string `yaml:"address"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// RedisConfig is optional; an empty Addr disables request locks and the
// catalog cache.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// KafkaConfig is optional; no brokers disables ticket events.
type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	TicketTopic        string   `yaml:"ticket_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type CatalogConfig struct {
	Source          string `yaml:"source"`
	File            string `yaml:"file"`
	CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
}

type LedgerConfig struct {
	LogPath string `yaml:"log_path"`
}

type BookingConfig struct {
	RequestLockTTLSeconds int `yaml:"request_lock_ttl_seconds"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// SlogLevel maps the configured level name, defaulting to info.
func (l LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

type OperatorConfig struct {
	Username     string `yaml:"username"`
	Email        string `yaml:"email"`
	Password     string `yaml:"password"`
	PasswordHash string `yaml:"password_hash"`
	Privileged   bool   `yaml:"privileged"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.GRPC.Address == "" {
		c.GRPC.Address = ":9090"
	}
	if c.Catalog.Source == "" {
		c.Catalog.Source = CatalogSourceSeed
	}
	c.Catalog.Source = strings.ToLower(c.Catalog.Source)
	if c.Catalog.CacheTTLSeconds == 0 {
		c.Catalog.CacheTTLSeconds = 300
	}
	if c.Ledger.LogPath == "" {
		c.Ledger.LogPath = "data/tickets.log"
	}
	if c.Booking.RequestLockTTLSeconds == 0 {
		c.Booking.RequestLockTTLSeconds = 600
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = "skybook-worker"
	}
}

func (c *Config) Validate() error {
	switch c.Catalog.Source {
	case CatalogSourceSeed, CatalogSourcePostgres:
	case CatalogSourceFile:
		if c.Catalog.File == "" {
			return errors.New("catalog.file is required for the file source")
		}
	default:
		return fmt.Errorf("unknown catalog.source %q", c.Catalog.Source)
	}
	if c.Catalog.CacheTTLSeconds < 0 || c.Booking.RequestLockTTLSeconds < 0 {
		return errors.New("ttl values must not be negative")
	}
	if len(c.Kafka.Brokers) > 0 && c.Kafka.TicketTopic == "" {
		return errors.New("kafka.ticket_topic is required when brokers are set")
	}
	return nil
}
