// Package config loads runtime settings for the insights CLI and API.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"shopify-insights/internal/types"
)

// Config is the root configuration
type Config struct {
	Extractor ExtractorConfig `mapstructure:"extractor" yaml:"extractor"`
	Server    ServerConfig    `mapstructure:"server"    yaml:"server"`
	Database  DatabaseConfig  `mapstructure:"database"  yaml:"database"`
	Logging   LoggingConfig   `mapstructure:"logging"   yaml:"logging"`
}

// ExtractorConfig controls how storefront pages are fetched
type ExtractorConfig struct {
	Timeout            time.Duration `mapstructure:"timeout"              yaml:"timeout"`
	RequestDelay       time.Duration `mapstructure:"request_delay"        yaml:"request_delay"`
	UseHeadlessBrowser bool          `mapstructure:"use_headless_browser" yaml:"use_headless_browser"`
	UserAgent          string        `mapstructure:"user_agent"           yaml:"user_agent"`
	PhoneRegion        string        `mapstructure:"phone_region"         yaml:"phone_region"`
	SearchEndpoint     string        `mapstructure:"search_endpoint"      yaml:"search_endpoint"`
}

// ServerConfig controls the HTTP API
type ServerConfig struct {
	Port         string        `mapstructure:"port"          yaml:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"  yaml:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	BuildTimeout time.Duration `mapstructure:"build_timeout" yaml:"build_timeout"`
}

// DatabaseConfig enables the brand store when DSN is set
type DatabaseConfig struct {
	DSN      string `mapstructure:"dsn"       yaml:"dsn"`
	Table    string `mapstructure:"table"     yaml:"table"`
	MaxConns int32  `mapstructure:"max_conns" yaml:"max_conns"`
}

// LoggingConfig controls the logrus logger
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// DefaultConfig returns a Config with the extractor defaults applied
func DefaultConfig() *Config {
	ext := types.DefaultConfig()
	return &Config{
		Extractor: ExtractorConfig{
			Timeout:            ext.Timeout,
			RequestDelay:       ext.RequestDelay,
			UseHeadlessBrowser: ext.UseHeadlessBrowser,
			UserAgent:          ext.UserAgent,
			PhoneRegion:        ext.PhoneRegion,
			SearchEndpoint:     ext.SearchEndpoint,
		},
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 10 * time.Minute,
			BuildTimeout: 5 * time.Minute,
		},
		Database: DatabaseConfig{
			Table: "brands",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from .env, the environment and an optional YAML file.
// Priority (highest to lowest): env vars > config file > defaults.
func Load(configPath string) (*Config, error) {
	// Load .env file if present
	_ = godotenv.Load()

	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v, cfg)

	v.SetEnvPrefix("INSIGHTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Plain names kept from the original deployment scripts
	_ = v.BindEnv("logging.level", "INSIGHTS_LOGGING_LEVEL", "LOG_LEVEL")
	_ = v.BindEnv("server.port", "INSIGHTS_SERVER_PORT", "API_PORT")
	_ = v.BindEnv("database.dsn", "INSIGHTS_DATABASE_DSN", "DB_URL")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("insights")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configPath != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("extractor.timeout", cfg.Extractor.Timeout)
	v.SetDefault("extractor.request_delay", cfg.Extractor.RequestDelay)
	v.SetDefault("extractor.use_headless_browser", cfg.Extractor.UseHeadlessBrowser)
	v.SetDefault("extractor.user_agent", cfg.Extractor.UserAgent)
	v.SetDefault("extractor.phone_region", cfg.Extractor.PhoneRegion)
	v.SetDefault("extractor.search_endpoint", cfg.Extractor.SearchEndpoint)

	v.SetDefault("server.port", cfg.Server.Port)
	v.SetDefault("server.read_timeout", cfg.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", cfg.Server.WriteTimeout)
	v.SetDefault("server.build_timeout", cfg.Server.BuildTimeout)

	v.SetDefault("database.dsn", cfg.Database.DSN)
	v.SetDefault("database.table", cfg.Database.Table)
	v.SetDefault("database.max_conns", cfg.Database.MaxConns)

	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
}

// Validate checks the settings that would otherwise fail late
func (c *Config) Validate() error {
	if c.Extractor.Timeout <= 0 {
		return fmt.Errorf("extractor.timeout must be positive, got %v", c.Extractor.Timeout)
	}
	if c.Extractor.RequestDelay < 0 {
		return fmt.Errorf("extractor.request_delay must not be negative, got %v", c.Extractor.RequestDelay)
	}
	if c.Extractor.UserAgent == "" {
		return fmt.Errorf("extractor.user_agent is required")
	}
	if c.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}
	if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	return nil
}

// ExtractorSettings converts the extractor section into the pipeline config
func (c *Config) ExtractorSettings() *types.Config {
	return &types.Config{
		RequestDelay:       c.Extractor.RequestDelay,
		Timeout:            c.Extractor.Timeout,
		UseHeadlessBrowser: c.Extractor.UseHeadlessBrowser,
		UserAgent:          c.Extractor.UserAgent,
		PhoneRegion:        c.Extractor.PhoneRegion,
		SearchEndpoint:     c.Extractor.SearchEndpoint,
	}
}

// NewLogger builds the logrus logger used across the binaries
func NewLogger(cfg LoggingConfig) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05.000"})
	} else {
		// Set timestamp format with milliseconds
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05.000",
		})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}
