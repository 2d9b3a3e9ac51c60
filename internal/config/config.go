// Package config provides configuration management for Emulium.
//
// This package handles loading configuration from multiple sources:
//   - YAML configuration files
//   - Environment variables (with EMULIUM_ prefix)
//   - .env files
//   - Default values
//
// # Configuration Sources Priority
//
// Configuration is loaded in the following order (later sources override earlier ones):
//  1. Default values (hardcoded)
//  2. Configuration files (./configs/config.yaml, ~/.emulium/config.yaml, /etc/emulium/config.yaml)
//  3. .env files
//  4. Environment variables (EMULIUM_ prefix)
//
// # Usage Example
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Server: %s:%d\n", cfg.Server.Host, cfg.Server.Port)
//
// # Environment Variables
//
// Environment variables override all other configuration sources.
// Use EMULIUM_ prefix and underscores for nested keys:
//   - EMULIUM_SERVER_PORT=8085
//   - EMULIUM_GNS3_URL=http://192.168.56.101
//   - EMULIUM_PUSH_CONCURRENCY=8
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration structure for Emulium.
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig `mapstructure:"server"`

	// CouchDB contains database connection settings
	CouchDB CouchDBConfig `mapstructure:"couchdb"`

	// GNS3 contains the default emulation server settings
	GNS3 GNS3Config `mapstructure:"gns3"`

	// Console contains node console (telnet) settings
	Console ConsoleConfig `mapstructure:"console"`

	// Push contains script-push engine settings
	Push PushConfig `mapstructure:"push"`

	// Scheduler contains scheduled lab action settings
	Scheduler SchedulerConfig `mapstructure:"scheduler"`

	// Events contains the optional MQTT event publisher settings
	Events EventsConfig `mapstructure:"events"`

	// Logging contains logging settings
	Logging LoggingConfig `mapstructure:"logging"`

	// Security contains security and rate limiting settings
	Security SecurityConfig `mapstructure:"security"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	// Host is the server bind address (default: 0.0.0.0)
	Host string `mapstructure:"host"`

	// Port is the server listen port (default: 8085)
	Port int `mapstructure:"port"`

	// ReadTimeout is the maximum duration for reading requests
	ReadTimeout time.Duration `mapstructure:"read_timeout"`

	// WriteTimeout is the maximum duration for writing responses
	WriteTimeout time.Duration `mapstructure:"write_timeout"`

	// ShutdownTimeout is the maximum duration for graceful shutdown
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// Debug enables debug logging
	Debug bool `mapstructure:"debug"`

	// TLSEnabled enables HTTPS
	TLSEnabled bool `mapstructure:"tls_enabled"`

	// TLSCert is the path to the TLS certificate file
	TLSCert string `mapstructure:"tls_cert"`

	// TLSKey is the path to the TLS private key file
	TLSKey string `mapstructure:"tls_key"`
}

// CouchDBConfig contains CouchDB connection settings.
type CouchDBConfig struct {
	// URL is the CouchDB server URL (e.g., http://localhost:5984)
	URL string `mapstructure:"url"`

	// Database is the database name to use
	Database string `mapstructure:"database"`

	// Username for CouchDB authentication
	Username string `mapstructure:"username"`

	// Password for CouchDB authentication
	Password string `mapstructure:"password"`

	// Timeout in seconds for database operations
	Timeout int `mapstructure:"timeout"`
}

// GNS3Config contains the default emulation server connection settings.
// Per-request overrides (server URL, credentials) take precedence.
type GNS3Config struct {
	// URL is the GNS3 REST API base URL, e.g. http://192.168.56.101
	URL string `mapstructure:"url"`

	// Username for HTTP basic auth (GNS3 default: gns3)
	Username string `mapstructure:"username"`

	// Password for HTTP basic auth (GNS3 default: gns3)
	Password string `mapstructure:"password"`

	// Timeout bounds one REST call
	Timeout time.Duration `mapstructure:"timeout"`

	// RequestDelay is an optional pause between consecutive API calls,
	// for servers that fall over under bursts
	RequestDelay time.Duration `mapstructure:"request_delay"`
}

// ConsoleConfig contains node console transport settings.
type ConsoleConfig struct {
	// ConnectTimeout bounds the TCP dial to a node console
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`

	// PollInterval is the read-poll granularity inside a command window
	PollInterval time.Duration `mapstructure:"poll_interval"`

	// CommandTimeout is the default output window for a console command
	CommandTimeout time.Duration `mapstructure:"command_timeout"`
}

// PushConfig contains script-push engine settings.
type PushConfig struct {
	// Concurrency is the default worker count for push batches
	Concurrency int `mapstructure:"concurrency"`

	// GroupConcurrency caps parallelism inside one priority group of
	// embedded deploy scripts
	GroupConcurrency int `mapstructure:"group_concurrency"`

	// BootDelay is the grace period between node start and the first
	// embedded script
	BootDelay time.Duration `mapstructure:"boot_delay"`

	// PriorityDelay separates consecutive priority groups
	PriorityDelay time.Duration `mapstructure:"priority_delay"`

	// ScriptsDir is the base directory for CLI-pushed local scripts
	ScriptsDir string `mapstructure:"scripts_dir"`
}

// SchedulerConfig contains scheduled lab action settings.
type SchedulerConfig struct {
	// Enabled starts the schedule evaluator with the server
	Enabled bool `mapstructure:"enabled"`

	// Interval is the evaluation tick
	Interval time.Duration `mapstructure:"interval"`
}

// EventsConfig contains the optional MQTT event publisher settings.
// Publishing is disabled while Broker is empty.
type EventsConfig struct {
	// Broker is the MQTT broker URL, e.g. tcp://localhost:1883
	Broker string `mapstructure:"broker"`

	// ClientID identifies this service on the broker
	ClientID string `mapstructure:"client_id"`

	// TopicPrefix prefixes every published topic
	TopicPrefix string `mapstructure:"topic_prefix"`

	// Username for broker authentication
	Username string `mapstructure:"username"`

	// Password for broker authentication
	Password string `mapstructure:"password"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the log level (debug, info, warn, error)
	Level string `mapstructure:"level"`

	// Format is the log format (json, text)
	Format string `mapstructure:"format"`

	// Output is the log output destination (stdout, file)
	Output string `mapstructure:"output"`
}

// SecurityConfig contains security and rate limiting settings.
type SecurityConfig struct {
	// RateLimit is the maximum requests per second per client
	RateLimit int `mapstructure:"rate_limit"`

	// AllowedOrigins are the CORS allowed origins
	AllowedOrigins []string `mapstructure:"allowed_origins"`

	// AuthEnabled enables JWT authentication (default: false, lab-bench mode)
	AuthEnabled bool `mapstructure:"auth_enabled"`

	// JWTSecret is the secret key for signing JWT tokens
	JWTSecret string `mapstructure:"jwt_secret"`

	// JWTExpiration is the JWT token expiration duration (default: 24h)
	JWTExpiration time.Duration `mapstructure:"jwt_expiration"`

	// RefreshTokenExpiration is the refresh token expiration duration (default: 7 days)
	RefreshTokenExpiration time.Duration `mapstructure:"refresh_token_expiration"`
}

var cfg *Config

// Load reads configuration from a file and environment variables.
// If cfgFile is empty, it searches for config.yaml in standard locations.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (EMULIUM_ prefix)
//  2. .env file
//  3. Configuration file
//  4. Default values
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.emulium")
		v.AddConfigPath("/etc/emulium")
	}

	if err := v.ReadInConfig(); err != nil {
		// An explicitly named but missing file falls back to defaults;
		// any other read error is fatal.
		if cfgFile != "" {
			if !isFileNotFoundError(err) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		} else {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.MergeInConfig() // Ignore error if .env file doesn't exist

	v.SetEnvPrefix("EMULIUM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8085)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.debug", false)
	v.SetDefault("server.tls_enabled", false)

	v.SetDefault("couchdb.url", "http://localhost:5984")
	v.SetDefault("couchdb.database", "emulium")
	v.SetDefault("couchdb.username", "admin")
	v.SetDefault("couchdb.password", "password")
	v.SetDefault("couchdb.timeout", 30)

	v.SetDefault("gns3.url", "http://192.168.56.101")
	v.SetDefault("gns3.username", "gns3")
	v.SetDefault("gns3.password", "gns3")
	v.SetDefault("gns3.timeout", "30s")
	v.SetDefault("gns3.request_delay", "0s")

	v.SetDefault("console.connect_timeout", "10s")
	v.SetDefault("console.poll_interval", "500ms")
	v.SetDefault("console.command_timeout", "5s")

	v.SetDefault("push.concurrency", 5)
	v.SetDefault("push.group_concurrency", 8)
	v.SetDefault("push.boot_delay", "2s")
	v.SetDefault("push.priority_delay", "500ms")
	v.SetDefault("push.scripts_dir", "./scripts")

	v.SetDefault("scheduler.enabled", false)
	v.SetDefault("scheduler.interval", "30s")

	v.SetDefault("events.broker", "")
	v.SetDefault("events.client_id", "emulium")
	v.SetDefault("events.topic_prefix", "emulium/labs")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")

	v.SetDefault("security.rate_limit", 100)
	v.SetDefault("security.allowed_origins", []string{"*"})
	v.SetDefault("security.auth_enabled", false)
	v.SetDefault("security.jwt_secret", "change-me-in-production")
	v.SetDefault("security.jwt_expiration", "24h")
	v.SetDefault("security.refresh_token_expiration", "168h") // 7 days
}

func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", cfg.Server.Port)
	}

	if cfg.CouchDB.URL == "" {
		return fmt.Errorf("couchdb url is required")
	}

	if cfg.CouchDB.Database == "" {
		return fmt.Errorf("couchdb database is required")
	}

	if cfg.GNS3.URL == "" {
		return fmt.Errorf("gns3 url is required")
	}

	if cfg.Push.Concurrency < 1 {
		return fmt.Errorf("push concurrency must be at least 1, got %d", cfg.Push.Concurrency)
	}

	if cfg.Scheduler.Enabled && cfg.Scheduler.Interval < time.Second {
		return fmt.Errorf("scheduler interval must be at least 1s, got %v", cfg.Scheduler.Interval)
	}

	return nil
}

func Get() *Config {
	return cfg
}

func (c *CouchDBConfig) BuildURL() string {
	if c.Username != "" && c.Password != "" {
		url := strings.Replace(c.URL, "://", "://"+c.Username+":"+c.Password+"@", 1)
		return url
	}
	return c.URL
}

// isFileNotFoundError checks if an error is a file not found error.
func isFileNotFoundError(err error) bool {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return errors.Is(pathErr, os.ErrNotExist)
	}
	return false
}
