package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

var GlobalConfig *Config

// Config global configuration
type Config struct {
	Server ServerConfig `yaml:"server"`
	MySQL  MySQLConfig  `yaml:"mysql"`
	Redis  RedisConfig  `yaml:"redis"`
	Queue  QueueConfig  `yaml:"queue"`
	Auth   AuthConfig   `yaml:"auth"`
	Cache  CacheConfig  `yaml:"cache"`
	Jobs   JobsConfig   `yaml:"jobs"`
	Logger LoggerConfig `yaml:"logger"`

	Notification NotificationConfig `yaml:"notification"`
}

// NotificationConfig outbound alert configuration
type NotificationConfig struct {
	FeishuWebhookURL string `yaml:"feishu_webhook_url"`
}

// ServerConfig server configuration
type ServerConfig struct {
	Port int    `yaml:"port"`
	Mode string `yaml:"mode"` // debug, release
}

// MySQLConfig MySQL configuration
type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// RedisConfig Redis configuration
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// QueueConfig import queue configuration
type QueueConfig struct {
	Concurrency int `yaml:"concurrency"` // queue processing concurrency
	MaxRetry    int `yaml:"max_retry"`   // maximum retry count
	JobTimeout  int `yaml:"job_timeout"` // import job timeout (seconds)
}

// AuthConfig authentication configuration
type AuthConfig struct {
	JWTSecret   string        `yaml:"jwt_secret"`
	TokenExpiry time.Duration `yaml:"token_expiry"` // e.g. 24h
}

// CacheConfig metrics cache configuration
type CacheConfig struct {
	MetricsTTL time.Duration `yaml:"metrics_ttl"` // dashboard snapshot TTL
}

// JobsConfig background job configuration
type JobsConfig struct {
	MetricsRefreshInterval time.Duration `yaml:"metrics_refresh_interval"`
	OverdueSweepInterval   time.Duration `yaml:"overdue_sweep_interval"`
}

// LoggerConfig logger configuration
type LoggerConfig struct {
	Level  string           `yaml:"level"`  // debug, info, warn, error
	Output string           `yaml:"output"` // console, file, both
	File   LoggerFileConfig `yaml:"file"`
}

// LoggerFileConfig logger file configuration
type LoggerFileConfig struct {
	Path string `yaml:"path"`
}

// Init initializes configuration
func Init() error {
	configPath := os.Getenv("PLANPULSE_CONFIG")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return err
	}

	validateAndApplyDefaults(&cfg)

	GlobalConfig = &cfg
	return nil
}

// DefaultCacheConfig returns the cache defaults used when the config file
// leaves the section empty or invalid.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{MetricsTTL: 60 * time.Second}
}

// DefaultJobsConfig returns the background job defaults.
func DefaultJobsConfig() JobsConfig {
	return JobsConfig{
		MetricsRefreshInterval: 5 * time.Minute,
		OverdueSweepInterval:   time.Hour,
	}
}

// validateAndApplyDefaults replaces missing or invalid values with sane
// defaults so a sparse config file still yields a working service.
func validateAndApplyDefaults(cfg *Config) {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = "release"
	}
	if cfg.Queue.Concurrency <= 0 {
		cfg.Queue.Concurrency = 5
	}
	if cfg.Queue.MaxRetry < 0 {
		cfg.Queue.MaxRetry = 0
	}
	if cfg.Queue.JobTimeout <= 0 {
		cfg.Queue.JobTimeout = 300
	}
	if cfg.Auth.TokenExpiry <= 0 {
		cfg.Auth.TokenExpiry = 24 * time.Hour
	}
	if cfg.Cache.MetricsTTL <= 0 {
		cfg.Cache.MetricsTTL = DefaultCacheConfig().MetricsTTL
	}
	defaults := DefaultJobsConfig()
	if cfg.Jobs.MetricsRefreshInterval <= 0 {
		cfg.Jobs.MetricsRefreshInterval = defaults.MetricsRefreshInterval
	}
	if cfg.Jobs.OverdueSweepInterval <= 0 {
		cfg.Jobs.OverdueSweepInterval = defaults.OverdueSweepInterval
	}
}
