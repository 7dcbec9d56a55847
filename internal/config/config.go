package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Checker   CheckerConfig   `mapstructure:"checker"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Chainlist ChainlistConfig `mapstructure:"chainlist"`
	Ranking   RankingConfig   `mapstructure:"ranking"`
	Wallet    WalletConfig    `mapstructure:"wallet"`
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

// CheckerConfig holds settings related to the RPC checking process.
type CheckerConfig struct {
	CheckInterval time.Duration `mapstructure:"check_interval"`
	CheckTimeout  time.Duration `mapstructure:"check_timeout"`
	MaxWorkers    int           `mapstructure:"max_workers"`
	CacheTTL      time.Duration `mapstructure:"cache_ttl"`
	RunOnStartup  bool          `mapstructure:"run_on_startup"`
}

// CacheConfig holds settings for the caching layer.
type CacheConfig struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

// ChainlistConfig holds configuration for the upstream chain list sources.
// URLs are merged in order; earlier sources win on chain metadata.
type ChainlistConfig struct {
	URLs        []string      `mapstructure:"urls"`
	Timeout     time.Duration `mapstructure:"timeout"`
	OverlayFile string        `mapstructure:"overlay_file"`
}

// RankingConfig holds the thresholds used to classify probe results.
type RankingConfig struct {
	SlowThreshold time.Duration `mapstructure:"slow_threshold"`
}

// WalletConfig holds defaults for wallet add-network payloads.
type WalletConfig struct {
	MaxRPCURLs int `mapstructure:"max_rpc_urls"`
}

// Load reads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("app.name", "chainscope")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "json")
	v.SetDefault("checker.check_interval", "15m")
	v.SetDefault("checker.check_timeout", "5s")
	v.SetDefault("checker.max_workers", 20)
	v.SetDefault("checker.cache_ttl", "30m")
	v.SetDefault("checker.run_on_startup", true)
	v.SetDefault("cache.default_expiration", "30m")
	v.SetDefault("cache.cleanup_interval", "1h")
	v.SetDefault("chainlist.urls", []string{"https://chainid.network/chains.json"})
	v.SetDefault("chainlist.timeout", "15s")
	v.SetDefault("chainlist.overlay_file", "")
	v.SetDefault("ranking.slow_threshold", "1s")
	v.SetDefault("wallet.max_rpc_urls", 3)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		fmt.Printf("Warning: Config file not found in %s or '.', using defaults/env vars\n", configPath)
	}

	v.SetEnvPrefix("CHAINSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects configurations the service cannot run with.
func (c Config) Validate() error {
	if len(c.Chainlist.URLs) == 0 {
		return errors.New("config: chainlist.urls must list at least one source")
	}
	if c.Server.Port == "" {
		return errors.New("config: server.port is required")
	}
	if c.Ranking.SlowThreshold < 0 {
		return fmt.Errorf("config: ranking.slow_threshold must not be negative, got %s", c.Ranking.SlowThreshold)
	}
	return nil
}

func (c CheckerConfig) GetTimeout() time.Duration {
	return c.CheckTimeout
}

func (c CheckerConfig) GetCheckInterval() time.Duration {
	return c.CheckInterval
}

func (c CheckerConfig) GetCacheTTL() time.Duration {
	return c.CacheTTL
}

func (c CacheConfig) GetDefaultExpiration() time.Duration {
	return c.DefaultExpiration
}

func (c CacheConfig) GetCleanupInterval() time.Duration {
	return c.CleanupInterval
}
