package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
	Lookup    LookupConfig    `yaml:"lookup" mapstructure:"lookup"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Providers ProvidersConfig `yaml:"providers" mapstructure:"providers"`
}

// StoreConfig configures the local sqlite database.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// LookupConfig configures lookup orchestration.
type LookupConfig struct {
	Concurrency   int `yaml:"concurrency" mapstructure:"concurrency"`
	CacheTTLHours int `yaml:"cache_ttl_hours" mapstructure:"cache_ttl_hours"`
}

// ServerConfig configures the local API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// ProvidersConfig holds per-provider settings.
type ProvidersConfig struct {
	HomeEstimate ProviderConfig `yaml:"homeestimate" mapstructure:"homeestimate"`
	QuickVal     ProviderConfig `yaml:"quickval" mapstructure:"quickval"`
}

// ProviderConfig holds one provider's endpoint and client settings.
type ProviderConfig struct {
	BaseURL     string  `yaml:"base_url" mapstructure:"base_url"`
	Enabled     bool    `yaml:"enabled" mapstructure:"enabled"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RatePerSec  float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
	MaxRetries  int     `yaml:"max_retries" mapstructure:"max_retries"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("PROPMATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.path", "propmatch.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("lookup.concurrency", 4)
	v.SetDefault("lookup.cache_ttl_hours", 24)
	v.SetDefault("server.port", 8090)
	v.SetDefault("providers.homeestimate.base_url", "https://api.homeestimate.co.nz/v2")
	v.SetDefault("providers.homeestimate.enabled", true)
	v.SetDefault("providers.homeestimate.timeout_secs", 15)
	v.SetDefault("providers.homeestimate.rate_per_sec", 5)
	v.SetDefault("providers.homeestimate.max_retries", 3)
	v.SetDefault("providers.quickval.base_url", "https://api.quickval.co.nz/v1")
	v.SetDefault("providers.quickval.enabled", true)
	v.SetDefault("providers.quickval.timeout_secs", 15)
	v.SetDefault("providers.quickval.rate_per_sec", 5)
	v.SetDefault("providers.quickval.max_retries", 3)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
