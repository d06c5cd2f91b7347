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
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
	Resolver ResolverConfig `yaml:"resolver" mapstructure:"resolver"`
	Pipeline PipelineConfig `yaml:"pipeline" mapstructure:"pipeline"`
	Dedup    DedupConfig    `yaml:"dedup" mapstructure:"dedup"`
	Registry RegistryConfig `yaml:"registry" mapstructure:"registry"`
	Batch    BatchConfig    `yaml:"batch" mapstructure:"batch"`
	Watch    WatchConfig    `yaml:"watch" mapstructure:"watch"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	Path        string `yaml:"path" mapstructure:"path"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ServerConfig configures the intake/review HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// ResolverConfig configures redirector domain resolution.
type ResolverConfig struct {
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RatePerSec  float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
	MaxAttempts int     `yaml:"max_attempts" mapstructure:"max_attempts"`
	UserAgent   string  `yaml:"user_agent" mapstructure:"user_agent"`
}

// PipelineConfig configures the classification pipeline.
type PipelineConfig struct {
	ModelName    string `yaml:"model_name" mapstructure:"model_name"`
	ModelVersion string `yaml:"model_version" mapstructure:"model_version"`
}

// DedupConfig configures duplicate detection.
type DedupConfig struct {
	WindowDays int `yaml:"window_days" mapstructure:"window_days"`
}

// RegistryConfig configures the casino registry source. When Path is set
// the registry is read from a yaml fixture instead of the store.
type RegistryConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// BatchConfig configures batch processing of the pending backlog.
type BatchConfig struct {
	Limit       int `yaml:"limit" mapstructure:"limit"`
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`
}

// WatchConfig configures scheduled batch runs.
type WatchConfig struct {
	Schedule string `yaml:"schedule" mapstructure:"schedule"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("DROPS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.path", "drops.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("resolver.timeout_secs", 5)
	v.SetDefault("resolver.rate_per_sec", 4)
	v.SetDefault("resolver.max_attempts", 2)
	v.SetDefault("resolver.user_agent", "Mozilla/5.0 (compatible; GambleCodezBot/1.0)")
	v.SetDefault("pipeline.model_name", "rule-based-v1")
	v.SetDefault("pipeline.model_version", "1.0.0")
	v.SetDefault("dedup.window_days", 7)
	v.SetDefault("batch.limit", 10)
	v.SetDefault("batch.concurrency", 1)
	v.SetDefault("watch.schedule", "*/5 * * * *")

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

// Validate checks that the loaded configuration is usable.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case "sqlite":
		if c.Store.Path == "" {
			return eris.New("config: store.path required for sqlite driver")
		}
	case "postgres":
		if c.Store.DatabaseURL == "" {
			return eris.New("config: store.database_url required for postgres driver")
		}
	default:
		return eris.Errorf("config: unknown store driver %q", c.Store.Driver)
	}
	if c.Dedup.WindowDays <= 0 {
		return eris.New("config: dedup.window_days must be positive")
	}
	return nil
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
