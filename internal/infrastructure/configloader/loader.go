package configloader

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// DefaultPath is used when neither a flag nor CONFIG_PATH names a config file.
const DefaultPath = "config/config.yml"

// ServerConfig holds server-specific configurations.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
	IdleTimeout  int    `yaml:"idleTimeout"`
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level string `yaml:"level"` // e.g., "debug", "info", "warn", "error"
}

// ExportConfig describes which registration points the serving host offers.
type ExportConfig struct {
	ModuleSystem    bool `yaml:"moduleSystem"`
	GlobalNamespace bool `yaml:"globalNamespace"`
}

// RpcClientConfig holds configuration for RPC clients.
type RpcClientConfig struct {
	ConnectTimeoutMs int64   `yaml:"connectTimeoutMs"`
	CallTimeoutMs    int64   `yaml:"callTimeoutMs"`
	RateLimit        float64 `yaml:"rateLimit"`
	BurstLimit       int     `yaml:"burstLimit"`
}

// ExplorerConfig holds configuration for the block explorer probe.
type ExplorerConfig struct {
	RequestTimeoutMillis int64 `yaml:"requestTimeoutMillis"`
}

// CacheConfig holds configuration for caching verification reports.
type CacheConfig struct {
	VerificationTTLMinutes int `yaml:"verificationTTLMinutes"`
	CleanupIntervalMinutes int `yaml:"cleanupIntervalMinutes"`
}

// APIConfig holds HTTP API middleware settings.
type APIConfig struct {
	RateLimitRPS   float64  `yaml:"rateLimitRPS"`
	RateLimitBurst int      `yaml:"rateLimitBurst"`
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
	Export    ExportConfig    `yaml:"export"`
	RpcClient RpcClientConfig `yaml:"rpcClient"`
	Explorer  ExplorerConfig  `yaml:"explorer"`
	Cache     CacheConfig     `yaml:"cache"`
	API       APIConfig       `yaml:"api"`
}

// ResolvePath picks the config path: explicit flag, then CONFIG_PATH, then DefaultPath.
func ResolvePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := strings.TrimSpace(os.Getenv("CONFIG_PATH")); env != "" {
		return env
	}
	return DefaultPath
}

// Load reads the YAML configuration file from the given path and unmarshals it.
func Load(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Errorf("Failed to read config file %s: %v", path, err)
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		logrus.Errorf("Failed to unmarshal config data from %s: %v", path, err)
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	logrus.Info("Configuration loaded successfully.")
	return cfg, nil
}

// Parse unmarshals YAML bytes and applies defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	ApplyDefaults(&cfg)
	return &cfg, nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills every unset field.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	cfg.Server.Port = strings.TrimPrefix(cfg.Server.Port, ":")
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = 10
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = 10
	}
	if cfg.Server.IdleTimeout <= 0 {
		cfg.Server.IdleTimeout = 60
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	// A host with neither surface would export nothing; default to the module surface.
	if !cfg.Export.ModuleSystem && !cfg.Export.GlobalNamespace {
		cfg.Export.ModuleSystem = true
		logrus.Infof("No export surface configured, defaulting to module system")
	}

	if cfg.RpcClient.ConnectTimeoutMs <= 0 {
		cfg.RpcClient.ConnectTimeoutMs = 10000 // 10 seconds
	}
	if cfg.RpcClient.CallTimeoutMs <= 0 {
		cfg.RpcClient.CallTimeoutMs = 10000
	}
	if cfg.RpcClient.RateLimit <= 0 {
		cfg.RpcClient.RateLimit = 5
	}
	if cfg.RpcClient.BurstLimit <= 0 {
		cfg.RpcClient.BurstLimit = 5
	}

	if cfg.Explorer.RequestTimeoutMillis <= 0 {
		cfg.Explorer.RequestTimeoutMillis = 10000
	}

	if cfg.Cache.VerificationTTLMinutes <= 0 {
		cfg.Cache.VerificationTTLMinutes = 5
		logrus.Infof("Cache.VerificationTTLMinutes not set, defaulting to %d minutes", cfg.Cache.VerificationTTLMinutes)
	}
	if cfg.Cache.CleanupIntervalMinutes <= 0 {
		cfg.Cache.CleanupIntervalMinutes = 10
	}

	if cfg.API.RateLimitRPS <= 0 {
		cfg.API.RateLimitRPS = 50
	}
	if cfg.API.RateLimitBurst <= 0 {
		cfg.API.RateLimitBurst = 100
	}
	if len(cfg.API.AllowedOrigins) == 0 {
		cfg.API.AllowedOrigins = []string{"*"}
	}
}
