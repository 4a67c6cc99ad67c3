package main

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go-ekyc-ocr/images"
	"go-ekyc-ocr/ocr"
	"go-ekyc-ocr/redis"

	"github.com/joho/godotenv"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed config.schema.json
var configSchema string

const (
	CacheNone          = "none"
	CacheMemory        = "memory"
	CacheRedis         = "redis"
	CacheRedisSentinel = "redis_sentinel"
)

type Config struct {
	ServerConfig ServerConfig `json:"server_config" yaml:"server_config"`

	LogLevel  string `json:"log_level" yaml:"log_level"`
	LogFormat string `json:"log_format" yaml:"log_format"`

	OCREngine             string `json:"ocr_engine" yaml:"ocr_engine"`
	PaddleOCRURL          string `json:"paddle_ocr_url,omitempty" yaml:"paddle_ocr_url,omitempty"`
	GoogleCredentialsPath string `json:"google_credentials_path,omitempty" yaml:"google_credentials_path,omitempty"`

	MaxUploadBytes int64          `json:"max_upload_bytes" yaml:"max_upload_bytes"`
	Image          images.Options `json:"image" yaml:"image"`

	CacheType           string                    `json:"cache_type" yaml:"cache_type"`
	CacheTTLSeconds     int                       `json:"cache_ttl_seconds" yaml:"cache_ttl_seconds"`
	RedisConfig         redis.RedisConfig         `json:"redis_config,omitempty" yaml:"redis_config,omitempty"`
	RedisSentinelConfig redis.RedisSentinelConfig `json:"redis_sentinel_config,omitempty" yaml:"redis_sentinel_config,omitempty"`
}

func defaultConfig() Config {
	return Config{
		ServerConfig:    ServerConfig{Host: "0.0.0.0", Port: 8000},
		LogLevel:        "info",
		LogFormat:       "text",
		OCREngine:       ocr.PaddleEngineName,
		PaddleOCRURL:    "http://localhost:8080",
		MaxUploadBytes:  defaultUploadLimit,
		Image:           images.DefaultOptions(),
		CacheType:       CacheNone,
		CacheTTLSeconds: int(DefaultCacheTTL / time.Second),
	}
}

func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// loadEnvFile loads variables that are not set yet from a .env file. A
// missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	slog.Info("Loaded env file", "path", path)
	return nil
}

// readConfigFile reads the config (JSON, or YAML by extension) on top of the
// defaults, applies environment overrides and validates the result. Without
// a path the defaults and environment are used.
func readConfigFile(path string) (Config, error) {
	config := defaultConfig()

	if path != "" {
		configBytes, err := os.ReadFile(path)
		if err != nil {
			return Config{}, err
		}

		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			err = yaml.Unmarshal(configBytes, &config)
		default:
			err = json.Unmarshal(configBytes, &config)
		}
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	applyEnvOverrides(&config)
	config.LogLevel = strings.ToLower(config.LogLevel)
	config.LogFormat = strings.ToLower(config.LogFormat)

	if err := validateConfig(config); err != nil {
		return Config{}, err
	}
	return config, nil
}

func applyEnvOverrides(config *Config) {
	overrides := []struct {
		name  string
		field *string
	}{
		{"EKYC_LOG_LEVEL", &config.LogLevel},
		{"EKYC_OCR_ENGINE", &config.OCREngine},
		{"PADDLE_OCR_URL", &config.PaddleOCRURL},
		{"GOOGLE_APPLICATION_CREDENTIALS", &config.GoogleCredentialsPath},
		{"EKYC_CACHE_TYPE", &config.CacheType},
		{"REDIS_PASSWORD", &config.RedisConfig.Password},
		{"REDIS_PASSWORD", &config.RedisSentinelConfig.Password},
	}
	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.name); ok && v != "" {
			*o.field = v
		}
	}
}

func validateConfig(config Config) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("config.schema.json", strings.NewReader(configSchema)); err != nil {
		return fmt.Errorf("failed to add config schema: %w", err)
	}
	schema, err := compiler.Compile("config.schema.json")
	if err != nil {
		return fmt.Errorf("failed to compile config schema: %w", err)
	}

	raw, err := json.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
