package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go-ekyc-ocr/ocr"

	"github.com/stretchr/testify/require"
)

// clearConfigEnv keeps the developer's environment out of the tests.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"EKYC_LOG_LEVEL", "EKYC_OCR_ENGINE", "PADDLE_OCR_URL",
		"GOOGLE_APPLICATION_CREDENTIALS", "EKYC_CACHE_TYPE", "REDIS_PASSWORD",
	} {
		t.Setenv(name, "")
	}
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadConfigFile_Defaults(t *testing.T) {
	clearConfigEnv(t)

	config, err := readConfigFile("")
	require.NoError(t, err)
	require.Equal(t, defaultConfig(), config)
	require.Equal(t, ocr.PaddleEngineName, config.OCREngine)
	require.Equal(t, 24*time.Hour, config.CacheTTL())
}

func TestReadConfigFile_JSON(t *testing.T) {
	clearConfigEnv(t)
	path := writeConfig(t, "config.json", `{
		"server_config": {"host": "127.0.0.1", "port": 9000},
		"log_level": "DEBUG",
		"ocr_engine": "google_vision",
		"google_credentials_path": "/secrets/vision.json",
		"cache_type": "redis",
		"cache_ttl_seconds": 60,
		"redis_config": {"host": "redis", "port": 6379, "namespace": "ekyc"}
	}`)

	config, err := readConfigFile(path)
	require.NoError(t, err)
	require.Equal(t, 9000, config.ServerConfig.Port)
	require.Equal(t, "debug", config.LogLevel)
	require.Equal(t, "text", config.LogFormat)
	require.Equal(t, ocr.VisionEngineName, config.OCREngine)
	require.Equal(t, CacheRedis, config.CacheType)
	require.Equal(t, time.Minute, config.CacheTTL())
	require.Equal(t, "ekyc", config.RedisConfig.Namespace)
	// untouched sections keep their defaults
	require.Equal(t, 600, config.Image.MinSide)
}

func TestReadConfigFile_YAML(t *testing.T) {
	clearConfigEnv(t)
	path := writeConfig(t, "config.yaml", `
server_config:
  host: 0.0.0.0
  port: 8000
log_format: json
ocr_engine: paddle
paddle_ocr_url: http://paddle:8080
image:
  max_side: 3000
  min_side: 800
  upscale_factor: 1.5
  enhance_contrast: false
cache_type: memory
`)

	config, err := readConfigFile(path)
	require.NoError(t, err)
	require.Equal(t, "json", config.LogFormat)
	require.Equal(t, "http://paddle:8080", config.PaddleOCRURL)
	require.Equal(t, 3000, config.Image.MaxSide)
	require.Equal(t, 1.5, config.Image.UpscaleFactor)
	require.False(t, config.Image.EnhanceContrast)
	require.Equal(t, CacheMemory, config.CacheType)
}

func TestReadConfigFile_EnvOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("EKYC_LOG_LEVEL", "WARN")
	t.Setenv("PADDLE_OCR_URL", "http://ocr.internal:8866")
	t.Setenv("EKYC_CACHE_TYPE", "memory")
	t.Setenv("REDIS_PASSWORD", "hunter2")

	config, err := readConfigFile("")
	require.NoError(t, err)
	require.Equal(t, "warn", config.LogLevel)
	require.Equal(t, "http://ocr.internal:8866", config.PaddleOCRURL)
	require.Equal(t, CacheMemory, config.CacheType)
	require.Equal(t, "hunter2", config.RedisConfig.Password)
	require.Equal(t, "hunter2", config.RedisSentinelConfig.Password)
}

func TestReadConfigFile_Invalid(t *testing.T) {
	cases := map[string]string{
		"unknown engine":          `{"ocr_engine": "tesseract"}`,
		"unknown cache":           `{"cache_type": "memcached"}`,
		"bad log level":           `{"log_level": "verbose"}`,
		"port out of range":       `{"server_config": {"host": "localhost", "port": 70000}}`,
		"tls without paths":       `{"server_config": {"host": "localhost", "port": 443, "use_tls": true}}`,
		"redis without host":      `{"cache_type": "redis", "redis_config": {"port": 6379}}`,
		"sentinel without master": `{"cache_type": "redis_sentinel", "redis_sentinel_config": {"sentinel_host": "s", "sentinel_port": 26379}}`,
		"paddle without url":      `{"ocr_engine": "paddle", "paddle_ocr_url": ""}`,
		"upscale below one":       `{"image": {"upscale_factor": 0.5}}`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			clearConfigEnv(t)
			_, err := readConfigFile(writeConfig(t, "config.json", content))
			require.ErrorContains(t, err, "invalid config")
		})
	}
}

func TestReadConfigFile_Unparseable(t *testing.T) {
	clearConfigEnv(t)

	_, err := readConfigFile(writeConfig(t, "config.json", `{"server_config": `))
	require.ErrorContains(t, err, "failed to parse config")

	_, err = readConfigFile(filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadEnvFile(t *testing.T) {
	require.NoError(t, loadEnvFile(""))
	require.NoError(t, loadEnvFile(filepath.Join(t.TempDir(), ".env")))

	const name = "EKYC_TEST_ENV_FILE_VALUE"
	t.Cleanup(func() { _ = os.Unsetenv(name) })

	path := writeConfig(t, ".env", name+"=from-file\n")
	require.NoError(t, loadEnvFile(path))
	require.Equal(t, "from-file", os.Getenv(name))
}

func TestReadConfigFile_Example(t *testing.T) {
	clearConfigEnv(t)

	config, err := readConfigFile("config.example.yaml")
	require.NoError(t, err)
	require.Equal(t, CacheRedis, config.CacheType)
	require.Equal(t, "ekyc", config.RedisConfig.Namespace)
}
