package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-ekyc-ocr/logging"
	"go-ekyc-ocr/ocr"
	"go-ekyc-ocr/redis"
)

func main() {
	configPath := flag.String("config", "", "Path for the config.json (or .yaml) to use")
	envFile := flag.String("env-file", ".env", "Path for the .env file to load")
	mcpMode := flag.Bool("mcp", false, "Serve the extraction tools over MCP on stdio instead of HTTP")
	flag.Parse()

	if err := loadEnvFile(*envFile); err != nil {
		fatal("failed to load env file", err)
	}

	config, err := readConfigFile(*configPath)
	if err != nil {
		fatal("failed to read config file", err)
	}
	logging.InitLogger(config.LogLevel, config.LogFormat)
	slog.Info("Using config", "path", *configPath, "ocr_engine", config.OCREngine, "cache_type", config.CacheType)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *mcpMode {
		if err := runMCP(ctx); err != nil {
			fatal("mcp server stopped", err)
		}
		return
	}

	engine, err := createOCREngine(ctx, &config)
	if err != nil {
		fatal("failed to instantiate ocr engine", err)
	}
	if closer, ok := engine.(io.Closer); ok {
		defer closer.Close()
	}

	cache, err := createOCRCache(&config)
	if err != nil {
		fatal("failed to instantiate ocr cache", err)
	}

	serverState := ServerState{
		processor:      NewDocumentProcessor(engine, cache, config.Image, config.MaxUploadBytes),
		engineName:     engine.Name(),
		maxUploadBytes: config.MaxUploadBytes,
		now:            time.Now,
	}

	server, err := NewServer(&serverState, config.ServerConfig)
	if err != nil {
		fatal("failed to create server", err)
	}

	go func() {
		<-ctx.Done()
		_ = server.Stop()
	}()

	slog.Info("Hosting", "host", config.ServerConfig.Host, "port", config.ServerConfig.Port)
	if err := server.ListenAndServe(); err != nil && ctx.Err() == nil {
		fatal("failed to listen and serve", err)
	}
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}

func createOCREngine(ctx context.Context, config *Config) (ocr.Engine, error) {
	switch config.OCREngine {
	case ocr.PaddleEngineName:
		slog.Info("Using Paddle OCR engine", "url", config.PaddleOCRURL)
		client := ocr.NewPaddleClient(config.PaddleOCRURL)
		if err := client.HealthCheck(ctx); err != nil {
			slog.Warn("Paddle OCR service not reachable yet", "error", err)
		}
		return client, nil
	case ocr.VisionEngineName:
		slog.Info("Using Google Vision OCR engine")
		return ocr.NewVisionEngine(ctx, config.GoogleCredentialsPath)
	}
	return nil, fmt.Errorf("%v is not a valid ocr engine", config.OCREngine)
}

func createOCRCache(config *Config) (OCRCache, error) {
	switch config.CacheType {
	case CacheRedis:
		slog.Info("Using redis ocr cache")
		client, err := redis.NewRedisClient(&config.RedisConfig)
		if err != nil {
			return nil, err
		}
		return NewRedisOCRCache(client, config.RedisConfig.Namespace, config.CacheTTL()), nil
	case CacheRedisSentinel:
		slog.Info("Using redis sentinel ocr cache")
		client, err := redis.NewRedisSentinelClient(&config.RedisSentinelConfig)
		if err != nil {
			return nil, err
		}
		return NewRedisOCRCache(client, config.RedisSentinelConfig.Namespace, config.CacheTTL()), nil
	case CacheMemory:
		slog.Info("Using in memory ocr cache")
		return NewInMemoryOCRCache(config.CacheTTL()), nil
	case CacheNone, "":
		slog.Info("OCR cache disabled")
		return nil, nil
	}
	return nil, fmt.Errorf("%v is not a valid cache type", config.CacheType)
}
