package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const connectTimeout = 5 * time.Second

type RedisConfig struct {
	Host      string `json:"host" yaml:"host"`
	Port      int    `json:"port" yaml:"port"`
	Password  string `json:"password" yaml:"password"`
	Namespace string `json:"namespace" yaml:"namespace"`
}

type RedisSentinelConfig struct {
	SentinelHost     string `json:"sentinel_host" yaml:"sentinel_host"`
	SentinelPort     int    `json:"sentinel_port" yaml:"sentinel_port"`
	Password         string `json:"password" yaml:"password"`
	MasterName       string `json:"master_name" yaml:"master_name"`
	SentinelUsername string `json:"sentinel_username" yaml:"sentinel_username"`
	Namespace        string `json:"namespace" yaml:"namespace"`
}

// NewRedisClient connects to a single Redis instance and pings it.
func NewRedisClient(config *RedisConfig) (*goredis.Client, error) {
	if config.Host == "" {
		return nil, errors.New("redis host is required")
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:        net.JoinHostPort(config.Host, strconv.Itoa(config.Port)),
		Password:    config.Password,
		DialTimeout: connectTimeout,
	})

	if err := ping(client); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("Connected to Redis", "host", config.Host, "port", config.Port)
	return client, nil
}

// NewRedisSentinelClient connects to the master announced by a Sentinel.
func NewRedisSentinelClient(config *RedisSentinelConfig) (*goredis.Client, error) {
	if config.MasterName == "" {
		return nil, errors.New("redis sentinel master name is required")
	}

	client := goredis.NewFailoverClient(&goredis.FailoverOptions{
		MasterName:       config.MasterName,
		SentinelAddrs:    []string{net.JoinHostPort(config.SentinelHost, strconv.Itoa(config.SentinelPort))},
		SentinelUsername: config.SentinelUsername,
		SentinelPassword: config.Password,
		Password:         config.Password,
		DialTimeout:      connectTimeout,
	})

	if err := ping(client); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis through Sentinel: %w", err)
	}

	slog.Info("Connected to Redis through Sentinel", "master", config.MasterName)
	return client, nil
}

func ping(client *goredis.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return err
	}
	return nil
}
