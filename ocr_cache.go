package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go-ekyc-ocr/ocr"

	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("ocr result not cached")

const DefaultCacheTTL time.Duration = 24 * time.Hour

// Should be safe to use in concurrency
type OCRCache interface {
	// Should return the cached result for the key, ErrCacheMiss when
	// nothing (or only an expired entry) is stored under it.
	Get(ctx context.Context, key string) (ocr.Result, error)

	// Stores the result, overwriting what is already there.
	Set(ctx context.Context, key string, result ocr.Result) error
}

// UploadDigest identifies an upload by content.
func UploadDigest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ResultKey identifies the result of one engine on one upload. Engines never
// share cached tokens.
func ResultKey(engine string, data []byte) string {
	return engine + ":" + UploadDigest(data)
}

func createKey(namespace, key string) string {
	return fmt.Sprintf("%s:ocr:%s", namespace, key)
}

// ------------------------------------------------------------------------------

type cachedResult struct {
	result  ocr.Result
	expires time.Time
}

type InMemoryOCRCache struct {
	entries map[string]cachedResult
	ttl     time.Duration
	now     func() time.Time
	mutex   sync.Mutex
}

func NewInMemoryOCRCache(ttl time.Duration) *InMemoryOCRCache {
	return &InMemoryOCRCache{
		entries: make(map[string]cachedResult),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *InMemoryOCRCache) Get(_ context.Context, key string) (ocr.Result, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return ocr.Result{}, ErrCacheMiss
	}
	if c.now().After(entry.expires) {
		delete(c.entries, key)
		return ocr.Result{}, ErrCacheMiss
	}
	return entry.result, nil
}

func (c *InMemoryOCRCache) Set(_ context.Context, key string, result ocr.Result) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[key] = cachedResult{result: result, expires: c.now().Add(c.ttl)}
	return nil
}

// ------------------------------------------------------------------------------

type RedisOCRCache struct {
	client    *redis.Client
	namespace string
	ttl       time.Duration
}

func NewRedisOCRCache(client *redis.Client, namespace string, ttl time.Duration) *RedisOCRCache {
	return &RedisOCRCache{client: client, namespace: namespace, ttl: ttl}
}

func (c *RedisOCRCache) Get(ctx context.Context, key string) (ocr.Result, error) {
	payload, err := c.client.Get(ctx, createKey(c.namespace, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ocr.Result{}, ErrCacheMiss
	}
	if err != nil {
		return ocr.Result{}, fmt.Errorf("failed to read cached ocr result: %w", err)
	}

	var result ocr.Result
	if err := json.Unmarshal(payload, &result); err != nil {
		return ocr.Result{}, fmt.Errorf("failed to decode cached ocr result: %w", err)
	}
	return result, nil
}

func (c *RedisOCRCache) Set(ctx context.Context, key string, result ocr.Result) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode ocr result: %w", err)
	}
	return c.client.Set(ctx, createKey(c.namespace, key), payload, c.ttl).Err()
}
