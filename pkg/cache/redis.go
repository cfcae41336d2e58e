package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisKeyPrefix отделяет ключи решателя от чужих данных в той же базе:
// Redis часто общий для нескольких сервисов, и Clear не должен трогать
// ничего, кроме наших записей.
const redisKeyPrefix = "mcflow:"

// redisScanBatch - размер порции SCAN при обходе ключей решателя.
const redisScanBatch = 512

// RedisCache держит результаты решателя в Redis, чтобы несколько
// экземпляров сервиса делили один кэш решений. Все ключи живут под
// префиксом redisKeyPrefix; срок жизни записей контролирует сам Redis.
type RedisCache struct {
	client     *redis.Client
	defaultTTL time.Duration
}

// NewRedisCache подключается к Redis и проверяет соединение. Недоступный
// сервер - ошибка сразу, а не при первом решении.
func NewRedisCache(opts *Options) (*RedisCache, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	poolSize := opts.RedisPoolSize
	if poolSize <= 0 {
		poolSize = 10
	}

	client := redis.NewClient(&redis.Options{
		Addr:     opts.RedisAddr,
		Password: opts.RedisPassword,
		DB:       opts.RedisDB,
		PoolSize: poolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.RedisAddr, err)
	}

	return &RedisCache{
		client:     client,
		defaultTTL: opts.DefaultTTL,
	}, nil
}

// key переводит ключ кэша в ключ Redis.
func (c *RedisCache) key(k string) string {
	return redisKeyPrefix + k
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.key(key)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, ErrKeyNotFound
	case err != nil:
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return val, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	if err := c.client.Set(ctx, c.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (c *RedisCache) Exists(ctx context.Context, key string) (bool, error) {
	n, err := c.client.Exists(ctx, c.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return n > 0, nil
}

// Stats считает ключи решателя обходом по префиксу: DBSIZE посчитал бы и
// чужие записи в общей базе.
func (c *RedisCache) Stats(ctx context.Context) (*Stats, error) {
	total, err := c.scanKeys(ctx, func(context.Context, []string) error { return nil })
	if err != nil {
		return nil, err
	}
	return &Stats{
		TotalKeys: total,
		Backend:   BackendRedis,
	}, nil
}

// Clear удаляет только ключи решателя; FLUSHDB снёс бы всю базу.
func (c *RedisCache) Clear(ctx context.Context) error {
	_, err := c.scanKeys(ctx, func(ctx context.Context, keys []string) error {
		return c.client.Del(ctx, keys...).Err()
	})
	return err
}

// scanKeys обходит все ключи под префиксом порциями, передавая каждую
// порцию визитёру, и возвращает общее число ключей.
func (c *RedisCache) scanKeys(ctx context.Context, visit func(context.Context, []string) error) (int64, error) {
	var cursor uint64
	var total int64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, redisKeyPrefix+"*", redisScanBatch).Result()
		if err != nil {
			return total, fmt.Errorf("redis scan: %w", err)
		}
		if len(keys) > 0 {
			if err := visit(ctx, keys); err != nil {
				return total, fmt.Errorf("redis scan visit: %w", err)
			}
			total += int64(len(keys))
		}
		cursor = next
		if cursor == 0 {
			return total, nil
		}
	}
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
