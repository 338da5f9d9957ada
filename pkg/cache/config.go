package cache

import (
	"fmt"
	"time"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config selects a backend and carries the settings of each.
type Config struct {
	Backend string
	Redis   RedisConfig
	Memory  MemoryConfig
}

// RedisConfig addresses a single node, or a cluster when Addrs has several entries.
type RedisConfig struct {
	Addrs       []string
	Password    string
	DB          int
	Prefix      string // prepended to every key, "trendscan" when empty
	PoolSize    int
	DialTimeout time.Duration
}

func (c RedisConfig) withDefaults() RedisConfig {
	if len(c.Addrs) == 0 {
		c.Addrs = []string{"localhost:6379"}
	}
	if c.Prefix == "" {
		c.Prefix = "trendscan"
	}
	if c.PoolSize <= 0 {
		c.PoolSize = 4
	}
	if c.DialTimeout <= 0 {
		c.DialTimeout = 5 * time.Second
	}
	return c
}

type MemoryConfig struct {
	MaxSize         int           // entries kept before LRU eviction, 256 when zero
	CleanupInterval time.Duration // 5m when zero
}

func (c MemoryConfig) withDefaults() MemoryConfig {
	if c.MaxSize <= 0 {
		c.MaxSize = 256
	}
	if c.CleanupInterval <= 0 {
		c.CleanupInterval = 5 * time.Minute
	}
	return c
}

// New opens the configured backend. An empty backend means memory.
func New(cfg Config) (Service, error) {
	switch cfg.Backend {
	case "", BackendMemory:
		return NewMemoryCache(cfg.Memory), nil
	case BackendRedis:
		return NewRedisCache(cfg.Redis)
	default:
		return nil, fmt.Errorf("cache: unknown backend %q", cfg.Backend)
	}
}
