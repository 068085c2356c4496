package cache

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds Redis configuration
type Config struct {
	Host        string
	Port        string
	Password    string
	DB          int
	MaxRetries  int
	PoolSize    int
	MinIdleConn int
	DialTimeout time.Duration
	ReadTimeout time.Duration
}

// Addr returns host:port.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// NewRedisClient creates a client and pings it. The ping is bounded by ctx
// and DialTimeout, whichever ends first.
func NewRedisClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	dial := cfg.DialTimeout
	if dial <= 0 {
		dial = 5 * time.Second
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   cfg.MaxRetries,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConn,
		DialTimeout:  dial,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.ReadTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, dial)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Addr(), err)
	}

	return client, nil
}

// Keyspace namespaces keys so several devices or profiles can share one
// Redis database.
type Keyspace string

// Key returns the namespaced key. A missing trailing ':' is added.
func (k Keyspace) Key(name string) string {
	if k == "" {
		return name
	}
	prefix := string(k)
	if !strings.HasSuffix(prefix, ":") {
		prefix += ":"
	}
	return prefix + name
}

// Keys namespaces every name.
func (k Keyspace) Keys(names ...string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = k.Key(n)
	}
	return out
}
