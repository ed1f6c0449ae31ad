package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Client owns the connection the user store talks through. The store
// issues one GET or SET per operation, so the pool stays small.
type Client struct {
	rdb         *goredis.Client
	pingTimeout time.Duration
}

func New(addr, password string, db int) *Client {
	return &Client{
		rdb: goredis.NewClient(&goredis.Options{
			Addr:         addr,
			Password:     password,
			DB:           db,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  2 * time.Second,
			WriteTimeout: 2 * time.Second,
			PoolSize:     10,
		}),
		pingTimeout: 2 * time.Second,
	}
}

// Ping is used at startup: the store has no fallback, so an unreachable
// server is fatal.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.pingTimeout)
	defer cancel()
	return c.rdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
