package clickhouse

import (
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// Config addresses a ClickHouse server over the native protocol.
type Config struct {
	Addrs        []string // host:port, 9000 for native
	Database     string
	User         string
	Password     string
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	MaxOpenConns int
	Compress     bool // LZ4 block compression
	AsyncInsert  bool
}

func (c Config) withDefaults() Config {
	if len(c.Addrs) == 0 {
		c.Addrs = []string{"localhost:9000"}
	}
	if c.Database == "" {
		c.Database = "default"
	}
	if c.User == "" {
		c.User = "default"
	}
	if c.DialTimeout <= 0 {
		c.DialTimeout = 5 * time.Second
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = 10 * time.Second
	}
	if c.MaxOpenConns <= 0 {
		c.MaxOpenConns = 4
	}
	return c
}

// Options converts c into driver options.
func (c Config) Options() *clickhouse.Options {
	c = c.withDefaults()

	opts := &clickhouse.Options{
		Protocol: clickhouse.Native,
		Addr:     c.Addrs,
		Auth: clickhouse.Auth{
			Database: c.Database,
			Username: c.User,
			Password: c.Password,
		},
		DialTimeout:     c.DialTimeout,
		ReadTimeout:     c.ReadTimeout,
		MaxOpenConns:    c.MaxOpenConns,
		MaxIdleConns:    max(1, c.MaxOpenConns/2),
		ConnMaxLifetime: 5 * time.Minute,
	}
	if c.Compress {
		opts.Compression = &clickhouse.Compression{Method: clickhouse.CompressionLZ4}
	}
	if c.AsyncInsert {
		opts.Settings = clickhouse.Settings{
			"async_insert":          1,
			"wait_for_async_insert": 1,
		}
	}
	return opts
}
