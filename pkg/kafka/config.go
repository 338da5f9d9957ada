package kafka

import (
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// Config describes how the producer reaches the cluster.
type Config struct {
	Brokers      []string
	Compression  string // gzip, snappy, lz4 or zstd
	Acks         string // all, one or none
	MaxAttempts  int
	WriteTimeout time.Duration
	BatchTimeout time.Duration
	ClientID     string
}

func (c Config) withDefaults() Config {
	if c.Compression == "" {
		c.Compression = "gzip"
	}
	if c.Acks == "" {
		c.Acks = "all"
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 10 * time.Second
	}
	if c.BatchTimeout <= 0 {
		c.BatchTimeout = 50 * time.Millisecond
	}
	if c.ClientID == "" {
		c.ClientID = "trendscan"
	}
	return c
}

func parseAcks(s string) (kafka.RequiredAcks, error) {
	switch strings.ToLower(s) {
	case "all", "-1":
		return kafka.RequireAll, nil
	case "one", "1":
		return kafka.RequireOne, nil
	case "none", "0":
		return kafka.RequireNone, nil
	}
	return 0, fmt.Errorf("unknown acks %q", s)
}

func parseCompression(s string) (kafka.Compression, error) {
	switch strings.ToLower(s) {
	case "gzip":
		return kafka.Gzip, nil
	case "snappy":
		return kafka.Snappy, nil
	case "lz4":
		return kafka.Lz4, nil
	case "zstd":
		return kafka.Zstd, nil
	}
	return 0, fmt.Errorf("unknown compression %q", s)
}
