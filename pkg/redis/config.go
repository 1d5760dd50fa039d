package redis

import (
	"time"

	"github.com/samber/lo"

	"github.com/Alijeyrad/stomatology_backend/config"
)

// Config is the resolved connection setup for sessions, confirmation
// tokens and limiter counters.
type Config struct {
	Addr     string
	DB       int
	Username string
	Password string

	PoolSize     int
	MinIdleConns int

	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

var defaults = Config{
	PoolSize:     10,
	MinIdleConns: 2,
	DialTimeout:  5 * time.Second,
	ReadTimeout:  3 * time.Second,
	WriteTimeout: 3 * time.Second,
}

func seconds(n int) time.Duration {
	if n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}

// FromCentralConfig fills unset pool sizes and timeouts with defaults.
func FromCentralConfig(c config.RedisConfig) Config {
	return Config{
		Addr:         c.Addr,
		DB:           c.DB,
		Username:     c.Username,
		Password:     c.Password,
		PoolSize:     lo.CoalesceOrEmpty(max(c.PoolSize, 0), defaults.PoolSize),
		MinIdleConns: lo.CoalesceOrEmpty(max(c.MinIdleConns, 0), defaults.MinIdleConns),
		DialTimeout:  lo.CoalesceOrEmpty(seconds(c.DialTimeoutSeconds), defaults.DialTimeout),
		ReadTimeout:  lo.CoalesceOrEmpty(seconds(c.ReadTimeoutSeconds), defaults.ReadTimeout),
		WriteTimeout: lo.CoalesceOrEmpty(seconds(c.WriteTimeoutSeconds), defaults.WriteTimeout),
	}
}
