package database

import (
	"fmt"
	"time"

	"github.com/Alijeyrad/stomatology_backend/config"
)

const defaultConnMaxLifetime = 5 * time.Minute

// Config is one PostgreSQL database: the clinic records or the casbin
// policies.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string

	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
}

// DSN returns a lib/pq key=value connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func (c Config) ConnMaxLifetime() time.Duration {
	if c.ConnMaxLifetimeMin <= 0 {
		return defaultConnMaxLifetime
	}
	return time.Duration(c.ConnMaxLifetimeMin) * time.Minute
}

// WithDBName returns a copy pointed at another database on the same server.
func (c Config) WithDBName(name string) Config {
	c.DBName = name
	return c
}

func FromCentralConfig(c config.DatabaseConfig) Config {
	return Config{
		Host:               c.Host,
		Port:               c.Port,
		User:               c.User,
		Password:           c.Password,
		DBName:             c.DBName,
		SSLMode:            c.SSLMode,
		MaxOpenConns:       c.Pool.MaxOpenConns,
		MaxIdleConns:       c.Pool.MaxIdleConns,
		ConnMaxLifetimeMin: c.Pool.ConnMaxLifetimeMin,
	}
}

// NewDSN is the connection string of a configured database; the casbin
// adapter and watcher take it directly.
func NewDSN(c config.DatabaseConfig) string {
	return FromCentralConfig(c).DSN()
}
