package database

import (
	"slices"
	"testing"
	"time"

	"github.com/Alijeyrad/stomatology_backend/config"
)

func TestDSN(t *testing.T) {
	cfg := FromCentralConfig(config.DatabaseConfig{
		Host:     "db",
		Port:     5432,
		User:     "clinic",
		Password: "secret",
		DBName:   "stomatology",
		SSLMode:  "disable",
	})

	want := "host=db port=5432 user=clinic password=secret dbname=stomatology sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}

	other := cfg.WithDBName("postgres")
	if other.DBName != "postgres" || cfg.DBName != "stomatology" {
		t.Errorf("WithDBName changed the receiver or failed: %q / %q", cfg.DBName, other.DBName)
	}
}

func TestConnMaxLifetime(t *testing.T) {
	if got := (Config{}).ConnMaxLifetime(); got != 5*time.Minute {
		t.Errorf("default lifetime = %v", got)
	}
	if got := (Config{ConnMaxLifetimeMin: 30}).ConnMaxLifetime(); got != 30*time.Minute {
		t.Errorf("lifetime = %v", got)
	}
}

func TestDatabaseNames(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want []string
	}{
		{
			name: "from database sections",
			cfg: config.Config{
				Database:       config.DatabaseConfig{DBName: "stomatology"},
				CasbinDatabase: config.DatabaseConfig{DBName: "stomatology_casbin"},
			},
			want: []string{"stomatology", "stomatology_casbin"},
		},
		{
			name: "shared database",
			cfg: config.Config{
				Database:       config.DatabaseConfig{DBName: "stomatology"},
				CasbinDatabase: config.DatabaseConfig{DBName: "stomatology"},
			},
			want: []string{"stomatology"},
		},
		{
			name: "explicit list wins",
			cfg: config.Config{
				Database: config.DatabaseConfig{DBName: "stomatology"},
				Server:   config.ServerConfig{Databases: []string{"a", "", "b", "a"}},
			},
			want: []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DatabaseNames(&tt.cfg); !slices.Equal(got, tt.want) {
				t.Errorf("DatabaseNames() = %v, want %v", got, tt.want)
			}
		})
	}
}
