package database

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	entschema "entgo.io/ent/dialect/sql/schema"

	"github.com/Alijeyrad/stomatology_backend/config"
	"github.com/Alijeyrad/stomatology_backend/internal/repo"
	"github.com/Alijeyrad/stomatology_backend/internal/schema"
	"github.com/Alijeyrad/stomatology_backend/pkg/constants"
)

// NewDriver opens an ent SQL driver from central config
func NewDriver(cfg config.DatabaseConfig) (*entsql.Driver, error) {
	return NewDriverFromConfig(FromCentralConfig(cfg))
}

// NewDriverFromConfig opens an ent SQL driver from package Config
func NewDriverFromConfig(cfg Config) (*entsql.Driver, error) {
	db, err := openSQLDB(cfg)
	if err != nil {
		return nil, err
	}
	return entsql.OpenDB(dialect.Postgres, db), nil
}

// NewRepoClient builds the repository client for the configured storage
// backend. The postgres backend migrates on open when auto_migrate is set.
func NewRepoClient(ctx context.Context, cfg *config.Config) (*repo.Client, error) {
	if cfg.Storage.Backend == constants.StorageMemory {
		return repo.NewMemoryClient(), nil
	}

	drv, err := NewDriver(cfg.Database)
	if err != nil {
		return nil, err
	}

	if cfg.Database.Migrations.AutoMigrate {
		if err := Migrate(ctx, drv, cfg.Database.Migrations.SafeMode); err != nil {
			drv.Close()
			return nil, err
		}
	}

	return repo.NewClient(drv), nil
}

// Migrate creates or updates the clinic tables. In safe mode columns and
// indexes are never dropped.
func Migrate(ctx context.Context, drv *entsql.Driver, safeMode bool) error {
	// similarity() and the gin_trgm_ops indexes live in pg_trgm.
	if err := drv.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS pg_trgm", []any{}, nil); err != nil {
		return fmt.Errorf("create pg_trgm extension: %w", err)
	}

	m, err := entschema.NewMigrate(drv,
		entschema.WithDropColumn(!safeMode),
		entschema.WithDropIndex(!safeMode),
		entschema.WithForeignKeys(true),
	)
	if err != nil {
		return fmt.Errorf("init migrate: %w", err)
	}

	if err := m.Create(ctx, schema.Tables...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
