package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/lib/pq"
	"github.com/samber/lo"

	"github.com/Alijeyrad/stomatology_backend/config"
)

const createTimeout = 10 * time.Second

// DatabaseNames lists the databases `system init` creates: server.databases
// when set, otherwise the clinic and casbin databases.
func DatabaseNames(cfg *config.Config) []string {
	names := cfg.Server.Databases
	if len(names) == 0 {
		names = []string{cfg.Database.DBName, cfg.CasbinDatabase.DBName}
	}
	return lo.Uniq(lo.Compact(names))
}

// InitializeDatabases connects to the server's maintenance database and
// creates every missing database from DatabaseNames.
func InitializeDatabases(cfg *config.Config) error {
	names := DatabaseNames(cfg)
	if len(names) == 0 {
		return fmt.Errorf("no database names configured")
	}

	conn, err := openSQLDB(FromCentralConfig(cfg.Database).WithDBName("postgres"))
	if err != nil {
		return fmt.Errorf("connect to maintenance database: %w", err)
	}
	defer conn.Close()

	for _, name := range names {
		created, err := createDatabaseIfNotExists(conn, name)
		if err != nil {
			return fmt.Errorf("database %q: %w", name, err)
		}
		slog.Info("database ready", "name", name, "created", created)
	}
	return nil
}

func createDatabaseIfNotExists(conn *sql.DB, name string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), createTimeout)
	defer cancel()

	var exists bool
	err := conn.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check existence: %w", err)
	}
	if exists {
		return false, nil
	}

	// CREATE DATABASE takes no bind parameters.
	if _, err := conn.ExecContext(ctx, "CREATE DATABASE "+pq.QuoteIdentifier(name)); err != nil {
		return false, fmt.Errorf("create: %w", err)
	}
	return true, nil
}
