package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/rs/zerolog/log"

	// pgx5 driver registers the "pgx5" scheme with golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	// file source reads .sql files from disk.
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Migrate applies all pending up migrations before the server takes traffic.
func (db *PostgresDB) Migrate() error {
	sourceURL := "file://" + db.Config.MigrationsPath
	databaseURL := strings.Replace(db.Config.URL(), "postgres://", "pgx5://", 1)

	migrator, err := migrate.New(sourceURL, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize migrator: %w", err)
	}
	defer migrator.Close()

	version, dirty, err := migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read migration version: %w", err)
	}
	if dirty {
		return fmt.Errorf("database is dirty at migration version %d", version)
	}

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info().Uint("version", version).Msg("schema already up to date")
			return nil
		}
		return fmt.Errorf("migration up failed: %w", err)
	}

	newVersion, _, _ := migrator.Version()
	log.Info().Uint("from", version).Uint("to", newVersion).Msg("schema migrated")

	return nil
}
