package database

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// RunMigrations applies pending schema migrations for the given dialect
// ("sqlite" or "postgres"). It is idempotent and safe to call on every
// startup - only pending migrations are executed.
func RunMigrations(db *gorm.DB, dialect string) error {
	switch dialect {
	case "postgres":
		return runPostgresMigrations(db)
	case "sqlite":
		return runSqliteMigrations(db)
	}
	return fmt.Errorf("unsupported migration dialect: %s", dialect)
}

func runPostgresMigrations(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to access underlying database: %w", err)
	}

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations/postgres")
	if err != nil {
		return fmt.Errorf("failed to load embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	if err == migrate.ErrNoChange {
		log.Info().Msg("No migrations to apply (database up-to-date)")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, _, _ := m.Version()
	log.Info().Uint("version", version).Msg("Applied migrations successfully")
	return nil
}

// sqliteMigration is one versioned step parsed from the embedded
// migrations/sqlite directory.
type sqliteMigration struct {
	version int
	name    string
	sql     string
}

// runSqliteMigrations applies the embedded sqlite migrations through the
// already-open gorm connection. golang-migrate's sqlite driver cannot be
// linked next to the gorm sqlite driver (both register a database/sql driver
// named "sqlite", which panics at init), so sqlite gets a small versioned
// runner over the same schema_migrations bookkeeping instead.
func runSqliteMigrations(db *gorm.DB) error {
	migrations, err := loadSqliteMigrations()
	if err != nil {
		return err
	}

	createTable := `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`
	if err := db.Exec(createTable).Error; err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	applied := 0
	for _, migration := range migrations {
		var count int64
		err := db.Table("schema_migrations").Where("version = ?", migration.version).Count(&count).Error
		if err != nil {
			return fmt.Errorf("failed to check migration %d: %w", migration.version, err)
		}
		if count > 0 {
			continue
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(migration.sql).Error; err != nil {
				return err
			}
			return tx.Exec(
				"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
				migration.version, migration.name,
			).Error
		})
		if err != nil {
			return fmt.Errorf("failed to apply migration %d (%s): %w", migration.version, migration.name, err)
		}
		applied++
	}

	if applied == 0 {
		log.Info().Msg("No migrations to apply (database up-to-date)")
		return nil
	}

	latest := migrations[len(migrations)-1].version
	log.Info().Int("applied", applied).Int("version", latest).Msg("Applied migrations successfully")
	return nil
}

// loadSqliteMigrations reads the embedded up-migrations, ordered by their
// numeric version prefix.
func loadSqliteMigrations() ([]sqliteMigration, error) {
	entries, err := fs.ReadDir(migrationsFS, "migrations/sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded migrations: %w", err)
	}

	var migrations []sqliteMigration
	for _, entry := range entries {
		filename := entry.Name()
		if !strings.HasSuffix(filename, ".up.sql") {
			continue
		}

		sep := strings.IndexByte(filename, '_')
		if sep < 1 {
			return nil, fmt.Errorf("migration filename missing version prefix: %s", filename)
		}
		version, err := strconv.Atoi(filename[:sep])
		if err != nil {
			return nil, fmt.Errorf("migration filename has non-numeric version: %s", filename)
		}

		content, err := migrationsFS.ReadFile("migrations/sqlite/" + filename)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", filename, err)
		}

		migrations = append(migrations, sqliteMigration{
			version: version,
			name:    strings.TrimSuffix(filename[sep+1:], ".up.sql"),
			sql:     string(content),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].version < migrations[j].version
	})
	return migrations, nil
}
