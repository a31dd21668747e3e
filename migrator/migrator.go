package migrator

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// in order! do not skip any number
var migrations = []string{
	migration_1,
	migration_2,
}

type labdeskMigrator struct {
}

type LabdeskMigrator interface {
	Run(ctx context.Context, db *sqlx.DB, schemaName string) error
}

func (sm *labdeskMigrator) Run(ctx context.Context, db *sqlx.DB, schemaName string) error {
	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	err = sm.createMigrationsTableIfNotExists(ctx, tx, schemaName)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	currentVersion, err := sm.getLastAppliedMigrationVersion(ctx, tx, schemaName)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	for i, query := range migrations {
		version := i + 1
		if version <= currentVersion {
			continue
		}
		query = strings.ReplaceAll(query, "<SCHEMA_PLACEHOLDER>", schemaName)
		_, err = tx.ExecContext(ctx, query)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
		err = sm.insertMigration(ctx, tx, schemaName, version)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
		log.Info().Int("version", version).Str("schema", schemaName).Msg("migration applied")
	}
	err = tx.Commit()
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	return nil
}

func (sm *labdeskMigrator) createMigrationsTableIfNotExists(ctx context.Context, tx *sqlx.Tx, schemaName string) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.ld_migrations(
		"version" int NOT NULL,
		applied_at timestamp NOT NULL DEFAULT now(),
		description varchar NOT NULL DEFAULT '',
		CONSTRAINT ld_pk_migrations PRIMARY KEY (version)
	);`, schemaName)
	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}
	return nil
}

func (sm *labdeskMigrator) insertMigration(ctx context.Context, tx *sqlx.Tx, schemaName string, version int) error {
	query := fmt.Sprintf(`INSERT INTO %s.ld_migrations(version)VALUES($1);`, schemaName)
	_, err := tx.ExecContext(ctx, query, version)
	if err != nil {
		return err
	}
	return nil
}

func (sm *labdeskMigrator) getLastAppliedMigrationVersion(ctx context.Context, tx *sqlx.Tx, schemaName string) (int, error) {
	query := fmt.Sprintf(`SELECT COALESCE(MAX(version),0) FROM %s.ld_migrations;`, schemaName)
	row := tx.QueryRowxContext(ctx, query)
	if row != nil && row.Err() != nil {
		if row.Err() == sql.ErrNoRows {
			return 0, nil
		}
		return -1, row.Err()
	}
	version := 0
	err := row.Scan(&version)
	return version, err
}

func NewLabdeskMigrator() LabdeskMigrator {
	return &labdeskMigrator{}
}
