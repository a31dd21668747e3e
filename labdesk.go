package labdesk

import (
	"context"
	"time"

	"github.com/blutspende/labdesk/config"
	"github.com/blutspende/labdesk/db"
	"github.com/blutspende/labdesk/migrator"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type Labdesk interface {
	// Start - migrates the database and runs the API until it fails
	Start() error
}

type labdesk struct {
	sqlConn  *sqlx.DB
	dbSchema string
	migrator migrator.LabdeskMigrator
	api      GinApi
}

func NewLabdesk(sqlConn *sqlx.DB, dbSchema string, migrator migrator.LabdeskMigrator, api GinApi) Labdesk {
	return &labdesk{
		sqlConn:  sqlConn,
		dbSchema: dbSchema,
		migrator: migrator,
		api:      api,
	}
}

// New wires the default stack: postgres journal, redis or in-memory stores and the hospital backend client
func New(ctx context.Context, configuration *config.Configuration, sqlConn *sqlx.DB) (Labdesk, error) {
	cache, err := NewCache(ctx, configuration)
	if err != nil {
		return nil, err
	}

	hospitalClient, err := NewHospitalClient(configuration.HospitalAPIURL, NewRestyClient(configuration, true))
	if err != nil {
		return nil, err
	}

	dbConn := db.CreateDbConnector(sqlConn)
	submissionRepository := NewSubmissionRepository(dbConn, configuration.DBSchema)
	sessionStore := NewSessionStore(cache)
	draftStore := NewDraftStore(cache, time.Duration(configuration.DraftTTLMinutes)*time.Minute)

	sessionService := NewSessionService(configuration, hospitalClient, sessionStore)
	labResultService := NewLabResultService(hospitalClient, draftStore, submissionRepository)
	api := NewAPI(configuration, dbConn, sessionService, labResultService)

	return NewLabdesk(sqlConn, configuration.DBSchema, migrator.NewLabdeskMigrator(), api), nil
}

func (l *labdesk) migrateUp(ctx context.Context) error {
	if _, err := l.sqlConn.ExecContext(ctx, `CREATE SCHEMA IF NOT EXISTS `+l.dbSchema+`;`); err != nil {
		return err
	}
	if _, err := l.sqlConn.ExecContext(ctx, `CREATE EXTENSION IF NOT EXISTS "uuid-ossp" SCHEMA public;`); err != nil {
		log.Warn().Err(err).Msg("uuid-ossp extension could not be created, expecting it to exist")
	}
	return l.migrator.Run(ctx, l.sqlConn, l.dbSchema)
}

func (l *labdesk) Start() error {
	if err := l.migrateUp(context.Background()); err != nil {
		log.Error().Err(err).Str("schema", l.dbSchema).Msg("Failed to migrate database")
		return err
	}

	log.Info().Msg(ApiStartMsg)
	if err := l.api.Run(); err != nil {
		log.Error().Err(err).Msg(ApiFailedToStartMsg)
		return err
	}
	log.Info().Msg(ApiEndedGracefullyMsg)
	return nil
}

// Migrate runs the schema migrations only
func Migrate(ctx context.Context, sqlConn *sqlx.DB, dbSchema string) error {
	l := &labdesk{
		sqlConn:  sqlConn,
		dbSchema: dbSchema,
		migrator: migrator.NewLabdeskMigrator(),
	}
	return l.migrateUp(ctx)
}
