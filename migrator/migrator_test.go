package migrator_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/blutspende/labdesk/migrator"
	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestLabdeskMigrations(t *testing.T) {
	postgres := embeddedpostgres.NewDatabase(embeddedpostgres.DefaultConfig().Port(5552))
	err := postgres.Start()
	assert.Nil(t, err)
	defer postgres.Stop()
	dbConn, err := sqlx.Connect("postgres", "host=localhost port=5552 user=postgres password=postgres dbname=postgres sslmode=disable")

	schemaName := "test"
	assert.Nil(t, err)

	_, err = dbConn.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp" schema public;`)
	assert.Nil(t, err)

	_, err = dbConn.Exec(`DROP SCHEMA IF EXISTS test CASCADE;`)
	assert.Nil(t, err)

	_, err = dbConn.Exec(`CREATE SCHEMA test;`)
	assert.Nil(t, err)

	migrator := migrator.NewLabdeskMigrator()
	assert.NotNil(t, migrator)
	err = migrator.Run(context.Background(), dbConn, schemaName)
	assert.Nil(t, err)

	// a second run must not apply anything again
	err = migrator.Run(context.Background(), dbConn, schemaName)
	assert.Nil(t, err)

	row := dbConn.QueryRowx(fmt.Sprintf("SELECT MAX(version), COUNT(*) FROM %s.ld_migrations", schemaName))
	assert.NotNil(t, row)
	assert.Nil(t, row.Err())
	var version, count int
	err = row.Scan(&version, &count)
	assert.Nil(t, err)

	//MODIFY THE EXPECTED VERSION AFTER ADDING NEW MIGRATION!!!
	assert.Equal(t, 2, version)
	assert.Equal(t, 2, count)
}
