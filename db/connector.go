package db

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type DbConnector interface {
	CreateTransactionConnector() (DbConnector, error)
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
	QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Commit() error
	Rollback() error
	Ping() error
}

type dbConnector struct {
	db *sqlx.DB
	tx *sqlx.Tx
}

// CreateDbConnector wraps an already open connection
func CreateDbConnector(db *sqlx.DB) DbConnector {
	return &dbConnector{
		db: db,
	}
}

func (c *dbConnector) CreateTransactionConnector() (DbConnector, error) {
	if c.db == nil {
		return nil, ErrDbConnectionNotAvailable
	}

	tx, err := c.db.Beginx()
	if err != nil {
		log.Error().Err(err).Msg(MsgBeginTransactionFailed)
		return nil, ErrBeginTransactionFailed
	}

	return &dbConnector{
		db: c.db,
		tx: tx,
	}, nil
}

func (c *dbConnector) NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error) {
	if c.tx != nil {
		return c.tx.NamedExecContext(ctx, query, arg)
	}
	return c.db.NamedExecContext(ctx, query, arg)
}

func (c *dbConnector) QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error) {
	if c.tx != nil {
		return c.tx.QueryxContext(ctx, query, args...)
	}
	return c.db.QueryxContext(ctx, query, args...)
}

func (c *dbConnector) QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row {
	if c.tx != nil {
		return c.tx.QueryRowxContext(ctx, query, args...)
	}
	return c.db.QueryRowxContext(ctx, query, args...)
}

// Commit is a no-op outside of a transaction
func (c *dbConnector) Commit() error {
	if c.tx != nil {
		err := c.tx.Commit()
		if err != nil {
			log.Error().Err(err).Msg(MsgCommitTransactionFailed)
			return ErrCommitTransactionFailed
		}
	}
	return nil
}

func (c *dbConnector) Rollback() error {
	if c.tx != nil {
		err := c.tx.Rollback()
		if err != nil {
			log.Error().Err(err).Msg(MsgRollbackTransactionFailed)
			return ErrRollbackTransactionFailed
		}
	}
	return nil
}

func (c *dbConnector) Ping() error {
	if c.db == nil {
		return ErrDbConnectionNotAvailable
	}
	return c.db.Ping()
}
