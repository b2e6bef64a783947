package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/partnerflow/partnerflow/internal/config"
	ierr "github.com/partnerflow/partnerflow/internal/errors"
	"github.com/partnerflow/partnerflow/internal/logger"
)

// IClient is the interface for the postgres client
type IClient interface {
	DB() *sqlx.DB
	WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
	Close() error
}

type client struct {
	db     *sqlx.DB
	logger *logger.Logger
}

// NewClient opens a connection pool against the configured postgres instance
func NewClient(cfg *config.Configuration, log *logger.Logger) (IClient, error) {
	db, err := sqlx.Connect("postgres", cfg.Postgres.GetDSN())
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to connect to postgres").
			Mark(ierr.ErrDatabase)
	}

	log.Infow("connected to postgres", "host", cfg.Postgres.Host, "database", cfg.Postgres.DBName)

	return &client{db: db, logger: log}, nil
}

func (c *client) DB() *sqlx.DB {
	return c.db
}

// WithTx runs fn inside a transaction, rolling back on error
func (c *client) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to begin transaction").
			Mark(ierr.ErrDatabase)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			c.logger.Errorw("failed to rollback transaction", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to commit transaction").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (c *client) Close() error {
	return c.db.Close()
}
