package postgres

//go:generate mockgen -source=transactor.go -destination=mocks/transactor_mock.go -package=mocks

import (
	"context"
	"fmt"

	"meetspace/infras/otel"
	"meetspace/shared/constant"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const queryAdvisoryXactLock = "SELECT pg_advisory_xact_lock(hashtext($1))"

// Transactor runs units of work against the write connection.
type Transactor interface {
	// WithTx commits when fn returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
	// LockKey takes a transaction scoped advisory lock derived from key.
	// The lock is released on commit or rollback.
	LockKey(ctx context.Context, tx *sqlx.Tx, key string) error
}

type transactorImpl struct {
	db   *Connection
	otel otel.Otel
}

func NewTransactor(db *Connection, otel otel.Otel) Transactor {
	return &transactorImpl{
		db:   db,
		otel: otel,
	}
}

func (t *transactorImpl) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	ctx, scope := t.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".tx")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	tx, err := t.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()

			panic(p)
		}
	}()

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Msg("failed to rollback transaction")
		}

		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (t *transactorImpl) LockKey(ctx context.Context, tx *sqlx.Tx, key string) (err error) {
	ctx, scope := t.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".lock")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("lock.key", key)

	if _, err = tx.ExecContext(ctx, queryAdvisoryXactLock, key); err != nil {
		return fmt.Errorf("failed to acquire lock %q: %w", key, err)
	}

	return nil
}
