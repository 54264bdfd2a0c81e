package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/apperrors"
)

// PostgreSQL error codes the ledger reacts to.
const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// Constraint names from the migrations.
const (
	constraintAccountName   = "accounts_tenant_name_key"
	constraintVoucherNumber = "vouchers_tenant_number_key"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction with the given options
func (r *BaseRepository) Begin(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error) {
	tx, err := r.Pool.BeginTx(ctx, opts)
	if err != nil {
		if isConflict(err) {
			return nil, fmt.Errorf("failed to begin transaction: %w", apperrors.ErrConcurrentModification)
		}
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		if isConflict(err) {
			return fmt.Errorf("failed to commit transaction: %w", apperrors.ErrConcurrentModification)
		}
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// WithTx runs fn inside a transaction, committing on success and rolling back otherwise.
func (r *BaseRepository) WithTx(ctx context.Context, opts pgx.TxOptions, fn func(tx pgx.Tx) error) error {
	tx, err := r.Begin(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		_ = r.Rollback(context.WithoutCancel(ctx), tx)
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func pgErrorCode(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// isConflict reports whether err is a serialization failure or deadlock that a retry can resolve.
func isConflict(err error) bool {
	pgErr, ok := pgErrorCode(err)
	return ok && (pgErr.Code == pgSerializationFailure || pgErr.Code == pgDeadlockDetected)
}

func isUniqueViolation(err error, constraint string) bool {
	pgErr, ok := pgErrorCode(err)
	return ok && pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == constraint
}

func isForeignKeyViolation(err error) bool {
	pgErr, ok := pgErrorCode(err)
	return ok && pgErr.Code == pgForeignKeyViolation
}

// mapWriteConflict turns retryable driver errors into ErrConcurrentModification.
func mapWriteConflict(err error, what string) error {
	if isConflict(err) || isUniqueViolation(err, constraintVoucherNumber) {
		return fmt.Errorf("%s: %w", what, errors.Join(apperrors.ErrConcurrentModification, err))
	}
	return fmt.Errorf("%s: %w", what, err)
}
