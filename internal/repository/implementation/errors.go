package implementation

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"

	"notepad-be/internal/pkg/apperror"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// TranslateError maps driver failures that are safe to retry onto
// TransientStorageError and wraps everything else with the operation name.
func TranslateError(op string, err error) error {
	if err == nil {
		return nil
	}
	if isTransient(err) {
		return apperror.NewTransientStorageError(op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	if errors.Is(err, driver.ErrBadConn) || pgconn.Timeout(err) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgerrcode.IsConnectionException(pgErr.Code) ||
			pgerrcode.IsOperatorIntervention(pgErr.Code) ||
			pgErr.Code == pgerrcode.SerializationFailure ||
			pgErr.Code == pgerrcode.DeadlockDetected
	}

	var connErr *pgconn.ConnectError
	return errors.As(err, &connErr)
}
