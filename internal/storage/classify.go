package storage

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"

	"polimanage/internal/domain"
)

// Classify turns a driver error into the domain taxonomy: anything that means
// the database could not be reached in time becomes *domain.StorageUnavailableError,
// everything else is wrapped with the operation name. Mapper errors pass through.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var missing *domain.MissingFieldError
	if errors.As(err, &missing) || errors.Is(err, domain.ErrInvalidField) || errors.Is(err, domain.ErrStorageUnavailable) {
		return err
	}
	if unavailable(err) {
		return &domain.StorageUnavailableError{Op: op, Err: err}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func unavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) || errors.Is(err, mysql.ErrInvalidConn) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	if pgconn.Timeout(err) || pgconn.SafeToRetry(err) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// class 08 connection exception, 57P0x shutdown, 53300 too_many_connections
		return strings.HasPrefix(pgErr.Code, "08") || strings.HasPrefix(pgErr.Code, "57P0") || pgErr.Code == "53300"
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		// ER_CON_COUNT_ERROR, ER_SERVER_SHUTDOWN
		return myErr.Number == 1040 || myErr.Number == 1053
	}
	return false
}
