package storage_test

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polimanage/internal/domain"
	"polimanage/internal/storage"
)

func TestClassify_Unavailable(t *testing.T) {
	cases := map[string]error{
		"deadline":        context.DeadlineExceeded,
		"canceled":        fmt.Errorf("query: %w", context.Canceled),
		"bad conn":        driver.ErrBadConn,
		"mysql invalid":   mysql.ErrInvalidConn,
		"net":             &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")},
		"pg admin stop":   &pgconn.PgError{Code: "57P01"},
		"pg conn failure": &pgconn.PgError{Code: "08006"},
		"pg too many":     &pgconn.PgError{Code: "53300"},
		"mysql too many":  &mysql.MySQLError{Number: 1040},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			err := storage.Classify("clubs.GetAll", in)
			var su *domain.StorageUnavailableError
			require.ErrorAs(t, err, &su)
			assert.Equal(t, "clubs.GetAll", su.Op)
			assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
			assert.ErrorIs(t, err, in)
		})
	}
}

func TestClassify_Other(t *testing.T) {
	syntax := &pgconn.PgError{Code: "42601", Message: "syntax error"}
	err := storage.Classify("pistas.GetAll", syntax)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrStorageUnavailable)
	assert.ErrorIs(t, err, syntax)
	assert.Contains(t, err.Error(), "pistas.GetAll")
}

func TestClassify_PassThrough(t *testing.T) {
	assert.NoError(t, storage.Classify("op", nil))

	mf := &domain.MissingFieldError{Entity: "club", Field: "slug"}
	assert.Same(t, mf, storage.Classify("op", mf))

	su := &domain.StorageUnavailableError{Op: "inner", Err: context.DeadlineExceeded}
	assert.Same(t, su, storage.Classify("outer", su))
}
