package mysql_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	gomysql "github.com/go-sql-driver/mysql"

	"polimanage/internal/domain"
	mysqlrepo "polimanage/internal/storage/mysql"
)

func errorsIsUnavailable(err error) bool { return errors.Is(err, domain.ErrStorageUnavailable) }

func TestOptions_DSN(t *testing.T) {
	dsn := mysqlrepo.Options{Host: "db", Port: 3306, User: "u", Password: "p@ss", Name: "polimanage"}.DSN()

	cfg, err := gomysql.ParseDSN(dsn)
	if err != nil {
		t.Fatalf("ParseDSN(%q): %v", dsn, err)
	}
	if cfg.Addr != "db:3306" || cfg.User != "u" || cfg.Passwd != "p@ss" || cfg.DBName != "polimanage" {
		t.Fatalf("unexpected config from %q: %+v", dsn, cfg)
	}
	if !cfg.ParseTime || cfg.Loc != time.UTC {
		t.Fatalf("parseTime/loc not set in %q", dsn)
	}
}

func TestRepo_UnreachableServerIsUnavailable(t *testing.T) {
	db, err := sql.Open("mysql", mysqlrepo.Options{Host: "127.0.0.1", Port: 1, User: "u", Name: "x"}.DSN())
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err = mysqlrepo.New(db).Clubs().GetAll(ctx)
	if !errorsIsUnavailable(err) {
		t.Fatalf("want storage unavailable, got %v", err)
	}
}
