package db

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
)

// Open prepares the process-wide MySQL handle without dialing. Connections
// are made lazily, so a store that is down only fails the calls that need it.
func Open(dsn string) (*sql.DB, error) {
	conn, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open mysql")
	}
	conn.SetConnMaxLifetime(3 * time.Minute)
	return conn, nil
}

// Connect is Open followed by a ping, for callers that cannot do anything
// useful without the store.
func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	conn, err := Open(dsn)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "ping mysql")
	}
	return conn, nil
}
