package db

import (
	"context"
	"database/sql"

	libdb "meterdesk/backend/libs/db"
)

// NewPostgres returns the shared tariff database pool.
func NewPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	return libdb.NewPostgresDB(ctx, dsn)
}
