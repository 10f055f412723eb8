package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	apperrors "statbook/internal/errors"
)

// Connect opens and pings a PostgreSQL connection
func Connect(ctx context.Context, url string) (*sqlx.DB, error) {
	if url == "" {
		return nil, apperrors.ConfigInvalid("DATABASE_URL is required for SQL datasets")
	}

	db, err := sqlx.ConnectContext(ctx, "postgres", url)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to connect to database", err)
	}
	return db, nil
}

// describe adds the PostgreSQL condition name to driver errors
func describe(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Sprintf("%s (%s)", pqErr.Message, pqErr.Code.Name())
	}
	return err.Error()
}
