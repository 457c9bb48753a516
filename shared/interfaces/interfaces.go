package interfaces

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX - общий интерфейс для *pgxpool.Pool, *pgx.Conn и pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DBPool is a DBTX that can also open transactions (*pgxpool.Pool).
type DBPool interface {
	DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}
