// Package postgres implementa los puertos de persistencia sobre PostgreSQL
// con pgx. El motor de stock usa SELECT ... FOR UPDATE como exclusión por
// clave y las transiciones de workflow son UPDATE condicionados al estado
// esperado (compare-and-swap).
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier mínimo común entre *pgxpool.Pool y pgx.Tx: los repositorios se
// construyen sobre cualquiera de los dos, así el mismo código sirve dentro y
// fuera de una transacción.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
