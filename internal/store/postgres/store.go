// Package postgres implements the store interfaces on a pgx connection
// pool. Every lifecycle mutation is a single conditional write so concurrent
// requests are serialized by the database, not by application memory.
package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func parseAmount(raw string) (decimal.Decimal, error) {
	return decimal.NewFromString(raw)
}
