package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/catalog-admin/internal/domain/entity"
	"github.com/jhoicas/catalog-admin/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool   *pgxpool.Pool
	models []*entity.Model
}

// NewTxRunner construye el runner con el pool y los modelos que expondrá dentro de la tx.
func NewTxRunner(pool *pgxpool.Pool, models ...*entity.Model) *TxRunner {
	return &TxRunner{pool: pool, models: models}
}

// Run inicia una transacción, ejecuta fn con stores atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(stores repository.Stores) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStores(tx, r.models...)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
