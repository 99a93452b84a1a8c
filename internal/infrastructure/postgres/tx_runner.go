package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Almacen-api/internal/application/adjustment"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Ensure TxRunner implements adjustment.TxRunner.
var _ adjustment.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Conflictos de serialización (lock de la fila de stock) salen como domain.ErrConcurrentModification.
func (r *TxRunner) Run(ctx context.Context, fn func(
	adjRepo repository.AdjustmentRepository,
	ledgerRepo repository.LedgerRepository,
	snapRepo repository.SnapshotRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	adjRepo := NewAdjustmentRepository(tx)
	ledgerRepo := NewLedgerRepository(tx)
	snapRepo := NewSnapshotRepository(tx)

	if err := fn(adjRepo, ledgerRepo, snapRepo); err != nil {
		return mapConcurrencyError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return mapConcurrencyError(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}
