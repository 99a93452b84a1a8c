package adjustment

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza que el asiento de kardex, la actualización del stock
// materializado y el enlace del ajuste se confirmen o reviertan como una sola unidad.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		adjRepo repository.AdjustmentRepository,
		ledgerRepo repository.LedgerRepository,
		snapRepo repository.SnapshotRepository,
	) error) error
}
