package repository

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// AdjustmentRepository define el puerto de persistencia para ajustes de inventario.
type AdjustmentRepository interface {
	Create(adj *entity.Adjustment) error
	GetByID(id string) (*entity.Adjustment, error)
	// GetByIDForUpdate bloquea la fila del ajuste (SELECT FOR UPDATE) dentro de una tx.
	GetByIDForUpdate(id string) (*entity.Adjustment, error)
	// Update persiste estado, campos editables y auditoría, condicionado al estado
	// previo: la fila solo se escribe si su status sigue siendo expected. Si otro
	// proceso la movió entre la carga y la escritura devuelve
	// domain.ErrConcurrentModification. No toca LedgerEntryID.
	Update(adj *entity.Adjustment, expected entity.AdjustmentStatus) error
	// MarkProcessed ejecuta el compare-and-set de process:
	// status approved -> processed y enlaza el asiento, solo si ledger_entry_id es NULL.
	// Devuelve false si ninguna fila cumplió la condición (ya procesado o estado distinto).
	MarkProcessed(id, ledgerEntryID, actor string, at time.Time) (bool, error)
	ListByCompany(companyID, warehouseID string, status *entity.AdjustmentStatus, limit, offset int) ([]*entity.Adjustment, error)
}
