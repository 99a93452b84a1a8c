package repository

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// LedgerRepository define el puerto del kardex (almacén de asientos, solo-append).
// Ningún método actualiza ni borra asientos existentes.
type LedgerRepository interface {
	// Append persiste un asiento nuevo. Asigna ID y Seq.
	Append(entry *entity.LedgerEntry) error
	// LatestForKey devuelve el último asiento del par (producto, bodega) según
	// (movement_date, seq), o nil si no hay asientos. Llamar con la fila de stock
	// ya bloqueada para que balance_before sea correcto.
	LatestForKey(productID, warehouseID string) (*entity.LedgerEntry, error)
	// History lista los asientos del par ordenados por (movement_date, seq) ascendente.
	History(productID, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.LedgerEntry, error)
}
