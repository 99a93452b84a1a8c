package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// SnapshotRepository define el puerto para el stock materializado por
// (producto, bodega, lote). Las escrituras ocurren solo dentro de la misma
// transacción que inserta el asiento de kardex correspondiente.
type SnapshotRepository interface {
	Get(productID, warehouseID, lot string) (*entity.InventorySnapshot, error)
	// GetForUpdate materializa la fila del lote si aún no existe y bloquea las del
	// par (SELECT FOR UPDATE) para serializar process por clave. Sin la fila
	// sembrada el primer movimiento de una clave no tendría nada que bloquear.
	GetForUpdate(companyID, productID, warehouseID, lot string) (*entity.InventorySnapshot, error)
	Upsert(snapshot *entity.InventorySnapshot) error
	// ListLowStock devuelve filas con disponible <= stock mínimo. warehouseID vacío = todas las bodegas.
	ListLowStock(companyID, warehouseID string) ([]*entity.InventorySnapshot, error)
	// ListExpiring devuelve lotes que vencen dentro de los próximos días.
	ListExpiring(companyID string, days int) ([]*entity.InventorySnapshot, error)
}
