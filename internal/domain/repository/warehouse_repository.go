package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// WarehouseRepository define el puerto de lectura de bodegas usado por el gateway
// para validar existencia y tenant al crear un ajuste.
type WarehouseRepository interface {
	GetByID(id string) (*entity.Warehouse, error)
}
