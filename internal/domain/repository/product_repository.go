package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// ProductRepository define el puerto de lectura de productos usado por el gateway
// para validar existencia y tenant al crear un ajuste.
type ProductRepository interface {
	GetByID(id string) (*entity.Product, error)
}
