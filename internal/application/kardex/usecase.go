// Package kardex expone el lado de lectura del inventario: historial de
// movimientos con saldo corrido, stock bajo mínimo y lotes por vencer.
// Consultas puras, sin efectos sobre el kardex.
package kardex

import (
	"context"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// UseCase consultas de solo lectura sobre el kardex y el stock materializado.
type UseCase struct {
	ledgerRepo    repository.LedgerRepository
	snapRepo      repository.SnapshotRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewUseCase construye el caso de uso de lectura.
func NewUseCase(
	ledgerRepo repository.LedgerRepository,
	snapRepo repository.SnapshotRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *UseCase {
	return &UseCase{
		ledgerRepo:    ledgerRepo,
		snapRepo:      snapRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// History devuelve el kardex de un par (producto, bodega) ordenado por
// (movement_date, seq) ascendente, acotado por rango de fechas opcional.
func (uc *UseCase) History(ctx context.Context, companyID, productID, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.LedgerEntry, error) {
	if companyID == "" || productID == "" || warehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkScope(companyID, productID, warehouseID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return uc.ledgerRepo.History(productID, warehouseID, from, to, limit, offset)
}

// Stock devuelve el estado materializado actual de un (producto, bodega, lote).
func (uc *UseCase) Stock(ctx context.Context, companyID, productID, warehouseID, lot string) (*entity.InventorySnapshot, error) {
	if companyID == "" || productID == "" || warehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkScope(companyID, productID, warehouseID); err != nil {
		return nil, err
	}
	return uc.snapRepo.Get(productID, warehouseID, lot)
}

// LowStock lista las filas con disponible <= stock mínimo. warehouseID vacío = todas.
func (uc *UseCase) LowStock(ctx context.Context, companyID, warehouseID string) ([]*entity.InventorySnapshot, error) {
	if companyID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.snapRepo.ListLowStock(companyID, warehouseID)
}

// Expiring lista los lotes que vencen dentro de los próximos días (default 30).
func (uc *UseCase) Expiring(ctx context.Context, companyID string, days int) ([]*entity.InventorySnapshot, error) {
	if companyID == "" {
		return nil, domain.ErrInvalidInput
	}
	if days <= 0 {
		days = 30
	}
	return uc.snapRepo.ListExpiring(companyID, days)
}

func (uc *UseCase) checkScope(companyID, productID, warehouseID string) error {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return domain.ErrForbidden
	}
	warehouse, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return err
	}
	if warehouse == nil {
		return domain.ErrNotFound
	}
	if warehouse.CompanyID != companyID {
		return domain.ErrForbidden
	}
	return nil
}
