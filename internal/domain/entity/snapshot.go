package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventorySnapshot representa el estado actual materializado de stock para
// (producto, bodega, lote). Derivado del kardex; se actualiza únicamente dentro
// de la misma transacción que inserta el asiento correspondiente, de modo que
// OnHand nunca diverge de la suma de asientos de esa clave.
type InventorySnapshot struct {
	CompanyID   string
	WarehouseID string
	ProductID   string
	LotNumber   string // "" = sin lote

	OnHand       decimal.Decimal
	Reserved     decimal.Decimal
	UnitCost     decimal.Decimal
	MinimumStock decimal.Decimal
	ExpiryDate   *time.Time

	LastCountedBy string
	LastCountedAt *time.Time
	UpdatedAt     time.Time
}

// Available cantidad disponible = existencia menos reservado.
func (s *InventorySnapshot) Available() decimal.Decimal {
	return s.OnHand.Sub(s.Reserved)
}

// LowStock indica si la cantidad disponible está en o por debajo del mínimo configurado.
func (s *InventorySnapshot) LowStock() bool {
	return s.Available().LessThanOrEqual(s.MinimumStock)
}

// ExpiresWithin indica si el lote vence dentro de los próximos días contados desde now.
func (s *InventorySnapshot) ExpiresWithin(now time.Time, days int) bool {
	if s.ExpiryDate == nil {
		return false
	}
	limit := now.AddDate(0, 0, days)
	return !s.ExpiryDate.After(limit)
}
