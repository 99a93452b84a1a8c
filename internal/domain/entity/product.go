package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario.
// Cost es el costo promedio; el stock por bodega vive en InventorySnapshot.
type Product struct {
	ID          string
	CompanyID   string
	SKU         string // código único por empresa
	Name        string
	Description string
	Cost        decimal.Decimal
	UnitMeasure string
	Perishable  bool // si maneja lotes con vencimiento
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
