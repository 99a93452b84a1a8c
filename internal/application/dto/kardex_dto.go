package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// LedgerEntryResponse representación HTTP de un asiento de kardex.
type LedgerEntryResponse struct {
	ID            string          `json:"id"`
	Seq           int64           `json:"seq"`
	CompanyID     string          `json:"company_id"`
	WarehouseID   string          `json:"warehouse_id"`
	ProductID     string          `json:"product_id"`
	LotNumber     string          `json:"lot_number,omitempty"`
	Kind          string          `json:"kind"`
	QuantityIn    decimal.Decimal `json:"quantity_in"`
	QuantityOut   decimal.Decimal `json:"quantity_out"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	SourceType    string          `json:"source_type,omitempty"`
	SourceID      string          `json:"source_id,omitempty"`
	MovementDate  time.Time       `json:"movement_date"`
	CreatedBy     string          `json:"created_by"`
}

// FromLedgerEntry mapea la entidad a su representación HTTP.
func FromLedgerEntry(e *entity.LedgerEntry) LedgerEntryResponse {
	r := LedgerEntryResponse{
		ID:            e.ID,
		Seq:           e.Seq,
		CompanyID:     e.CompanyID,
		WarehouseID:   e.WarehouseID,
		ProductID:     e.ProductID,
		LotNumber:     e.LotNumber,
		Kind:          string(e.Kind),
		QuantityIn:    e.QuantityIn,
		QuantityOut:   e.QuantityOut,
		UnitCost:      e.UnitCost,
		BalanceBefore: e.BalanceBefore,
		BalanceAfter:  e.BalanceAfter,
		MovementDate:  e.MovementDate,
		CreatedBy:     e.CreatedBy,
	}
	if e.Source != nil {
		r.SourceType = string(e.Source.Type)
		r.SourceID = e.Source.ID
	}
	return r
}

// FromLedgerEntries mapea una lista de asientos.
func FromLedgerEntries(list []*entity.LedgerEntry) []LedgerEntryResponse {
	out := make([]LedgerEntryResponse, 0, len(list))
	for _, e := range list {
		out = append(out, FromLedgerEntry(e))
	}
	return out
}

// SnapshotResponse representación HTTP del stock materializado.
type SnapshotResponse struct {
	CompanyID     string          `json:"company_id"`
	WarehouseID   string          `json:"warehouse_id"`
	ProductID     string          `json:"product_id"`
	LotNumber     string          `json:"lot_number,omitempty"`
	OnHand        decimal.Decimal `json:"on_hand"`
	Reserved      decimal.Decimal `json:"reserved"`
	Available     decimal.Decimal `json:"available"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	MinimumStock  decimal.Decimal `json:"minimum_stock"`
	ExpiryDate    *time.Time      `json:"expiry_date,omitempty"`
	LastCountedBy string          `json:"last_counted_by,omitempty"`
	LastCountedAt *time.Time      `json:"last_counted_at,omitempty"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// FromSnapshot mapea la entidad a su representación HTTP.
func FromSnapshot(s *entity.InventorySnapshot) SnapshotResponse {
	return SnapshotResponse{
		CompanyID:     s.CompanyID,
		WarehouseID:   s.WarehouseID,
		ProductID:     s.ProductID,
		LotNumber:     s.LotNumber,
		OnHand:        s.OnHand,
		Reserved:      s.Reserved,
		Available:     s.Available(),
		UnitCost:      s.UnitCost,
		MinimumStock:  s.MinimumStock,
		ExpiryDate:    s.ExpiryDate,
		LastCountedBy: s.LastCountedBy,
		LastCountedAt: s.LastCountedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// FromSnapshots mapea una lista de filas de stock.
func FromSnapshots(list []*entity.InventorySnapshot) []SnapshotResponse {
	out := make([]SnapshotResponse, 0, len(list))
	for _, s := range list {
		out = append(out, FromSnapshot(s))
	}
	return out
}
