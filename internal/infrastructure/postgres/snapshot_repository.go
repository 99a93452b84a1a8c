package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.SnapshotRepository = (*SnapshotRepo)(nil)

// SnapshotRepo implementación del stock materializado sobre PostgreSQL
// (usable con pool o tx). Clave: (product_id, warehouse_id, lot_number),
// con lot_number = '' para stock sin lote.
type SnapshotRepo struct {
	q Querier
}

// NewSnapshotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSnapshotRepository(q Querier) *SnapshotRepo {
	return &SnapshotRepo{q: q}
}

const snapshotColumns = `
	company_id, warehouse_id, product_id, lot_number, on_hand, reserved,
	unit_cost, minimum_stock, expiry_date, last_counted_by, last_counted_at, updated_at`

// Get obtiene la fila de stock. Devuelve una fila en cero si no existe aún.
func (r *SnapshotRepo) Get(productID, warehouseID, lot string) (*entity.InventorySnapshot, error) {
	query := `SELECT ` + snapshotColumns + `
		FROM inventory_stock
		WHERE product_id = $1 AND warehouse_id = $2 AND lot_number = $3`
	snap, err := scanSnapshot(r.q.QueryRow(context.Background(), query, productID, warehouseID, lot))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return emptySnapshot(productID, warehouseID, lot), nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return snap, nil
}

// GetForUpdate bloquea todas las filas de stock del par (producto, bodega) para
// serializar process por clave, y devuelve la del lote pedido. Antes de bloquear
// materializa la fila del lote en cero si aún no existe: SELECT FOR UPDATE sobre
// cero filas no adquiere ningún lock, y el primer movimiento de una clave nueva
// quedaría sin serializar frente a un process concurrente de la misma clave.
// Usar solo dentro de una transacción.
func (r *SnapshotRepo) GetForUpdate(companyID, productID, warehouseID, lot string) (*entity.InventorySnapshot, error) {
	seed := `
		INSERT INTO inventory_stock (
			company_id, warehouse_id, product_id, lot_number, on_hand, reserved,
			unit_cost, minimum_stock, updated_at
		) VALUES ($1, $2, $3, $4, 0, 0, 0, 0, now())
		ON CONFLICT (product_id, warehouse_id, lot_number) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), seed, companyID, warehouseID, productID, lot); err != nil {
		return nil, fmt.Errorf("seed stock row: %w", err)
	}

	query := `SELECT ` + snapshotColumns + `
		FROM inventory_stock
		WHERE product_id = $1 AND warehouse_id = $2
		FOR UPDATE`
	rows, err := r.q.Query(context.Background(), query, productID, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	defer rows.Close()

	var match *entity.InventorySnapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		if snap.LotNumber == lot {
			match = snap
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	if match == nil {
		match = emptySnapshot(productID, warehouseID, lot)
	}
	return match, nil
}

// Upsert inserta o actualiza la fila de stock por (producto, bodega, lote).
func (r *SnapshotRepo) Upsert(snapshot *entity.InventorySnapshot) error {
	query := `
		INSERT INTO inventory_stock (
			company_id, warehouse_id, product_id, lot_number, on_hand, reserved,
			unit_cost, minimum_stock, expiry_date, last_counted_by, last_counted_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (product_id, warehouse_id, lot_number)
		DO UPDATE SET
			on_hand = EXCLUDED.on_hand,
			reserved = EXCLUDED.reserved,
			unit_cost = EXCLUDED.unit_cost,
			expiry_date = EXCLUDED.expiry_date,
			last_counted_by = EXCLUDED.last_counted_by,
			last_counted_at = EXCLUDED.last_counted_at,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		snapshot.CompanyID, snapshot.WarehouseID, snapshot.ProductID, snapshot.LotNumber,
		snapshot.OnHand, snapshot.Reserved, snapshot.UnitCost, snapshot.MinimumStock,
		snapshot.ExpiryDate, nullStr(snapshot.LastCountedBy), snapshot.LastCountedAt, snapshot.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// ListLowStock devuelve filas con disponible <= stock mínimo. warehouseID vacío = todas.
func (r *SnapshotRepo) ListLowStock(companyID, warehouseID string) ([]*entity.InventorySnapshot, error) {
	query := `SELECT ` + snapshotColumns + `
		FROM inventory_stock
		WHERE company_id = $1 AND (on_hand - reserved) <= minimum_stock`
	args := []any{companyID}
	if warehouseID != "" {
		query += ` AND warehouse_id = $2`
		args = append(args, warehouseID)
	}
	query += ` ORDER BY warehouse_id, product_id`
	return r.list(query, args...)
}

// ListExpiring devuelve lotes que vencen dentro de los próximos días.
func (r *SnapshotRepo) ListExpiring(companyID string, days int) ([]*entity.InventorySnapshot, error) {
	query := `SELECT ` + snapshotColumns + `
		FROM inventory_stock
		WHERE company_id = $1
		  AND expiry_date IS NOT NULL
		  AND expiry_date <= now() + make_interval(days => $2)
		  AND on_hand > 0
		ORDER BY expiry_date ASC`
	return r.list(query, companyID, days)
}

func (r *SnapshotRepo) list(query string, args ...any) ([]*entity.InventorySnapshot, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventorySnapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, snap)
	}
	return list, rows.Err()
}

func scanSnapshot(row pgx.Row) (*entity.InventorySnapshot, error) {
	var s entity.InventorySnapshot
	var lastCountedBy *string
	err := row.Scan(
		&s.CompanyID, &s.WarehouseID, &s.ProductID, &s.LotNumber, &s.OnHand, &s.Reserved,
		&s.UnitCost, &s.MinimumStock, &s.ExpiryDate, &lastCountedBy, &s.LastCountedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.LastCountedBy = strOrEmpty(lastCountedBy)
	return &s, nil
}

func emptySnapshot(productID, warehouseID, lot string) *entity.InventorySnapshot {
	return &entity.InventorySnapshot{
		ProductID:    productID,
		WarehouseID:  warehouseID,
		LotNumber:    lot,
		OnHand:       decimal.Zero,
		Reserved:     decimal.Zero,
		UnitCost:     decimal.Zero,
		MinimumStock: decimal.Zero,
	}
}
