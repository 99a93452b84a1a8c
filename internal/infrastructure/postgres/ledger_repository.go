package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implementación del kardex sobre PostgreSQL (usable con pool o tx).
// La tabla inventory_ledger es solo-append: no hay UPDATE ni DELETE en este adaptador.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

const ledgerColumns = `
	id, seq, company_id, warehouse_id, product_id, lot_number, kind,
	quantity_in, quantity_out, unit_cost, balance_before, balance_after,
	source_type, source_id, movement_date, created_by, created_at`

// Append inserta un asiento nuevo. seq lo asigna la BD (BIGSERIAL) y se devuelve al entity.
func (r *LedgerRepo) Append(entry *entity.LedgerEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	var sourceType, sourceID *string
	if entry.Source != nil {
		st := string(entry.Source.Type)
		sourceType, sourceID = &st, &entry.Source.ID
	}
	query := `
		INSERT INTO inventory_ledger (
			id, company_id, warehouse_id, product_id, lot_number, kind,
			quantity_in, quantity_out, unit_cost, balance_before, balance_after,
			source_type, source_id, movement_date, created_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING seq`
	err := r.q.QueryRow(context.Background(), query,
		entry.ID, entry.CompanyID, entry.WarehouseID, entry.ProductID, nullStr(entry.LotNumber),
		string(entry.Kind), entry.QuantityIn, entry.QuantityOut, entry.UnitCost,
		entry.BalanceBefore, entry.BalanceAfter,
		sourceType, sourceID, entry.MovementDate, entry.CreatedBy, entry.CreatedAt,
	).Scan(&entry.Seq)
	if err != nil {
		return fmt.Errorf("append ledger entry: %w", err)
	}
	return nil
}

// LatestForKey devuelve el último asiento del par (producto, bodega) según
// (movement_date, seq), o nil si el kardex está vacío para esa clave.
func (r *LedgerRepo) LatestForKey(productID, warehouseID string) (*entity.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + `
		FROM inventory_ledger
		WHERE product_id = $1 AND warehouse_id = $2
		ORDER BY movement_date DESC, seq DESC
		LIMIT 1`
	entry, err := scanLedgerEntry(r.q.QueryRow(context.Background(), query, productID, warehouseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest ledger entry: %w", err)
	}
	return entry, nil
}

// History lista los asientos del par ordenados por (movement_date, seq) ascendente.
func (r *LedgerRepo) History(productID, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + `
		FROM inventory_ledger
		WHERE product_id = $1 AND warehouse_id = $2`
	args := []any{productID, warehouseID}
	pos := 3
	if from != nil {
		query += fmt.Sprintf(" AND movement_date >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND movement_date <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY movement_date ASC, seq ASC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("ledger history: %w", err)
	}
	defer rows.Close()

	var list []*entity.LedgerEntry
	for rows.Next() {
		entry, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		list = append(list, entry)
	}
	return list, rows.Err()
}

func scanLedgerEntry(row pgx.Row) (*entity.LedgerEntry, error) {
	var e entity.LedgerEntry
	var kind string
	var lotNumber, sourceType, sourceID *string
	err := row.Scan(
		&e.ID, &e.Seq, &e.CompanyID, &e.WarehouseID, &e.ProductID, &lotNumber, &kind,
		&e.QuantityIn, &e.QuantityOut, &e.UnitCost, &e.BalanceBefore, &e.BalanceAfter,
		&sourceType, &sourceID, &e.MovementDate, &e.CreatedBy, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Kind = entity.MovementKind(kind)
	e.LotNumber = strOrEmpty(lotNumber)
	if sourceType != nil && sourceID != nil {
		e.Source = &entity.SourceRef{Type: entity.SourceType(*sourceType), ID: *sourceID}
	}
	return &e, nil
}
