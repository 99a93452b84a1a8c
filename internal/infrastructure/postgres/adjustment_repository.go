package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.AdjustmentRepository = (*AdjustmentRepo)(nil)

// AdjustmentRepo implementación sobre PostgreSQL (usable con pool o tx).
type AdjustmentRepo struct {
	q Querier
}

// NewAdjustmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAdjustmentRepository(q Querier) *AdjustmentRepo {
	return &AdjustmentRepo{q: q}
}

const adjustmentColumns = `
	id, company_id, warehouse_id, product_id, location_id, kind, quantity, unit_cost,
	reason, justification, lot_number, expiry_date, status, rejection_reason, ledger_entry_id,
	created_by, created_at, submitted_by, submitted_at, approved_by, approved_at,
	rejected_by, rejected_at, processed_by, processed_at, cancelled_by, cancelled_at, updated_at`

// Create persiste un ajuste nuevo (estado draft).
func (r *AdjustmentRepo) Create(adj *entity.Adjustment) error {
	if adj.ID == "" {
		adj.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_adjustments (
			id, company_id, warehouse_id, product_id, location_id, kind, quantity, unit_cost,
			reason, justification, lot_number, expiry_date, status,
			created_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		adj.ID, adj.CompanyID, adj.WarehouseID, adj.ProductID, nullStr(adj.LocationID),
		string(adj.Kind), adj.Quantity, adj.UnitCost,
		adj.Reason, nullStr(adj.Justification), nullStr(adj.LotNumber), adj.ExpiryDate,
		string(adj.Status), adj.CreatedBy, adj.CreatedAt, adj.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create adjustment: %w", err)
	}
	return nil
}

// GetByID obtiene un ajuste por ID. Devuelve nil si no existe.
func (r *AdjustmentRepo) GetByID(id string) (*entity.Adjustment, error) {
	query := `SELECT ` + adjustmentColumns + ` FROM inventory_adjustments WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByIDForUpdate obtiene un ajuste bloqueando su fila (SELECT FOR UPDATE).
// Usar solo dentro de una transacción.
func (r *AdjustmentRepo) GetByIDForUpdate(id string) (*entity.Adjustment, error) {
	query := `SELECT ` + adjustmentColumns + ` FROM inventory_adjustments WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// Update persiste estado, campos editables y auditoría, condicionado al estado
// previo (status = expected): una transición que perdió la carrera contra otra
// escritura no pisa la fila. No toca ledger_entry_id: ese enlace solo lo
// escribe MarkProcessed.
func (r *AdjustmentRepo) Update(adj *entity.Adjustment, expected entity.AdjustmentStatus) error {
	query := `
		UPDATE inventory_adjustments SET
			kind = $2, quantity = $3, unit_cost = $4, reason = $5, justification = $6,
			lot_number = $7, expiry_date = $8, location_id = $9, status = $10,
			rejection_reason = $11, submitted_by = $12, submitted_at = $13,
			approved_by = $14, approved_at = $15, rejected_by = $16, rejected_at = $17,
			cancelled_by = $18, cancelled_at = $19, updated_at = $20
		WHERE id = $1 AND status = $21`
	tag, err := r.q.Exec(context.Background(), query,
		adj.ID, string(adj.Kind), adj.Quantity, adj.UnitCost, adj.Reason, nullStr(adj.Justification),
		nullStr(adj.LotNumber), adj.ExpiryDate, nullStr(adj.LocationID), string(adj.Status),
		nullStr(adj.RejectionReason), nullStr(adj.SubmittedBy), adj.SubmittedAt,
		nullStr(adj.ApprovedBy), adj.ApprovedAt, nullStr(adj.RejectedBy), adj.RejectedAt,
		nullStr(adj.CancelledBy), adj.CancelledAt, adj.UpdatedAt, string(expected),
	)
	if err != nil {
		return fmt.Errorf("update adjustment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update adjustment %s: %w", adj.ID, domain.ErrConcurrentModification)
	}
	return nil
}

// MarkProcessed compare-and-set de process: approved -> processed + enlace del asiento,
// solo si ledger_entry_id sigue NULL. Devuelve false si ninguna fila cumplió la condición.
func (r *AdjustmentRepo) MarkProcessed(id, ledgerEntryID, actor string, at time.Time) (bool, error) {
	query := `
		UPDATE inventory_adjustments SET
			status = $2, ledger_entry_id = $3, processed_by = $4, processed_at = $5, updated_at = $5
		WHERE id = $1 AND status = $6 AND ledger_entry_id IS NULL`
	tag, err := r.q.Exec(context.Background(), query,
		id, string(entity.StatusProcessed), ledgerEntryID, actor, at, string(entity.StatusApproved),
	)
	if err != nil {
		return false, fmt.Errorf("mark processed: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ListByCompany lista ajustes de la empresa, opcionalmente por bodega y estado,
// ordenados del más reciente al más antiguo.
func (r *AdjustmentRepo) ListByCompany(companyID, warehouseID string, status *entity.AdjustmentStatus, limit, offset int) ([]*entity.Adjustment, error) {
	query := `SELECT ` + adjustmentColumns + ` FROM inventory_adjustments WHERE company_id = $1`
	args := []any{companyID}
	pos := 2
	if warehouseID != "" {
		query += fmt.Sprintf(" AND warehouse_id = $%d", pos)
		args = append(args, warehouseID)
		pos++
	}
	if status != nil {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, string(*status))
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list adjustments: %w", err)
	}
	defer rows.Close()

	var list []*entity.Adjustment
	for rows.Next() {
		adj, err := scanAdjustment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan adjustment: %w", err)
		}
		list = append(list, adj)
	}
	return list, rows.Err()
}

func (r *AdjustmentRepo) scanOne(row pgx.Row) (*entity.Adjustment, error) {
	adj, err := scanAdjustment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get adjustment: %w", err)
	}
	return adj, nil
}

func scanAdjustment(row pgx.Row) (*entity.Adjustment, error) {
	var a entity.Adjustment
	var kind, status string
	var locationID, justification, lotNumber, rejectionReason, ledgerEntryID *string
	var submittedBy, approvedBy, rejectedBy, processedBy, cancelledBy *string
	err := row.Scan(
		&a.ID, &a.CompanyID, &a.WarehouseID, &a.ProductID, &locationID, &kind, &a.Quantity, &a.UnitCost,
		&a.Reason, &justification, &lotNumber, &a.ExpiryDate, &status, &rejectionReason, &ledgerEntryID,
		&a.CreatedBy, &a.CreatedAt, &submittedBy, &a.SubmittedAt, &approvedBy, &a.ApprovedAt,
		&rejectedBy, &a.RejectedAt, &processedBy, &a.ProcessedAt, &cancelledBy, &a.CancelledAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.Kind = entity.AdjustmentKind(kind)
	a.Status = entity.AdjustmentStatus(status)
	a.LocationID = strOrEmpty(locationID)
	a.Justification = strOrEmpty(justification)
	a.LotNumber = strOrEmpty(lotNumber)
	a.RejectionReason = strOrEmpty(rejectionReason)
	a.LedgerEntryID = strOrEmpty(ledgerEntryID)
	a.SubmittedBy = strOrEmpty(submittedBy)
	a.ApprovedBy = strOrEmpty(approvedBy)
	a.RejectedBy = strOrEmpty(rejectedBy)
	a.ProcessedBy = strOrEmpty(processedBy)
	a.CancelledBy = strOrEmpty(cancelledBy)
	return &a, nil
}

func nullStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
