package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// CreateAdjustmentRequest body para POST /api/adjustments.
// Quantity es la cantidad capturada; el signo canónico lo fija el gateway según el tipo.
type CreateAdjustmentRequest struct {
	ProductID     string          `json:"product_id" validate:"required,uuid4"`
	WarehouseID   string          `json:"warehouse_id" validate:"required,uuid4"`
	LocationID    string          `json:"location_id" validate:"omitempty,uuid4"`
	Kind          string          `json:"kind" validate:"required"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	Reason        string          `json:"reason" validate:"required,max=500"`
	Justification string          `json:"justification" validate:"omitempty,max=1000"`
	LotNumber     string          `json:"lot_number" validate:"omitempty,max=100"`
	ExpiryDate    *time.Time      `json:"expiry_date"`
}

// EditAdjustmentRequest body para PUT /api/adjustments/:id (solo draft o rejected).
type EditAdjustmentRequest struct {
	Kind          string          `json:"kind" validate:"required"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	Reason        string          `json:"reason" validate:"required,max=500"`
	Justification string          `json:"justification" validate:"omitempty,max=1000"`
	LotNumber     string          `json:"lot_number" validate:"omitempty,max=100"`
	ExpiryDate    *time.Time      `json:"expiry_date"`
	LocationID    string          `json:"location_id" validate:"omitempty,uuid4"`
}

// RejectAdjustmentRequest body para POST /api/adjustments/:id/reject.
// El largo exacto (10–500 runas) lo valida el motor; aquí solo se exige presencia.
type RejectAdjustmentRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// AdjustmentResponse representación HTTP de un ajuste.
type AdjustmentResponse struct {
	ID            string          `json:"id"`
	CompanyID     string          `json:"company_id"`
	WarehouseID   string          `json:"warehouse_id"`
	ProductID     string          `json:"product_id"`
	LocationID    string          `json:"location_id,omitempty"`
	Kind          string          `json:"kind"`
	Quantity      decimal.Decimal `json:"quantity"` // delta firmado canónico
	UnitCost      decimal.Decimal `json:"unit_cost"`
	Reason        string          `json:"reason"`
	Justification string          `json:"justification,omitempty"`
	LotNumber     string          `json:"lot_number,omitempty"`
	ExpiryDate    *time.Time      `json:"expiry_date,omitempty"`

	Status          string `json:"status"`
	RejectionReason string `json:"rejection_reason,omitempty"`
	LedgerEntryID   string `json:"ledger_entry_id,omitempty"`

	CreatedBy   string     `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	SubmittedBy string     `json:"submitted_by,omitempty"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	ApprovedBy  string     `json:"approved_by,omitempty"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	RejectedBy  string     `json:"rejected_by,omitempty"`
	RejectedAt  *time.Time `json:"rejected_at,omitempty"`
	ProcessedBy string     `json:"processed_by,omitempty"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	CancelledBy string     `json:"cancelled_by,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// FromAdjustment mapea la entidad a su representación HTTP.
func FromAdjustment(a *entity.Adjustment) AdjustmentResponse {
	return AdjustmentResponse{
		ID:              a.ID,
		CompanyID:       a.CompanyID,
		WarehouseID:     a.WarehouseID,
		ProductID:       a.ProductID,
		LocationID:      a.LocationID,
		Kind:            string(a.Kind),
		Quantity:        a.Quantity,
		UnitCost:        a.UnitCost,
		Reason:          a.Reason,
		Justification:   a.Justification,
		LotNumber:       a.LotNumber,
		ExpiryDate:      a.ExpiryDate,
		Status:          string(a.Status),
		RejectionReason: a.RejectionReason,
		LedgerEntryID:   a.LedgerEntryID,
		CreatedBy:       a.CreatedBy,
		CreatedAt:       a.CreatedAt,
		SubmittedBy:     a.SubmittedBy,
		SubmittedAt:     a.SubmittedAt,
		ApprovedBy:      a.ApprovedBy,
		ApprovedAt:      a.ApprovedAt,
		RejectedBy:      a.RejectedBy,
		RejectedAt:      a.RejectedAt,
		ProcessedBy:     a.ProcessedBy,
		ProcessedAt:     a.ProcessedAt,
		CancelledBy:     a.CancelledBy,
		CancelledAt:     a.CancelledAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// FromAdjustments mapea una lista de entidades.
func FromAdjustments(list []*entity.Adjustment) []AdjustmentResponse {
	out := make([]AdjustmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, FromAdjustment(a))
	}
	return out
}
