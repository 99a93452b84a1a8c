package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustmentStatus estado del ciclo de vida de un ajuste de inventario.
// Enum cerrado: toda transición pasa por el motor de estados (domain/adjustment),
// nunca por comparación de strings sueltos.
type AdjustmentStatus string

const (
	StatusDraft     AdjustmentStatus = "draft"     // borrador, editable
	StatusPending   AdjustmentStatus = "pending"   // enviado, espera aprobación
	StatusApproved  AdjustmentStatus = "approved"  // aprobado, listo para procesar
	StatusRejected  AdjustmentStatus = "rejected"  // rechazado con motivo; puede editarse y reenviarse
	StatusProcessed AdjustmentStatus = "processed" // terminal: movimiento de kardex generado
	StatusCancelled AdjustmentStatus = "cancelled" // terminal: anulado sin efecto en inventario
)

// Valid indica si el valor corresponde a un estado conocido.
func (s AdjustmentStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusApproved, StatusRejected, StatusProcessed, StatusCancelled:
		return true
	}
	return false
}

// Terminal indica si el estado no admite más transiciones.
func (s AdjustmentStatus) Terminal() bool {
	return s == StatusProcessed || s == StatusCancelled
}

// AdjustmentKind naturaleza del ajuste. Determina el signo del delta al crear.
type AdjustmentKind string

const (
	KindPositive      AdjustmentKind = "positive"       // entrada manual
	KindNegative      AdjustmentKind = "negative"       // salida manual
	KindDamage        AdjustmentKind = "damage"         // producto dañado
	KindExpiry        AdjustmentKind = "expiry"         // producto vencido
	KindLoss          AdjustmentKind = "loss"           // pérdida/hurto
	KindCorrection    AdjustmentKind = "correction"     // corrección contable
	KindReturn        AdjustmentKind = "return"         // devolución al stock
	KindPhysicalCount AdjustmentKind = "physical_count" // diferencia de conteo físico
	KindOther         AdjustmentKind = "other"
)

// Valid indica si el valor corresponde a un tipo de ajuste conocido.
func (k AdjustmentKind) Valid() bool {
	switch k {
	case KindPositive, KindNegative, KindDamage, KindExpiry, KindLoss,
		KindCorrection, KindReturn, KindPhysicalCount, KindOther:
		return true
	}
	return false
}

// NormalizeDelta calcula el delta firmado canónico a partir del tipo y la cantidad capturada.
// Se ejecuta una sola vez, al crear o editar el ajuste; el signo nunca se vuelve
// a derivar del tipo aguas abajo.
//
//   - damage/expiry/loss/negative: la magnitud se almacena con efecto negativo.
//   - positive/return: efecto positivo.
//   - correction/physical_count/other: se respeta el signo capturado.
func NormalizeDelta(kind AdjustmentKind, quantity decimal.Decimal) decimal.Decimal {
	switch kind {
	case KindNegative, KindDamage, KindExpiry, KindLoss:
		return quantity.Abs().Neg()
	case KindPositive, KindReturn:
		return quantity.Abs()
	case KindCorrection, KindPhysicalCount, KindOther:
		return quantity
	}
	return quantity
}

// Adjustment representa una corrección manual de inventario para un par (producto, bodega).
// CompanyID se desnormaliza al crear para que el gateway valide el tenant sin joins.
type Adjustment struct {
	ID          string
	CompanyID   string
	WarehouseID string
	ProductID   string
	LocationID  string // ubicación de almacenamiento, opcional

	Kind          AdjustmentKind
	Quantity      decimal.Decimal // delta firmado canónico (ver NormalizeDelta)
	UnitCost      decimal.Decimal
	Reason        string
	Justification string // acción correctiva, opcional
	LotNumber     string // opcional
	ExpiryDate    *time.Time

	Status          AdjustmentStatus
	RejectionReason string
	LedgerEntryID   string // se setea si y solo si Status == processed

	CreatedBy   string
	CreatedAt   time.Time
	SubmittedBy string
	SubmittedAt *time.Time
	ApprovedBy  string
	ApprovedAt  *time.Time
	RejectedBy  string
	RejectedAt  *time.Time
	ProcessedBy string
	ProcessedAt *time.Time
	CancelledBy string
	CancelledAt *time.Time
	UpdatedAt   time.Time
}
