package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementKind tipo de movimiento de kardex.
type MovementKind string

const (
	MovementEntry       MovementKind = "entry"        // entrada (compra, donación)
	MovementExit        MovementKind = "exit"         // salida (despacho)
	MovementTransferIn  MovementKind = "transfer_in"  // traslado entrante
	MovementTransferOut MovementKind = "transfer_out" // traslado saliente
	MovementAdjustment  MovementKind = "adjustment"   // ajuste manual
)

// Valid indica si el valor corresponde a un tipo de movimiento conocido.
func (k MovementKind) Valid() bool {
	switch k {
	case MovementEntry, MovementExit, MovementTransferIn, MovementTransferOut, MovementAdjustment:
		return true
	}
	return false
}

// SourceType discriminante del documento origen de un movimiento.
// Unión etiquetada en lugar de una FK polimórfica sin tipo: evita referencias ambiguas.
type SourceType string

const (
	SourceAdjustment SourceType = "adjustment"
	SourcePurchase   SourceType = "purchase"
	SourceDispatch   SourceType = "dispatch"
	SourceTransfer   SourceType = "transfer"
	SourceDonation   SourceType = "donation"
)

// SourceRef referencia tipada al documento que originó el movimiento.
type SourceRef struct {
	Type SourceType
	ID   string
}

// LedgerEntry es un asiento inmutable del kardex: registra un cambio de cantidad
// para un par (producto, bodega) con saldo corrido. Nunca se actualiza ni se borra;
// las correcciones se hacen con asientos compensatorios.
//
// Invariantes:
//   - exactamente uno de QuantityIn/QuantityOut es distinto de cero;
//   - BalanceAfter = BalanceBefore + QuantityIn - QuantityOut;
//   - BalanceBefore coincide con el BalanceAfter del asiento anterior del mismo par,
//     ordenando por (MovementDate, Seq); el primer asiento parte de 0.
type LedgerEntry struct {
	ID          string
	Seq         int64 // BIGSERIAL: orden total dentro del kardex junto con MovementDate
	CompanyID   string
	WarehouseID string
	ProductID   string
	LotNumber   string // opcional

	Kind          MovementKind
	QuantityIn    decimal.Decimal
	QuantityOut   decimal.Decimal
	UnitCost      decimal.Decimal
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal

	Source       *SourceRef // documento origen, opcional
	MovementDate time.Time
	CreatedBy    string
	CreatedAt    time.Time
}

// Delta devuelve el efecto neto del asiento (entrada positiva, salida negativa).
func (e *LedgerEntry) Delta() decimal.Decimal {
	return e.QuantityIn.Sub(e.QuantityOut)
}
