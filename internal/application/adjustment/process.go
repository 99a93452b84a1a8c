package adjustment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	machine "github.com/jhoicas/Almacen-api/internal/domain/adjustment"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/kardex"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Process consuma un ajuste aprobado: inserta el asiento de kardex, actualiza el
// stock materializado y enlaza el asiento al ajuste, todo en una transacción.
//
// Orden dentro de la tx:
//  1. bloquear la fila del ajuste y re-evaluar el guard (un reintento concurrente
//     espera aquí y sale con ErrAlreadyProcessed);
//  2. materializar (si falta) y bloquear las filas de stock del par
//     (producto, bodega); serializa process por clave, claves distintas no compiten;
//  3. leer el último asiento del par para encadenar balance_before/balance_after;
//  4. insertar el asiento, recalcular el stock y ejecutar el compare-and-set
//     approved -> processed con ledger_entry_id IS NULL.
//
// Un fallo en cualquier paso revierte la tx completa: el ajuste queda en approved
// y la operación puede reintentarse. Conflictos de serialización llegan como
// domain.ErrConcurrentModification desde el TxRunner.
func (uc *UseCase) Process(ctx context.Context, companyID, actorID, id string) (*entity.Adjustment, error) {
	// Chequeo de alcance y guard fuera de la tx: respuesta rápida para los casos
	// obvios. La decisión definitiva se repite bajo el lock.
	adj, err := uc.load(companyID, id)
	if err != nil {
		return nil, err
	}
	if err := machine.CanProcess(adj); err != nil {
		return nil, err
	}

	var processed *entity.Adjustment
	err = uc.txRunner.Run(ctx, func(
		adjRepo repository.AdjustmentRepository,
		ledgerRepo repository.LedgerRepository,
		snapRepo repository.SnapshotRepository,
	) error {
		adj, err := adjRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if adj == nil {
			return domain.ErrNotFound
		}
		if adj.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if err := machine.CanProcess(adj); err != nil {
			return err
		}

		snap, err := snapRepo.GetForUpdate(adj.CompanyID, adj.ProductID, adj.WarehouseID, adj.LotNumber)
		if err != nil {
			return err
		}

		last, err := ledgerRepo.LatestForKey(adj.ProductID, adj.WarehouseID)
		if err != nil {
			return err
		}
		balanceBefore := decimal.Zero
		if last != nil {
			balanceBefore = last.BalanceAfter
		}

		now := uc.now()
		entry := buildLedgerEntry(adj, balanceBefore, actorID, now)
		if err := ledgerRepo.Append(entry); err != nil {
			return err
		}

		applySnapshotDelta(snap, adj, entry, now)
		if err := snapRepo.Upsert(snap); err != nil {
			return err
		}

		// Compare-and-set: la condición (status approved, ledger_entry_id NULL) se
		// evalúa en la misma tx que insertó el asiento, no como pre-chequeo aparte.
		ok, err := adjRepo.MarkProcessed(adj.ID, entry.ID, actorID, now)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrAlreadyProcessed
		}

		if err := machine.MarkProcessed(adj, entry.ID, actorID, now); err != nil {
			return err
		}
		processed = adj
		return nil
	})
	if err != nil {
		return nil, err
	}
	return processed, nil
}

// buildLedgerEntry arma el asiento de kardex a partir del delta firmado canónico.
// El signo ya fue fijado al crear el ajuste; aquí solo se reparte en entrada/salida.
func buildLedgerEntry(adj *entity.Adjustment, balanceBefore decimal.Decimal, actorID string, now time.Time) *entity.LedgerEntry {
	entry := &entity.LedgerEntry{
		ID:            uuid.New().String(),
		CompanyID:     adj.CompanyID,
		WarehouseID:   adj.WarehouseID,
		ProductID:     adj.ProductID,
		LotNumber:     adj.LotNumber,
		Kind:          entity.MovementAdjustment,
		UnitCost:      adj.UnitCost,
		BalanceBefore: balanceBefore,
		Source:        &entity.SourceRef{Type: entity.SourceAdjustment, ID: adj.ID},
		MovementDate:  now,
		CreatedBy:     actorID,
		CreatedAt:     now,
	}
	if adj.Quantity.IsPositive() {
		entry.QuantityIn = adj.Quantity
	} else {
		entry.QuantityOut = adj.Quantity.Neg()
	}
	entry.BalanceAfter = balanceBefore.Add(entry.QuantityIn).Sub(entry.QuantityOut)
	return entry
}

// applySnapshotDelta recalcula el stock materializado dentro de la misma tx que
// insertó el asiento. Entradas recalculan el costo promedio ponderado; los conteos
// físicos dejan rastro de quién contó y cuándo.
func applySnapshotDelta(snap *entity.InventorySnapshot, adj *entity.Adjustment, entry *entity.LedgerEntry, now time.Time) {
	if adj.Quantity.IsPositive() {
		snap.UnitCost = kardex.WeightedAverageCost(snap.OnHand, snap.UnitCost, adj.Quantity, adj.UnitCost)
	}
	snap.CompanyID = adj.CompanyID
	snap.WarehouseID = adj.WarehouseID
	snap.ProductID = adj.ProductID
	snap.LotNumber = adj.LotNumber
	snap.OnHand = snap.OnHand.Add(entry.Delta())
	if adj.ExpiryDate != nil {
		snap.ExpiryDate = adj.ExpiryDate
	}
	if adj.Kind == entity.KindPhysicalCount {
		snap.LastCountedBy = adj.CreatedBy
		snap.LastCountedAt = &now
	}
	snap.UpdatedAt = now
}
