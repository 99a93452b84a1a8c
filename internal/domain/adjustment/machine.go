// Package adjustment implementa la máquina de estados del flujo de aprobación
// de ajustes de inventario (servicio de dominio, sin dependencias de infraestructura).
//
// Tabla de transiciones:
//
//	draft     --submit-->  pending
//	pending   --approve--> approved
//	pending   --reject-->  rejected   (motivo 10–500 caracteres)
//	approved  --process--> processed  (terminal; el asiento de kardex lo enlaza el gateway)
//	rejected  --submit-->  pending    (reenvío tras edición)
//	draft|pending|approved --cancel--> cancelled (terminal)
//	draft|rejected --edit--> (mismo estado, solo mutación de campos)
//
// Toda transición no permitida retorna domain.ErrInvalidTransition; ningún guard
// falla en silencio.
package adjustment

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// Límites del motivo de rechazo, en caracteres (runas).
const (
	RejectionReasonMin = 10
	RejectionReasonMax = 500
)

// Submit pasa un ajuste de draft o rejected a pending y registra el actor.
// El reenvío desde rejected conserva el motivo de rechazo anterior como historial.
func Submit(adj *entity.Adjustment, actor string, now time.Time) error {
	switch adj.Status {
	case entity.StatusDraft, entity.StatusRejected:
		adj.Status = entity.StatusPending
		adj.SubmittedBy = actor
		adj.SubmittedAt = &now
		adj.UpdatedAt = now
		return nil
	case entity.StatusPending, entity.StatusApproved, entity.StatusProcessed, entity.StatusCancelled:
		return transitionError("submit", adj.Status)
	}
	return unknownStatus(adj.Status)
}

// Approve pasa un ajuste de pending a approved.
func Approve(adj *entity.Adjustment, actor string, now time.Time) error {
	switch adj.Status {
	case entity.StatusPending:
		adj.Status = entity.StatusApproved
		adj.ApprovedBy = actor
		adj.ApprovedAt = &now
		adj.UpdatedAt = now
		return nil
	case entity.StatusDraft, entity.StatusApproved, entity.StatusRejected, entity.StatusProcessed, entity.StatusCancelled:
		return transitionError("approve", adj.Status)
	}
	return unknownStatus(adj.Status)
}

// Reject pasa un ajuste de pending a rejected. El motivo es obligatorio,
// entre RejectionReasonMin y RejectionReasonMax caracteres.
func Reject(adj *entity.Adjustment, actor, reason string, now time.Time) error {
	switch adj.Status {
	case entity.StatusPending:
		if n := utf8.RuneCountInString(reason); n < RejectionReasonMin || n > RejectionReasonMax {
			return fmt.Errorf("%w: el motivo de rechazo debe tener entre %d y %d caracteres (tiene %d)",
				domain.ErrValidationFailed, RejectionReasonMin, RejectionReasonMax, n)
		}
		adj.Status = entity.StatusRejected
		adj.RejectedBy = actor
		adj.RejectedAt = &now
		adj.RejectionReason = reason
		adj.UpdatedAt = now
		return nil
	case entity.StatusDraft, entity.StatusApproved, entity.StatusRejected, entity.StatusProcessed, entity.StatusCancelled:
		return transitionError("reject", adj.Status)
	}
	return unknownStatus(adj.Status)
}

// Cancel anula un ajuste que aún no llegó a un estado terminal. Sin efecto en inventario.
func Cancel(adj *entity.Adjustment, actor string, now time.Time) error {
	switch adj.Status {
	case entity.StatusDraft, entity.StatusPending, entity.StatusApproved:
		adj.Status = entity.StatusCancelled
		adj.CancelledBy = actor
		adj.CancelledAt = &now
		adj.UpdatedAt = now
		return nil
	case entity.StatusRejected, entity.StatusProcessed, entity.StatusCancelled:
		return transitionError("cancel", adj.Status)
	}
	return unknownStatus(adj.Status)
}

// CanProcess valida el guard de process sin mutar el ajuste. La transición real
// la consuma el gateway dentro de la transacción que inserta el asiento de kardex
// (compare-and-set sobre status + ledger_entry_id), para que un reintento no
// duplique el movimiento.
func CanProcess(adj *entity.Adjustment) error {
	switch adj.Status {
	case entity.StatusApproved:
		if adj.LedgerEntryID != "" {
			return domain.ErrAlreadyProcessed
		}
		return nil
	case entity.StatusProcessed:
		return domain.ErrAlreadyProcessed
	case entity.StatusDraft, entity.StatusPending, entity.StatusRejected, entity.StatusCancelled:
		return transitionError("process", adj.Status)
	}
	return unknownStatus(adj.Status)
}

// MarkProcessed consuma la transición approved -> processed en memoria, enlazando
// el asiento generado. Debe invocarse solo después de que el CAS en persistencia
// haya confirmado la transición.
func MarkProcessed(adj *entity.Adjustment, ledgerEntryID, actor string, now time.Time) error {
	if err := CanProcess(adj); err != nil {
		return err
	}
	adj.Status = entity.StatusProcessed
	adj.LedgerEntryID = ledgerEntryID
	adj.ProcessedBy = actor
	adj.ProcessedAt = &now
	adj.UpdatedAt = now
	return nil
}

// CanEdit indica si los campos del ajuste admiten mutación (solo draft y rejected).
func CanEdit(adj *entity.Adjustment) error {
	switch adj.Status {
	case entity.StatusDraft, entity.StatusRejected:
		return nil
	case entity.StatusPending, entity.StatusApproved, entity.StatusProcessed, entity.StatusCancelled:
		return transitionError("edit", adj.Status)
	}
	return unknownStatus(adj.Status)
}

func transitionError(event string, from entity.AdjustmentStatus) error {
	return fmt.Errorf("%w: evento %q desde estado %q", domain.ErrInvalidTransition, event, from)
}

// unknownStatus: un estado fuera del enum es corrupción de datos, no una transición inválida.
func unknownStatus(s entity.AdjustmentStatus) error {
	return fmt.Errorf("estado de ajuste desconocido %q", s)
}
