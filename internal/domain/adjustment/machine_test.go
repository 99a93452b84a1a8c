package adjustment_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/domain"
	machine "github.com/jhoicas/Almacen-api/internal/domain/adjustment"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

var testNow = time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

func newAdjustment(status entity.AdjustmentStatus) *entity.Adjustment {
	return &entity.Adjustment{
		ID:          "adj-1",
		CompanyID:   "co-1",
		WarehouseID: "wh-1",
		ProductID:   "prod-1",
		Kind:        entity.KindDamage,
		Quantity:    decimal.NewFromInt(-5),
		UnitCost:    decimal.NewFromInt(100),
		Reason:      "rotura en bodega",
		Status:      status,
		CreatedBy:   "user-1",
		CreatedAt:   testNow,
	}
}

// ── Alcanzabilidad ────────────────────────────────────────────────────────────
//
// Desde draft solo {pending, cancelled}; processed y cancelled son terminales
// y no admiten ningún evento.

func TestMachine_AlcanzabilidadDesdeDraft(t *testing.T) {
	adj := newAdjustment(entity.StatusDraft)
	require.NoError(t, machine.Submit(adj, "user-1", testNow))
	assert.Equal(t, entity.StatusPending, adj.Status)
	assert.Equal(t, "user-1", adj.SubmittedBy)
	require.NotNil(t, adj.SubmittedAt)

	adj = newAdjustment(entity.StatusDraft)
	require.NoError(t, machine.Cancel(adj, "user-1", testNow))
	assert.Equal(t, entity.StatusCancelled, adj.Status)
	assert.Equal(t, "user-1", adj.CancelledBy)
	require.NotNil(t, adj.CancelledAt)

	// approve, reject y process no son alcanzables directamente desde draft
	adj = newAdjustment(entity.StatusDraft)
	assert.ErrorIs(t, machine.Approve(adj, "boss-1", testNow), domain.ErrInvalidTransition)
	assert.ErrorIs(t, machine.Reject(adj, "boss-1", "motivo suficientemente largo", testNow), domain.ErrInvalidTransition)
	assert.ErrorIs(t, machine.CanProcess(adj), domain.ErrInvalidTransition)
	assert.Equal(t, entity.StatusDraft, adj.Status, "un guard fallido no cambia el estado")
}

func TestMachine_EstadosTerminales(t *testing.T) {
	for _, status := range []entity.AdjustmentStatus{entity.StatusProcessed, entity.StatusCancelled} {
		adj := newAdjustment(status)
		if status == entity.StatusProcessed {
			adj.LedgerEntryID = "mov-1"
		}
		assert.ErrorIs(t, machine.Submit(adj, "user-1", testNow), domain.ErrInvalidTransition, "submit desde %s", status)
		assert.ErrorIs(t, machine.Approve(adj, "boss-1", testNow), domain.ErrInvalidTransition, "approve desde %s", status)
		assert.ErrorIs(t, machine.Reject(adj, "boss-1", "motivo suficientemente largo", testNow), domain.ErrInvalidTransition, "reject desde %s", status)
		assert.ErrorIs(t, machine.Cancel(adj, "user-1", testNow), domain.ErrInvalidTransition, "cancel desde %s", status)
		assert.ErrorIs(t, machine.CanEdit(adj), domain.ErrInvalidTransition, "edit desde %s", status)
		assert.Equal(t, status, adj.Status)
	}
}

func TestMachine_FlujoCompleto(t *testing.T) {
	adj := newAdjustment(entity.StatusDraft)

	require.NoError(t, machine.Submit(adj, "user-1", testNow))
	require.NoError(t, machine.Approve(adj, "boss-1", testNow))
	assert.Equal(t, entity.StatusApproved, adj.Status)
	assert.Equal(t, "boss-1", adj.ApprovedBy)

	require.NoError(t, machine.CanProcess(adj))
	require.NoError(t, machine.MarkProcessed(adj, "mov-1", "boss-1", testNow))
	assert.Equal(t, entity.StatusProcessed, adj.Status)
	assert.Equal(t, "mov-1", adj.LedgerEntryID)
	require.NotNil(t, adj.ProcessedAt)

	// segundo process sobre el mismo ajuste: AlreadyProcessed, no InvalidTransition
	assert.ErrorIs(t, machine.CanProcess(adj), domain.ErrAlreadyProcessed)
	assert.ErrorIs(t, machine.MarkProcessed(adj, "mov-2", "boss-1", testNow), domain.ErrAlreadyProcessed)
	assert.Equal(t, "mov-1", adj.LedgerEntryID, "el enlace original no se sobrescribe")
}

func TestMachine_ProcessConAsientoEnlazadoSinEstado(t *testing.T) {
	// Fila inconsistente a favor de la seguridad: approved pero con asiento ya
	// enlazado debe tratarse como ya procesado.
	adj := newAdjustment(entity.StatusApproved)
	adj.LedgerEntryID = "mov-9"
	assert.ErrorIs(t, machine.CanProcess(adj), domain.ErrAlreadyProcessed)
}

// ── Motivo de rechazo ─────────────────────────────────────────────────────────
//
// 10–500 caracteres (runas): 9 -> ValidationFailed, 10 ok, 500 ok,
// 501 -> ValidationFailed.

func TestMachine_LimitesMotivoRechazo(t *testing.T) {
	cases := []struct {
		name   string
		reason string
		ok     bool
	}{
		{"9 caracteres", strings.Repeat("a", 9), false},
		{"10 caracteres", strings.Repeat("a", 10), true},
		{"500 caracteres", strings.Repeat("a", 500), true},
		{"501 caracteres", strings.Repeat("a", 501), false},
		{"vacío", "", false},
		{"10 runas multibyte", strings.Repeat("ñ", 10), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			adj := newAdjustment(entity.StatusPending)
			err := machine.Reject(adj, "boss-1", tc.reason, testNow)
			if tc.ok {
				require.NoError(t, err)
				assert.Equal(t, entity.StatusRejected, adj.Status)
				assert.Equal(t, tc.reason, adj.RejectionReason)
			} else {
				assert.ErrorIs(t, err, domain.ErrValidationFailed)
				assert.Equal(t, entity.StatusPending, adj.Status, "el estado no cambia si la validación falla")
			}
		})
	}
}

func TestMachine_ReenvioDesdeRejected(t *testing.T) {
	adj := newAdjustment(entity.StatusPending)
	require.NoError(t, machine.Reject(adj, "boss-1", "Falta documentación de soporte", testNow))

	// rejected admite edición y reenvío
	require.NoError(t, machine.CanEdit(adj))
	later := testNow.Add(time.Hour)
	require.NoError(t, machine.Submit(adj, "user-1", later))
	assert.Equal(t, entity.StatusPending, adj.Status)
	assert.Equal(t, "user-1", adj.SubmittedBy)
	assert.Equal(t, later, *adj.SubmittedAt)
	// el motivo anterior queda como historial
	assert.Equal(t, "Falta documentación de soporte", adj.RejectionReason)
}

func TestMachine_CancelDesdeRejectedNoPermitido(t *testing.T) {
	// rejected se corrige y reenvía, o se abandona; cancel aplica a draft/pending/approved.
	adj := newAdjustment(entity.StatusRejected)
	assert.ErrorIs(t, machine.Cancel(adj, "user-1", testNow), domain.ErrInvalidTransition)
}

// ── Normalización de signo ────────────────────────────────────────────────────

func TestNormalizeDelta(t *testing.T) {
	five := decimal.NewFromInt(5)
	minusFive := decimal.NewFromInt(-5)

	// tipos de efecto negativo: la magnitud capturada siempre resta
	for _, kind := range []entity.AdjustmentKind{entity.KindNegative, entity.KindDamage, entity.KindExpiry, entity.KindLoss} {
		assert.True(t, entity.NormalizeDelta(kind, five).Equal(minusFive), "%s con magnitud positiva", kind)
		assert.True(t, entity.NormalizeDelta(kind, minusFive).Equal(minusFive), "%s con magnitud negativa", kind)
	}
	// tipos aditivos
	for _, kind := range []entity.AdjustmentKind{entity.KindPositive, entity.KindReturn} {
		assert.True(t, entity.NormalizeDelta(kind, five).Equal(five), "%s", kind)
		assert.True(t, entity.NormalizeDelta(kind, minusFive).Equal(five), "%s normaliza magnitud", kind)
	}
	// tipos que respetan el signo capturado
	for _, kind := range []entity.AdjustmentKind{entity.KindCorrection, entity.KindPhysicalCount, entity.KindOther} {
		assert.True(t, entity.NormalizeDelta(kind, five).Equal(five), "%s positivo", kind)
		assert.True(t, entity.NormalizeDelta(kind, minusFive).Equal(minusFive), "%s negativo", kind)
	}
}
