package adjustment

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	machine "github.com/jhoicas/Almacen-api/internal/domain/adjustment"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// UseCase es el gateway del flujo de ajustes: valida alcance de tenant, invoca la
// máquina de estados y persiste. La autorización fina (permisos por rol) ocurre
// antes, en el middleware HTTP; aquí solo se verifica pertenencia a la empresa.
type UseCase struct {
	txRunner      TxRunner
	adjRepo       repository.AdjustmentRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	now           func() time.Time
}

// NewUseCase construye el gateway. nowFn permite fijar el reloj en tests; nil usa time.Now.
func NewUseCase(
	txRunner TxRunner,
	adjRepo repository.AdjustmentRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	nowFn func() time.Time,
) *UseCase {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &UseCase{
		txRunner:      txRunner,
		adjRepo:       adjRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		now:           nowFn,
	}
}

// CreateInput datos para crear un ajuste en borrador.
// Quantity es la cantidad capturada; el delta firmado canónico se calcula una
// sola vez aquí (entity.NormalizeDelta) y no se vuelve a derivar del tipo.
type CreateInput struct {
	CompanyID     string
	ActorID       string
	WarehouseID   string
	ProductID     string
	LocationID    string
	Kind          entity.AdjustmentKind
	Quantity      decimal.Decimal
	UnitCost      decimal.Decimal
	Reason        string
	Justification string
	LotNumber     string
	ExpiryDate    *time.Time
}

// EditInput campos mutables de un ajuste en draft o rejected.
type EditInput struct {
	Kind          entity.AdjustmentKind
	Quantity      decimal.Decimal
	UnitCost      decimal.Decimal
	Reason        string
	Justification string
	LotNumber     string
	ExpiryDate    *time.Time
	LocationID    string
}

// Create valida producto y bodega (existencia y tenant) y persiste el ajuste en draft.
func (uc *UseCase) Create(ctx context.Context, in CreateInput) (*entity.Adjustment, error) {
	if in.CompanyID == "" || in.ActorID == "" || in.ProductID == "" || in.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := validateFields(in.Kind, in.Quantity, in.UnitCost, in.Reason); err != nil {
		return nil, err
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != in.CompanyID {
		return nil, domain.ErrForbidden
	}
	warehouse, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	if warehouse.CompanyID != in.CompanyID {
		return nil, domain.ErrForbidden
	}

	now := uc.now()
	adj := &entity.Adjustment{
		ID:            uuid.New().String(),
		CompanyID:     in.CompanyID,
		WarehouseID:   in.WarehouseID,
		ProductID:     in.ProductID,
		LocationID:    in.LocationID,
		Kind:          in.Kind,
		Quantity:      entity.NormalizeDelta(in.Kind, in.Quantity),
		UnitCost:      in.UnitCost,
		Reason:        in.Reason,
		Justification: in.Justification,
		LotNumber:     in.LotNumber,
		ExpiryDate:    in.ExpiryDate,
		Status:        entity.StatusDraft,
		CreatedBy:     in.ActorID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.adjRepo.Create(adj); err != nil {
		return nil, fmt.Errorf("crear ajuste: %w", err)
	}
	return adj, nil
}

// Edit muta los campos de un ajuste en draft o rejected y re-normaliza el delta.
func (uc *UseCase) Edit(ctx context.Context, companyID, actorID, id string, in EditInput) (*entity.Adjustment, error) {
	adj, err := uc.load(companyID, id)
	if err != nil {
		return nil, err
	}
	if err := machine.CanEdit(adj); err != nil {
		return nil, err
	}
	if err := validateFields(in.Kind, in.Quantity, in.UnitCost, in.Reason); err != nil {
		return nil, err
	}
	adj.Kind = in.Kind
	adj.Quantity = entity.NormalizeDelta(in.Kind, in.Quantity)
	adj.UnitCost = in.UnitCost
	adj.Reason = in.Reason
	adj.Justification = in.Justification
	adj.LotNumber = in.LotNumber
	adj.ExpiryDate = in.ExpiryDate
	adj.LocationID = in.LocationID
	adj.UpdatedAt = uc.now()
	if err := uc.adjRepo.Update(adj, adj.Status); err != nil {
		return nil, fmt.Errorf("editar ajuste: %w", err)
	}
	return adj, nil
}

// Submit envía un ajuste (draft o rejected) a aprobación.
func (uc *UseCase) Submit(ctx context.Context, companyID, actorID, id string) (*entity.Adjustment, error) {
	return uc.transition(companyID, id, func(adj *entity.Adjustment) error {
		return machine.Submit(adj, actorID, uc.now())
	})
}

// Approve aprueba un ajuste pendiente.
func (uc *UseCase) Approve(ctx context.Context, companyID, actorID, id string) (*entity.Adjustment, error) {
	return uc.transition(companyID, id, func(adj *entity.Adjustment) error {
		return machine.Approve(adj, actorID, uc.now())
	})
}

// Reject rechaza un ajuste pendiente con motivo (10–500 caracteres).
func (uc *UseCase) Reject(ctx context.Context, companyID, actorID, id, reason string) (*entity.Adjustment, error) {
	return uc.transition(companyID, id, func(adj *entity.Adjustment) error {
		return machine.Reject(adj, actorID, reason, uc.now())
	})
}

// Cancel anula un ajuste no terminal, sin efecto en inventario.
func (uc *UseCase) Cancel(ctx context.Context, companyID, actorID, id string) (*entity.Adjustment, error) {
	return uc.transition(companyID, id, func(adj *entity.Adjustment) error {
		return machine.Cancel(adj, actorID, uc.now())
	})
}

// Get devuelve un ajuste verificando pertenencia a la empresa.
func (uc *UseCase) Get(ctx context.Context, companyID, id string) (*entity.Adjustment, error) {
	return uc.load(companyID, id)
}

// List lista ajustes de la empresa, opcionalmente filtrados por bodega y estado.
func (uc *UseCase) List(ctx context.Context, companyID, warehouseID string, status *entity.AdjustmentStatus, limit, offset int) ([]*entity.Adjustment, error) {
	if companyID == "" {
		return nil, domain.ErrInvalidInput
	}
	if status != nil && !status.Valid() {
		return nil, fmt.Errorf("%w: estado %q desconocido", domain.ErrValidationFailed, *status)
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.adjRepo.ListByCompany(companyID, warehouseID, status, limit, offset)
}

// transition carga, verifica tenant, aplica la transición y persiste condicionado
// al estado desde el que se partió: si otra escritura movió el ajuste entre la
// carga y el UPDATE, la transición sale con ErrConcurrentModification en vez de
// pisar la fila.
func (uc *UseCase) transition(companyID, id string, fn func(*entity.Adjustment) error) (*entity.Adjustment, error) {
	adj, err := uc.load(companyID, id)
	if err != nil {
		return nil, err
	}
	prev := adj.Status
	if err := fn(adj); err != nil {
		return nil, err
	}
	if err := uc.adjRepo.Update(adj, prev); err != nil {
		return nil, fmt.Errorf("actualizar ajuste: %w", err)
	}
	return adj, nil
}

func (uc *UseCase) load(companyID, id string) (*entity.Adjustment, error) {
	if companyID == "" || id == "" {
		return nil, domain.ErrInvalidInput
	}
	adj, err := uc.adjRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if adj == nil {
		return nil, domain.ErrNotFound
	}
	// company_id desnormalizado en el ajuste: el chequeo de tenant no necesita joins.
	if adj.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return adj, nil
}

func validateFields(kind entity.AdjustmentKind, quantity, unitCost decimal.Decimal, reason string) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: tipo de ajuste %q desconocido", domain.ErrValidationFailed, kind)
	}
	if quantity.IsZero() {
		return fmt.Errorf("%w: la cantidad no puede ser cero", domain.ErrValidationFailed)
	}
	if unitCost.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: el costo unitario no puede ser negativo", domain.ErrValidationFailed)
	}
	if n := utf8.RuneCountInString(reason); n == 0 || n > 500 {
		return fmt.Errorf("%w: el motivo es obligatorio (máx 500 caracteres)", domain.ErrValidationFailed)
	}
	return nil
}
