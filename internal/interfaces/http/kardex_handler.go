package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	appkardex "github.com/jhoicas/Almacen-api/internal/application/kardex"
)

// KardexHandler maneja las consultas de solo lectura del kardex y stock (protegido).
type KardexHandler struct {
	uc *appkardex.UseCase
}

// NewKardexHandler construye el handler.
func NewKardexHandler(uc *appkardex.UseCase) *KardexHandler {
	return &KardexHandler{uc: uc}
}

// History godoc
// @Summary      Kardex de un producto en una bodega
// @Description  Asientos ordenados por (movement_date, seq) ascendente con saldo corrido.
// @Tags         kardex
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  true   "Producto (UUID)"
// @Param        warehouse_id  query  string  true   "Bodega (UUID)"
// @Param        from          query  string  false  "Fecha inicial (RFC3339)"
// @Param        to            query  string  false  "Fecha final (RFC3339)"
// @Success      200  {array}   dto.LedgerEntryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/kardex [get]
func (h *KardexHandler) History(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	from, err := parseDateQuery(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "from: fecha inválida (RFC3339)"})
	}
	to, err := parseDateQuery(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "to: fecha inválida (RFC3339)"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	page.DefaultPage()

	list, err := h.uc.History(c.Context(), companyID, c.Query("product_id"), c.Query("warehouse_id"), from, to, page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromLedgerEntries(list))
}

// Stock godoc
// @Summary      Stock actual de un (producto, bodega, lote)
// @Tags         kardex
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  true   "Producto (UUID)"
// @Param        warehouse_id  query  string  true   "Bodega (UUID)"
// @Param        lot_number    query  string  false  "Lote; vacío = sin lote"
// @Success      200  {object}  dto.SnapshotResponse
// @Router       /api/kardex/stock [get]
func (h *KardexHandler) Stock(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	snap, err := h.uc.Stock(c.Context(), companyID, c.Query("product_id"), c.Query("warehouse_id"), c.Query("lot_number"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromSnapshot(snap))
}

// LowStock godoc
// @Summary      Filas de stock en o bajo el mínimo configurado
// @Tags         kardex
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Filtrar por bodega; vacío = todas"
// @Success      200  {array}  dto.SnapshotResponse
// @Router       /api/kardex/low-stock [get]
func (h *KardexHandler) LowStock(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	list, err := h.uc.LowStock(c.Context(), companyID, c.Query("warehouse_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromSnapshots(list))
}

// Expiring godoc
// @Summary      Lotes que vencen dentro de los próximos días
// @Tags         kardex
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Horizonte en días (default 30)"
// @Success      200  {array}  dto.SnapshotResponse
// @Router       /api/kardex/expiring [get]
func (h *KardexHandler) Expiring(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	list, err := h.uc.Expiring(c.Context(), companyID, c.QueryInt("days"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromSnapshots(list))
}

func parseDateQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
