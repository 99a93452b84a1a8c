package http

import (
	"github.com/gofiber/fiber/v2"

	appadjustment "github.com/jhoicas/Almacen-api/internal/application/adjustment"
	appkardex "github.com/jhoicas/Almacen-api/internal/application/kardex"
)

// Roles de la aplicación. La definición fina de permisos vive en el servicio de
// identidad; aquí solo se distingue quién aprueba/procesa de quién captura.
const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleBodeguero  = "bodeguero"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AdjustmentUC *appadjustment.UseCase
	KardexUC     *appkardex.UseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Flujo de ajustes (protegido)
	adjustments := api.Group("/adjustments")
	adjustmentHandler := NewAdjustmentHandler(deps.AdjustmentUC)
	adjustments.Post("/", adjustmentHandler.Create)
	adjustments.Get("/", adjustmentHandler.List)
	adjustments.Get("/:id", adjustmentHandler.GetByID)
	adjustments.Put("/:id", adjustmentHandler.Edit)
	adjustments.Post("/:id/submit", adjustmentHandler.Submit)
	adjustments.Post("/:id/cancel", adjustmentHandler.Cancel)
	// Aprobar, rechazar y procesar requieren rol de supervisión.
	adjustments.Post("/:id/approve", RequireRole(RoleAdmin, RoleSupervisor), adjustmentHandler.Approve)
	adjustments.Post("/:id/reject", RequireRole(RoleAdmin, RoleSupervisor), adjustmentHandler.Reject)
	adjustments.Post("/:id/process", RequireRole(RoleAdmin, RoleSupervisor), adjustmentHandler.Process)

	// Kardex y stock (protegido, solo lectura)
	kardex := api.Group("/kardex")
	kardexHandler := NewKardexHandler(deps.KardexUC)
	kardex.Get("/", kardexHandler.History)
	kardex.Get("/stock", kardexHandler.Stock)
	kardex.Get("/low-stock", kardexHandler.LowStock)
	kardex.Get("/expiring", kardexHandler.Expiring)
}
