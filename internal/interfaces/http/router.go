package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/puntoventa/lotes-api/internal/application/auth"
	"github.com/puntoventa/lotes-api/internal/application/inventory"
	"github.com/puntoventa/lotes-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger    *inventory.LotLedgerUseCase
	KardexPDF inventory.KardexPDFGenerator
	AuthUC    *auth.AuthUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Motor de lotes (protegido). Las mutaciones quedan restringidas a los
	// roles que operan bodega; las lecturas las puede hacer cualquier rol.
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Ledger, deps.KardexPDF)

	mutate := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	invGroup.Post("/entradas", mutate, inventoryHandler.RegistrarEntrada)
	invGroup.Post("/salidas", mutate, inventoryHandler.RegistrarSalida)
	invGroup.Post("/productos/:id/lote-registro", mutate, inventoryHandler.CrearLoteRegistro)

	invGroup.Get("/movimientos/:id/reconciliacion", inventoryHandler.Reconciliar)
	invGroup.Get("/productos/:id/lotes", inventoryHandler.ListarLotes)
	invGroup.Get("/productos/:id/movimientos", inventoryHandler.ListarMovimientos)
	invGroup.Get("/productos/:id/kardex.pdf", inventoryHandler.KardexPDF)
}
