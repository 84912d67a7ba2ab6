package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lucasgiorgi95/stock-backend/internal/application/auth"
	"github.com/lucasgiorgi95/stock-backend/internal/application/catalog"
	"github.com/lucasgiorgi95/stock-backend/internal/application/dashboard"
	"github.com/lucasgiorgi95/stock-backend/internal/application/ledger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	ProductUC   *catalog.ProductUseCase
	SupplierUC  *catalog.SupplierUseCase
	MarcaUC     *catalog.MarcaUseCase
	LedgerUC    *ledger.UseCase
	DashboardUC *dashboard.UseCase
	DevMode     bool
}

// Router registra las rutas de la API bajo /api/v1.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")

	// Auth (register y login públicos; me protegido)
	authHandler := NewAuthHandler(deps.AuthUC, deps.DevMode)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.AuthUC), authHandler.Me)

	// Rutas protegidas (requieren bearer token)
	protected := api.Group("/", AuthMiddleware(deps.AuthUC))

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.DevMode)
	products.Get("/", productHandler.List)
	products.Get("/search", productHandler.Search)
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", productHandler.Create)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC, deps.DevMode)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	marcas := protected.Group("/marcas")
	marcaHandler := NewMarcaHandler(deps.MarcaUC, deps.DevMode)
	marcas.Get("/", marcaHandler.List)
	marcas.Get("/:id", marcaHandler.GetByID)
	marcas.Post("/", marcaHandler.Create)
	marcas.Put("/:id", marcaHandler.Update)
	marcas.Delete("/:id", marcaHandler.Delete)

	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.LedgerUC, deps.DevMode)
	movements.Post("/", movementHandler.Create)
	movements.Get("/:productId", movementHandler.ListByProduct)

	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.LedgerUC, deps.DashboardUC, deps.DevMode)
	stock.Post("/adjust", stockHandler.Adjust)
	stock.Get("/dashboard", stockHandler.Dashboard)
}
