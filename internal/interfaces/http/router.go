package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/merkato-api/internal/application/auth"
	"github.com/tu-usuario/merkato-api/internal/application/inventory"
	"github.com/tu-usuario/merkato-api/internal/application/order"
	"github.com/tu-usuario/merkato-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	CategoryUC *usecase.CategoryUseCase
	ProductUC  *usecase.ProductUseCase
	ItemUC     *inventory.ItemUseCase
	AdjustUC   *inventory.AdjustStockUseCase
	OrderUC    *order.PlaceOrderUseCase
	Mailer     ContactMailer
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/profile", AuthMiddleware(deps.JWTSecret), authHandler.Profile)

	// Catálogo (lectura pública)
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	productHandler := NewProductHandler(deps.ProductUC)
	api.Get("/categories", categoryHandler.List)
	api.Get("/categories/:id", categoryHandler.GetByID)
	api.Get("/products", productHandler.List)
	api.Get("/products/:id", productHandler.GetByID)

	// Contacto (público)
	contactHandler := NewContactHandler(deps.Mailer)
	api.Post("/contact", contactHandler.Submit)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Pedidos y checkout (cualquier usuario autenticado)
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders := protected.Group("/orders")
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id/status", RequireAdmin(), orderHandler.UpdateStatus)
	checkout := protected.Group("/checkout")
	checkout.Post("/cbe", orderHandler.CheckoutCBE)
	checkout.Post("/telebirr", orderHandler.CheckoutTelebirr)

	// Administración del catálogo (solo admin)
	adminCatalog := protected.Group("/", RequireAdmin())
	adminCatalog.Post("/categories", categoryHandler.Create)
	adminCatalog.Put("/categories/:id", categoryHandler.Update)
	adminCatalog.Delete("/categories/:id", categoryHandler.Delete)
	adminCatalog.Post("/products", productHandler.Create)
	adminCatalog.Put("/products/:id", productHandler.Update)

	// Inventario (solo admin)
	inventoryHandler := NewInventoryHandler(deps.ItemUC, deps.AdjustUC)
	inv := protected.Group("/inventory", RequireAdmin())
	inv.Post("/items", inventoryHandler.CreateItem)
	inv.Get("/items", inventoryHandler.ListItems)
	inv.Get("/items/:id", inventoryHandler.GetItem)
	inv.Put("/items/:id", inventoryHandler.UpdateItem)
	inv.Delete("/items/:id", inventoryHandler.DeleteItem)
	inv.Post("/items/:id/adjust", inventoryHandler.AdjustQuantity)
	inv.Get("/items/:id/changes", inventoryHandler.ListChanges)
	inv.Get("/changes", inventoryHandler.RecentChanges)
	inv.Get("/low-stock", inventoryHandler.LowStock)
	inv.Get("/out-of-stock", inventoryHandler.OutOfStock)
	inv.Get("/overstocked", inventoryHandler.Overstocked)
	inv.Get("/summary", inventoryHandler.Summary)
}
