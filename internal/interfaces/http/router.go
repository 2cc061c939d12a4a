package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/stockcontrol-api/internal/application/auth"
	"github.com/tu-usuario/stockcontrol-api/internal/application/cascade"
	"github.com/tu-usuario/stockcontrol-api/internal/application/ledger"
	"github.com/tu-usuario/stockcontrol-api/internal/application/usecase"
	"github.com/tu-usuario/stockcontrol-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC  *usecase.CategoryUseCase
	ProductUC   *usecase.ProductUseCase
	UserUC      *usecase.UserUseCase
	DashboardUC *usecase.DashboardUseCase
	LedgerUC    *ledger.LedgerUseCase
	CascadeUC   *cascade.CascadeUseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth (público salvo /me)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Categories (protegido; mutaciones solo admin)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC, deps.CascadeUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", adminOnly, categoryHandler.Create)
	categories.Put("/:id", adminOnly, categoryHandler.Update)
	categories.Delete("/:id", adminOnly, categoryHandler.Delete)

	// Products (protegido; staff solo lectura, mutaciones solo admin)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.CascadeUC)
	stockHandler := NewStockHandler(deps.LedgerUC)
	products.Get("/", productHandler.List)
	products.Post("/", adminOnly, productHandler.Create)
	products.Post("/bulk-delete", adminOnly, productHandler.BulkDelete)
	products.Post("/bulk-adjust", adminOnly, stockHandler.BulkAdjust)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Stock (protegido)
	stock := protected.Group("/stock")
	stock.Post("/adjust", stockHandler.Adjust)
	stock.Get("/movements", stockHandler.ListMovements)

	// Dashboard (protegido)
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/stats", dashboardHandler.Stats)
	dashboard.Get("/low-stock", dashboardHandler.LowStock)
	dashboard.Get("/low-stock/report", dashboardHandler.LowStockReport)
	dashboard.Get("/recent-activities", dashboardHandler.RecentActivities)

	// Users (protegido, solo admin)
	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.UserUC, deps.CascadeUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
}
