package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/harmon-corp/reseller-service/internal/api/http/handlers"
	"github.com/harmon-corp/reseller-service/internal/auth"
	"github.com/harmon-corp/reseller-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Stock          *handlers.StockHandler
	Cart           *handlers.CartHandler
	Fulfillment    *handlers.FulfillmentHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	adminGroup := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin))
	adminGroup.Get("/resellers/unverified", cfg.Auth.ListUnverified)
	adminGroup.Post("/resellers/:email/verify", cfg.Auth.VerifyReseller)

	stockGroup := app.Group("/stock", cfg.AuthMiddleware.Handle)
	stockGroup.Get("", auth.RequireAnyRole(), cfg.Stock.List)
	stockGroup.Post("", auth.RequireRole(domain.RoleAdmin), cfg.Stock.Add)
	stockGroup.Put("/:item", auth.RequireRole(domain.RoleAdmin), cfg.Stock.Edit)
	stockGroup.Delete("/:item", auth.RequireRole(domain.RoleAdmin), cfg.Stock.Delete)

	cartGroup := app.Group("/cart", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleReseller))
	cartGroup.Get("", cfg.Cart.View)
	cartGroup.Post("", cfg.Cart.Add)
	cartGroup.Delete("", cfg.Cart.Clear)

	app.Post("/checkout", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleReseller), cfg.Cart.Checkout)

	ordersGroup := app.Group("/orders", cfg.AuthMiddleware.Handle)
	ordersGroup.Get("/mine", auth.RequireRole(domain.RoleReseller), cfg.Fulfillment.Mine)
	ordersGroup.Post("/sales", auth.RequireRole(domain.RoleReseller), cfg.Fulfillment.ReportSales)
	ordersGroup.Get("/total", auth.RequireRole(domain.RoleAdmin), cfg.Fulfillment.Total)
	ordersGroup.Get("", auth.RequireRole(domain.RoleAdmin, domain.RoleShipper), cfg.Fulfillment.List)
	ordersGroup.Post("/:id/pack", auth.RequireRole(domain.RoleAdmin), cfg.Fulfillment.Pack)
	ordersGroup.Post("/:id/deliver", auth.RequireRole(domain.RoleShipper), cfg.Fulfillment.Deliver)
}
