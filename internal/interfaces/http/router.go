package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Storefront-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      authService
	CatalogUC   catalogService
	CartUC      cartService
	CouponUC    couponService
	OrderUC     orderService
	PaymentUC   paymentService
	DashboardUC dashboardService
	Locations   locationCatalog
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Catálogo (público)
	productHandler := NewProductHandler(deps.CatalogUC)
	products := api.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/:source/:slug", productHandler.Detail)
	products.Post("/:id/selection", productHandler.Selection)

	locationHandler := NewLocationHandler(deps.Locations)
	api.Get("/locations/countries", locationHandler.Countries)
	api.Get("/locations/states", locationHandler.States)

	// Rutas de cliente (requieren Bearer Token)
	auth := AuthMiddleware(deps.JWTSecret)

	cartHandler := NewCartHandler(deps.CartUC)
	cart := api.Group("/cart", auth)
	cart.Get("/", cartHandler.Get)
	cart.Post("/", cartHandler.Add)
	cart.Patch("/", cartHandler.Update)
	cart.Delete("/", cartHandler.Remove)
	cart.Get("/totals", cartHandler.Totals)

	couponHandler := NewCouponHandler(deps.CouponUC)
	api.Post("/coupons/validate", auth, couponHandler.Validate)

	orderHandler := NewOrderHandler(deps.OrderUC)
	orders := api.Group("/orders", auth)
	orders.Post("/create", orderHandler.Create)
	orders.Post("/quote", orderHandler.Quote)
	orders.Get("/", orderHandler.ListMine)
	orders.Get("/:id", orderHandler.Get)

	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	payment := api.Group("/payment", auth)
	payment.Post("/create-order", paymentHandler.CreateOrder)
	payment.Post("/verify", paymentHandler.Verify)

	// Administración (JWT + rol admin)
	admin := api.Group("/admin", auth, RequireRole(entity.RoleAdmin))

	adminProducts := admin.Group("/products")
	adminProducts.Post("/pricing-preview", productHandler.PricingPreview)
	adminProducts.Get("/", productHandler.ListAdmin)
	adminProducts.Post("/", productHandler.Create)
	adminProducts.Get("/:id", productHandler.GetByID)
	adminProducts.Put("/:id", productHandler.Update)
	adminProducts.Delete("/:id", productHandler.Delete)

	adminOrders := admin.Group("/orders")
	adminOrders.Get("/", orderHandler.List)
	adminOrders.Patch("/:id/status", orderHandler.UpdateStatus)
	adminOrders.Get("/:id/invoice", orderHandler.Invoice)

	adminCoupons := admin.Group("/coupons")
	adminCoupons.Post("/", couponHandler.Create)
	adminCoupons.Get("/", couponHandler.List)

	admin.Get("/dashboard", NewDashboardHandler(deps.DashboardUC).GetSummary)
}
