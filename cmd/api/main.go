package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	_ "github.com/jhoicas/Storefront-api/docs"
	appanalytics "github.com/jhoicas/Storefront-api/internal/application/analytics"
	"github.com/jhoicas/Storefront-api/internal/application/auth"
	appcart "github.com/jhoicas/Storefront-api/internal/application/cart"
	"github.com/jhoicas/Storefront-api/internal/application/catalog"
	"github.com/jhoicas/Storefront-api/internal/application/coupon"
	"github.com/jhoicas/Storefront-api/internal/application/order"
	apppayment "github.com/jhoicas/Storefront-api/internal/application/payment"
	domaincart "github.com/jhoicas/Storefront-api/internal/domain/cart"
	"github.com/jhoicas/Storefront-api/internal/infrastructure/locations"
	"github.com/jhoicas/Storefront-api/internal/infrastructure/markup"
	infrapayment "github.com/jhoicas/Storefront-api/internal/infrastructure/payment"
	infrapdf "github.com/jhoicas/Storefront-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Storefront-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Storefront-api/internal/interfaces/http"
	"github.com/jhoicas/Storefront-api/pkg/config"
	"github.com/jhoicas/Storefront-api/pkg/logger"
)

// @title        Storefront API
// @version      1.0
// @description  Catálogo, carrito, checkout con GST y panel de pedidos.
// @BasePath     /
// @securityDefinitions.apikey Bearer
// @in           header
// @name         Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Str("dsn", postgres.RedactDSN(cfg.DB.ConnectionString())).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	for _, name := range applied {
		log.Info().Str("migration", name).Msg("migración aplicada")
	}

	locs, err := locations.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("catálogo de ubicaciones")
	}

	cartOpts := domaincart.Options{
		SellerState:       cfg.Store.SellerState,
		DefaultGSTPercent: decimal.NewFromInt(int64(cfg.Store.DefaultGSTPercent)),
		ShippingCost:      decimal.NewFromInt(int64(cfg.Store.ShippingCost)),
	}
	if name, ok := locs.NormalizeState(cfg.Store.SellerState); ok {
		cartOpts.SellerState = name
	} else {
		log.Warn().Str("state", cfg.Store.SellerState).Msg("estado del vendedor no está en el catálogo")
	}

	productRepo := postgres.NewProductRepository(pool)
	cartRepo := postgres.NewCartRepository(pool)
	couponRepo := postgres.NewCouponRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	catalogUC := catalog.NewCatalogUseCase(productRepo, markup.NewRenderer(), log.Component("catalog"))
	cartUC := appcart.NewCartUseCase(cartRepo, productRepo, cartOpts, log.Component("cart"))
	couponUC := coupon.NewCouponUseCase(couponRepo, log.Component("coupon"))

	// Pasarela: Razorpay con las credenciales de la cuenta
	gateway := infrapayment.NewRazorpayGateway(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)
	if cfg.Razorpay.KeyID == "" {
		log.Warn().Msg("RAZORPAY_KEY_ID vacío: el pago online fallará")
	}
	paymentUC := apppayment.NewPaymentUseCase(gateway, cfg.Store.Currency, log.Component("payment"))

	orderUC := order.NewOrderUseCase(order.Deps{
		Orders:   orderRepo,
		Products: productRepo,
		Tx:       txRunner,
		Coupons:  couponUC,
		Payments: paymentUC,
		PDF:      infrapdf.NewInvoiceGenerator(),
		Options:  cartOpts,
		Store: order.StoreInfo{
			Name:    cfg.Store.Name,
			Address: cfg.Store.Address,
			GSTIN:   cfg.Store.GSTIN,
		},
	}, log.Component("order"))

	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Storefront API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CatalogUC:   catalogUC,
		CartUC:      cartUC,
		CouponUC:    couponUC,
		OrderUC:     orderUC,
		PaymentUC:   paymentUC,
		DashboardUC: dashboardUC,
		Locations:   locs,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
