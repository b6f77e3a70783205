package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stockpilothq/stockpilot-backend/api/controllers"
	"github.com/stockpilothq/stockpilot-backend/api/middleware"
	authsvc "github.com/stockpilothq/stockpilot-backend/internal/auth"
	catalogsvc "github.com/stockpilothq/stockpilot-backend/internal/catalog"
	ordersvc "github.com/stockpilothq/stockpilot-backend/internal/orders"
	productsvc "github.com/stockpilothq/stockpilot-backend/internal/products"
	promosvc "github.com/stockpilothq/stockpilot-backend/internal/promotions"
	reportsvc "github.com/stockpilothq/stockpilot-backend/internal/reports"
	"github.com/stockpilothq/stockpilot-backend/pkg/config"
	"github.com/stockpilothq/stockpilot-backend/pkg/db"
	"github.com/stockpilothq/stockpilot-backend/pkg/logger"
	"github.com/stockpilothq/stockpilot-backend/pkg/metrics"
	"github.com/stockpilothq/stockpilot-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	authService authsvc.Service,
	productService productsvc.Service,
	catalogService catalogsvc.Service,
	promotionService promosvc.Service,
	orderService ordersvc.Service,
	reportService reportsvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if httpMetrics != nil {
		r.Use(httpMetrics.Middleware)
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginAccountLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterAccountLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(middleware.Idempotency(redisClient, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).
			Post("/login", controllers.AuthLogin(authService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).
			Post("/register", controllers.AuthRegister(authService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Get("/ping", controllers.PrivatePing())

		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.CreateProduct(productService, logg))
			r.Get("/", controllers.ListProducts(productService, logg))
			r.Get("/{productId}", controllers.GetProduct(productService, logg))
			r.Put("/{productId}", controllers.UpdateProduct(productService, logg))
			r.Delete("/{productId}", controllers.DeleteProduct(productService, logg))
			r.Get("/{productId}/effective-price", controllers.ProductEffectivePrice(promotionService, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Post("/", controllers.CreateCategory(catalogService, logg))
			r.Get("/", controllers.ListCategories(catalogService, logg))
			r.Get("/{categoryId}", controllers.GetCategory(catalogService, logg))
			r.Put("/{categoryId}", controllers.UpdateCategory(catalogService, logg))
			r.Delete("/{categoryId}", controllers.DeleteCategory(catalogService, logg))
		})

		r.Route("/suppliers", func(r chi.Router) {
			r.Post("/", controllers.CreateSupplier(catalogService, logg))
			r.Get("/", controllers.ListSuppliers(catalogService, logg))
			r.Get("/{supplierId}", controllers.GetSupplier(catalogService, logg))
			r.Put("/{supplierId}", controllers.UpdateSupplier(catalogService, logg))
			r.Delete("/{supplierId}", controllers.DeleteSupplier(catalogService, logg))
		})

		r.Route("/manufacturers", func(r chi.Router) {
			r.Post("/", controllers.CreateManufacturer(catalogService, logg))
			r.Get("/", controllers.ListManufacturers(catalogService, logg))
			r.Get("/{manufacturerId}", controllers.GetManufacturer(catalogService, logg))
			r.Put("/{manufacturerId}", controllers.UpdateManufacturer(catalogService, logg))
			r.Delete("/{manufacturerId}", controllers.DeleteManufacturer(catalogService, logg))
		})

		r.Route("/promotions", func(r chi.Router) {
			r.Post("/", controllers.CreatePromotion(promotionService, logg))
			r.Get("/", controllers.ListPromotions(promotionService, logg))
			r.Get("/{promotionId}", controllers.GetPromotion(promotionService, logg))
			r.Put("/{promotionId}", controllers.UpdatePromotion(promotionService, logg))
			r.Delete("/{promotionId}", controllers.DeletePromotion(promotionService, logg))
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", controllers.CreateTransaction(orderService, logg))
			r.Get("/", controllers.ListTransactions(orderService, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.CreateOrder(orderService, logg))
			r.Get("/", controllers.ListOrders(orderService, logg))
			r.Get("/fast-report", controllers.FastReport(reportService, logg))
			r.Get("/{orderId}", controllers.GetOrder(orderService, logg))
			r.Post("/{orderId}/cancel", controllers.CancelOrder(orderService, logg))
		})
	})

	return r
}
