package router

import (
	"go-retail-analytics/internal/handler"
	"go-retail-analytics/internal/middleware"
	"go-retail-analytics/internal/model"
	"go-retail-analytics/internal/repository"
	"go-retail-analytics/internal/service"
	"go-retail-analytics/internal/ws"
	"go-retail-analytics/pkg/jwt"
	"go-retail-analytics/pkg/metrics"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

const AppName = "Retail Analytics API"

// Deps are the already-built collaborators the HTTP layer needs.
type Deps struct {
	Log             *zap.Logger
	ClientURL       string
	AccessLog       bool
	Hub             *ws.Hub
	UserRepo        repository.UserRepository
	Tokens          *jwt.Manager
	Auth            service.AuthService
	Catalog         service.CatalogService
	Sales           service.SaleService
	Analytics       service.AnalyticsService
	Recommendations service.RecommendationService
}

// New builds the fiber app with middleware and every route mounted.
func New(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      AppName,
		ErrorHandler: handler.ErrorHandler(d.Log),
	})

	app.Use(recover.New())
	app.Use(helmet.New())
	if d.AccessLog {
		app.Use(logger.New())
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: d.ClientURL,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(metrics.Middleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"success":   true,
			"status":    "ok",
			"wsClients": d.Hub.ClientCount(),
		})
	})
	app.Get("/metrics", metrics.Handler())

	authHandler := handler.NewAuthHandler(d.Auth)
	productHandler := handler.NewProductHandler(d.Catalog)
	saleHandler := handler.NewSaleHandler(d.Sales)
	analyticsHandler := handler.NewAnalyticsHandler(d.Analytics, d.Recommendations)

	requireAuth := middleware.RequireAuth(d.UserRepo, d.Tokens)
	api := app.Group("/api")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", requireAuth, authHandler.Me)

	// ============ PROTECTED ROUTES ============
	products := api.Group("/products", requireAuth)
	products.Get("/", productHandler.GetProducts)
	products.Get("/alerts/low-stock", productHandler.GetLowStock)
	products.Get("/:id", productHandler.GetProduct)
	products.Post("/", middleware.RequireRole(model.RoleAdmin, model.RoleManager), productHandler.CreateProduct)
	products.Put("/:id", middleware.RequireRole(model.RoleAdmin, model.RoleManager), productHandler.UpdateProduct)
	products.Delete("/:id", middleware.RequireRole(model.RoleAdmin), productHandler.DeleteProduct)

	sales := api.Group("/sales", requireAuth)
	sales.Get("/", saleHandler.GetSales)
	sales.Post("/", saleHandler.CreateSale)
	sales.Get("/:id", saleHandler.GetSale)

	analytics := api.Group("/analytics", requireAuth)
	analytics.Get("/dashboard", analyticsHandler.GetDashboard)
	analytics.Get("/top-products", analyticsHandler.GetTopProducts)
	analytics.Get("/by-category", analyticsHandler.GetByCategory)
	analytics.Get("/by-gender", analyticsHandler.GetByGender)
	analytics.Get("/by-size", analyticsHandler.GetBySize)
	analytics.Get("/by-branch", analyticsHandler.GetByBranch)
	analytics.Get("/sales-trend", analyticsHandler.GetSalesTrend)
	analytics.Get("/recommendations", analyticsHandler.GetRecommendations)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(d.Hub.Handler()))

	return app
}
