package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pokeshop/storefront/internal/api/handler"
	"github.com/pokeshop/storefront/internal/api/middleware"
	"github.com/pokeshop/storefront/internal/core/service"
	"github.com/pokeshop/storefront/internal/infrastructure/config"
	mongodb "github.com/pokeshop/storefront/internal/infrastructure/db/mongo"
	redisdb "github.com/pokeshop/storefront/internal/infrastructure/db/redis"
	"github.com/pokeshop/storefront/internal/infrastructure/storage"
)

// Deps carries the external collaborators the router wires together.
type Deps struct {
	DB          *mongo.Database
	Redis       *goredis.Client
	Files       *storage.DiskStore
	Config      *config.Config
	ServerStart int64
	Log         zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Secure())
	// 5 MiB upload ceiling plus multipart overhead.
	e.Use(echomiddleware.BodyLimit("6M"))
	e.Use(echoprometheus.NewMiddleware("pokeshop"))

	sessionCfg := middleware.SessionConfig{
		Store:       redisdb.NewSessionStore(d.Redis, d.Config.SessionTTL),
		ServerStart: d.ServerStart,
		TTL:         d.Config.SessionTTL,
		Secure:      d.Config.CookieSecure || d.Config.Production(),
		Log:         d.Log,
	}
	e.Use(middleware.Session(sessionCfg))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(d.DB)
	productRepo := mongodb.NewProductRepository(d.DB)
	bannerRepo := mongodb.NewBannerRepository(d.DB)

	authService := service.NewAuthService(userRepo, sessionCfg.Store, d.ServerStart, d.Log)
	cartService := service.NewCartService(productRepo, sessionCfg.Store, d.Log)
	catalogService := service.NewCatalogService(productRepo, d.Files, d.Log)
	userService := service.NewUserService(userRepo, d.Log)
	bannerService := service.NewBannerService(bannerRepo, d.Files, d.Log)

	authHandler := handler.NewAuthHandler(authService, d.Config.SessionTTL, sessionCfg.Secure)
	cartHandler := handler.NewCartHandler(cartService)
	productHandler := handler.NewProductHandler(catalogService)
	userHandler := handler.NewUserHandler(userService)
	bannerHandler := handler.NewBannerHandler(bannerService)

	limiter := redisdb.NewRateLimiter(d.Redis, d.Config.LoginRateLimit, d.Config.LoginRateWindow)

	staff := middleware.RequireStaff()
	owner := middleware.RequireOwner()
	ensure := middleware.EnsureSession(sessionCfg)

	// --- API routes ---
	api := e.Group("/api")

	api.POST("/login", authHandler.Login, middleware.LoginRateLimit(limiter, d.Log))
	api.POST("/logout", authHandler.Logout)
	api.GET("/me", authHandler.Me)

	api.GET("/products", productHandler.List)
	api.GET("/products/tipos", productHandler.Categories)
	api.GET("/products/:id", productHandler.Get)
	api.POST("/products", productHandler.Create, staff)
	api.PUT("/products/:id", productHandler.Update, staff)
	api.DELETE("/products/:id", productHandler.Delete, staff)

	api.GET("/users", userHandler.List, owner)
	api.GET("/users/cargos", userHandler.Cargos, owner)
	api.POST("/users", userHandler.Create)
	api.PUT("/users/:id", userHandler.Update, owner)
	api.DELETE("/users/:id", userHandler.Delete, owner)

	api.GET("/cart", cartHandler.View)
	api.POST("/cart/add", cartHandler.Add, ensure)
	api.POST("/cart/remove", cartHandler.Remove, ensure)
	api.POST("/cart/checkout", cartHandler.Checkout)

	api.GET("/banners", bannerHandler.List)
	api.GET("/banners/all", bannerHandler.ListAll, staff)
	api.POST("/banners", bannerHandler.Create, staff)
	api.PUT("/banners/:id", bannerHandler.Update, staff)
	api.DELETE("/banners/:id", bannerHandler.Delete, staff)

	// --- Uploaded images ---
	e.Static("/uploads", d.Files.Root())

	// --- Observability (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.DB, d.Redis)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	return e
}
