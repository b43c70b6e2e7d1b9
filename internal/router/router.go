// internal/router/router.go
package router

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/freshcart/freshcart-backend/internal/cache"
	"github.com/freshcart/freshcart-backend/internal/config"
	"github.com/freshcart/freshcart-backend/internal/database"
	"github.com/freshcart/freshcart-backend/internal/handlers"
	"github.com/freshcart/freshcart-backend/internal/middleware"
	"github.com/freshcart/freshcart-backend/internal/repository"
	"github.com/freshcart/freshcart-backend/internal/services"
	"github.com/freshcart/freshcart-backend/internal/utils"
)

// Dependencies is everything the HTTP layer needs. Initialize builds it from
// MongoDB; tests build it from in-memory repositories.
type Dependencies struct {
	JWT                  *utils.JWTManager
	AuthService          *services.AuthService
	UserService          *services.UserService
	ProductService       *services.ProductService
	AdvertisementService *services.AdvertisementService
	WatchlistService     *services.WatchlistService
	ReviewService        *services.ReviewService
	PaymentService       *services.PaymentService
	OrderService         *services.OrderService
	StorageService       *services.StorageService
	AuditLogger          *middleware.AuditLogger
	Ping                 handlers.Pinger
}

// Server owns the engine plus the background pieces that need stopping.
type Server struct {
	Engine   *gin.Engine
	audit    *middleware.AuditLogger
	limiters []*middleware.RateLimiter
}

// Shutdown stops limiter janitors and waits for pending audit writes.
func (s *Server) Shutdown() {
	for _, l := range s.limiters {
		l.Stop()
	}
	if s.audit != nil {
		s.audit.Wait()
	}
}

func Initialize(db *mongo.Database, listings cache.ListingCache, cfg *config.Config) (*Server, error) {
	jwtManager := utils.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Issuer, cfg.TokenTTL())

	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}

	productRepo := repository.NewProductRepository(db)

	deps := &Dependencies{
		JWT:                  jwtManager,
		AuthService:          services.NewAuthService(jwtManager),
		UserService:          services.NewUserService(repository.NewUserRepository(db)),
		ProductService:       services.NewProductService(productRepo, listings),
		AdvertisementService: services.NewAdvertisementService(repository.NewAdvertisementRepository(db)),
		WatchlistService:     services.NewWatchlistService(repository.NewWatchlistRepository(db)),
		ReviewService:        services.NewReviewService(repository.NewReviewRepository(db)),
		PaymentService:       services.NewPaymentService(productRepo, services.NewStripeGateway(cfg.Payment.StripeSecretKey), cfg.Payment.Currency),
		OrderService:         services.NewOrderService(repository.NewOrderRepository(db)),
		StorageService:       storageService,
		AuditLogger:          middleware.NewAuditLogger(repository.NewAuditLogRepository(db)),
		Ping: func(ctx context.Context) error {
			return database.Ping(ctx, db)
		},
	}

	return Setup(deps, cfg), nil
}

func Setup(deps *Dependencies, cfg *config.Config) *Server {
	generalLimiter := middleware.PerSecond(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	authLimiter := middleware.PerMinute(cfg.RateLimit.AuthPerMinute, cfg.RateLimit.AuthBurst)

	authHandler := handlers.NewAuthHandler(deps.AuthService)
	userHandler := handlers.NewUserHandler(deps.UserService)
	productHandler := handlers.NewProductHandler(deps.ProductService)
	advertisementHandler := handlers.NewAdvertisementHandler(deps.AdvertisementService)
	watchlistHandler := handlers.NewWatchlistHandler(deps.WatchlistService)
	reviewHandler := handlers.NewReviewHandler(deps.ReviewService)
	paymentHandler := handlers.NewPaymentHandler(deps.PaymentService, deps.OrderService)
	uploadHandler := handlers.NewUploadHandler(deps.StorageService)
	healthHandler := handlers.NewHealthHandler(deps.Ping)

	authRequired := middleware.AuthRequired(deps.JWT)
	vendorRequired := middleware.VendorRequired(deps.UserService)
	adminRequired := middleware.AdminRequired(deps.UserService)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(middleware.I18nMiddleware(cfg.I18n.DefaultLocale))
	r.Use(generalLimiter.Middleware())
	if deps.AuditLogger != nil {
		r.Use(deps.AuditLogger.Middleware())
	}

	r.GET("/", healthHandler.Root)
	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", middleware.MetricsHandler())

	// Credentials and users
	r.POST("/jwt", authLimiter.Middleware(), authHandler.IssueToken)
	r.POST("/user", userHandler.SaveUser)
	r.GET("/user/role/:email", authRequired, userHandler.GetRole)

	admin := r.Group("")
	admin.Use(authRequired, adminRequired)
	{
		admin.GET("/users", userHandler.ListUsers)
		admin.PATCH("/users/:id/role", userHandler.UpdateRole)
		admin.PATCH("/products/approve/:id", productHandler.ApproveProduct)
		admin.PATCH("/products/reject/:id", productHandler.RejectProduct)
		admin.GET("/all-advertisements", advertisementHandler.GetAllAdvertisements)
		admin.PATCH("/advertisements/status/:id", advertisementHandler.UpdateStatus)
	}

	vendor := r.Group("")
	vendor.Use(authRequired, vendorRequired)
	{
		vendor.POST("/products", productHandler.CreateProduct)
		vendor.GET("/products", productHandler.GetVendorProducts)
		vendor.PUT("/products/:id", productHandler.UpdateProduct)
		vendor.DELETE("/products/:id", productHandler.DeleteProduct)

		vendor.POST("/advertisements", advertisementHandler.CreateAdvertisement)
		vendor.GET("/advertisements/:email", advertisementHandler.GetVendorAdvertisements)
		vendor.PUT("/advertisements/:id", advertisementHandler.UpdateAdvertisement)
		vendor.DELETE("/advertisements/:id", advertisementHandler.DeleteAdvertisement)

		vendor.POST("/upload-image", uploadHandler.UploadImage)
	}

	// Products and advertisements
	r.GET("/products/:id", authRequired, productHandler.GetProduct)
	r.GET("/all-products", productHandler.ListProducts)
	r.GET("/advertisements", advertisementHandler.GetApprovedAdvertisements)

	// Watchlist and reviews
	r.GET("/watchlist/check", watchlistHandler.CheckWatchlist)
	r.POST("/watchlist", watchlistHandler.AddToWatchlist)
	r.GET("/watchlist/:email", authRequired, watchlistHandler.GetWatchlist)
	r.DELETE("/watchlist/:id", authRequired, watchlistHandler.RemoveFromWatchlist)
	r.POST("/reviews", reviewHandler.AddReview)
	r.GET("/reviews/:productId", reviewHandler.GetProductReviews)

	// Payments and orders
	r.POST("/create-payment-intent", paymentHandler.CreatePaymentIntent)
	r.POST("/order", paymentHandler.CreateOrder)
	r.GET("/orders", authRequired, paymentHandler.GetOrders)

	// Local uploads when S3 is not configured
	if deps.StorageService.UsesLocalDisk() {
		r.Static("/uploads", services.LocalUploadDir)
	}

	logrus.WithField("routes", len(r.Routes())).Debug("Router initialized")

	return &Server{
		Engine:   r,
		audit:    deps.AuditLogger,
		limiters: []*middleware.RateLimiter{generalLimiter, authLimiter},
	}
}
