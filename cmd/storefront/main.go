// Package main Storefront API
//
// Cart, coupon and checkout API in front of the commerce backend.
//
//	@title			Storefront API
//	@version		1.0
//	@description	Cart pricing, coupons and payment checkout
//
//	@contact.name	API Support
//	@contact.email	support@example.com
//
//	@host		localhost:8080
//	@BasePath	/api/v1
//	@schemes	http https
//
//	@securityDefinitions.apikey	SessionAuth
//	@in							header
//	@name						X-Session-ID
package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	_ "storefront/docs/swagger"
	cartadapters "storefront/internal/cart/adapters"
	cartapp "storefront/internal/cart/application"
	cartinfra "storefront/internal/cart/infrastructure"
	cartports "storefront/internal/cart/ports"
	checkoutadapters "storefront/internal/checkout/adapters"
	checkoutapp "storefront/internal/checkout/application"
	checkoutinfra "storefront/internal/checkout/infrastructure"
	checkoutports "storefront/internal/checkout/ports"
	"storefront/pkg/backend"
	"storefront/pkg/config"
	"storefront/pkg/db"
	"storefront/pkg/events"
	grpcpkg "storefront/pkg/grpc"
	"storefront/pkg/logger"
	"storefront/pkg/middleware"
	"storefront/pkg/rabbitmq"
	"storefront/pkg/tls"
)

func main() {
	// Load configuration
	cfg := config.LoadForService("STOREFRONT")

	// Initialize logger
	log := logger.New("storefront", cfg.LogLevel, logger.WithFormat(cfg.LogFormat))
	defer log.Sync()

	log.Info("starting storefront service")

	// Connect to database
	dbConn, err := db.NewConnection(cfg.Database())
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close(dbConn)
	log.Info("connected to database")

	cartRepo := cartadapters.NewPostgresCartRepository(dbConn)
	attemptRepo := checkoutadapters.NewPostgresAttemptRepository(dbConn)
	if err := db.Migrate(cartRepo, attemptRepo); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	// Redis is optional; without it carts are read from postgres
	var cartCache cartports.CartCache
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 2*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Warn("redis unavailable, cart cache disabled", zap.Error(err))
		_ = redisClient.Close()
	} else {
		defer redisClient.Close()
		cartCache = cartadapters.NewRedisCartCache(redisClient, cfg.CartCacheTTL)
		log.Info("connected to redis")
	}
	pingCancel()

	// Commerce backend
	backendCfg := backend.Config{
		BaseURL: cfg.BackendBaseURL,
		Token:   cfg.BackendToken,
		Timeout: cfg.HTTPTimeout,
	}
	if cfg.BackendCAFile != "" {
		backendCfg.TLS, err = tls.ClientConfig(tls.Files{CAFile: cfg.BackendCAFile})
		if err != nil {
			log.Fatal("failed to load backend TLS config", zap.Error(err))
		}
	}
	backendClient := backend.NewClient(backendCfg, log)

	// Connect to RabbitMQ
	var publisher checkoutports.EventPublisher
	rabbitConn, err := rabbitmq.NewConnection(cfg.RabbitMQURL, log)
	if err != nil {
		log.Warn("failed to connect to RabbitMQ, events will be disabled", zap.Error(err))
	} else {
		defer rabbitConn.Close()

		pub, err := rabbitmq.NewPublisher(rabbitConn, events.ExchangeCheckout, log)
		if err != nil {
			log.Warn("failed to create publisher", zap.Error(err))
		} else {
			publisher = checkoutadapters.NewRabbitMQPublisher(pub, log)
		}
	}

	// Initialize use cases
	cartUseCase := cartapp.NewCartUseCase(
		cartRepo,
		cartCache,
		cartadapters.NewBackendCouponClient(backendClient, log),
		log,
	)
	checkoutUseCase := checkoutapp.NewCheckoutUseCase(
		attemptRepo,
		checkoutadapters.NewLocalCartService(cartUseCase),
		checkoutadapters.NewBackendOrderGateway(backendClient),
		publisher,
		checkoutapp.WidgetConfig{
			KeyID:      cfg.PaymentKeyID,
			Currency:   cfg.Currency,
			StoreName:  cfg.StoreName,
			ThemeColor: cfg.ThemeColor,
		},
		log,
	)

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	httpServer := setupHTTPServer(cfg, log, cartUseCase, checkoutUseCase)
	go func() {
		var err error
		if cfg.TLSEnabled {
			log.Info("HTTPS server listening on :" + cfg.HTTPSPort)
			err = httpServer.ListenAndServeTLS("", "")
		} else {
			log.Info("HTTP server listening on :" + cfg.HTTPPort)
			err = httpServer.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Start gRPC server
	grpcServer, healthServer := setupGRPCServer(cfg, log, cartUseCase)

	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		log.Fatal("failed to listen for gRPC", zap.Error(err))
	}

	go func() {
		log.Info("gRPC server listening on :" + cfg.GRPCPort)
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatal("gRPC server error", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down servers...")
	healthServer.Shutdown()

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 10*time.Second)
	defer shutdownCancel()

	grpcServer.GracefulStop()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP shutdown error", zap.Error(err))
	}

	log.Info("servers stopped")
}

func setupHTTPServer(
	cfg *config.Config,
	log *logger.Logger,
	cartUseCase *cartapp.CartUseCase,
	checkoutUseCase *checkoutapp.CheckoutUseCase,
) *http.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(middleware.TraceID())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.ErrorHandler(log))
	router.Use(middleware.CORS())

	api := router.Group("/api/v1")
	api.Use(middleware.Session())
	cartinfra.NewHTTPHandler(cartUseCase).RegisterRoutes(api)
	checkoutinfra.NewHTTPHandler(checkoutUseCase).RegisterRoutes(api)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  cfg.HTTPTimeout,
		WriteTimeout: cfg.HTTPTimeout,
	}

	if cfg.TLSEnabled {
		tlsConfig, err := tls.ServerConfig(cfg.ServerTLS(), false)
		if err != nil {
			log.Fatal("failed to load TLS config", zap.Error(err))
		}
		server.Addr = ":" + cfg.HTTPSPort
		server.TLSConfig = tlsConfig
	}

	return server
}

func setupGRPCServer(cfg *config.Config, log *logger.Logger, cartUseCase *cartapp.CartUseCase) (*grpc.Server, *health.Server) {
	var opts []grpc.ServerOption

	// Add interceptors
	opts = append(opts,
		grpc.UnaryInterceptor(grpcpkg.UnaryServerInterceptor(log, cfg.GRPCTimeout)),
		grpc.StreamInterceptor(grpcpkg.StreamServerInterceptor(log)),
	)

	// Configure mTLS if enabled
	if cfg.GRPCMTLSEnabled {
		tlsConfig, err := tls.ServerConfig(cfg.ServerTLS(), true)
		if err != nil {
			log.Fatal("failed to load TLS config", zap.Error(err))
		}
		opts = append(opts, grpc.Creds(credentials.NewTLS(tlsConfig)))
		log.Info("gRPC mTLS enabled")
	}

	server := grpc.NewServer(opts...)
	cartinfra.NewGRPCServer(cartUseCase).Register(server)

	healthServer := health.NewServer()
	healthServer.SetServingStatus(cartinfra.CartServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(server, healthServer)

	return server, healthServer
}
