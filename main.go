package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mavryck/config"
	"mavryck/handler"
	"mavryck/middleware"
	"mavryck/remote"
	"mavryck/repository"
	"mavryck/services"
	"mavryck/storage"
	"mavryck/utils"
)

func init() {
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file loaded: %v", err)
	}

	requiredEnvVars := []string{
		"ADMIN_EMAIL",
		"MONGO_URI",
		"MONGO_DB",
	}
	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}
	if os.Getenv("ADMIN_PASSWORD") == "" && os.Getenv("ADMIN_PASSWORD_HASH") == "" &&
		os.Getenv("GO_ENV") != "test" {
		log.Fatal("Either ADMIN_PASSWORD or ADMIN_PASSWORD_HASH must be set")
	}

	utils.InitValidator()
}

func setupRouter(
	corsOrigin string,
	auth *services.AuthService,
	sessions *services.SessionManager,
	csrf *services.CSRFIssuer,
	events handler.EventsStore,
	messages handler.MessagesStore,
	gallery handler.GalleryStore,
	products handler.ProductsStore,
	testimonials handler.TestimonialsStore,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORSMiddleware(corsOrigin))
	router.Use(middleware.MetricsMiddleware())

	authHandler := handler.NewAuthHandler(auth)
	healthHandler := handler.NewHealthHandler()
	eventsHandler := handler.NewEventsHandler(events)
	messagesHandler := handler.NewMessagesHandler(messages)
	galleryHandler := handler.NewGalleryHandler(gallery)
	productsHandler := handler.NewProductsHandler(products)
	testimonialsHandler := handler.NewTestimonialsHandler(testimonials)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	public := router.Group("/api")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.GET("/session", authHandler.Session)
			authRoutes.GET("/csrf", authHandler.CSRFToken)
		}

		// Public-facing forms and listings. Event requests and contact
		// messages can be submitted here but never read back; their
		// listings carry customer PII and stay behind the guard.
		public.POST("/events", eventsHandler.Create)
		public.POST("/messages", messagesHandler.Create)
		public.GET("/gallery", galleryHandler.List)
		public.GET("/products", productsHandler.List)
		public.GET("/testimonials", testimonialsHandler.List)
	}

	// Every privileged operation goes through the session guard and the
	// CSRF check.
	protected := router.Group("/api")
	protected.Use(middleware.RequireSession(sessions))
	protected.Use(middleware.CSRFMiddleware(csrf))
	{
		protected.POST("/auth/logout", authHandler.Logout)

		admin := protected.Group("/admin")
		{
			admin.GET("/security/stats", authHandler.SecurityStats)
			admin.GET("/health", healthHandler.Health)
		}

		protected.GET("/events", eventsHandler.List)
		protected.PUT("/events/:id", eventsHandler.Update)
		protected.DELETE("/events/:id", eventsHandler.Delete)

		protected.GET("/messages", messagesHandler.List)
		protected.PUT("/messages/:id", messagesHandler.Update)
		protected.DELETE("/messages/:id", messagesHandler.Delete)

		protected.POST("/gallery", galleryHandler.Create)
		protected.PUT("/gallery/:id", galleryHandler.Update)
		protected.DELETE("/gallery/:id", galleryHandler.Delete)

		protected.POST("/products", productsHandler.Create)
		protected.PUT("/products/:id", productsHandler.Update)
		protected.DELETE("/products/:id", productsHandler.Delete)

		protected.POST("/testimonials", testimonialsHandler.Create)
		protected.PUT("/testimonials/:id", testimonialsHandler.Update)
		protected.DELETE("/testimonials/:id", testimonialsHandler.Delete)
	}

	return router
}

func main() {
	serverCfg := config.LoadServerConfig()
	dbCfg := config.LoadDatabaseConfig()
	redisCfg := config.LoadRedisConfig()
	authCfg := config.LoadAuthConfig()
	remoteCfg := config.LoadRemoteConfig()

	// MongoDB for the record collections.
	client, err := repository.Connect(dbCfg)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()

	if err := repository.SetupIndexes(client.Database(dbCfg.DatabaseName)); err != nil {
		log.Printf("Warning: failed to set up indexes: %v", err)
	}

	// Session and CSRF state. Redis when configured, otherwise in-memory
	// (sessions then end on restart).
	var kv storage.KV
	if redisCfg.URL != "" {
		redisKV, err := storage.NewRedisKV(redisCfg.URL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisKV.Close()
		kv = redisKV
	} else {
		log.Println("REDIS_URL not set, using in-memory session storage")
		kv = storage.NewMemoryKV()
	}

	cred, err := services.NewAdminCredential(authCfg.AdminEmail, authCfg.AdminPassword, authCfg.AdminPasswordHash)
	if err != nil {
		log.Fatalf("Invalid admin credential configuration: %v", err)
	}

	var provider remote.IdentityProvider
	if remoteCfg.Enabled && remoteCfg.BaseURL != "" {
		provider = remote.NewGoTrueClient(remoteCfg.BaseURL, remoteCfg.APIKey, remoteCfg.Timeout)
	}

	ledger := services.NewAttemptLedger(authCfg.LockoutWindow, authCfg.MaxLoginAttempts)
	sessions := services.NewSessionManager(kv, authCfg.SessionTimeout)
	csrf := services.NewCSRFIssuer(kv)
	auth := services.NewAuthService(cred, ledger, sessions, csrf, provider, authCfg.AdminTOTPSecret)

	monitor := services.NewActivityMonitor(auth, authCfg.ActivityCheckInterval, func() {
		log.Println("Admin session expired; a new login is required")
	})
	monitor.Start()
	defer monitor.Stop()

	database := dbCfg.DatabaseName
	router := setupRouter(
		serverCfg.CORSOrigin,
		auth,
		sessions,
		csrf,
		repository.GetEventsRepo(client, database),
		repository.GetMessagesRepo(client, database),
		repository.GetGalleryRepo(client, database),
		repository.GetProductsRepo(client, database),
		repository.GetTestimonialsRepo(client, database),
	)

	server := &http.Server{
		Addr:    ":" + serverCfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	sig := <-quit
	log.Printf("Caught signal %s, shutting down", sig)

	ctx, cancel := context.WithTimeout(context.Background(), serverCfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Server shutdown complete")
}
