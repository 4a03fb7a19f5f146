package server

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dinerozz/parts-analytics-backend/config"
	"github.com/dinerozz/parts-analytics-backend/docs"
	analyticsHandler "github.com/dinerozz/parts-analytics-backend/internal/handler/analytics"
	authHandler "github.com/dinerozz/parts-analytics-backend/internal/handler/auth"
	retentionHandler "github.com/dinerozz/parts-analytics-backend/internal/handler/retention"
	trackingHandler "github.com/dinerozz/parts-analytics-backend/internal/handler/tracking"
	"github.com/dinerozz/parts-analytics-backend/middleware"
	"github.com/dinerozz/parts-analytics-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterHandler struct {
	trackingHandler  *trackingHandler.TrackingHandler
	analyticsHandler *analyticsHandler.AnalyticsHandler
	authHandler      *authHandler.AuthHandler
	retentionHandler *retentionHandler.RetentionHandler

	allowedOrigin string
	healthChecks  []healthCheck
}

type healthCheck struct {
	name string
	ping func(ctx context.Context) error
}

func RunServer(config *config.Config, logger *slog.Logger) {
	env := config.Env
	switch env {
	case "prod", "production":
		gin.SetMode(gin.ReleaseMode)
		log.Println("🚀 Starting server in PRODUCTION mode")
	case "dev", "development":
		gin.SetMode(gin.DebugMode)
		log.Println("🔧 Starting server in DEVELOPMENT mode")
	default:
		gin.SetMode(gin.DebugMode)
		log.Println("🔧 Starting server in DEVELOPMENT mode (default)")
	}

	if config.Auth.JWTSecret == "" {
		log.Println("⚠️ JWT_SECRET is empty, admin tokens are signed with an empty key")
	}
	utils.SetJWTSecret(config.Auth.JWTSecret)

	startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	app, err := NewApp(startupCtx, config, logger)
	cancel()
	if err != nil {
		log.Fatal("❌ Failed to initialize application:", err)
	}
	defer app.Close()

	scheduler, err := startRetentionJob(config.Analytics.RetentionSchedule, app.Retention, app.Location, logger)
	if err != nil {
		log.Fatal("❌ Failed to schedule retention job:", err)
	}
	defer func() { <-scheduler.Stop().Done() }()

	routerHandler := &RouterHandler{
		trackingHandler:  trackingHandler.NewTrackingHandler(app.Tracking),
		analyticsHandler: analyticsHandler.NewAnalyticsHandler(app.Analytics),
		authHandler:      authHandler.NewAuthHandler(config.Auth.AdminUsername, config.Auth.AdminPasswordHash),
		retentionHandler: retentionHandler.NewRetentionHandler(app.Retention),
		allowedOrigin:    config.Server.AllowedOrigin,
		healthChecks:     []healthCheck{{name: "events", ping: app.Events.Ping}},
	}
	if app.Redis != nil {
		routerHandler.healthChecks = append(routerHandler.healthChecks, healthCheck{name: "redis", ping: app.Redis.Health})
	}

	r := setupRouter(routerHandler)

	srv := &http.Server{
		Addr:    ":" + config.Server.Port,
		Handler: r,
	}

	go func() {
		log.Printf("✅ Server starting on port %s", config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	gracefulShutdown(srv)
}

func gracefulShutdown(srv *http.Server) {
	quit := make(chan os.Signal, 1)

	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Println("🔄 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("❌ Server forced to shutdown: %v", err)
		return
	}

	select {
	case <-ctx.Done():
		log.Println("⚠️ Server shutdown timeout exceeded")
	default:
		log.Println("✅ Server gracefully stopped")
	}
}

func corsMiddleware(allowedOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if origin != "" && (strings.HasPrefix(origin, "http://localhost:") ||
			strings.HasPrefix(origin, "http://127.0.0.1:")) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else if allowedOrigin != "" && origin == allowedOrigin {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func (h *RouterHandler) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := gin.H{}
	for _, check := range h.healthChecks {
		if err := check.ping(ctx); err != nil {
			status = http.StatusServiceUnavailable
			checks[check.name] = err.Error()
			continue
		}
		checks[check.name] = "ok"
	}

	state := "healthy"
	if status != http.StatusOK {
		state = "unhealthy"
	}

	c.JSON(status, gin.H{
		"status":    state,
		"checks":    checks,
		"timestamp": time.Now().Unix(),
		"service":   "parts-analytics",
	})
}

func setupRouter(routerHandler *RouterHandler) *gin.Engine {
	r := gin.Default()
	r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	r.Use(corsMiddleware(routerHandler.allowedOrigin))
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.MetricsMiddleware())

	r.GET("/health", routerHandler.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	docs.SwaggerInfo.Host = "127.0.0.1:8080"
	docs.SwaggerInfo.Schemes = []string{"http", "https"}
	docs.SwaggerInfo.Title = "Parts analytics API"
	docs.SwaggerInfo.Description = "Storefront event ingestion and admin analytics"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.BasePath = "/api/v1"

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	publicRoutes := r.Group("/api/v1")
	{
		publicRoutes.POST("/events", routerHandler.trackingHandler.TrackEvent)
	}

	publicAdminRoutes := r.Group("/api/v1/admin")
	{
		publicAdminRoutes.POST("/auth", routerHandler.authHandler.Login)
		publicAdminRoutes.POST("/auth/logout", routerHandler.authHandler.Logout)
	}

	privateRoutes := r.Group("/api/v1/admin")
	privateRoutes.Use(middleware.AuthenticationMiddleware())
	{
		analyticsRoutes := privateRoutes.Group("/analytics")

		analyticsRoutes.GET("/dashboard", routerHandler.analyticsHandler.GetDashboard)
		analyticsRoutes.GET("/traffic", routerHandler.analyticsHandler.GetTraffic)
		analyticsRoutes.GET("/products", routerHandler.analyticsHandler.GetProducts)
		analyticsRoutes.POST("/retention/purge", routerHandler.retentionHandler.Purge)
	}

	return r
}
