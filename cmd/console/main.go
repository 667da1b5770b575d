package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/visionhub/console/internal/bridge"
	"github.com/visionhub/console/internal/config"
	"github.com/visionhub/console/internal/handler"
	"github.com/visionhub/console/internal/middleware"
	"github.com/visionhub/console/internal/observability/metrics"
	"github.com/visionhub/console/internal/session"
	"github.com/visionhub/console/internal/worker"
	"github.com/visionhub/console/pkg/visionhub"
)

// main is the application entrypoint for the VisionHub admin console.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting visionhub console")

	// 3. Connect session store (Redis)
	store, err := session.NewStore(&cfg.Redis, cfg.Session.TTL)
	if err != nil {
		log.Error().Err(err).Msg("session store connection failed")
		fmt.Fprintf(os.Stderr, "session store connection failed: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()
	log.Info().Msg("session store connected successfully")

	// 4. Initialize backend client
	client := visionhub.NewClient(cfg.Backend.URL,
		visionhub.WithHTTPClient(&http.Client{Timeout: cfg.Backend.Timeout}),
		visionhub.WithObserver(func(method string, status int, elapsed time.Duration) {
			metrics.ObserveBackendRequest(method, strconv.Itoa(status), elapsed)
		}),
	)

	// 5. Initialize handlers
	consoleHandler := handler.NewConsoleHandler(client, store, cfg)

	// 6. Initialize middleware
	authMw := middleware.NewAuthMiddleware(store, cfg.Session.CookieName)

	// 7. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(metrics.HTTPMetricsMiddleware())
	setupRoutes(router, consoleHandler, authMw)

	// 8. Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 9. Initialize the module bridge once the router is ready
	ready := make(chan struct{})
	var starter bridge.Starter
	go func() {
		if err := starter.Run(ctx, ready, func() {
			consoleHandler.SetSessionFactory(func(token string) *bridge.Session {
				return bridge.NewSession(client.WithToken(token), cfg.Console.ConfirmTTL, cfg.Console.VideoCacheTTL)
			})
		}); err != nil {
			log.Error().Err(err).Msg("bridge initialization aborted")
		}
	}()
	close(ready)

	// 10. Start workers
	go worker.NewSweepWorker(consoleHandler, cfg.Console.SweepInterval).Start(ctx)

	// 11. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 12. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 13. Cancel context to stop workers
	cancel()

	// 14. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, h *handler.ConsoleHandler, authMw *middleware.AuthMiddleware) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.Static("/static", "./web/static")

	router.GET("/login", h.LoginPage)
	router.POST("/login", h.Login)
	router.POST("/logout", h.Logout)

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusSeeOther, "/admin")
	})

	// Console routes (protected with session cookie)
	admin := router.Group("/admin")
	admin.Use(authMw.Handle())
	{
		admin.GET("", h.AdminRoot)
		admin.GET("/:tag", h.ModulePage)
		admin.POST("/:tag/action/:action", h.ModuleAction)
		admin.POST("/:tag/confirm", h.ModuleConfirm)
	}
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
