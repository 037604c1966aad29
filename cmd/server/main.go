package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	gommonlog "github.com/labstack/gommon/log"

	"devtoolbox_echo/internal/config"
	"devtoolbox_echo/internal/handlers"
	appMiddleware "devtoolbox_echo/internal/middleware"
	"devtoolbox_echo/internal/router"
	"devtoolbox_echo/internal/services"
	"devtoolbox_echo/internal/tools"
	"devtoolbox_echo/internal/views"
	"devtoolbox_echo/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	menu := config.Menu()
	if err := config.ValidateMenu(menu); err != nil {
		log.Fatalf("Invalid menu: %v", err)
	}

	// Optional Redis cache for generated QR codes
	var cache *services.RedisCache
	deps := views.Deps{CacheTTL: cfg.QRCacheTTL}
	if cfg.RedisURL != "" {
		cache, err = services.NewRedisCache(cfg.RedisURL)
		if err != nil {
			log.Printf("Warning: Redis unavailable, QR cache disabled: %v", err)
			cache = nil
		} else {
			deps.Cache = cache
			defer cache.Close()
		}
	} else {
		log.Println("Warning: REDIS_URL not set, QR cache disabled")
	}

	apiClient, err := tools.NewAPIClient(tools.APIClientOptions{
		Timeout:       cfg.APITesterTimeout,
		RatePerSecond: cfg.APITesterRate,
		MaxBodyBytes:  cfg.APITesterMaxBody,
	})
	if err != nil {
		log.Fatalf("Failed to create API client: %v", err)
	}
	deps.APIClient = apiClient

	deps.Timezone, err = tools.LoadZone(cfg.DefaultTimezone)
	if err != nil {
		log.Fatalf("Failed to load timezone: %v", err)
	}

	appRouter, err := router.New(router.DefaultRoutes(views.DefaultRegistry(), deps, cfg.DefaultRedirectTo))
	if err != nil {
		log.Fatalf("Invalid route table: %v", err)
	}

	metrics := services.NewMetrics()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(parseLevel(cfg.LogLevel))
	e.HTTPErrorHandler = appMiddleware.CustomErrorHandler

	// Middleware
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(bodyLimit(cfg.MaxUploadBytes)))
	e.Use(appMiddleware.Metrics(metrics))
	e.Use(appMiddleware.Notifications())

	// Template renderer with per-page cloning
	renderer, err := handlers.NewTemplateRenderer(web.FS)
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}
	e.Renderer = renderer

	static, err := fs.Sub(web.FS, "static")
	if err != nil {
		log.Fatalf("Failed to open static assets: %v", err)
	}

	// Initialize handlers
	toolHandler := handlers.NewToolHandler(appRouter, menu, metrics, cfg.MaxUploadBytes)
	var pinger handlers.Pinger
	if cache != nil {
		pinger = cache
	}
	metaHandler := handlers.NewMetaHandler(appRouter, menu, pinger)

	handlers.RegisterRoutes(e, toolHandler, metaHandler, metrics, static)

	// Start server
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

// parseLevel maps LOG_LEVEL to a gommon level, defaulting to INFO
func parseLevel(level string) gommonlog.Lvl {
	switch strings.ToLower(level) {
	case "debug":
		return gommonlog.DEBUG
	case "warn", "warning":
		return gommonlog.WARN
	case "error":
		return gommonlog.ERROR
	case "off":
		return gommonlog.OFF
	default:
		return gommonlog.INFO
	}
}

// bodyLimit renders the upload cap for BodyLimit, leaving room for the other form fields
func bodyLimit(maxUpload int64) string {
	const slack = 1 << 20
	return strconv.FormatInt((maxUpload+slack)/1024, 10) + "K"
}
