package main

// @title FreelanceFlow Scoring API
// @version 1.0
// @description Deterministic scoring and forecast engine for leads, projects, proposals and invoices.

// @host localhost:8080
// @BasePath /api/v1

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jordanlanch/freelanceflow/config"
	"github.com/jordanlanch/freelanceflow/pkg/container"
	custommiddleware "github.com/jordanlanch/freelanceflow/pkg/middleware"
)

const version = "0.1.0"

func main() {
	cfg := config.Load()

	// Sentry error tracking (disabled when no DSN is configured)
	sentryEnabled := false
	if cfg.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.SentryEnvironment,
			AttachStacktrace: true,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to initialize sentry: %v\n", err)
		} else {
			sentryEnabled = true
			defer sentry.Flush(2 * time.Second)
		}
	}

	c, err := container.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize application: %v\n", err)
		os.Exit(1)
	}
	defer c.Close()

	log := c.Logger

	e := echo.New()
	e.HideBanner = true

	globalRateLimiter := custommiddleware.NewRateLimiter(cfg.RateLimitRequestsPerMinute, cfg.RateLimitBurst)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request", "method", v.Method, "uri", v.URI, "status", v.Status)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	if sentryEnabled {
		e.Use(sentryecho.New(sentryecho.Options{
			Repanic: true,
		}))
	}

	e.Use(c.Metrics.Middleware())
	e.Use(middleware.CORS())
	e.Use(middleware.Gzip())
	e.Use(middleware.Secure())
	e.Use(globalRateLimiter.Middleware())

	// Public endpoints
	e.GET("/", func(ec echo.Context) error {
		return ec.JSON(http.StatusOK, map[string]any{
			"name":        "FreelanceFlow Scoring API",
			"version":     version,
			"status":      "running",
			"environment": cfg.APIEnvironment,
			"timestamp":   time.Now().Unix(),
		})
	})

	e.GET("/health", func(ec echo.Context) error {
		ctx, cancel := context.WithTimeout(ec.Request().Context(), 2*time.Second)
		defer cancel()

		dbStatus := "up"
		if err := c.Store.Ping(ctx); err != nil {
			dbStatus = "down"
		}

		cacheStatus := "disabled"
		if c.Cache != nil {
			cacheStatus = "up"
			if err := c.Cache.Redis.Ping(ctx).Err(); err != nil {
				cacheStatus = "down"
			}
		}

		status := http.StatusOK
		health := "healthy"
		if dbStatus == "down" {
			status = http.StatusServiceUnavailable
			health = "unhealthy"
		}
		return ec.JSON(status, map[string]any{
			"status":   health,
			"database": dbStatus,
			"cache":    cacheStatus,
		})
	})

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// API v1 routes
	v1 := e.Group("/api/v1")

	v1.GET("/version", func(ec echo.Context) error {
		return ec.JSON(http.StatusOK, map[string]string{"version": version})
	})
	v1.GET("/ping", func(ec echo.Context) error {
		return ec.JSON(http.StatusOK, map[string]string{"message": "pong"})
	})

	v1.GET("/leads/:id/score", c.LeadScoringHandler.GetScore)
	v1.POST("/leads/:id/score", c.LeadScoringHandler.RunAnalysis)
	v1.GET("/projects/:id/risk", c.ProjectRiskHandler.GetRisk)
	v1.POST("/proposals/optimize", c.ProposalsHandler.Optimize)
	v1.POST("/proposals/draft", c.ProposalsHandler.Draft)
	v1.POST("/invoices/automate", c.InvoicingHandler.Automate)
	v1.POST("/invoices/content", c.InvoicingHandler.Content)
	v1.POST("/events", c.AnalyticsHandler.Track)

	// Background jobs
	if c.CronManager != nil {
		if err := c.CronManager.SetupJobs(); err != nil {
			log.Error("failed to setup cron jobs", "error", err)
			os.Exit(1)
		}
		c.CronManager.Start()
	}

	// Start server
	address := fmt.Sprintf("%s:%s", cfg.APIHost, cfg.APIPort)
	log.Info("starting server",
		"address", address,
		"environment", cfg.APIEnvironment,
		"rate_limit_rpm", cfg.RateLimitRequestsPerMinute,
		"rescoring_enabled", cfg.RescoringEnabled)

	go func() {
		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			log.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
