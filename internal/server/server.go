package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"kaasu/internal/config"
	"kaasu/internal/database"
	"kaasu/internal/handlers"
	"kaasu/internal/middleware"
	"kaasu/internal/repositories"
	"kaasu/internal/services"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxBodySize caps request bodies; expense payloads are tiny
const maxBodySize = "1M"

// Server owns the HTTP router and the collaborators behind it
type Server struct {
	Echo        *echo.Echo
	cfg         *config.Config
	db          *database.DB
	registry    *prometheus.Registry
	rateLimiter *middleware.RateLimiter
}

// New wires repositories, services and handlers onto a new echo instance.
// Each server gets its own Prometheus registry so tests can build many.
func New(cfg *config.Config, db *database.DB) *Server {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := services.NewPrometheusMetrics(registry)
	activity := services.NewActivityLogger(slog.Default())

	categoryRepo := repositories.NewCategoryRepository(db.DB)
	tagRepo := repositories.NewTagRepository(db.DB)
	expenseRepo := repositories.NewExpenseRepository(db.DB)
	summaryRepo := repositories.NewSummaryRepository(db.DB)

	categoryService := services.NewCategoryService(categoryRepo, activity, metrics)
	tagService := services.NewTagService(tagRepo, activity, metrics)
	expenseService := services.NewExpenseService(expenseRepo, activity, metrics)
	summaryService := services.NewSummaryService(summaryRepo, metrics)
	exportService := services.NewExportService(expenseRepo, metrics)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.NewHTTPErrorHandler(metrics)

	s := &Server{
		Echo:        e,
		cfg:         cfg,
		db:          db,
		registry:    registry,
		rateLimiter: middleware.NewRateLimiter(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitBurst),
	}

	e.Use(middleware.RequestID())
	e.Use(middleware.AccessLog())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.Server.CORSAllowOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAccept, middleware.TraceIDHeader},
		ExposeHeaders:    []string{middleware.TraceIDHeader, echo.HeaderContentDisposition},
		AllowCredentials: true,
	}))
	e.Use(echomw.BodyLimit(maxBodySize))

	s.registerRoutes(
		handlers.NewHealthCheckHandler(db.DB),
		handlers.NewCategoryHandler(categoryService),
		handlers.NewTagHandler(tagService),
		handlers.NewExpenseHandler(expenseService, exportService),
		handlers.NewSummaryHandler(summaryService),
	)

	return s
}

func (s *Server) registerRoutes(
	health *handlers.HealthCheckHandler,
	categories *handlers.CategoryHandler,
	tags *handlers.TagHandler,
	expenses *handlers.ExpenseHandler,
	summary *handlers.SummaryHandler,
) {
	e := s.Echo

	e.GET("/", health.Root)
	e.GET("/health", health.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	api := e.Group("/api", s.rateLimiter.Middleware())

	api.POST("/categories", categories.CreateCategory)
	api.GET("/categories", categories.ListCategories)
	api.DELETE("/categories/:id", categories.DeleteCategory)

	api.POST("/tags", tags.CreateTag)
	api.GET("/tags", tags.ListTags)
	api.DELETE("/tags/:id", tags.DeleteTag)

	api.POST("/expenses", expenses.CreateExpense)
	api.GET("/expenses", expenses.ListExpenses)
	api.GET("/expenses/export", expenses.ExportExpenses)
	api.GET("/expenses/:id", expenses.GetExpense)
	api.PUT("/expenses/:id", expenses.UpdateExpense)
	api.DELETE("/expenses/:id", expenses.DeleteExpense)

	api.GET("/summary", summary.CategorySummary)
	api.GET("/summary/totals", summary.Totals)
}

// Run serves until ctx is cancelled, then drains in-flight requests
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Address(),
		Handler:      s.Echo,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	s.rateLimiter.StartCleanup(ctx)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting kaasu server",
			"address", srv.Addr,
			"environment", s.cfg.Server.Environment,
			"database", s.cfg.Database.Driver,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutdown signal received, draining connections")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	slog.Info("Server stopped gracefully")
	return nil
}
