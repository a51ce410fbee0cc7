package handlers

import (
	"context"
	"net/http"
	"time"

	"kaasu/internal/dto"
	"kaasu/internal/errors"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheckHandler handles the root and health check endpoints
type HealthCheckHandler struct {
	db *gorm.DB
}

// NewHealthCheckHandler creates a new health check handler
func NewHealthCheckHandler(db *gorm.DB) *HealthCheckHandler {
	return &HealthCheckHandler{db: db}
}

// Root greets API clients
// @Summary Service banner
// @Tags Health
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router / [get]
func (h *HealthCheckHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Hello from backend"})
}

// HealthCheck reports whether the database answers a ping
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} dto.HealthResponse "Service is healthy"
// @Failure 503 {object} errors.ErrorResponse "SYSTEM_003 - Service unavailable (database connection failed)"
// @Router /health [get]
func (h *HealthCheckHandler) HealthCheck(c echo.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return SendError(c, errors.SystemServiceUnavailable, errors.WithDetails("Database connection failed"))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return SendError(c, errors.SystemServiceUnavailable, errors.WithDetails("Database connection failed"))
	}

	return c.JSON(http.StatusOK, dto.HealthResponse{
		Status:   "ok",
		Database: "connected",
		Time:     time.Now().UTC().Format(time.RFC3339),
	})
}
