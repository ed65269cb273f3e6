package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/go-invoicing/internal/middleware"
	"github.com/deppfellow/go-invoicing/internal/server"
	"github.com/labstack/echo/v4"
)

type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

type dependencyCheck struct {
	name string
	ping func(ctx context.Context) error
}

func (h *HealthHandler) dependencyChecks() []dependencyCheck {
	obs := h.server.Config.Observability
	if obs == nil {
		return nil
	}

	var checks []dependencyCheck
	if obs.HasCheck("database") && h.server.DB != nil {
		checks = append(checks, dependencyCheck{name: "database", ping: h.server.DB.Pool.Ping})
	}
	if obs.HasCheck("redis") && h.server.Redis != nil {
		checks = append(checks, dependencyCheck{name: "redis", ping: func(ctx context.Context) error {
			return h.server.Redis.Ping(ctx).Err()
		}})
	}
	return checks
}

func (h *HealthHandler) checkTimeout() time.Duration {
	if obs := h.server.Config.Observability; obs != nil && obs.HealthChecks.Timeout > 0 {
		return obs.HealthChecks.Timeout
	}
	return 5 * time.Second
}

// CheckHealth answers 200 when every enabled dependency check passes and 503
// otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]any)
	response := map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	isHealthy := true
	for _, check := range h.dependencyChecks() {
		ctx, cancel := context.WithTimeout(c.Request().Context(), h.checkTimeout())
		checkStart := time.Now()
		err := check.ping(ctx)
		cancel()

		if err != nil {
			isHealthy = false
			checks[check.name] = map[string]any{
				"status":        "unhealthy",
				"response_time": time.Since(checkStart).String(),
				"error":         err.Error(),
			}

			logger.Error().
				Err(err).
				Str("check", check.name).
				Dur("response_time", time.Since(checkStart)).
				Msg("health check failed")

			h.recordHealthCheckError(check.name, time.Since(checkStart), err)
			continue
		}

		checks[check.name] = map[string]any{
			"status":        "healthy",
			"response_time": time.Since(checkStart).String(),
		}

		logger.Debug().
			Str("check", check.name).
			Dur("response_time", time.Since(checkStart)).
			Msg("health check passed")
	}

	if !isHealthy {
		response["status"] = "unhealthy"
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("service unhealthy")
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}
	return nil
}

func (h *HealthHandler) recordHealthCheckError(check string, elapsed time.Duration, err error) {
	if h.server.LoggerService == nil || h.server.LoggerService.GetApplication() == nil {
		return
	}

	h.server.LoggerService.GetApplication().RecordCustomEvent("HealthCheckError", map[string]any{
		"check_type":       check,
		"operation":        "health_check",
		"response_time_ms": elapsed.Milliseconds(),
		"error_message":    err.Error(),
	})
}
