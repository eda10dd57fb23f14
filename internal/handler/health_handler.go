package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/seanlynch0199/MMIS6191-Roses-CloversProperties/prometheus"
)

// HealthCheck reports service liveness.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":    "healthy",
		"service":   "Roses & Clovers Properties API",
		"timestamp": time.Now(),
	})
}

// MetricsHandler exposes the Prometheus metrics endpoint.
func MetricsHandler(c echo.Context) error {
	prometheus.GetPrometheusHandler().ServeHTTP(c.Response(), c.Request())
	return nil
}
