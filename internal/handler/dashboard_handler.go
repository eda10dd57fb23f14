package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/seanlynch0199/MMIS6191-Roses-CloversProperties/internal/repository"
	"github.com/seanlynch0199/MMIS6191-Roses-CloversProperties/pkg/logger"
	"github.com/seanlynch0199/MMIS6191-Roses-CloversProperties/prometheus"
	"go.uber.org/zap"
)

// DashboardHandler serves the admin dashboard aggregate.
type DashboardHandler struct {
	repo *repository.StatsRepository
}

func NewDashboardHandler(repo *repository.StatsRepository) *DashboardHandler {
	return &DashboardHandler{repo: repo}
}

// Stats recomputes the dashboard numbers from current repository state.
func (h *DashboardHandler) Stats(c echo.Context) error {
	defer prometheus.TrackDBOperation("query")(time.Now())
	stats, err := h.repo.Dashboard(c.Request().Context())
	if err != nil {
		logger.FromContext(c).Error("Failed to compute dashboard stats", zap.Error(err))
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
