package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/seanlynch0199/MMIS6191-Roses-CloversProperties/internal/model"
	"github.com/seanlynch0199/MMIS6191-Roses-CloversProperties/internal/repository"
	"github.com/seanlynch0199/MMIS6191-Roses-CloversProperties/pkg/logger"
	"github.com/seanlynch0199/MMIS6191-Roses-CloversProperties/prometheus"
	"go.uber.org/zap"
)

// TenantHandler serves the admin CRUD endpoints for tenants.
type TenantHandler struct {
	repo *repository.TenantRepository
}

func NewTenantHandler(repo *repository.TenantRepository) *TenantHandler {
	return &TenantHandler{repo: repo}
}

func (h *TenantHandler) List(c echo.Context) error {
	defer prometheus.TrackDBOperation("query")(time.Now())
	tenants, err := h.repo.List(c.Request().Context())
	if err != nil {
		logger.FromContext(c).Error("Failed to list tenants", zap.Error(err))
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, tenants)
}

func (h *TenantHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}

	tenant, err := h.repo.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, tenant)
}

// Create persists a new tenant. A duplicate email responds 409 so the client
// can render a specific hint instead of a generic failure.
func (h *TenantHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	var tenant model.Tenant
	if err := c.Bind(&tenant); err != nil {
		log.Warn("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	tenant.ID = 0
	tenant.CreatedAt = time.Time{}
	tenant.UpdatedAt = time.Time{}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := h.repo.Create(c.Request().Context(), &tenant); err != nil {
		return respondError(c, err)
	}

	log.Info("Tenant created",
		zap.Uint("tenant_id", tenant.ID),
		zap.String("email", tenant.Email))
	return c.JSON(http.StatusCreated, tenant)
}

func (h *TenantHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}

	var update repository.TenantUpdate
	if err := c.Bind(&update); err != nil {
		log.Warn("Invalid request data", zap.Uint("tenant_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	tenant, err := h.repo.Update(c.Request().Context(), id, update)
	if err != nil {
		return respondError(c, err)
	}

	log.Info("Tenant updated", zap.Uint("tenant_id", id))
	return c.JSON(http.StatusOK, tenant)
}

func (h *TenantHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := h.repo.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}

	log.Info("Tenant deleted", zap.Uint("tenant_id", id))
	return c.NoContent(http.StatusNoContent)
}
