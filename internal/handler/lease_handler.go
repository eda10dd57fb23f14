package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/seanlynch0199/MMIS6191-Roses-CloversProperties/internal/model"
	"github.com/seanlynch0199/MMIS6191-Roses-CloversProperties/internal/repository"
	"github.com/seanlynch0199/MMIS6191-Roses-CloversProperties/pkg/logger"
	"github.com/seanlynch0199/MMIS6191-Roses-CloversProperties/prometheus"
	"go.uber.org/zap"
)

// LeaseHandler serves the admin CRUD endpoints for leases.
type LeaseHandler struct {
	repo *repository.LeaseRepository
}

func NewLeaseHandler(repo *repository.LeaseRepository) *LeaseHandler {
	return &LeaseHandler{repo: repo}
}

// List supports status, propertyId and tenantId filters. A filter value that
// does not parse is a 400, not an unfiltered listing.
func (h *LeaseHandler) List(c echo.Context) error {
	var filter repository.LeaseFilter
	filter.Status = c.QueryParam("status")
	if propertyID := c.QueryParam("propertyId"); propertyID != "" {
		v, err := strconv.ParseUint(propertyID, 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid propertyId parameter"})
		}
		filter.PropertyID = uint(v)
	}
	if tenantID := c.QueryParam("tenantId"); tenantID != "" {
		v, err := strconv.ParseUint(tenantID, 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tenantId parameter"})
		}
		filter.TenantID = uint(v)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	leases, err := h.repo.List(c.Request().Context(), filter)
	if err != nil {
		logger.FromContext(c).Error("Failed to list leases", zap.Error(err))
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, leases)
}

func (h *LeaseHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}

	lease, err := h.repo.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, lease)
}

// Create persists a new lease. The referenced property and tenant must exist
// and the property must be free of overlapping active/upcoming leases.
func (h *LeaseHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	var lease model.Lease
	if err := c.Bind(&lease); err != nil {
		log.Warn("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	lease.ID = 0
	lease.CreatedAt = time.Time{}
	lease.UpdatedAt = time.Time{}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := h.repo.Create(c.Request().Context(), &lease); err != nil {
		return respondError(c, err)
	}

	log.Info("Lease created",
		zap.Uint("lease_id", lease.ID),
		zap.Uint("property_id", lease.PropertyID),
		zap.Uint("tenant_id", lease.TenantID),
		zap.String("status", lease.Status))
	return c.JSON(http.StatusCreated, lease)
}

func (h *LeaseHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}

	var update repository.LeaseUpdate
	if err := c.Bind(&update); err != nil {
		log.Warn("Invalid request data", zap.Uint("lease_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	lease, err := h.repo.Update(c.Request().Context(), id, update)
	if err != nil {
		return respondError(c, err)
	}

	log.Info("Lease updated", zap.Uint("lease_id", id), zap.String("status", lease.Status))
	return c.JSON(http.StatusOK, lease)
}

func (h *LeaseHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := h.repo.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}

	log.Info("Lease deleted", zap.Uint("lease_id", id))
	return c.NoContent(http.StatusNoContent)
}
