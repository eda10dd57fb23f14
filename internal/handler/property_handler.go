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

// PropertyHandler serves both the public listing endpoints and the admin CRUD
// endpoints for properties.
type PropertyHandler struct {
	repo *repository.PropertyRepository
}

func NewPropertyHandler(repo *repository.PropertyRepository) *PropertyHandler {
	return &PropertyHandler{repo: repo}
}

// List handles retrieving properties with optional filtering. Filters combine
// with AND; an absent parameter means no constraint, an unparsable one is a
// 400 naming the parameter.
func (h *PropertyHandler) List(c echo.Context) error {
	log := logger.FromContext(c)

	var filter repository.PropertyFilter

	if available := c.QueryParam("available"); available != "" {
		v, err := strconv.ParseBool(available)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid available parameter"})
		}
		filter.Available = &v
	}
	if beds := c.QueryParam("beds"); beds != "" {
		v, err := strconv.Atoi(beds)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid beds parameter"})
		}
		filter.MinBedrooms = &v
	}
	if minRent := c.QueryParam("minRent"); minRent != "" {
		v, err := strconv.ParseFloat(minRent, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid minRent parameter"})
		}
		filter.MinRent = &v
	}
	if maxRent := c.QueryParam("maxRent"); maxRent != "" {
		v, err := strconv.ParseFloat(maxRent, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid maxRent parameter"})
		}
		filter.MaxRent = &v
	}
	filter.Type = c.QueryParam("type")
	filter.Search = c.QueryParam("search")

	defer prometheus.TrackDBOperation("query")(time.Now())
	properties, err := h.repo.List(c.Request().Context(), filter)
	if err != nil {
		log.Error("Failed to list properties", zap.Error(err))
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, properties)
}

// Get handles retrieving a single property by ID.
func (h *PropertyHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}

	property, err := h.repo.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, property)
}

// Create handles creating a new property.
func (h *PropertyHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	var property model.Property
	if err := c.Bind(&property); err != nil {
		log.Warn("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	property.ID = 0
	property.CreatedAt = time.Time{}
	property.UpdatedAt = time.Time{}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := h.repo.Create(c.Request().Context(), &property); err != nil {
		return respondError(c, err)
	}

	log.Info("Property created",
		zap.Uint("property_id", property.ID),
		zap.String("name", property.Name))
	return c.JSON(http.StatusCreated, property)
}

// Update applies a partial update; fields absent from the body keep their
// stored values.
func (h *PropertyHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}

	var update repository.PropertyUpdate
	if err := c.Bind(&update); err != nil {
		log.Warn("Invalid request data", zap.Uint("property_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	property, err := h.repo.Update(c.Request().Context(), id, update)
	if err != nil {
		return respondError(c, err)
	}

	log.Info("Property updated", zap.Uint("property_id", id))
	return c.JSON(http.StatusOK, property)
}

// Delete removes a property. Blocked with 409 while active or upcoming
// leases reference it.
func (h *PropertyHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := h.repo.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}

	log.Info("Property deleted", zap.Uint("property_id", id))
	return c.NoContent(http.StatusNoContent)
}
