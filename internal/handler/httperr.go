package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/seanlynch0199/MMIS6191-Roses-CloversProperties/internal/repository"
	"github.com/seanlynch0199/MMIS6191-Roses-CloversProperties/pkg/logger"
	"go.uber.org/zap"
)

// respondError maps repository errors onto the HTTP error taxonomy: 400 for
// validation, 404 for unknown ids, 409 for conflicts, 500 for anything else.
// Unexpected errors get logged and a generic body so storage internals never
// leak to the client.
func respondError(c echo.Context, err error) error {
	var verr *repository.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": verr.Error()})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, repository.ErrDuplicateEmail),
		errors.Is(err, repository.ErrLeaseOverlap),
		errors.Is(err, repository.ErrPropertyHasLeases),
		errors.Is(err, repository.ErrTenantHasLeases):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	default:
		logger.FromContext(c).Error("Unexpected storage error", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (uint, error) {
	var id uint
	if err := echo.PathParamsBinder(c).Uint("id", &id).BindError(); err != nil || id == 0 {
		return 0, &repository.ValidationError{Field: "id", Message: "invalid id"}
	}
	return id, nil
}
