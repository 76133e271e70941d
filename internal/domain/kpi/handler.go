package kpi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/copdcare/copdcare/internal/domain/patient"
	"github.com/copdcare/copdcare/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/patients/:patient_id/kpis", auth.RequireRole("therapist"))
	g.GET("", h.Dashboard)
}

// Dashboard handles GET /patients/:patient_id/kpis?force_refresh=true.
func (h *Handler) Dashboard(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("patient_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
	}

	forceRefresh, _ := strconv.ParseBool(c.QueryParam("force_refresh"))

	d, err := h.svc.Dashboard(c.Request().Context(), patientID, forceRefresh)
	if err != nil {
		if errors.Is(err, patient.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "patient not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, d)
}
