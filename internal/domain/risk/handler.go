package risk

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/copdcare/copdcare/internal/domain/patient"
	"github.com/copdcare/copdcare/internal/domain/survey"
	"github.com/copdcare/copdcare/internal/platform/auth"
	"github.com/copdcare/copdcare/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/patients/:patient_id/risk-assessments", auth.RequireRole("therapist"))
	g.POST("", h.Compute)
	g.GET("", h.List)
	g.GET("/latest", h.Latest)
}

func (h *Handler) Compute(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("patient_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
	}
	a, err := h.svc.ComputeAssessment(c.Request().Context(), patientID)
	if err != nil {
		switch {
		case errors.Is(err, patient.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "patient not found")
		case errors.Is(err, survey.ErrNoSurveyData):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		}
		return err
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) Latest(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("patient_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
	}
	a, err := h.svc.LatestAssessment(c.Request().Context(), patientID)
	if err != nil {
		if errors.Is(err, ErrNoAssessment) {
			return echo.NewHTTPError(http.StatusNotFound, "no risk assessment")
		}
		return err
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) List(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("patient_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListByPatient(c.Request().Context(), patientID, pg.Limit, pg.Offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}
