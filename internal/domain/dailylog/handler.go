package dailylog

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

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
	g := api.Group("/patients/:patient_id/logs", auth.RequireRole("therapist", "patient"))
	g.POST("", h.Submit)
	g.GET("", h.List)
	g.GET("/latest", h.Latest)
}

func (h *Handler) Submit(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("patient_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
	}
	var log DailyLog
	if err := c.Bind(&log); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	log.PatientID = patientID
	if err := h.svc.Submit(c.Request().Context(), &log); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, log)
}

func (h *Handler) Latest(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("patient_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
	}
	log, err := h.svc.Latest(c.Request().Context(), patientID)
	if err != nil {
		if errors.Is(err, ErrNoLogs) {
			return echo.NewHTTPError(http.StatusNotFound, "no daily logs")
		}
		return err
	}
	return c.JSON(http.StatusOK, log)
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
