package survey

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
	g := api.Group("/patients/:patient_id/surveys", auth.RequireRole("therapist", "patient"))
	g.POST("", h.Submit)
	g.GET("", h.List)
	g.GET("/latest", h.Latest)
	g.GET("/trend", h.Trend)

	api.GET("/surveys/mmrc/grades", h.MMRCGrades, auth.RequireRole("therapist", "patient"))
}

type submitRequest struct {
	SurveyType Type           `json:"survey_type"`
	Answers    map[string]int `json:"answers"`
}

func (h *Handler) Submit(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("patient_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
	}
	var req submitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	sr, err := h.svc.Submit(c.Request().Context(), patientID, req.SurveyType, req.Answers)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, sr)
}

func (h *Handler) Latest(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("patient_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
	}
	surveyType, err := parseType(c.QueryParam("type"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	sr, err := h.svc.Latest(c.Request().Context(), patientID, surveyType)
	if err != nil {
		if errors.Is(err, ErrNoSurveyData) {
			return echo.NewHTTPError(http.StatusNotFound, "no survey data")
		}
		return err
	}
	return c.JSON(http.StatusOK, sr)
}

func (h *Handler) List(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("patient_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
	}
	surveyType, err := parseType(c.QueryParam("type"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListByPatient(c.Request().Context(), patientID, surveyType, pg.Limit, pg.Offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) Trend(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("patient_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
	}
	surveyType, err := parseType(c.QueryParam("type"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	trend, err := h.svc.Trend(c.Request().Context(), patientID, surveyType)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{
		"patient_id":  patientID.String(),
		"survey_type": string(surveyType),
		"trend":       trend,
	})
}

// MMRCGrades lists the mMRC grade descriptions for the requested locale.
func (h *Handler) MMRCGrades(c echo.Context) error {
	locale := c.QueryParam("locale")
	if locale == "" {
		locale = "en"
	}
	grades := make([]map[string]interface{}, 0, 5)
	for grade := 0; grade <= 4; grade++ {
		desc, err := MMRCDescription(grade, locale)
		if err != nil {
			return err
		}
		grades = append(grades, map[string]interface{}{
			"grade":       grade,
			"description": desc,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"locale": locale,
		"grades": grades,
	})
}

func parseType(raw string) (Type, error) {
	switch Type(raw) {
	case TypeCAT:
		return TypeCAT, nil
	case TypeMMRC:
		return TypeMMRC, nil
	default:
		return "", errors.New("type must be CAT or MMRC")
	}
}
