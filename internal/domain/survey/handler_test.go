package survey

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *echo.Echo) {
	h := NewHandler(NewService(newMockRepo()))
	e := echo.New()
	return h, e
}

func TestHandler_Submit(t *testing.T) {
	h, e := newTestHandler()

	body := `{"survey_type":"CAT","answers":{"cough":4,"mucus":4,"chest_tightness":3,"breathlessness":3,"activity_limitation":3,"confidence_leaving_home":3,"sleep":3,"energy":2}}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("patient_id")
	c.SetParamValues(uuid.New().String())

	if err := h.Submit(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	var sr SurveyResponse
	json.Unmarshal(rec.Body.Bytes(), &sr)
	if sr.TotalScore != 25 {
		t.Errorf("expected total 25, got %d", sr.TotalScore)
	}
	if sr.SeverityLevel != SeveritySevere {
		t.Errorf("expected SEVERE, got %s", sr.SeverityLevel)
	}
}

func TestHandler_Submit_InvalidAnswers(t *testing.T) {
	h, e := newTestHandler()

	body := `{"survey_type":"CAT","answers":{"cough":9}}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("patient_id")
	c.SetParamValues(uuid.New().String())

	err := h.Submit(c)
	if err == nil {
		t.Fatal("expected error for invalid answers")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_Submit_InvalidPatientID(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("patient_id")
	c.SetParamValues("not-a-uuid")

	if err := h.Submit(c); err == nil {
		t.Error("expected error for invalid patient_id")
	}
}

func TestHandler_Latest_NotFound(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/?type=CAT", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("patient_id")
	c.SetParamValues(uuid.New().String())

	err := h.Latest(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestHandler_Latest_TypeRequired(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("patient_id")
	c.SetParamValues(uuid.New().String())

	if err := h.Latest(c); err == nil {
		t.Error("expected error for missing type param")
	}
}

func TestHandler_Trend(t *testing.T) {
	h, e := newTestHandler()
	patientID := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/?type=MMRC", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("patient_id")
	c.SetParamValues(patientID.String())

	if err := h.Trend(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var resp map[string]string
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["trend"] != TrendInsufficientData {
		t.Errorf("expected INSUFFICIENT_DATA, got %s", resp["trend"])
	}
}

func TestHandler_MMRCGrades(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/?locale=es", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.MMRCGrades(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var resp struct {
		Locale string `json:"locale"`
		Grades []struct {
			Grade       int    `json:"grade"`
			Description string `json:"description"`
		} `json:"grades"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Locale != "es" {
		t.Errorf("expected locale es, got %s", resp.Locale)
	}
	if len(resp.Grades) != 5 {
		t.Errorf("expected 5 grades, got %d", len(resp.Grades))
	}
}
