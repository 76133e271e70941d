package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	surveysScored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "surveys_scored_total",
			Help: "Total number of survey responses scored",
		},
		[]string{"survey_type", "severity"},
	)

	assessmentsComputed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "risk_assessments_computed_total",
			Help: "Total number of GOLD risk assessments computed",
		},
		[]string{"gold_group"},
	)

	kpiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kpi_dashboard_requests_total",
			Help: "Total number of KPI dashboard computations",
		},
		[]string{"force_refresh"},
	)

	exacerbationsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exacerbations_recorded_total",
			Help: "Total number of exacerbation records created",
		},
		[]string{"severity"},
	)
)

// Handler returns the Prometheus scrape endpoint as an echo handler.
func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}

// Middleware records request counts and latencies. Route templates are used as
// the path label to keep cardinality bounded.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}
			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			httpRequestsTotal.WithLabelValues(c.Request().Method, path, strconv.Itoa(status)).Inc()
			httpRequestDuration.WithLabelValues(c.Request().Method, path).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// RecordSurveyScored records a scored survey submission.
func RecordSurveyScored(surveyType, severity string) {
	surveysScored.WithLabelValues(surveyType, severity).Inc()
}

// RecordAssessmentComputed records a computed risk assessment.
func RecordAssessmentComputed(goldGroup string) {
	assessmentsComputed.WithLabelValues(goldGroup).Inc()
}

// RecordKPIRequest records a KPI dashboard computation.
func RecordKPIRequest(forceRefresh bool) {
	kpiRequestsTotal.WithLabelValues(strconv.FormatBool(forceRefresh)).Inc()
}

// RecordExacerbation records a created exacerbation record.
func RecordExacerbation(severity string) {
	exacerbationsRecorded.WithLabelValues(severity).Inc()
}
