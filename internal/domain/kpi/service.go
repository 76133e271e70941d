package kpi

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/copdcare/copdcare/internal/domain/dailylog"
	"github.com/copdcare/copdcare/internal/domain/patient"
	"github.com/copdcare/copdcare/internal/domain/risk"
	"github.com/copdcare/copdcare/internal/domain/survey"
	"github.com/copdcare/copdcare/internal/platform/metrics"
)

const (
	adherenceWindowDays = 30
	// One CAT and one mMRC expected per window.
	expectedSurveysPerWindow = 2
)

// Service assembles the KPI dashboard. It owns no storage; every call reads
// the underlying stores fresh. A section whose reads fail is logged and left
// empty so the rest of the dashboard still renders.
type Service struct {
	patients patient.Repository
	surveys  survey.Repository
	logs     dailylog.Repository
	risks    *risk.Service
	log      zerolog.Logger
	now      func() time.Time
}

func NewService(patients patient.Repository, surveys survey.Repository, logs dailylog.Repository, risks *risk.Service, log zerolog.Logger) *Service {
	return &Service{
		patients: patients,
		surveys:  surveys,
		logs:     logs,
		risks:    risks,
		log:      log,
		now:      time.Now,
	}
}

// Dashboard builds the per-patient KPI view.
//
// With forceRefresh the risk section is recomputed through the orchestrator;
// survey.ErrNoSurveyData — and only that — is downgraded to a nil risk
// section. Any other recompute failure is returned. Without forceRefresh the
// newest stored assessment is used, nil when none exists.
func (s *Service) Dashboard(ctx context.Context, patientID uuid.UUID, forceRefresh bool) (*Dashboard, error) {
	p, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	d := &Dashboard{PatientID: patientID, GeneratedAt: now}

	d.Adherence = s.adherenceSection(ctx, patientID, now)
	d.Health = s.healthSection(ctx, p)
	d.Surveys = s.surveysSection(ctx, patientID)
	d.Activity = s.activitySection(ctx, patientID, now)

	d.Risk, err = s.riskSection(ctx, patientID, forceRefresh)
	if err != nil {
		return nil, err
	}

	metrics.RecordKPIRequest(forceRefresh)
	return d, nil
}

func (s *Service) adherenceSection(ctx context.Context, patientID uuid.UUID, now time.Time) *Adherence {
	since := now.AddDate(0, 0, -adherenceWindowDays)

	logCount, err := s.logs.CountSince(ctx, patientID, since)
	if err != nil {
		s.log.Error().Err(err).Str("patient_id", patientID.String()).Msg("kpi: counting daily logs failed")
		return nil
	}

	a := &Adherence{
		WindowDays:        adherenceWindowDays,
		LogsSubmitted:     logCount,
		LogSubmissionRate: round1(float64(logCount) / adherenceWindowDays * 100),
	}

	if logCount > 0 {
		taken, err := s.logs.CountMedicationTakenSince(ctx, patientID, since)
		if err != nil {
			s.log.Error().Err(err).Str("patient_id", patientID.String()).Msg("kpi: counting medication logs failed")
		} else {
			rate := round1(float64(taken) / float64(logCount) * 100)
			a.MedicationAdherenceRate = &rate
		}
	}

	surveyCount, err := s.surveys.CountSubmittedSince(ctx, patientID, since)
	if err != nil {
		s.log.Error().Err(err).Str("patient_id", patientID.String()).Msg("kpi: counting surveys failed")
	} else {
		a.SurveyCompletionRate = math.Min(round1(float64(surveyCount)/expectedSurveysPerWindow*100), 100)
	}

	return a
}

func (s *Service) healthSection(ctx context.Context, p *patient.Patient) *Health {
	h := &Health{BMI: p.BMI()}

	latest, err := s.logs.GetLatest(ctx, p.ID)
	switch {
	case errors.Is(err, dailylog.ErrNoLogs):
		// BMI alone is still worth showing.
	case err != nil:
		s.log.Error().Err(err).Str("patient_id", p.ID.String()).Msg("kpi: loading latest daily log failed")
	default:
		h.Vitals = latest.Vitals
		h.SymptomScore = latest.SymptomScore
	}
	return h
}

func (s *Service) surveysSection(ctx context.Context, patientID uuid.UUID) *Surveys {
	out := &Surveys{}

	if cat, err := s.surveys.GetLatest(ctx, patientID, survey.TypeCAT); err == nil {
		out.CATScore = &cat.TotalScore
		out.CATSeverity = &cat.SeverityLevel
	} else if !errors.Is(err, survey.ErrNoSurveyData) {
		s.log.Error().Err(err).Str("patient_id", patientID.String()).Msg("kpi: loading latest CAT failed")
	}

	if mmrc, err := s.surveys.GetLatest(ctx, patientID, survey.TypeMMRC); err == nil {
		out.MMRCGrade = &mmrc.TotalScore
		out.MMRCSeverity = &mmrc.SeverityLevel
	} else if !errors.Is(err, survey.ErrNoSurveyData) {
		s.log.Error().Err(err).Str("patient_id", patientID.String()).Msg("kpi: loading latest mMRC failed")
	}

	return out
}

func (s *Service) riskSection(ctx context.Context, patientID uuid.UUID, forceRefresh bool) (*Risk, error) {
	var (
		a   *risk.Assessment
		err error
	)
	if forceRefresh {
		a, err = s.risks.ComputeAssessment(ctx, patientID)
		if errors.Is(err, survey.ErrNoSurveyData) {
			return nil, nil
		}
	} else {
		a, err = s.risks.LatestAssessment(ctx, patientID)
		if errors.Is(err, risk.ErrNoAssessment) {
			return nil, nil
		}
	}
	if err != nil {
		return nil, err
	}
	return &Risk{
		GoldGroup:  a.GoldGroup,
		RiskScore:  a.RiskScore,
		RiskLevel:  a.RiskLevel,
		AssessedAt: a.AssessedAt,
	}, nil
}

func (s *Service) activitySection(ctx context.Context, patientID uuid.UUID, now time.Time) *Activity {
	act := &Activity{}

	latest, err := s.logs.GetLatest(ctx, patientID)
	switch {
	case errors.Is(err, dailylog.ErrNoLogs):
	case err != nil:
		s.log.Error().Err(err).Str("patient_id", patientID.String()).Msg("kpi: loading latest daily log failed")
	default:
		act.LastLogDate = &latest.LogDate
		days := int(now.Sub(latest.LogDate).Hours() / 24)
		if days < 0 {
			days = 0
		}
		act.DaysSinceLastLog = &days
	}
	return act
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
