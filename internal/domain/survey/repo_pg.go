package survey

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/copdcare/copdcare/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const surveyCols = `id, patient_id, survey_type, answers, total_score, severity_level, submitted_at`

func (r *repoPG) scanSurvey(row pgx.Row) (*SurveyResponse, error) {
	var sr SurveyResponse
	var answers []byte
	err := row.Scan(&sr.ID, &sr.PatientID, &sr.SurveyType, &answers,
		&sr.TotalScore, &sr.SeverityLevel, &sr.SubmittedAt)
	if err != nil {
		return nil, err
	}
	if len(answers) > 0 {
		if err := json.Unmarshal(answers, &sr.Answers); err != nil {
			return nil, err
		}
	}
	return &sr, nil
}

func (r *repoPG) Create(ctx context.Context, sr *SurveyResponse) error {
	sr.ID = uuid.New()
	if sr.SubmittedAt.IsZero() {
		sr.SubmittedAt = time.Now().UTC()
	}
	answers, err := json.Marshal(sr.Answers)
	if err != nil {
		return err
	}
	_, err = r.conn(ctx).Exec(ctx, `
		INSERT INTO survey_response (id, patient_id, survey_type, answers, total_score, severity_level, submitted_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		sr.ID, sr.PatientID, sr.SurveyType, answers, sr.TotalScore, sr.SeverityLevel, sr.SubmittedAt)
	return err
}

func (r *repoPG) GetLatest(ctx context.Context, patientID uuid.UUID, surveyType Type) (*SurveyResponse, error) {
	sr, err := r.scanSurvey(r.conn(ctx).QueryRow(ctx,
		`SELECT `+surveyCols+` FROM survey_response
		WHERE patient_id = $1 AND survey_type = $2
		ORDER BY submitted_at DESC LIMIT 1`,
		patientID, surveyType))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoSurveyData
	}
	return sr, err
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, surveyType Type, limit, offset int) ([]*SurveyResponse, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM survey_response WHERE patient_id = $1 AND survey_type = $2`,
		patientID, surveyType).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+surveyCols+` FROM survey_response
		WHERE patient_id = $1 AND survey_type = $2
		ORDER BY submitted_at DESC LIMIT $3 OFFSET $4`,
		patientID, surveyType, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*SurveyResponse
	for rows.Next() {
		sr, err := r.scanSurvey(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, sr)
	}
	return items, total, nil
}

func (r *repoPG) CountSubmittedSince(ctx context.Context, patientID uuid.UUID, since time.Time) (int, error) {
	var count int
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM survey_response WHERE patient_id = $1 AND submitted_at >= $2`,
		patientID, since).Scan(&count)
	return count, err
}
