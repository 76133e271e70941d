package risk

import (
	"context"
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

const assessmentCols = `id, patient_id, cat_score, mmrc_grade,
	exacerbation_count_last_12m, hospitalization_count_last_12m,
	gold_group, risk_score, risk_level, assessed_at`

func (r *repoPG) scanAssessment(row pgx.Row) (*Assessment, error) {
	var a Assessment
	err := row.Scan(&a.ID, &a.PatientID, &a.CATScore, &a.MMRCGrade,
		&a.ExacerbationCount12M, &a.HospitalizationCount12M,
		&a.GoldGroup, &a.RiskScore, &a.RiskLevel, &a.AssessedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repoPG) Create(ctx context.Context, a *Assessment) error {
	a.ID = uuid.New()
	if a.AssessedAt.IsZero() {
		a.AssessedAt = time.Now().UTC()
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO risk_assessment (id, patient_id, cat_score, mmrc_grade,
			exacerbation_count_last_12m, hospitalization_count_last_12m,
			gold_group, risk_score, risk_level, assessed_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		a.ID, a.PatientID, a.CATScore, a.MMRCGrade,
		a.ExacerbationCount12M, a.HospitalizationCount12M,
		a.GoldGroup, a.RiskScore, a.RiskLevel, a.AssessedAt)
	return err
}

func (r *repoPG) GetLatest(ctx context.Context, patientID uuid.UUID) (*Assessment, error) {
	a, err := r.scanAssessment(r.conn(ctx).QueryRow(ctx,
		`SELECT `+assessmentCols+` FROM risk_assessment
		WHERE patient_id = $1 ORDER BY assessed_at DESC LIMIT 1`,
		patientID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoAssessment
	}
	return a, err
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Assessment, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM risk_assessment WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+assessmentCols+` FROM risk_assessment
		WHERE patient_id = $1 ORDER BY assessed_at DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Assessment
	for rows.Next() {
		a, err := r.scanAssessment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, nil
}
