package exacerbation

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

const recordCols = `id, patient_id, onset_date, severity, hospitalization_required,
	antibiotics_required, steroids_required, hospitalization_days, notes, recorded_by,
	created_at, updated_at`

func (r *repoPG) scanRecord(row pgx.Row) (*Record, error) {
	var rec Record
	err := row.Scan(&rec.ID, &rec.PatientID, &rec.OnsetDate, &rec.Severity, &rec.HospitalizationRequired,
		&rec.AntibioticsRequired, &rec.SteroidsRequired, &rec.HospitalizationDays, &rec.Notes, &rec.RecordedBy,
		&rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repoPG) Create(ctx context.Context, rec *Record) error {
	rec.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO exacerbation_record (id, patient_id, onset_date, severity,
			hospitalization_required, antibiotics_required, steroids_required,
			hospitalization_days, notes, recorded_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		rec.ID, rec.PatientID, rec.OnsetDate, rec.Severity,
		rec.HospitalizationRequired, rec.AntibioticsRequired, rec.SteroidsRequired,
		rec.HospitalizationDays, rec.Notes, rec.RecordedBy)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Record, error) {
	return r.scanRecord(r.conn(ctx).QueryRow(ctx,
		`SELECT `+recordCols+` FROM exacerbation_record WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, rec *Record) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE exacerbation_record SET onset_date=$2, severity=$3, hospitalization_required=$4,
			antibiotics_required=$5, steroids_required=$6, hospitalization_days=$7, notes=$8,
			updated_at=NOW()
		WHERE id = $1`,
		rec.ID, rec.OnsetDate, rec.Severity, rec.HospitalizationRequired,
		rec.AntibioticsRequired, rec.SteroidsRequired, rec.HospitalizationDays, rec.Notes)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM exacerbation_record WHERE id = $1`, id)
	return err
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Record, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM exacerbation_record WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+recordCols+` FROM exacerbation_record
		WHERE patient_id = $1 ORDER BY onset_date DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Record
	for rows.Next() {
		rec, err := r.scanRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, rec)
	}
	return items, total, nil
}

func (r *repoPG) CountSince(ctx context.Context, patientID uuid.UUID, since time.Time) (int, error) {
	var count int
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM exacerbation_record WHERE patient_id = $1 AND onset_date >= $2`,
		patientID, since).Scan(&count)
	return count, err
}

func (r *repoPG) CountHospitalizedSince(ctx context.Context, patientID uuid.UUID, since time.Time) (int, error) {
	var count int
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM exacerbation_record
		WHERE patient_id = $1 AND onset_date >= $2 AND hospitalization_required`,
		patientID, since).Scan(&count)
	return count, err
}
