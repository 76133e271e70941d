package patient

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

const patientCols = `id, mrn, first_name, last_name, birth_date, gender, phone, email,
	height_cm, weight_kg, smoking_pack_years, therapist_id,
	exacerbation_count_last_12m, hospitalization_count_last_12m, last_exacerbation_date,
	active, created_at, updated_at`

func (r *repoPG) scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.MRN, &p.FirstName, &p.LastName, &p.BirthDate, &p.Gender, &p.Phone, &p.Email,
		&p.HeightCm, &p.WeightKg, &p.SmokingPackYears, &p.TherapistID,
		&p.ExacerbationCount12M, &p.HospitalizationCount12M, &p.LastExacerbationDate,
		&p.Active, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patient (id, mrn, first_name, last_name, birth_date, gender, phone, email,
			height_cm, weight_kg, smoking_pack_years, therapist_id, active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		p.ID, p.MRN, p.FirstName, p.LastName, p.BirthDate, p.Gender, p.Phone, p.Email,
		p.HeightCm, p.WeightKg, p.SmokingPackYears, p.TherapistID, p.Active)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return r.scanPatient(r.conn(ctx).QueryRow(ctx,
		`SELECT `+patientCols+` FROM patient WHERE id = $1`, id))
}

func (r *repoPG) GetByMRN(ctx context.Context, mrn string) (*Patient, error) {
	return r.scanPatient(r.conn(ctx).QueryRow(ctx,
		`SELECT `+patientCols+` FROM patient WHERE mrn = $1`, mrn))
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient SET first_name=$2, last_name=$3, birth_date=$4, gender=$5, phone=$6,
			email=$7, height_cm=$8, weight_kg=$9, smoking_pack_years=$10, therapist_id=$11,
			active=$12, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.FirstName, p.LastName, p.BirthDate, p.Gender, p.Phone,
		p.Email, p.HeightCm, p.WeightKg, p.SmokingPackYears, p.TherapistID, p.Active)
	return err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patient`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+patientCols+` FROM patient ORDER BY last_name, first_name LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return r.collect(rows, total)
}

func (r *repoPG) ListByTherapist(ctx context.Context, therapistID uuid.UUID, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM patient WHERE therapist_id = $1`, therapistID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+patientCols+` FROM patient WHERE therapist_id = $1 ORDER BY last_name, first_name LIMIT $2 OFFSET $3`,
		therapistID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return r.collect(rows, total)
}

func (r *repoPG) collect(rows pgx.Rows, total int) ([]*Patient, int, error) {
	var items []*Patient
	for rows.Next() {
		p, err := r.scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, nil
}

func (r *repoPG) RefreshExacerbationCounters(ctx context.Context, patientID uuid.UUID, now time.Time) error {
	since := now.AddDate(-1, 0, 0)
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient SET
			exacerbation_count_last_12m = (
				SELECT COUNT(*) FROM exacerbation_record
				WHERE patient_id = $1 AND onset_date >= $2),
			hospitalization_count_last_12m = (
				SELECT COUNT(*) FROM exacerbation_record
				WHERE patient_id = $1 AND onset_date >= $2 AND hospitalization_required),
			last_exacerbation_date = (
				SELECT MAX(onset_date) FROM exacerbation_record
				WHERE patient_id = $1),
			updated_at = NOW()
		WHERE id = $1`,
		patientID, since)
	return err
}
