package dailylog

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

const logCols = `id, patient_id, log_date, medication_taken, vitals, symptom_score, notes, created_at, updated_at`

func (r *repoPG) scanLog(row pgx.Row) (*DailyLog, error) {
	var l DailyLog
	var vitals []byte
	err := row.Scan(&l.ID, &l.PatientID, &l.LogDate, &l.MedicationTaken, &vitals,
		&l.SymptomScore, &l.Notes, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(vitals) > 0 {
		if err := json.Unmarshal(vitals, &l.Vitals); err != nil {
			return nil, err
		}
	}
	return &l, nil
}

func (r *repoPG) Upsert(ctx context.Context, log *DailyLog) error {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	vitals, err := json.Marshal(log.Vitals)
	if err != nil {
		return err
	}
	_, err = r.conn(ctx).Exec(ctx, `
		INSERT INTO daily_log (id, patient_id, log_date, medication_taken, vitals, symptom_score, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (patient_id, log_date) DO UPDATE SET
			medication_taken = EXCLUDED.medication_taken,
			vitals = EXCLUDED.vitals,
			symptom_score = EXCLUDED.symptom_score,
			notes = EXCLUDED.notes,
			updated_at = NOW()`,
		log.ID, log.PatientID, log.LogDate, log.MedicationTaken, vitals, log.SymptomScore, log.Notes)
	return err
}

func (r *repoPG) GetLatest(ctx context.Context, patientID uuid.UUID) (*DailyLog, error) {
	l, err := r.scanLog(r.conn(ctx).QueryRow(ctx,
		`SELECT `+logCols+` FROM daily_log WHERE patient_id = $1 ORDER BY log_date DESC LIMIT 1`,
		patientID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoLogs
	}
	return l, err
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*DailyLog, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM daily_log WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+logCols+` FROM daily_log WHERE patient_id = $1 ORDER BY log_date DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*DailyLog
	for rows.Next() {
		l, err := r.scanLog(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, l)
	}
	return items, total, nil
}

func (r *repoPG) CountSince(ctx context.Context, patientID uuid.UUID, since time.Time) (int, error) {
	var count int
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM daily_log WHERE patient_id = $1 AND log_date >= $2`,
		patientID, since).Scan(&count)
	return count, err
}

func (r *repoPG) CountMedicationTakenSince(ctx context.Context, patientID uuid.UUID, since time.Time) (int, error) {
	var count int
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM daily_log WHERE patient_id = $1 AND log_date >= $2 AND medication_taken`,
		patientID, since).Scan(&count)
	return count, err
}
