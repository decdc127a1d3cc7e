package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dralina/clinic/internal/platform/db"
	"github.com/dralina/clinic/internal/scheduling"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type appointmentRepoPG struct{ pool *pgxpool.Pool }

func NewAppointmentRepoPG(pool *pgxpool.Pool) AppointmentRepository {
	return &appointmentRepoPG{pool: pool}
}

func (r *appointmentRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const apptCols = `id, doctor_id, service_id, patient_id, start_time, status, confirmation_token, created_at`

func (r *appointmentRepoPG) scanRow(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.DoctorID, &a.ServiceID, &a.PatientID, &a.StartTime,
		&a.Status, &a.ConfirmationToken, &a.CreatedAt)
	return &a, err
}

func (r *appointmentRepoPG) Create(ctx context.Context, a *Appointment) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO appointments (doctor_id, service_id, patient_id, start_time, status, confirmation_token)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		a.DoctorID, a.ServiceID, a.PatientID, a.StartTime, a.Status, a.ConfirmationToken).
		Scan(&a.ID, &a.CreatedAt)
}

func (r *appointmentRepoPG) GetByID(ctx context.Context, id int64) (*Appointment, error) {
	return r.scanRow(r.conn(ctx).QueryRow(ctx, `SELECT `+apptCols+` FROM appointments WHERE id = $1`, id))
}

func (r *appointmentRepoPG) GetByToken(ctx context.Context, token string) (*Appointment, error) {
	return r.scanRow(r.conn(ctx).QueryRow(ctx,
		`SELECT `+apptCols+` FROM appointments WHERE confirmation_token = $1 AND confirmation_token <> ''`, token))
}

func (r *appointmentRepoPG) UpdateStatus(ctx context.Context, id int64, status Status) error {
	tag, err := r.conn(ctx).Exec(ctx, `UPDATE appointments SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *appointmentRepoPG) List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Appointment, int, error) {
	where := `WHERE TRUE`
	args := []interface{}{}
	if filter.DoctorID != nil {
		args = append(args, *filter.DoctorID)
		where += fmt.Sprintf(` AND doctor_id = $%d`, len(args))
	}
	if filter.Date != nil {
		args = append(args, *filter.Date, filter.Date.AddDate(0, 0, 1))
		where += fmt.Sprintf(` AND start_time >= $%d AND start_time < $%d`, len(args)-1, len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(` AND status = $%d`, len(args))
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM appointments `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := r.conn(ctx).Query(ctx, fmt.Sprintf(
		`SELECT `+apptCols+` FROM appointments %s ORDER BY start_time DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Appointment
	for rows.Next() {
		a, err := r.scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}

// busyQuery derives each appointment's end from the linked service,
// falling back to the default duration when service_id dangles.
const busyQuery = `
	SELECT a.start_time,
	       a.start_time + make_interval(mins => COALESCE(s.duration_minutes, $1))
	FROM appointments a
	LEFT JOIN services s ON s.id = a.service_id
	WHERE a.status <> 'cancelled'`

func (r *appointmentRepoPG) busy(ctx context.Context, query string, args ...interface{}) ([]scheduling.Interval, error) {
	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []scheduling.Interval
	for rows.Next() {
		var iv scheduling.Interval
		if err := rows.Scan(&iv.Start, &iv.End); err != nil {
			return nil, err
		}
		items = append(items, iv)
	}
	return items, rows.Err()
}

func (r *appointmentRepoPG) BusyIntervals(ctx context.Context, doctorID int64, from, to time.Time) ([]scheduling.Interval, error) {
	return r.busy(ctx, busyQuery+` AND a.doctor_id = $2 AND a.start_time >= $3 AND a.start_time < $4`,
		int(scheduling.DefaultDuration.Minutes()), doctorID, from, to)
}

func (r *appointmentRepoPG) BusyIntervalsStartingBefore(ctx context.Context, doctorID *int64, before time.Time) ([]scheduling.Interval, error) {
	if doctorID == nil {
		return r.busy(ctx, busyQuery+` AND a.start_time < $2`,
			int(scheduling.DefaultDuration.Minutes()), before)
	}
	return r.busy(ctx, busyQuery+` AND a.doctor_id = $2 AND a.start_time < $3`,
		int(scheduling.DefaultDuration.Minutes()), *doctorID, before)
}

// LockDoctor takes a transaction-scoped advisory lock so that the
// overlap check and the subsequent insert run serialized per doctor.
// Bookings without a doctor share a single global key, matching the
// global overlap check they receive.
func (r *appointmentRepoPG) LockDoctor(ctx context.Context, doctorID *int64) error {
	var key int32
	if doctorID != nil {
		key = int32(*doctorID)
	}
	_, err := r.conn(ctx).Exec(ctx, `SELECT pg_advisory_xact_lock($1, $2)`, lockNamespace, key)
	return err
}

// lockNamespace keeps booking locks from colliding with any other
// advisory locks on the same database.
const lockNamespace = int32(0x626b) // "bk"
