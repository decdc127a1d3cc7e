package schedule

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dralina/clinic/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type scheduleRepoPG struct{ pool *pgxpool.Pool }

func NewScheduleRepoPG(pool *pgxpool.Pool) ScheduleRepository {
	return &scheduleRepoPG{pool: pool}
}

func (r *scheduleRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const scheduleCols = `id, doctor_id, day_of_week, start_time, end_time, is_active, created_at, updated_at`

func (r *scheduleRepoPG) scanRow(row pgx.Row) (*WorkSchedule, error) {
	var ws WorkSchedule
	err := row.Scan(&ws.ID, &ws.DoctorID, &ws.DayOfWeek, &ws.StartTime, &ws.EndTime,
		&ws.IsActive, &ws.CreatedAt, &ws.UpdatedAt)
	return &ws, err
}

func (r *scheduleRepoPG) Create(ctx context.Context, ws *WorkSchedule) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO work_schedules (doctor_id, day_of_week, start_time, end_time, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		ws.DoctorID, ws.DayOfWeek, ws.StartTime, ws.EndTime, ws.IsActive).
		Scan(&ws.ID, &ws.CreatedAt, &ws.UpdatedAt)
}

func (r *scheduleRepoPG) GetByID(ctx context.Context, id int64) (*WorkSchedule, error) {
	return r.scanRow(r.conn(ctx).QueryRow(ctx, `SELECT `+scheduleCols+` FROM work_schedules WHERE id = $1`, id))
}

func (r *scheduleRepoPG) Update(ctx context.Context, ws *WorkSchedule) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE work_schedules
		SET day_of_week=$2, start_time=$3, end_time=$4, is_active=$5, updated_at=NOW()
		WHERE id = $1`,
		ws.ID, ws.DayOfWeek, ws.StartTime, ws.EndTime, ws.IsActive)
	return err
}

func (r *scheduleRepoPG) ListByDoctor(ctx context.Context, doctorID int64) ([]*WorkSchedule, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+scheduleCols+` FROM work_schedules
		WHERE doctor_id = $1
		ORDER BY day_of_week, start_time`, doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*WorkSchedule
	for rows.Next() {
		ws, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, ws)
	}
	return items, rows.Err()
}

func (r *scheduleRepoPG) GetActive(ctx context.Context, doctorID int64, dayOfWeek int) (*WorkSchedule, error) {
	ws, err := r.scanRow(r.conn(ctx).QueryRow(ctx, `
		SELECT `+scheduleCols+` FROM work_schedules
		WHERE doctor_id = $1 AND day_of_week = $2 AND is_active`,
		doctorID, dayOfWeek))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ws, nil
}
