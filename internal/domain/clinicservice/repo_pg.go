package clinicservice

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

type serviceRepoPG struct{ pool *pgxpool.Pool }

func NewServiceRepoPG(pool *pgxpool.Pool) ServiceRepository {
	return &serviceRepoPG{pool: pool}
}

func (r *serviceRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const serviceCols = `id, name, duration_minutes, price, created_at, updated_at`

func (r *serviceRepoPG) scanRow(row pgx.Row) (*ClinicService, error) {
	var cs ClinicService
	err := row.Scan(&cs.ID, &cs.Name, &cs.DurationMinutes, &cs.Price, &cs.CreatedAt, &cs.UpdatedAt)
	return &cs, err
}

func (r *serviceRepoPG) Create(ctx context.Context, cs *ClinicService) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO services (name, duration_minutes, price)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`,
		cs.Name, cs.DurationMinutes, cs.Price).
		Scan(&cs.ID, &cs.CreatedAt, &cs.UpdatedAt)
}

func (r *serviceRepoPG) GetByID(ctx context.Context, id int64) (*ClinicService, error) {
	return r.scanRow(r.conn(ctx).QueryRow(ctx, `SELECT `+serviceCols+` FROM services WHERE id = $1`, id))
}

func (r *serviceRepoPG) Update(ctx context.Context, cs *ClinicService) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE services SET name=$2, duration_minutes=$3, price=$4, updated_at=NOW()
		WHERE id = $1`,
		cs.ID, cs.Name, cs.DurationMinutes, cs.Price)
	return err
}

func (r *serviceRepoPG) Delete(ctx context.Context, id int64) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	return err
}

func (r *serviceRepoPG) List(ctx context.Context) ([]*ClinicService, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+serviceCols+` FROM services ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*ClinicService
	for rows.Next() {
		cs, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, cs)
	}
	return items, rows.Err()
}
