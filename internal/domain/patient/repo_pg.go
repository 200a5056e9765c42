package patient

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ward/ward/internal/platform/db"
)

type patientRepoPG struct{ pool *pgxpool.Pool }

func NewPatientRepoPG(pool *pgxpool.Pool) PatientRepository {
	return &patientRepoPG{pool: pool}
}

func (r *patientRepoPG) conn(ctx context.Context) db.Querier {
	return db.QuerierFrom(ctx, r.pool)
}

const patientCols = `id, name, bed, main_problem, priority, status, user_id`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	var priority, status string
	if err := row.Scan(&p.ID, &p.Name, &p.Bed, &p.MainProblem, &priority, &status, &p.UserID); err != nil {
		return nil, err
	}
	var err error
	if p.Priority, err = ParsePriority(priority); err != nil {
		return nil, fmt.Errorf("patient %d: %w", p.ID, err)
	}
	if p.Status, err = ParseStatus(status); err != nil {
		return nil, fmt.Errorf("patient %d: %w", p.ID, err)
	}
	return &p, nil
}

func (r *patientRepoPG) Create(ctx context.Context, p *Patient) error {
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO patient (name, bed, main_problem, priority, status, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		p.Name, p.Bed, p.MainProblem, p.Priority.String(), p.Status.String(), p.UserID).Scan(&p.ID)
	return db.Classify(err)
}

func (r *patientRepoPG) List(ctx context.Context) ([]*Patient, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+patientCols+` FROM patient ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*Patient{}
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}
