package task

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ward/ward/internal/platform/db"
)

type taskRepoPG struct{ pool *pgxpool.Pool }

func NewTaskRepoPG(pool *pgxpool.Pool) TaskRepository {
	return &taskRepoPG{pool: pool}
}

func (r *taskRepoPG) conn(ctx context.Context) db.Querier {
	return db.QuerierFrom(ctx, r.pool)
}

const taskCols = `id, title, notes, due_time, priority, status, patient_id, created_at, completed_at`

func scanTask(row pgx.Row) (*Task, error) {
	var t Task
	var priority, status string
	if err := row.Scan(&t.ID, &t.Title, &t.Notes, &t.DueTime, &priority, &status,
		&t.PatientID, &t.CreatedAt, &t.CompletedAt); err != nil {
		return nil, err
	}
	var err error
	if t.Priority, err = ParsePriority(priority); err != nil {
		return nil, fmt.Errorf("task %d: %w", t.ID, err)
	}
	if t.Status, err = ParseStatus(status); err != nil {
		return nil, fmt.Errorf("task %d: %w", t.ID, err)
	}
	return &t, nil
}

func (r *taskRepoPG) Create(ctx context.Context, t *Task) error {
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO task (title, notes, due_time, priority, status, patient_id, created_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`,
		t.Title, t.Notes, t.DueTime, t.Priority.String(), t.Status.String(),
		t.PatientID, t.CreatedAt, t.CompletedAt).Scan(&t.ID, &t.CreatedAt)
	return db.Classify(err)
}

func (r *taskRepoPG) ListByPatient(ctx context.Context, patientID int64) ([]*Task, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+taskCols+` FROM task WHERE patient_id = $1 ORDER BY id`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}
