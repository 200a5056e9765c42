package task

import "context"

type TaskRepository interface {
	Create(ctx context.Context, t *Task) error
	ListByPatient(ctx context.Context, patientID int64) ([]*Task, error)
}
