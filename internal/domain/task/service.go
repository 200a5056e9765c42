package task

import (
	"context"
	"fmt"
	"time"

	"github.com/ward/ward/internal/platform/db"
)

type Service struct {
	tasks TaskRepository
	tx    db.Transactor
	now   func() time.Time
}

func NewService(tasks TaskRepository, tx db.Transactor) *Service {
	return &Service{tasks: tasks, tx: tx, now: time.Now}
}

// WithClock replaces the creation-time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// CreateTask applies defaults, validates, stamps CreatedAt and stores t.
// Timestamps are truncated to the store's microsecond precision so the value
// read back equals the value written.
func (s *Service) CreateTask(ctx context.Context, t *Task) error {
	t.ApplyDefaults()
	if err := t.Validate(); err != nil {
		return err
	}
	t.CreatedAt = s.now().UTC().Truncate(time.Microsecond)
	if t.DueTime != nil {
		due := t.DueTime.UTC().Truncate(time.Microsecond)
		t.DueTime = &due
	}
	if err := s.tasks.Create(ctx, t); err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// ListTasksForPatient returns the patient's tasks in id order. An id that
// names no patient yields an empty list.
func (s *Service) ListTasksForPatient(ctx context.Context, patientID int64) ([]TaskRead, error) {
	var out []TaskRead
	err := s.tx.InReadTx(ctx, func(ctx context.Context) error {
		tasks, err := s.tasks.ListByPatient(ctx, patientID)
		if err != nil {
			return err
		}
		out = make([]TaskRead, 0, len(tasks))
		for _, t := range tasks {
			out = append(out, t.ToRead())
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list tasks for patient %d: %w", patientID, err)
	}
	return out, nil
}
