package task

import (
	"strings"
	"time"

	"github.com/ward/ward/pkg/apperr"
)

// Task is a piece of work a clinician owes a patient. CreatedAt is set once
// when the task is stored and never changes afterwards.
type Task struct {
	ID          int64      `db:"id"`
	Title       string     `db:"title"`
	Notes       *string    `db:"notes"`
	DueTime     *time.Time `db:"due_time"`
	Priority    Priority   `db:"priority"`
	Status      Status     `db:"status"`
	PatientID   int64      `db:"patient_id"`
	CreatedAt   time.Time  `db:"created_at"`
	CompletedAt *time.Time `db:"completed_at"`
}

type TaskRead struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Notes       *string    `json:"notes"`
	DueTime     *time.Time `json:"due_time"`
	Priority    Priority   `json:"priority"`
	Status      Status     `json:"status"`
	PatientID   int64      `json:"patient_id"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

func (t *Task) ToRead() TaskRead {
	return TaskRead{
		ID:          t.ID,
		Title:       t.Title,
		Notes:       t.Notes,
		DueTime:     t.DueTime,
		Priority:    t.Priority,
		Status:      t.Status,
		PatientID:   t.PatientID,
		CreatedAt:   t.CreatedAt,
		CompletedAt: t.CompletedAt,
	}
}

func (t *Task) ApplyDefaults() {
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if t.Status == "" {
		t.Status = StatusOpen
	}
}

func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return apperr.Required("title")
	}
	if t.PatientID <= 0 {
		return apperr.Required("patient_id")
	}
	if !t.Priority.Valid() {
		return apperr.Invalid("priority", "unknown value %q", t.Priority)
	}
	if !t.Status.Valid() {
		return apperr.Invalid("status", "unknown value %q", t.Status)
	}
	return nil
}
