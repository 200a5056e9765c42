package task

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/ward/ward/pkg/apperr"
)

func strPtr(s string) *string { return &s }

func TestParseEnums(t *testing.T) {
	for _, s := range []string{"low", "medium", "high"} {
		if _, err := ParsePriority(s); err != nil {
			t.Errorf("ParsePriority(%q): %v", s, err)
		}
	}
	for _, s := range []string{"", "critical", "HIGH"} {
		if _, err := ParsePriority(s); !apperr.IsValidation(err) {
			t.Errorf("ParsePriority(%q) expected validation error, got %v", s, err)
		}
	}
	for _, s := range []string{"open", "done"} {
		if _, err := ParseStatus(s); err != nil {
			t.Errorf("ParseStatus(%q): %v", s, err)
		}
	}
	for _, s := range []string{"", "active", "closed"} {
		if _, err := ParseStatus(s); !apperr.IsValidation(err) {
			t.Errorf("ParseStatus(%q) expected validation error, got %v", s, err)
		}
	}
}

func TestEnums_UnmarshalJSON(t *testing.T) {
	var v struct {
		Priority Priority `json:"priority"`
		Status   Status   `json:"status"`
	}
	if err := json.Unmarshal([]byte(`{"priority":"high","status":"done"}`), &v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Priority != PriorityHigh || v.Status != StatusDone {
		t.Errorf("unexpected decode: %+v", v)
	}
	if err := json.Unmarshal([]byte(`{"priority":"important"}`), &v); err == nil {
		t.Error("expected patient priority to be rejected for a task")
	}
	if err := json.Unmarshal([]byte(`{"status":true}`), &v); err == nil {
		t.Error("expected non-string status to be rejected")
	}
}

func TestTask_ApplyDefaults(t *testing.T) {
	task := &Task{}
	task.ApplyDefaults()
	if task.Priority != PriorityMedium || task.Status != StatusOpen {
		t.Errorf("expected medium/open, got %s/%s", task.Priority, task.Status)
	}
}

func TestTask_Validate(t *testing.T) {
	tests := []struct {
		name  string
		task  Task
		field string
	}{
		{"missing title", Task{PatientID: 1, Priority: PriorityLow, Status: StatusOpen}, "title"},
		{"missing patient", Task{Title: "x", Priority: PriorityLow, Status: StatusOpen}, "patient_id"},
		{"bad priority", Task{Title: "x", PatientID: 1, Priority: "urgent", Status: StatusOpen}, "priority"},
		{"bad status", Task{Title: "x", PatientID: 1, Priority: PriorityLow, Status: "pending"}, "status"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.task.Validate()
			ve, ok := err.(*apperr.ValidationError)
			if !ok {
				t.Fatalf("expected *apperr.ValidationError, got %T (%v)", err, err)
			}
			if ve.Field != tt.field {
				t.Errorf("expected field %s, got %s", tt.field, ve.Field)
			}
		})
	}
}

func TestTaskRead_JSON(t *testing.T) {
	created := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	due := created.Add(4 * time.Hour)
	task := &Task{
		ID:        7,
		Title:     "Recheck lactate",
		Notes:     strPtr("Draw in 4 hours"),
		DueTime:   &due,
		Priority:  PriorityHigh,
		Status:    StatusOpen,
		PatientID: 2,
		CreatedAt: created,
	}

	raw, err := json.Marshal(task.ToRead())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"id":7,"title":"Recheck lactate","notes":"Draw in 4 hours","due_time":"2026-03-01T12:00:00Z",` +
		`"priority":"high","status":"open","patient_id":2,"created_at":"2026-03-01T08:00:00Z","completed_at":null}`
	if string(raw) != want {
		t.Errorf("got %s\nwant %s", raw, want)
	}
}
