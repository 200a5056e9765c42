package patient

import (
	"strings"

	"github.com/ward/ward/pkg/apperr"
)

// Patient is a person on a clinician's list.
type Patient struct {
	ID          int64    `db:"id"`
	Name        string   `db:"name"`
	Bed         *string  `db:"bed"`
	MainProblem *string  `db:"main_problem"`
	Priority    Priority `db:"priority"`
	Status      Status   `db:"status"`
	UserID      int64    `db:"user_id"`
}

// PatientRead is the external read shape of a Patient.
type PatientRead struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Bed         *string  `json:"bed"`
	MainProblem *string  `json:"main_problem"`
	Priority    Priority `json:"priority"`
	Status      Status   `json:"status"`
	UserID      int64    `json:"user_id"`
}

func (p *Patient) ToRead() PatientRead {
	return PatientRead{
		ID:          p.ID,
		Name:        p.Name,
		Bed:         p.Bed,
		MainProblem: p.MainProblem,
		Priority:    p.Priority,
		Status:      p.Status,
		UserID:      p.UserID,
	}
}

// ApplyDefaults fills unset enumerations with their defaults.
func (p *Patient) ApplyDefaults() {
	if p.Priority == "" {
		p.Priority = PriorityNormal
	}
	if p.Status == "" {
		p.Status = StatusActive
	}
}

// Validate checks required fields and enumeration membership.
func (p *Patient) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return apperr.Required("name")
	}
	if p.UserID <= 0 {
		return apperr.Required("user_id")
	}
	if !p.Priority.Valid() {
		return apperr.Invalid("priority", "unknown value %q", p.Priority)
	}
	if !p.Status.Valid() {
		return apperr.Invalid("status", "unknown value %q", p.Status)
	}
	return nil
}
