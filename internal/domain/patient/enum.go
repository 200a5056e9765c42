package patient

import (
	"encoding/json"

	"github.com/ward/ward/pkg/apperr"
)

// Priority ranks how closely a patient needs watching.
type Priority string

const (
	PriorityNormal    Priority = "normal"
	PriorityImportant Priority = "important"
	PriorityCritical  Priority = "critical"
)

func ParsePriority(s string) (Priority, error) {
	switch p := Priority(s); p {
	case PriorityNormal, PriorityImportant, PriorityCritical:
		return p, nil
	}
	return "", apperr.Invalid("priority", "must be one of normal, important, critical; got %q", s)
}

func (p Priority) Valid() bool {
	_, err := ParsePriority(string(p))
	return err == nil
}

func (p Priority) String() string { return string(p) }

func (p *Priority) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return apperr.Invalid("priority", "must be a string")
	}
	v, err := ParsePriority(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Status is where the patient is in their stay.
type Status string

const (
	StatusActive     Status = "active"
	StatusDischarged Status = "discharged"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusActive, StatusDischarged:
		return st, nil
	}
	return "", apperr.Invalid("status", "must be one of active, discharged; got %q", s)
}

func (s Status) Valid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

func (s Status) String() string { return string(s) }

func (s *Status) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return apperr.Invalid("status", "must be a string")
	}
	v, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = v
	return nil
}
