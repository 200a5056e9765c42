package task

import (
	"encoding/json"

	"github.com/ward/ward/pkg/apperr"
)

// Priority orders a task against the rest of the round.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func ParsePriority(s string) (Priority, error) {
	switch p := Priority(s); p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	}
	return "", apperr.Invalid("priority", "must be one of low, medium, high; got %q", s)
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

type Status string

const (
	StatusOpen Status = "open"
	StatusDone Status = "done"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusOpen, StatusDone:
		return st, nil
	}
	return "", apperr.Invalid("status", "must be one of open, done; got %q", s)
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
