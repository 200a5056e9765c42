package patient

import (
	"context"
	"fmt"

	"github.com/ward/ward/internal/platform/db"
)

type Service struct {
	patients PatientRepository
	tx       db.Transactor
}

func NewService(patients PatientRepository, tx db.Transactor) *Service {
	return &Service{patients: patients, tx: tx}
}

// CreatePatient applies defaults, validates and stores p. A user_id that
// names no user is rejected by the store with an IntegrityError.
func (s *Service) CreatePatient(ctx context.Context, p *Patient) error {
	p.ApplyDefaults()
	if err := p.Validate(); err != nil {
		return err
	}
	if err := s.patients.Create(ctx, p); err != nil {
		return fmt.Errorf("create patient: %w", err)
	}
	return nil
}

// ListPatients returns every patient in id order.
func (s *Service) ListPatients(ctx context.Context) ([]PatientRead, error) {
	var out []PatientRead
	err := s.tx.InReadTx(ctx, func(ctx context.Context) error {
		patients, err := s.patients.List(ctx)
		if err != nil {
			return err
		}
		out = make([]PatientRead, 0, len(patients))
		for _, p := range patients {
			out = append(out, p.ToRead())
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	return out, nil
}
