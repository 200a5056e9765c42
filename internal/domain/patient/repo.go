package patient

import "context"

type PatientRepository interface {
	Create(ctx context.Context, p *Patient) error
	List(ctx context.Context) ([]*Patient, error)
}
