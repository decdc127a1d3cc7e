package patient

import "context"

type PatientRepository interface {
	// Upsert inserts the patient or, when the email already exists,
	// refreshes name and phone on the existing row. p.ID is set either way.
	Upsert(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id int64) (*Patient, error)
	GetByEmail(ctx context.Context, email string) (*Patient, error)
}
