package program

import (
	"context"
)

// Repository defines the interface for program and enrollment data access
type Repository interface {
	CreateProgram(ctx context.Context, program *Program) error
	GetProgram(ctx context.Context, id string) (*Program, error)
	CreateEnrollment(ctx context.Context, enrollment *Enrollment) error
	// GetEnrollmentByLinkID resolves the enrollment that owns a program link.
	// A program link without an enrollment is a data-integrity anomaly, so
	// absence is returned as an error (ErrNotFound), never swallowed.
	GetEnrollmentByLinkID(ctx context.Context, linkID string) (*Enrollment, error)
}
