package testutil

import (
	"context"

	"github.com/partnerflow/partnerflow/internal/domain/program"
	ierr "github.com/partnerflow/partnerflow/internal/errors"
)

// InMemoryProgramStore implements program.Repository
type InMemoryProgramStore struct {
	programs    *InMemoryStore[*program.Program]
	enrollments *InMemoryStore[*program.Enrollment]
}

// NewInMemoryProgramStore creates a new in-memory program store
func NewInMemoryProgramStore() *InMemoryProgramStore {
	return &InMemoryProgramStore{
		programs:    NewInMemoryStore[*program.Program](),
		enrollments: NewInMemoryStore[*program.Enrollment](),
	}
}

func copyProgram(p *program.Program) *program.Program {
	if p == nil {
		return nil
	}
	copied := *p
	return &copied
}

func copyEnrollment(e *program.Enrollment) *program.Enrollment {
	if e == nil {
		return nil
	}
	copied := *e
	return &copied
}

func (s *InMemoryProgramStore) CreateProgram(ctx context.Context, p *program.Program) error {
	return s.programs.Create(ctx, p.ID, copyProgram(p))
}

func (s *InMemoryProgramStore) GetProgram(ctx context.Context, id string) (*program.Program, error) {
	p, err := s.programs.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("program not found").
			WithHintf("Program with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyProgram(p), nil
}

func (s *InMemoryProgramStore) CreateEnrollment(ctx context.Context, e *program.Enrollment) error {
	return s.enrollments.Create(ctx, e.ID, copyEnrollment(e))
}

func (s *InMemoryProgramStore) GetEnrollmentByLinkID(ctx context.Context, linkID string) (*program.Enrollment, error) {
	filterFn := func(ctx context.Context, e *program.Enrollment, _ interface{}) bool {
		return e.LinkID == linkID
	}

	enrollments, err := s.enrollments.List(ctx, nil, filterFn, nil)
	if err != nil {
		return nil, err
	}
	if len(enrollments) == 0 {
		return nil, ierr.NewError("enrollment not found").
			WithHintf("No enrollment found for link %s", linkID).
			Mark(ierr.ErrNotFound)
	}
	return copyEnrollment(enrollments[0]), nil
}

// Clear removes all programs and enrollments
func (s *InMemoryProgramStore) Clear() {
	s.programs.Clear()
	s.enrollments.Clear()
}
