package testutil

import (
	"context"

	"github.com/partnerflow/partnerflow/internal/domain/earnings"
	ierr "github.com/partnerflow/partnerflow/internal/errors"
)

// InMemoryEarningsStore implements earnings.Repository
type InMemoryEarningsStore struct {
	*InMemoryStore[*earnings.Earnings]
}

// NewInMemoryEarningsStore creates a new in-memory earnings store
func NewInMemoryEarningsStore() *InMemoryEarningsStore {
	return &InMemoryEarningsStore{
		InMemoryStore: NewInMemoryStore[*earnings.Earnings](),
	}
}

func copyEarnings(e *earnings.Earnings) *earnings.Earnings {
	if e == nil {
		return nil
	}
	copied := *e
	return &copied
}

func (s *InMemoryEarningsStore) Create(ctx context.Context, e *earnings.Earnings) error {
	return s.InMemoryStore.Create(ctx, e.ID, copyEarnings(e))
}

func (s *InMemoryEarningsStore) Get(ctx context.Context, id string) (*earnings.Earnings, error) {
	e, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("earnings not found").
			WithHintf("Earnings with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyEarnings(e), nil
}

func (s *InMemoryEarningsStore) ListByPartner(ctx context.Context, partnerID string) ([]*earnings.Earnings, error) {
	filterFn := func(ctx context.Context, e *earnings.Earnings, _ interface{}) bool {
		return e.PartnerID == partnerID
	}

	items, err := s.InMemoryStore.List(ctx, nil, filterFn, nil)
	if err != nil {
		return nil, err
	}

	result := make([]*earnings.Earnings, len(items))
	for i, e := range items {
		result[i] = copyEarnings(e)
	}
	return result, nil
}

// All returns every earnings record in the store
func (s *InMemoryEarningsStore) All(ctx context.Context) []*earnings.Earnings {
	items, _ := s.InMemoryStore.List(ctx, nil, nil, nil)
	result := make([]*earnings.Earnings, len(items))
	for i, e := range items {
		result[i] = copyEarnings(e)
	}
	return result
}
