package testutil

import (
	"context"

	"github.com/partnerflow/partnerflow/internal/domain/link"
	ierr "github.com/partnerflow/partnerflow/internal/errors"
)

// InMemoryLinkStore implements link.Repository
type InMemoryLinkStore struct {
	*InMemoryStore[*link.Link]
}

// NewInMemoryLinkStore creates a new in-memory link store
func NewInMemoryLinkStore() *InMemoryLinkStore {
	return &InMemoryLinkStore{
		InMemoryStore: NewInMemoryStore[*link.Link](),
	}
}

func copyLink(l *link.Link) *link.Link {
	if l == nil {
		return nil
	}
	copied := *l
	return &copied
}

func (s *InMemoryLinkStore) Create(ctx context.Context, l *link.Link) error {
	return s.InMemoryStore.Create(ctx, l.ID, copyLink(l))
}

func (s *InMemoryLinkStore) Get(ctx context.Context, id string) (*link.Link, error) {
	l, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("link not found").
			WithHintf("Link with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyLink(l), nil
}

func (s *InMemoryLinkStore) Update(ctx context.Context, l *link.Link) error {
	return s.InMemoryStore.Update(ctx, l.ID, copyLink(l))
}

func (s *InMemoryLinkStore) IncrementSales(ctx context.Context, id string, amount int64) error {
	l, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return ierr.NewError("link not found").
			WithHintf("Link with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}

	updated := copyLink(l)
	updated.Sales++
	updated.SaleAmount += amount
	return s.InMemoryStore.Update(ctx, id, updated)
}

func (s *InMemoryLinkStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.Delete(ctx, id)
}
