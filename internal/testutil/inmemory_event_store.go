package testutil

import (
	"context"
	"sync"

	"github.com/partnerflow/partnerflow/internal/domain/events"
	ierr "github.com/partnerflow/partnerflow/internal/errors"
)

// InMemoryEventStore implements events.Repository with an append-only slice,
// mirroring the append-only nature of the real event store
type InMemoryEventStore struct {
	mu    sync.RWMutex
	leads []*events.Event
	sales []*events.SaleEvent
}

// NewInMemoryEventStore creates a new in-memory event store
func NewInMemoryEventStore() *InMemoryEventStore {
	return &InMemoryEventStore{}
}

func copyEvent(e *events.Event) *events.Event {
	if e == nil {
		return nil
	}
	copied := *e
	return &copied
}

func copySaleEvent(e *events.SaleEvent) *events.SaleEvent {
	if e == nil {
		return nil
	}
	copied := *e
	return &copied
}

func (s *InMemoryEventStore) InsertLead(ctx context.Context, event *events.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leads = append(s.leads, copyEvent(event))
	return nil
}

func (s *InMemoryEventStore) InsertSale(ctx context.Context, event *events.SaleEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sales = append(s.sales, copySaleEvent(event))
	return nil
}

func (s *InMemoryEventStore) GetLatestLeadEvent(ctx context.Context, customerID string) (*events.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *events.Event
	for _, e := range s.leads {
		if e.CustomerID != customerID {
			continue
		}
		if latest == nil ||
			e.Timestamp.After(latest.Timestamp) ||
			(e.Timestamp.Equal(latest.Timestamp) && e.ID > latest.ID) {
			latest = e
		}
	}

	if latest == nil {
		return nil, ierr.NewError("lead event not found").
			WithHintf("No lead event found for customer %s", customerID).
			Mark(ierr.ErrNotFound)
	}
	return copyEvent(latest), nil
}

// Clear removes all recorded events
func (s *InMemoryEventStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leads = nil
	s.sales = nil
}

// Sales returns all recorded sale events
func (s *InMemoryEventStore) Sales() []*events.SaleEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*events.SaleEvent, len(s.sales))
	for i, e := range s.sales {
		result[i] = copySaleEvent(e)
	}
	return result
}
