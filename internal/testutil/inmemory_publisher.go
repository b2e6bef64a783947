package testutil

import (
	"context"
	"sync"

	"github.com/partnerflow/partnerflow/internal/types"
)

// InMemoryWebhookPublisher implements publisher.WebhookPublisher by recording
// published events for assertions
type InMemoryWebhookPublisher struct {
	mu     sync.Mutex
	events []*types.WebhookEvent
}

// NewInMemoryWebhookPublisher creates a new in-memory webhook publisher
func NewInMemoryWebhookPublisher() *InMemoryWebhookPublisher {
	return &InMemoryWebhookPublisher{}
}

func (p *InMemoryWebhookPublisher) PublishWebhook(ctx context.Context, event *types.WebhookEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *InMemoryWebhookPublisher) Close() error {
	return nil
}

// Events returns all published webhook events
func (p *InMemoryWebhookPublisher) Events() []*types.WebhookEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	result := make([]*types.WebhookEvent, len(p.events))
	copy(result, p.events)
	return result
}
