package testutil

import (
	"context"
	"sync"
	"time"
)

// InMemoryClaimer implements dedup.Claimer with a plain map. Claims never
// expire within a test's lifetime.
type InMemoryClaimer struct {
	mu     sync.Mutex
	claims map[string]struct{}
}

// NewInMemoryClaimer creates a new in-memory claimer
func NewInMemoryClaimer() *InMemoryClaimer {
	return &InMemoryClaimer{
		claims: make(map[string]struct{}),
	}
}

func (c *InMemoryClaimer) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.claims[key]; exists {
		return false, nil
	}
	c.claims[key] = struct{}{}
	return true, nil
}

// Claimed reports whether a key has been claimed
func (c *InMemoryClaimer) Claimed(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, exists := c.claims[key]
	return exists
}
