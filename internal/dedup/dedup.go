package dedup

import (
	"context"
	"time"
)

// Claimer is a set-once idempotency claim with a retention window.
// Claim returns true when the caller won the key, false when the key was
// already claimed by an earlier delivery.
type Claimer interface {
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// Key prefixes for claimed event scopes
const (
	PrefixInvoice = "sale_events:invoice:"
)

// InvoiceKey builds the claim key for a payment provider invoice id
func InvoiceKey(invoiceID string) string {
	return PrefixInvoice + invoiceID
}
