package events

import (
	"context"
)

// Repository defines operations on the append-only conversion event log
type Repository interface {
	// InsertLead appends a lead event
	InsertLead(ctx context.Context, event *Event) error

	// InsertSale appends a sale event
	InsertSale(ctx context.Context, event *SaleEvent) error

	// GetLatestLeadEvent returns the most recent lead event for a customer,
	// ordered by timestamp then event id descending. Returns ErrNotFound when
	// the customer has no lead event.
	GetLatestLeadEvent(ctx context.Context, customerID string) (*Event, error)
}
