package customer

import (
	"context"
)

// Repository defines the interface for customer data access
type Repository interface {
	Create(ctx context.Context, customer *Customer) error
	Get(ctx context.Context, id string) (*Customer, error)
	// GetByExternalID looks up a customer by the payment provider's customer
	// id. Returns ErrNotFound when no customer has been synchronized yet.
	GetByExternalID(ctx context.Context, externalID string) (*Customer, error)
	Update(ctx context.Context, customer *Customer) error
	Delete(ctx context.Context, id string) error
}
