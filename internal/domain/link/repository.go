package link

import (
	"context"
)

// Repository defines the interface for link data access
type Repository interface {
	Create(ctx context.Context, link *Link) error
	Get(ctx context.Context, id string) (*Link, error)
	Update(ctx context.Context, link *Link) error
	// IncrementSales atomically bumps the sale count by one and the sale
	// amount sum by amount (minor currency units)
	IncrementSales(ctx context.Context, id string, amount int64) error
	Delete(ctx context.Context, id string) error
}
