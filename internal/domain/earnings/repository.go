package earnings

import (
	"context"
)

// Repository defines the interface for earnings data access
type Repository interface {
	Create(ctx context.Context, earnings *Earnings) error
	Get(ctx context.Context, id string) (*Earnings, error)
	ListByPartner(ctx context.Context, partnerID string) ([]*Earnings, error)
}
