package payload

import (
	"github.com/partnerflow/partnerflow/internal/domain/customer"
	"github.com/partnerflow/partnerflow/internal/domain/link"
)

// Services container for all repositories needed by payload builders
type Services struct {
	CustomerRepo customer.Repository
	LinkRepo     link.Repository
}

// NewServices creates a new Services container
func NewServices(
	customerRepo customer.Repository,
	linkRepo link.Repository,
) *Services {
	return &Services{
		CustomerRepo: customerRepo,
		LinkRepo:     linkRepo,
	}
}
