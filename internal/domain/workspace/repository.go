package workspace

import (
	"context"
)

// Repository defines the interface for workspace data access
type Repository interface {
	Create(ctx context.Context, workspace *Workspace) error
	Get(ctx context.Context, id string) (*Workspace, error)
	Update(ctx context.Context, workspace *Workspace) error
	// IncrementUsage atomically bumps the usage count by one and the sales
	// usage sum by amount (minor currency units)
	IncrementUsage(ctx context.Context, id string, amount int64) error
	Delete(ctx context.Context, id string) error
}
