package testutil

import (
	"context"

	"github.com/partnerflow/partnerflow/internal/domain/workspace"
	ierr "github.com/partnerflow/partnerflow/internal/errors"
)

// InMemoryWorkspaceStore implements workspace.Repository
type InMemoryWorkspaceStore struct {
	*InMemoryStore[*workspace.Workspace]
}

// NewInMemoryWorkspaceStore creates a new in-memory workspace store
func NewInMemoryWorkspaceStore() *InMemoryWorkspaceStore {
	return &InMemoryWorkspaceStore{
		InMemoryStore: NewInMemoryStore[*workspace.Workspace](),
	}
}

func copyWorkspace(w *workspace.Workspace) *workspace.Workspace {
	if w == nil {
		return nil
	}
	copied := *w
	return &copied
}

func (s *InMemoryWorkspaceStore) Create(ctx context.Context, w *workspace.Workspace) error {
	return s.InMemoryStore.Create(ctx, w.ID, copyWorkspace(w))
}

func (s *InMemoryWorkspaceStore) Get(ctx context.Context, id string) (*workspace.Workspace, error) {
	w, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("workspace not found").
			WithHintf("Workspace with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyWorkspace(w), nil
}

func (s *InMemoryWorkspaceStore) Update(ctx context.Context, w *workspace.Workspace) error {
	return s.InMemoryStore.Update(ctx, w.ID, copyWorkspace(w))
}

func (s *InMemoryWorkspaceStore) IncrementUsage(ctx context.Context, id string, amount int64) error {
	w, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return ierr.NewError("workspace not found").
			WithHintf("Workspace with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}

	updated := copyWorkspace(w)
	updated.Usage++
	updated.SalesUsage += amount
	return s.InMemoryStore.Update(ctx, id, updated)
}

func (s *InMemoryWorkspaceStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.Delete(ctx, id)
}
