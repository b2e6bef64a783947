package postgres

import (
	"context"
	"database/sql"
	"errors"

	ierr "github.com/partnerflow/partnerflow/internal/errors"
	"github.com/partnerflow/partnerflow/internal/domain/workspace"
	"github.com/partnerflow/partnerflow/internal/logger"
	"github.com/partnerflow/partnerflow/internal/postgres"
	"github.com/partnerflow/partnerflow/internal/types"
)

type workspaceRepository struct {
	client postgres.IClient
	logger *logger.Logger
}

func NewWorkspaceRepository(client postgres.IClient, log *logger.Logger) workspace.Repository {
	return &workspaceRepository{client: client, logger: log}
}

func (r *workspaceRepository) Create(ctx context.Context, w *workspace.Workspace) error {
	query := `
		INSERT INTO workspaces (
			id, name, slug, usage, sales_usage, webhook_enabled,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :name, :slug, :usage, :sales_usage, :webhook_enabled,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
		)`

	if _, err := r.client.DB().NamedExecContext(ctx, query, w); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create workspace").
			WithReportableDetails(map[string]any{"workspace_id": w.ID}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *workspaceRepository) Get(ctx context.Context, id string) (*workspace.Workspace, error) {
	var w workspace.Workspace
	query := `SELECT * FROM workspaces WHERE id = $1 AND tenant_id = $2 AND status != $3`
	err := r.client.DB().GetContext(ctx, &w, query, id, types.GetTenantID(ctx), types.StatusDeleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("workspace not found").
				WithHintf("Workspace with ID %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to query workspace").
			Mark(ierr.ErrDatabase)
	}
	return &w, nil
}

func (r *workspaceRepository) Update(ctx context.Context, w *workspace.Workspace) error {
	query := `
		UPDATE workspaces SET
			name = :name, slug = :slug, webhook_enabled = :webhook_enabled,
			status = :status, updated_at = :updated_at, updated_by = :updated_by
		WHERE id = :id AND tenant_id = :tenant_id`

	if _, err := r.client.DB().NamedExecContext(ctx, query, w); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update workspace").
			WithReportableDetails(map[string]any{"workspace_id": w.ID}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

// IncrementUsage is a single UPDATE so concurrent sales stay consistent
// without a read-modify-write cycle
func (r *workspaceRepository) IncrementUsage(ctx context.Context, id string, amount int64) error {
	query := `
		UPDATE workspaces SET
			usage = usage + 1,
			sales_usage = sales_usage + $1,
			updated_at = now()
		WHERE id = $2 AND tenant_id = $3`

	res, err := r.client.DB().ExecContext(ctx, query, amount, id, types.GetTenantID(ctx))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to increment workspace usage").
			WithReportableDetails(map[string]any{"workspace_id": id, "amount": amount}).
			Mark(ierr.ErrDatabase)
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return ierr.NewError("workspace not found").
			WithHintf("Workspace with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}

	return nil
}

func (r *workspaceRepository) Delete(ctx context.Context, id string) error {
	query := `UPDATE workspaces SET status = $1 WHERE id = $2 AND tenant_id = $3`
	if _, err := r.client.DB().ExecContext(ctx, query, types.StatusDeleted, id, types.GetTenantID(ctx)); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete workspace").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
