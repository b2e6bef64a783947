package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/partnerflow/partnerflow/internal/domain/link"
	ierr "github.com/partnerflow/partnerflow/internal/errors"
	"github.com/partnerflow/partnerflow/internal/logger"
	"github.com/partnerflow/partnerflow/internal/postgres"
	"github.com/partnerflow/partnerflow/internal/types"
)

type linkRepository struct {
	client postgres.IClient
	logger *logger.Logger
}

func NewLinkRepository(client postgres.IClient, log *logger.Logger) link.Repository {
	return &linkRepository{client: client, logger: log}
}

func (r *linkRepository) Create(ctx context.Context, l *link.Link) error {
	query := `
		INSERT INTO links (
			id, workspace_id, key, url, short_link, program_id, partner_id,
			clicks, leads, sales, sale_amount, environment_id,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :workspace_id, :key, :url, :short_link, :program_id, :partner_id,
			:clicks, :leads, :sales, :sale_amount, :environment_id,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
		)`

	if _, err := r.client.DB().NamedExecContext(ctx, query, l); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create link").
			WithReportableDetails(map[string]any{"link_id": l.ID}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *linkRepository) Get(ctx context.Context, id string) (*link.Link, error) {
	var l link.Link
	query := `SELECT * FROM links WHERE id = $1 AND tenant_id = $2 AND status != $3`
	err := r.client.DB().GetContext(ctx, &l, query, id, types.GetTenantID(ctx), types.StatusDeleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("link not found").
				WithHintf("Link with ID %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to query link").
			Mark(ierr.ErrDatabase)
	}
	return &l, nil
}

func (r *linkRepository) Update(ctx context.Context, l *link.Link) error {
	query := `
		UPDATE links SET
			url = :url, program_id = :program_id, partner_id = :partner_id,
			status = :status, updated_at = :updated_at, updated_by = :updated_by
		WHERE id = :id AND tenant_id = :tenant_id`

	if _, err := r.client.DB().NamedExecContext(ctx, query, l); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update link").
			WithReportableDetails(map[string]any{"link_id": l.ID}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

// IncrementSales is a single UPDATE so concurrent sales stay consistent
// without a read-modify-write cycle
func (r *linkRepository) IncrementSales(ctx context.Context, id string, amount int64) error {
	query := `
		UPDATE links SET
			sales = sales + 1,
			sale_amount = sale_amount + $1,
			updated_at = now()
		WHERE id = $2 AND tenant_id = $3`

	res, err := r.client.DB().ExecContext(ctx, query, amount, id, types.GetTenantID(ctx))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to increment link sales").
			WithReportableDetails(map[string]any{"link_id": id, "amount": amount}).
			Mark(ierr.ErrDatabase)
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return ierr.NewError("link not found").
			WithHintf("Link with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}

	return nil
}

func (r *linkRepository) Delete(ctx context.Context, id string) error {
	query := `UPDATE links SET status = $1 WHERE id = $2 AND tenant_id = $3`
	if _, err := r.client.DB().ExecContext(ctx, query, types.StatusDeleted, id, types.GetTenantID(ctx)); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete link").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
