package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/partnerflow/partnerflow/internal/domain/earnings"
	ierr "github.com/partnerflow/partnerflow/internal/errors"
	"github.com/partnerflow/partnerflow/internal/logger"
	"github.com/partnerflow/partnerflow/internal/postgres"
	"github.com/partnerflow/partnerflow/internal/types"
)

type earningsRepository struct {
	client postgres.IClient
	logger *logger.Logger
}

func NewEarningsRepository(client postgres.IClient, log *logger.Logger) earnings.Repository {
	return &earningsRepository{client: client, logger: log}
}

func (r *earningsRepository) Create(ctx context.Context, e *earnings.Earnings) error {
	query := `
		INSERT INTO earnings (
			id, program_id, partner_id, link_id, sale_event_id, invoice_id,
			amount, earnings, currency, payout_status,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :program_id, :partner_id, :link_id, :sale_event_id, :invoice_id,
			:amount, :earnings, :currency, :payout_status,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
		)`

	if _, err := r.client.DB().NamedExecContext(ctx, query, e); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create earnings record").
			WithReportableDetails(map[string]any{"earnings_id": e.ID, "invoice_id": e.InvoiceID}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *earningsRepository) Get(ctx context.Context, id string) (*earnings.Earnings, error) {
	var e earnings.Earnings
	query := `SELECT * FROM earnings WHERE id = $1 AND tenant_id = $2 AND status != $3`
	err := r.client.DB().GetContext(ctx, &e, query, id, types.GetTenantID(ctx), types.StatusDeleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("earnings record not found").
				WithHintf("Earnings with ID %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to query earnings record").
			Mark(ierr.ErrDatabase)
	}
	return &e, nil
}

func (r *earningsRepository) ListByPartner(ctx context.Context, partnerID string) ([]*earnings.Earnings, error) {
	var result []*earnings.Earnings
	query := `
		SELECT * FROM earnings
		WHERE partner_id = $1 AND tenant_id = $2 AND status != $3
		ORDER BY created_at DESC`
	err := r.client.DB().SelectContext(ctx, &result, query, partnerID, types.GetTenantID(ctx), types.StatusDeleted)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list earnings").
			Mark(ierr.ErrDatabase)
	}
	return result, nil
}
