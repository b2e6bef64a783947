package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/partnerflow/partnerflow/internal/cache"
	"github.com/partnerflow/partnerflow/internal/domain/customer"
	ierr "github.com/partnerflow/partnerflow/internal/errors"
	"github.com/partnerflow/partnerflow/internal/logger"
	"github.com/partnerflow/partnerflow/internal/postgres"
	"github.com/partnerflow/partnerflow/internal/types"
)

type customerRepository struct {
	client postgres.IClient
	logger *logger.Logger
	cache  cache.Cache
}

func NewCustomerRepository(client postgres.IClient, log *logger.Logger, c cache.Cache) customer.Repository {
	return &customerRepository{client: client, logger: log, cache: c}
}

func (r *customerRepository) Create(ctx context.Context, c *customer.Customer) error {
	query := `
		INSERT INTO customers (
			id, external_id, workspace_id, name, email, clicked_at, metadata,
			environment_id, tenant_id, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :external_id, :workspace_id, :name, :email, :clicked_at, :metadata,
			:environment_id, :tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
		)`

	if _, err := r.client.DB().NamedExecContext(ctx, query, c); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create customer").
			WithReportableDetails(map[string]any{"customer_id": c.ID}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *customerRepository) Get(ctx context.Context, id string) (*customer.Customer, error) {
	cacheKey := cache.GenerateKey(cache.PrefixCustomer, types.GetTenantID(ctx), id)
	if cached, found := r.cache.Get(ctx, cacheKey); found {
		if c, ok := cached.(*customer.Customer); ok {
			return c, nil
		}
	}

	var c customer.Customer
	query := `SELECT * FROM customers WHERE id = $1 AND tenant_id = $2 AND status != $3`
	err := r.client.DB().GetContext(ctx, &c, query, id, types.GetTenantID(ctx), types.StatusDeleted)
	if err != nil {
		return nil, r.wrapNotFound(err, "customer", id)
	}

	r.cache.Set(ctx, cacheKey, &c, cache.DefaultExpiration)
	return &c, nil
}

func (r *customerRepository) GetByExternalID(ctx context.Context, externalID string) (*customer.Customer, error) {
	cacheKey := cache.GenerateKey(cache.PrefixCustomer, types.GetTenantID(ctx), "external", externalID)
	if cached, found := r.cache.Get(ctx, cacheKey); found {
		if c, ok := cached.(*customer.Customer); ok {
			return c, nil
		}
	}

	var c customer.Customer
	query := `SELECT * FROM customers WHERE external_id = $1 AND tenant_id = $2 AND status != $3`
	err := r.client.DB().GetContext(ctx, &c, query, externalID, types.GetTenantID(ctx), types.StatusDeleted)
	if err != nil {
		return nil, r.wrapNotFound(err, "customer", externalID)
	}

	r.cache.Set(ctx, cacheKey, &c, cache.DefaultExpiration)
	return &c, nil
}

func (r *customerRepository) Update(ctx context.Context, c *customer.Customer) error {
	query := `
		UPDATE customers SET
			name = :name, email = :email, clicked_at = :clicked_at,
			metadata = :metadata, status = :status,
			updated_at = :updated_at, updated_by = :updated_by
		WHERE id = :id AND tenant_id = :tenant_id`

	if _, err := r.client.DB().NamedExecContext(ctx, query, c); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update customer").
			WithReportableDetails(map[string]any{"customer_id": c.ID}).
			Mark(ierr.ErrDatabase)
	}

	r.cache.DeleteByPrefix(ctx, cache.PrefixCustomer)
	return nil
}

func (r *customerRepository) Delete(ctx context.Context, id string) error {
	query := `UPDATE customers SET status = $1 WHERE id = $2 AND tenant_id = $3`
	if _, err := r.client.DB().ExecContext(ctx, query, types.StatusDeleted, id, types.GetTenantID(ctx)); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete customer").
			Mark(ierr.ErrDatabase)
	}

	r.cache.DeleteByPrefix(ctx, cache.PrefixCustomer)
	return nil
}

func (r *customerRepository) wrapNotFound(err error, entity, id string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ierr.NewError(entity + " not found").
			WithHintf("%s with ID %s was not found", entity, id).
			WithReportableDetails(map[string]any{"id": id}).
			Mark(ierr.ErrNotFound)
	}
	return ierr.WithError(err).
		WithHint("Failed to query " + entity).
		Mark(ierr.ErrDatabase)
}
