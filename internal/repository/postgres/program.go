package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/partnerflow/partnerflow/internal/domain/program"
	ierr "github.com/partnerflow/partnerflow/internal/errors"
	"github.com/partnerflow/partnerflow/internal/logger"
	"github.com/partnerflow/partnerflow/internal/postgres"
	"github.com/partnerflow/partnerflow/internal/types"
)

type programRepository struct {
	client postgres.IClient
	logger *logger.Logger
}

func NewProgramRepository(client postgres.IClient, log *logger.Logger) program.Repository {
	return &programRepository{client: client, logger: log}
}

func (r *programRepository) CreateProgram(ctx context.Context, p *program.Program) error {
	query := `
		INSERT INTO programs (
			id, workspace_id, name, slug, domain,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :workspace_id, :name, :slug, :domain,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
		)`

	if _, err := r.client.DB().NamedExecContext(ctx, query, p); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create program").
			WithReportableDetails(map[string]any{"program_id": p.ID}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *programRepository) GetProgram(ctx context.Context, id string) (*program.Program, error) {
	var p program.Program
	query := `SELECT * FROM programs WHERE id = $1 AND tenant_id = $2 AND status != $3`
	err := r.client.DB().GetContext(ctx, &p, query, id, types.GetTenantID(ctx), types.StatusDeleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("program not found").
				WithHintf("Program with ID %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to query program").
			Mark(ierr.ErrDatabase)
	}
	return &p, nil
}

func (r *programRepository) CreateEnrollment(ctx context.Context, e *program.Enrollment) error {
	query := `
		INSERT INTO program_enrollments (
			id, program_id, partner_id, partner_name, partner_email, link_id,
			commission_type, commission_amount,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :program_id, :partner_id, :partner_name, :partner_email, :link_id,
			:commission_type, :commission_amount,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
		)`

	if _, err := r.client.DB().NamedExecContext(ctx, query, e); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create program enrollment").
			WithReportableDetails(map[string]any{"enrollment_id": e.ID}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *programRepository) GetEnrollmentByLinkID(ctx context.Context, linkID string) (*program.Enrollment, error) {
	var e program.Enrollment
	query := `SELECT * FROM program_enrollments WHERE link_id = $1 AND tenant_id = $2 AND status != $3`
	err := r.client.DB().GetContext(ctx, &e, query, linkID, types.GetTenantID(ctx), types.StatusDeleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("program enrollment not found").
				WithHintf("No enrollment owns link %s", linkID).
				WithReportableDetails(map[string]any{"link_id": linkID}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to query program enrollment").
			Mark(ierr.ErrDatabase)
	}
	return &e, nil
}
