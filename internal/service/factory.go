package service

import (
	"github.com/partnerflow/partnerflow/internal/config"
	"github.com/partnerflow/partnerflow/internal/dedup"
	"github.com/partnerflow/partnerflow/internal/domain/customer"
	"github.com/partnerflow/partnerflow/internal/domain/earnings"
	"github.com/partnerflow/partnerflow/internal/domain/events"
	"github.com/partnerflow/partnerflow/internal/domain/link"
	"github.com/partnerflow/partnerflow/internal/domain/program"
	"github.com/partnerflow/partnerflow/internal/domain/workspace"
	"github.com/partnerflow/partnerflow/internal/logger"
	"github.com/partnerflow/partnerflow/internal/notification"
	"github.com/partnerflow/partnerflow/internal/postgres"
	"github.com/partnerflow/partnerflow/internal/taskrunner"
	webhookPublisher "github.com/partnerflow/partnerflow/internal/webhook/publisher"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient

	// Repositories
	CustomerRepo  customer.Repository
	LinkRepo      link.Repository
	WorkspaceRepo workspace.Repository
	ProgramRepo   program.Repository
	EarningsRepo  earnings.Repository
	EventRepo     events.Repository

	// Deduplication
	DedupClaimer dedup.Claimer

	// Background task execution
	TaskRunner taskrunner.Runner

	// Outbound notifications
	WebhookPublisher webhookPublisher.WebhookPublisher
	PartnerNotifier  notification.PartnerNotifier
}

// NewServiceParams assembles the common service dependencies
func NewServiceParams(
	logger *logger.Logger,
	cfg *config.Configuration,
	db postgres.IClient,
	customerRepo customer.Repository,
	linkRepo link.Repository,
	workspaceRepo workspace.Repository,
	programRepo program.Repository,
	earningsRepo earnings.Repository,
	eventRepo events.Repository,
	dedupClaimer dedup.Claimer,
	taskRunner taskrunner.Runner,
	webhookPublisher webhookPublisher.WebhookPublisher,
	partnerNotifier notification.PartnerNotifier,
) ServiceParams {
	return ServiceParams{
		Logger:           logger,
		Config:           cfg,
		DB:               db,
		CustomerRepo:     customerRepo,
		LinkRepo:         linkRepo,
		WorkspaceRepo:    workspaceRepo,
		ProgramRepo:      programRepo,
		EarningsRepo:     earningsRepo,
		EventRepo:        eventRepo,
		DedupClaimer:     dedupClaimer,
		TaskRunner:       taskRunner,
		WebhookPublisher: webhookPublisher,
		PartnerNotifier:  partnerNotifier,
	}
}
