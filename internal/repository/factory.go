package repository

import (
	"github.com/partnerflow/partnerflow/internal/cache"
	"github.com/partnerflow/partnerflow/internal/clickhouse"
	"github.com/partnerflow/partnerflow/internal/domain/customer"
	"github.com/partnerflow/partnerflow/internal/domain/earnings"
	"github.com/partnerflow/partnerflow/internal/domain/events"
	"github.com/partnerflow/partnerflow/internal/domain/link"
	"github.com/partnerflow/partnerflow/internal/domain/program"
	"github.com/partnerflow/partnerflow/internal/domain/workspace"
	clickhouseStore "github.com/partnerflow/partnerflow/internal/events/stores/clickhouse"
	"github.com/partnerflow/partnerflow/internal/logger"
	"github.com/partnerflow/partnerflow/internal/postgres"
	postgresRepo "github.com/partnerflow/partnerflow/internal/repository/postgres"
)

func NewEventRepository(client *clickhouse.Client) events.Repository {
	return clickhouseStore.NewConversionEventStore(client)
}

func NewCustomerRepository(db postgres.IClient, logger *logger.Logger, c cache.Cache) customer.Repository {
	return postgresRepo.NewCustomerRepository(db, logger, c)
}

func NewLinkRepository(db postgres.IClient, logger *logger.Logger) link.Repository {
	return postgresRepo.NewLinkRepository(db, logger)
}

func NewWorkspaceRepository(db postgres.IClient, logger *logger.Logger) workspace.Repository {
	return postgresRepo.NewWorkspaceRepository(db, logger)
}

func NewProgramRepository(db postgres.IClient, logger *logger.Logger) program.Repository {
	return postgresRepo.NewProgramRepository(db, logger)
}

func NewEarningsRepository(db postgres.IClient, logger *logger.Logger) earnings.Repository {
	return postgresRepo.NewEarningsRepository(db, logger)
}
