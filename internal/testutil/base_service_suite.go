package testutil

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/partnerflow/partnerflow/internal/config"
	"github.com/partnerflow/partnerflow/internal/domain/customer"
	"github.com/partnerflow/partnerflow/internal/domain/earnings"
	"github.com/partnerflow/partnerflow/internal/domain/events"
	"github.com/partnerflow/partnerflow/internal/domain/link"
	"github.com/partnerflow/partnerflow/internal/domain/program"
	"github.com/partnerflow/partnerflow/internal/domain/workspace"
	"github.com/partnerflow/partnerflow/internal/logger"
	"github.com/partnerflow/partnerflow/internal/types"
	"github.com/partnerflow/partnerflow/internal/validator"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	CustomerRepo  customer.Repository
	LinkRepo      link.Repository
	WorkspaceRepo workspace.Repository
	ProgramRepo   program.Repository
	EarningsRepo  earnings.Repository
	EventRepo     events.Repository
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	stores Stores
	logger *logger.Logger
	config *config.Configuration
	now    time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	cfg := config.GetDefaultConfig()
	cfg.Logging.Level = types.LogLevelInfo

	var err error
	s.config = cfg
	s.logger, err = logger.NewLogger(cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.setupContext()
	s.setupStores()
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupContext() {
	s.ctx = SetupContext()
}

func (s *BaseServiceTestSuite) setupStores() {
	s.stores = Stores{
		CustomerRepo:  NewInMemoryCustomerStore(),
		LinkRepo:      NewInMemoryLinkStore(),
		WorkspaceRepo: NewInMemoryWorkspaceStore(),
		ProgramRepo:   NewInMemoryProgramStore(),
		EarningsRepo:  NewInMemoryEarningsStore(),
		EventRepo:     NewInMemoryEventStore(),
	}
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.CustomerRepo.(*InMemoryCustomerStore).Clear()
	s.stores.LinkRepo.(*InMemoryLinkStore).Clear()
	s.stores.WorkspaceRepo.(*InMemoryWorkspaceStore).Clear()
	s.stores.ProgramRepo.(*InMemoryProgramStore).Clear()
	s.stores.EarningsRepo.(*InMemoryEarningsStore).Clear()
	s.stores.EventRepo.(*InMemoryEventStore).Clear()
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetStores returns all test repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetNow returns the time captured at test setup
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}
