package service

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/partnerflow/partnerflow/internal/dedup"
	"github.com/partnerflow/partnerflow/internal/domain/customer"
	"github.com/partnerflow/partnerflow/internal/domain/events"
	"github.com/partnerflow/partnerflow/internal/domain/link"
	"github.com/partnerflow/partnerflow/internal/domain/program"
	"github.com/partnerflow/partnerflow/internal/domain/workspace"
	ierr "github.com/partnerflow/partnerflow/internal/errors"
	"github.com/partnerflow/partnerflow/internal/testutil"
	"github.com/partnerflow/partnerflow/internal/types"
	webhookDto "github.com/partnerflow/partnerflow/internal/webhook/dto"
)

type BillingServiceSuite struct {
	testutil.BaseServiceTestSuite
	service          BillingService
	eventRepo        *testutil.InMemoryEventStore
	claimer          *testutil.InMemoryClaimer
	runner           *testutil.SyncRunner
	webhookPublisher *testutil.InMemoryWebhookPublisher
	partnerNotifier  *testutil.InMemoryPartnerNotifier
	testData         struct {
		workspace *workspace.Workspace
		customer  *customer.Customer
		link      *link.Link
		lead      *events.Event
		now       time.Time
	}
}

func TestBillingService(t *testing.T) {
	suite.Run(t, new(BillingServiceSuite))
}

func (s *BillingServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupService()
	s.setupTestData()
}

func (s *BillingServiceSuite) setupService() {
	s.eventRepo = s.GetStores().EventRepo.(*testutil.InMemoryEventStore)
	s.claimer = testutil.NewInMemoryClaimer()
	s.runner = testutil.NewSyncRunner()
	s.webhookPublisher = testutil.NewInMemoryWebhookPublisher()
	s.partnerNotifier = testutil.NewInMemoryPartnerNotifier()

	s.service = NewBillingService(ServiceParams{
		Logger:           s.GetLogger(),
		Config:           s.GetConfig(),
		CustomerRepo:     s.GetStores().CustomerRepo,
		LinkRepo:         s.GetStores().LinkRepo,
		WorkspaceRepo:    s.GetStores().WorkspaceRepo,
		ProgramRepo:      s.GetStores().ProgramRepo,
		EarningsRepo:     s.GetStores().EarningsRepo,
		EventRepo:        s.GetStores().EventRepo,
		DedupClaimer:     s.claimer,
		TaskRunner:       s.runner,
		WebhookPublisher: s.webhookPublisher,
		PartnerNotifier:  s.partnerNotifier,
	})
}

func (s *BillingServiceSuite) setupTestData() {
	s.testData.now = s.GetNow()

	s.testData.workspace = &workspace.Workspace{
		ID:        "ws_1",
		Name:      "Acme",
		Slug:      "acme",
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().WorkspaceRepo.Create(s.GetContext(), s.testData.workspace))

	clickedAt := s.testData.now.Add(-72 * time.Hour)
	s.testData.customer = &customer.Customer{
		ID:          "cus_1",
		ExternalID:  "stripe_cus_1",
		WorkspaceID: "ws_1",
		Name:        "Jordan",
		Email:       "jordan@example.com",
		ClickedAt:   &clickedAt,
		BaseModel:   types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().CustomerRepo.Create(s.GetContext(), s.testData.customer))

	s.testData.link = &link.Link{
		ID:          "link_1",
		WorkspaceID: "ws_1",
		Key:         "xYZ12A8Q",
		URL:         "https://acme.com",
		ShortLink:   "https://pflow.to/xYZ12A8Q",
		Sales:       3,
		SaleAmount:  1500,
		BaseModel:   types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().LinkRepo.Create(s.GetContext(), s.testData.link))

	s.testData.lead = &events.Event{
		ID:                 types.GenerateUUIDWithPrefix(types.UUID_PREFIX_EVENT),
		TenantID:           types.GetTenantID(s.GetContext()),
		EventType:          events.EventTypeLead,
		EventName:          "Sign up",
		CustomerID:         "cus_1",
		ExternalCustomerID: "stripe_cus_1",
		WorkspaceID:        "ws_1",
		LinkID:             "link_1",
		ClickID:            "click_1",
		Country:            "US",
		Device:             "desktop",
		Timestamp:          s.testData.now.Add(-48 * time.Hour),
	}
	s.NoError(s.eventRepo.InsertLead(s.GetContext(), s.testData.lead))
}

func (s *BillingServiceSuite) invoicePaid(invoiceID string, amount int64) *InvoicePaidEvent {
	return &InvoicePaidEvent{
		ExternalCustomerID: "stripe_cus_1",
		InvoiceID:          invoiceID,
		AmountPaid:         amount,
		Currency:           "usd",
		PaymentProcessor:   types.PaymentProcessorStripe,
		RawInvoice:         json.RawMessage(fmt.Sprintf(`{"id":%q,"amount_paid":%d}`, invoiceID, amount)),
	}
}

func (s *BillingServiceSuite) TestRecordSaleWithoutProgram() {
	msg, err := s.service.HandleInvoicePaid(s.GetContext(), s.invoicePaid("in_1", 500))
	s.NoError(err)
	s.Equal("Sale recorded for customer ID cus_1 and invoice ID in_1", msg)

	// Link counters
	updatedLink, err := s.GetStores().LinkRepo.Get(s.GetContext(), "link_1")
	s.NoError(err)
	s.Equal(int64(4), updatedLink.Sales)
	s.Equal(int64(2000), updatedLink.SaleAmount)

	// Workspace counters
	updatedWorkspace, err := s.GetStores().WorkspaceRepo.Get(s.GetContext(), "ws_1")
	s.NoError(err)
	s.Equal(int64(1), updatedWorkspace.Usage)
	s.Equal(int64(500), updatedWorkspace.SalesUsage)

	// Sale event appended with attribution copied from the lead
	sales := s.eventRepo.Sales()
	s.Len(sales, 1)
	sale := sales[0]
	s.Equal(events.EventTypeSale, sale.EventType)
	s.Equal("cus_1", sale.CustomerID)
	s.Equal("link_1", sale.LinkID)
	s.Equal("click_1", sale.ClickID)
	s.Equal("US", sale.Country)
	s.Equal(int64(500), sale.Amount)
	s.Equal("usd", sale.Currency)
	s.Equal("in_1", sale.InvoiceID)
	s.Equal(types.PaymentProcessorStripe, sale.PaymentProcessor)
	s.JSONEq(`{"id":"in_1","amount_paid":500}`, sale.Metadata)

	// No earnings for a programless link
	s.Empty(s.GetStores().EarningsRepo.(*testutil.InMemoryEarningsStore).All(s.GetContext()))
	s.Empty(s.partnerNotifier.Notifications())

	// Workspace webhook dispatched
	published := s.webhookPublisher.Events()
	s.Len(published, 1)
	s.Equal(types.WebhookEventSaleCreated, published[0].EventName)
	s.Equal("ws_1", published[0].WorkspaceID)

	var internalEvent webhookDto.InternalSaleEvent
	s.NoError(json.Unmarshal(published[0].Payload, &internalEvent))
	s.Equal("cus_1", internalEvent.CustomerID)
	s.Equal("link_1", internalEvent.LinkID)
	s.Equal(sale.ID, internalEvent.SaleEvent.ID)
}

func (s *BillingServiceSuite) TestDuplicateInvoiceSkipped() {
	msg, err := s.service.HandleInvoicePaid(s.GetContext(), s.invoicePaid("in_1", 500))
	s.NoError(err)
	s.Equal("Sale recorded for customer ID cus_1 and invoice ID in_1", msg)

	msg, err = s.service.HandleInvoicePaid(s.GetContext(), s.invoicePaid("in_1", 500))
	s.NoError(err)
	s.Equal("Invoice with ID in_1 already processed, skipping...", msg)

	// Writes not repeated
	updatedLink, err := s.GetStores().LinkRepo.Get(s.GetContext(), "link_1")
	s.NoError(err)
	s.Equal(int64(4), updatedLink.Sales)
	s.Len(s.eventRepo.Sales(), 1)
	s.Len(s.webhookPublisher.Events(), 1)
}

func (s *BillingServiceSuite) TestMalformedEventRejected() {
	event := s.invoicePaid("in_1", 500)
	event.InvoiceID = ""

	_, err := s.service.HandleInvoicePaid(s.GetContext(), event)
	s.Error(err)
	s.True(ierr.IsValidation(err))

	event = s.invoicePaid("in_1", 500)
	event.ExternalCustomerID = ""

	_, err = s.service.HandleInvoicePaid(s.GetContext(), event)
	s.Error(err)
	s.True(ierr.IsValidation(err))

	// A rejected event never reaches the claim or the stores
	s.False(s.claimer.Claimed(dedup.InvoiceKey("in_1")))
	s.Empty(s.eventRepo.Sales())
}

func (s *BillingServiceSuite) TestUnknownCustomerSkipped() {
	event := s.invoicePaid("in_1", 500)
	event.ExternalCustomerID = "stripe_cus_unknown"

	msg, err := s.service.HandleInvoicePaid(s.GetContext(), event)
	s.NoError(err)
	s.Equal("Customer with external ID stripe_cus_unknown not found, skipping...", msg)

	// Nothing claimed or written
	s.False(s.claimer.Claimed(dedup.InvoiceKey("in_1")))
	s.Empty(s.eventRepo.Sales())
}

func (s *BillingServiceSuite) TestZeroAmountSkippedAfterClaim() {
	msg, err := s.service.HandleInvoicePaid(s.GetContext(), s.invoicePaid("in_1", 0))
	s.NoError(err)
	s.Equal("Invoice with ID in_1 has an amount of 0, skipping...", msg)
	s.Empty(s.eventRepo.Sales())

	// The zero-amount skip already consumed the idempotency key, so a
	// corrected retry within the retention window is treated as a duplicate.
	msg, err = s.service.HandleInvoicePaid(s.GetContext(), s.invoicePaid("in_1", 500))
	s.NoError(err)
	s.Equal("Invoice with ID in_1 already processed, skipping...", msg)
	s.Empty(s.eventRepo.Sales())
}

func (s *BillingServiceSuite) TestNoLeadEventSkipped() {
	s.eventRepo.Clear()

	msg, err := s.service.HandleInvoicePaid(s.GetContext(), s.invoicePaid("in_1", 500))
	s.NoError(err)
	s.Equal("No lead event found for customer with ID cus_1, skipping...", msg)
	s.Empty(s.eventRepo.Sales())

	// Skip still consumed the claim
	s.True(s.claimer.Claimed(dedup.InvoiceKey("in_1")))
}

func (s *BillingServiceSuite) TestMissingLinkSkipped() {
	s.NoError(s.GetStores().LinkRepo.Delete(s.GetContext(), "link_1"))

	msg, err := s.service.HandleInvoicePaid(s.GetContext(), s.invoicePaid("in_1", 500))
	s.NoError(err)
	s.Equal("Link with ID link_1 not found, skipping...", msg)
	s.Empty(s.eventRepo.Sales())
}

func (s *BillingServiceSuite) TestLatestLeadEventWins() {
	newerLead := *s.testData.lead
	newerLead.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_EVENT)
	newerLead.LinkID = "link_2"
	newerLead.Timestamp = s.testData.now.Add(-1 * time.Hour)
	s.NoError(s.eventRepo.InsertLead(s.GetContext(), &newerLead))

	newerLink := &link.Link{
		ID:          "link_2",
		WorkspaceID: "ws_1",
		Key:         "newer",
		URL:         "https://acme.com/v2",
		ShortLink:   "https://pflow.to/newer",
		BaseModel:   types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().LinkRepo.Create(s.GetContext(), newerLink))

	msg, err := s.service.HandleInvoicePaid(s.GetContext(), s.invoicePaid("in_1", 500))
	s.NoError(err)
	s.Equal("Sale recorded for customer ID cus_1 and invoice ID in_1", msg)

	sales := s.eventRepo.Sales()
	s.Len(sales, 1)
	s.Equal("link_2", sales[0].LinkID)

	updatedLink, err := s.GetStores().LinkRepo.Get(s.GetContext(), "link_2")
	s.NoError(err)
	s.Equal(int64(1), updatedLink.Sales)
}

func (s *BillingServiceSuite) enrollLinkInProgram(commissionType types.CommissionType, commissionAmount decimal.Decimal) {
	prog := &program.Program{
		ID:          "prog_1",
		WorkspaceID: "ws_1",
		Name:        "Acme Partners",
		Slug:        "acme-partners",
		BaseModel:   types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().ProgramRepo.CreateProgram(s.GetContext(), prog))

	enrollment := &program.Enrollment{
		ID:               "pge_1",
		ProgramID:        "prog_1",
		PartnerID:        "pn_1",
		PartnerName:      "Sam",
		PartnerEmail:     "sam@partner.dev",
		LinkID:           "link_1",
		CommissionType:   commissionType,
		CommissionAmount: commissionAmount,
		BaseModel:        types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().ProgramRepo.CreateEnrollment(s.GetContext(), enrollment))

	s.testData.link.ProgramID = "prog_1"
	s.testData.link.PartnerID = "pn_1"
	s.NoError(s.GetStores().LinkRepo.Update(s.GetContext(), s.testData.link))
}

func (s *BillingServiceSuite) TestProgramSaleCreatesPercentageEarnings() {
	s.enrollLinkInProgram(types.CommissionTypePercentage, decimal.NewFromInt(30))

	msg, err := s.service.HandleInvoicePaid(s.GetContext(), s.invoicePaid("in_1", 500))
	s.NoError(err)
	s.Equal("Sale recorded for customer ID cus_1 and invoice ID in_1", msg)

	records := s.GetStores().EarningsRepo.(*testutil.InMemoryEarningsStore).All(s.GetContext())
	s.Len(records, 1)
	record := records[0]
	s.Equal("prog_1", record.ProgramID)
	s.Equal("pn_1", record.PartnerID)
	s.Equal("link_1", record.LinkID)
	s.Equal("in_1", record.InvoiceID)
	s.Equal(int64(500), record.Amount)
	s.True(record.Earnings.Equal(decimal.NewFromInt(150)), "expected 150, got %s", record.Earnings)
	s.Equal("usd", record.Currency)
	s.Equal(types.EarningsStatusPending, record.PayoutStatus)

	sales := s.eventRepo.Sales()
	s.Len(sales, 1)
	s.Equal(sales[0].ID, record.SaleEventID)

	// Partner notification went out through the detached path
	notifications := s.partnerNotifier.Notifications()
	s.Len(notifications, 1)
	s.Equal("sam@partner.dev", notifications[0].PartnerEmail)
	s.Equal("Acme Partners", notifications[0].ProgramName)
	s.Equal(int64(500), notifications[0].Amount)
	s.True(notifications[0].Earnings.Equal(decimal.NewFromInt(150)))
}

func (s *BillingServiceSuite) TestProgramSaleCreatesFlatEarnings() {
	s.enrollLinkInProgram(types.CommissionTypeFlat, decimal.NewFromInt(200))

	_, err := s.service.HandleInvoicePaid(s.GetContext(), s.invoicePaid("in_1", 500))
	s.NoError(err)

	records := s.GetStores().EarningsRepo.(*testutil.InMemoryEarningsStore).All(s.GetContext())
	s.Len(records, 1)
	s.True(records[0].Earnings.Equal(decimal.NewFromInt(200)))
}

func (s *BillingServiceSuite) TestProgramLinkWithoutEnrollmentFails() {
	s.testData.link.ProgramID = "prog_1"
	s.NoError(s.GetStores().LinkRepo.Update(s.GetContext(), s.testData.link))

	_, err := s.service.HandleInvoicePaid(s.GetContext(), s.invoicePaid("in_1", 500))
	s.Error(err)
}

func (s *BillingServiceSuite) TestNotifierFailureDoesNotFailHandler() {
	s.enrollLinkInProgram(types.CommissionTypeFlat, decimal.NewFromInt(200))
	s.partnerNotifier.Err = fmt.Errorf("smtp unavailable")

	msg, err := s.service.HandleInvoicePaid(s.GetContext(), s.invoicePaid("in_1", 500))
	s.NoError(err)
	s.Equal("Sale recorded for customer ID cus_1 and invoice ID in_1", msg)

	// The runner saw the failure; the handler did not
	s.Error(s.runner.Errors["partner_sale_notification"])
}
