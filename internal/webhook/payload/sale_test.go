package payload

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/partnerflow/partnerflow/internal/domain/customer"
	"github.com/partnerflow/partnerflow/internal/domain/events"
	"github.com/partnerflow/partnerflow/internal/domain/link"
	"github.com/partnerflow/partnerflow/internal/testutil"
	"github.com/partnerflow/partnerflow/internal/types"
	webhookDto "github.com/partnerflow/partnerflow/internal/webhook/dto"
)

type SalePayloadSuite struct {
	testutil.BaseServiceTestSuite
	factory PayloadBuilderFactory
}

func TestSalePayload(t *testing.T) {
	suite.Run(t, new(SalePayloadSuite))
}

func (s *SalePayloadSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.factory = NewPayloadBuilderFactory(NewServices(
		s.GetStores().CustomerRepo,
		s.GetStores().LinkRepo,
	))
}

func (s *SalePayloadSuite) TestFactoryRejectsUnknownEventType() {
	_, err := s.factory.GetBuilder("unknown.event")
	s.Error(err)
}

func (s *SalePayloadSuite) saleEvent() *events.SaleEvent {
	return &events.SaleEvent{
		Event: events.Event{
			ID:          "evt_1",
			TenantID:    types.GetTenantID(s.GetContext()),
			EventType:   events.EventTypeSale,
			EventName:   "Invoice paid",
			CustomerID:  "cus_1",
			WorkspaceID: "ws_1",
			LinkID:      "link_1",
			Timestamp:   s.GetNow(),
		},
		PaymentProcessor: types.PaymentProcessorStripe,
		InvoiceID:        "in_1",
		Amount:           500,
		Currency:         "usd",
	}
}

func (s *SalePayloadSuite) TestBuildSalePayload() {
	clickedAt := s.GetNow().Add(-24 * time.Hour)
	s.NoError(s.GetStores().CustomerRepo.Create(s.GetContext(), &customer.Customer{
		ID:          "cus_1",
		ExternalID:  "stripe_cus_1",
		WorkspaceID: "ws_1",
		Name:        "Jordan",
		ClickedAt:   &clickedAt,
		BaseModel:   types.GetDefaultBaseModel(s.GetContext()),
	}))
	s.NoError(s.GetStores().LinkRepo.Create(s.GetContext(), &link.Link{
		ID:          "link_1",
		WorkspaceID: "ws_1",
		Key:         "xYZ12A8Q",
		URL:         "https://acme.com",
		ShortLink:   "https://pflow.to/xYZ12A8Q",
		Sales:       4,
		SaleAmount:  2000,
		BaseModel:   types.GetDefaultBaseModel(s.GetContext()),
	}))

	builder, err := s.factory.GetBuilder(types.WebhookEventSaleCreated)
	s.NoError(err)

	data, err := json.Marshal(&webhookDto.InternalSaleEvent{
		SaleEvent:  s.saleEvent(),
		CustomerID: "cus_1",
		LinkID:     "link_1",
		TenantID:   types.GetTenantID(s.GetContext()),
	})
	s.NoError(err)

	raw, err := builder.BuildPayload(s.GetContext(), types.WebhookEventSaleCreated, data)
	s.NoError(err)

	var payload webhookDto.SaleWebhookPayload
	s.NoError(json.Unmarshal(raw, &payload))

	s.Equal(types.WebhookEventSaleCreated, payload.EventType)
	s.Equal("evt_1", payload.Sale.ID)
	s.Equal("in_1", payload.Sale.InvoiceID)
	s.Equal(int64(500), payload.Sale.Amount)

	// Link counters reflect the state at build time
	s.Equal(int64(4), payload.Link.Sales)
	s.Equal(int64(2000), payload.Link.SaleAmount)

	s.Equal("cus_1", payload.Customer.ID)
	s.True(clickedAt.Equal(payload.Customer.ClickedAt))
}

func (s *SalePayloadSuite) TestBuildSalePayloadFallsBackToCreationTime() {
	created := s.GetNow().Add(-10 * 24 * time.Hour)
	base := types.GetDefaultBaseModel(s.GetContext())
	base.CreatedAt = created
	s.NoError(s.GetStores().CustomerRepo.Create(s.GetContext(), &customer.Customer{
		ID:          "cus_1",
		ExternalID:  "stripe_cus_1",
		WorkspaceID: "ws_1",
		BaseModel:   base,
	}))

	builder, err := s.factory.GetBuilder(types.WebhookEventSaleCreated)
	s.NoError(err)

	event := s.saleEvent()
	event.LinkID = ""
	data, err := json.Marshal(&webhookDto.InternalSaleEvent{
		SaleEvent:  event,
		CustomerID: "cus_1",
		TenantID:   types.GetTenantID(s.GetContext()),
	})
	s.NoError(err)

	raw, err := builder.BuildPayload(s.GetContext(), types.WebhookEventSaleCreated, data)
	s.NoError(err)

	var payload webhookDto.SaleWebhookPayload
	s.NoError(json.Unmarshal(raw, &payload))

	s.Nil(payload.Link)
	s.True(created.Equal(payload.Customer.ClickedAt))
}

func (s *SalePayloadSuite) TestBuildSalePayloadRejectsMissingCustomer() {
	builder, err := s.factory.GetBuilder(types.WebhookEventSaleCreated)
	s.NoError(err)

	data, err := json.Marshal(&webhookDto.InternalSaleEvent{
		SaleEvent: s.saleEvent(),
	})
	s.NoError(err)

	_, err = builder.BuildPayload(s.GetContext(), types.WebhookEventSaleCreated, data)
	s.Error(err)
}
