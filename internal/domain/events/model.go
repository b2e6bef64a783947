package events

import (
	"time"

	"github.com/partnerflow/partnerflow/internal/types"
	"github.com/partnerflow/partnerflow/internal/validator"
)

// ConversionEventType identifies the kind of conversion an event records
type ConversionEventType string

const (
	EventTypeClick ConversionEventType = "click"
	EventTypeLead  ConversionEventType = "lead"
	EventTypeSale  ConversionEventType = "sale"
)

// Event is the base conversion event structure shared by lead and sale events.
// Lead events carry the attribution of a customer to the referral link that
// originated them; sale events copy those fields at recording time.
type Event struct {
	// Unique identifier for the event
	ID string `json:"event_id" ch:"event_id" validate:"required"`

	// Tenant identifier
	TenantID string `json:"tenant_id" ch:"tenant_id" validate:"required"`

	// Environment identifier
	EnvironmentID string `json:"environment_id" ch:"environment_id"`

	// EventType discriminates lead from sale rows
	EventType ConversionEventType `json:"event_type" ch:"event_type" validate:"required"`

	// EventName is a human-readable label, e.g. "Sign up" or "Invoice paid"
	EventName string `json:"event_name" ch:"event_name" validate:"required"`

	// Subject identifiers
	CustomerID         string `json:"customer_id" ch:"customer_id" validate:"required"`
	ExternalCustomerID string `json:"external_customer_id" ch:"external_customer_id"`
	WorkspaceID        string `json:"workspace_id" ch:"workspace_id"`

	// Attribution fields
	LinkID  string `json:"link_id" ch:"link_id"`
	ClickID string `json:"click_id" ch:"click_id"`
	Country string `json:"country" ch:"country"`
	Device  string `json:"device" ch:"device"`
	Browser string `json:"browser" ch:"browser"`
	OS      string `json:"os" ch:"os"`
	Referer string `json:"referer" ch:"referer"`

	// Timestamps
	Timestamp time.Time `json:"timestamp" ch:"timestamp,timezone('UTC')" validate:"required"`

	// IngestedAt is set at the ClickHouse server level and is not required
	// to be set by the caller
	IngestedAt time.Time `json:"ingested_at" ch:"ingested_at,timezone('UTC')"`
}

// SaleEvent is the durable record of a revenue-generating conversion
type SaleEvent struct {
	Event

	// PaymentProcessor identifies the billing provider that reported the sale
	PaymentProcessor types.PaymentProcessor `json:"payment_processor" ch:"payment_processor"`

	// InvoiceID is the provider's invoice identifier
	InvoiceID string `json:"invoice_id" ch:"invoice_id" validate:"required"`

	// Amount paid, in minor currency units
	Amount int64 `json:"amount" ch:"amount"`

	// Currency is the ISO 4217 currency code
	Currency string `json:"currency" ch:"currency"`

	// Metadata holds the serialized raw invoice payload for audit/debugging.
	// It is preserved verbatim and never parsed by this service.
	Metadata string `json:"metadata" ch:"metadata"`
}

// NewSaleEventFromLead builds a sale event by copying the lead event's
// attribution fields and stamping sale identity on top
func NewSaleEventFromLead(
	lead *Event,
	eventName string,
	processor types.PaymentProcessor,
	invoiceID string,
	amount int64,
	currency string,
	metadata string,
) *SaleEvent {
	return &SaleEvent{
		Event: Event{
			ID:                 types.GenerateUUIDWithPrefix(types.UUID_PREFIX_EVENT),
			TenantID:           lead.TenantID,
			EnvironmentID:      lead.EnvironmentID,
			EventType:          EventTypeSale,
			EventName:          eventName,
			CustomerID:         lead.CustomerID,
			ExternalCustomerID: lead.ExternalCustomerID,
			WorkspaceID:        lead.WorkspaceID,
			LinkID:             lead.LinkID,
			ClickID:            lead.ClickID,
			Country:            lead.Country,
			Device:             lead.Device,
			Browser:            lead.Browser,
			OS:                 lead.OS,
			Referer:            lead.Referer,
			Timestamp:          time.Now().UTC(),
		},
		PaymentProcessor: processor,
		InvoiceID:        invoiceID,
		Amount:           amount,
		Currency:         currency,
		Metadata:         metadata,
	}
}

// Validate validates the event
func (e *Event) Validate() error {
	return validator.ValidateRequest(e)
}

// Validate validates the sale event
func (e *SaleEvent) Validate() error {
	return validator.ValidateRequest(e)
}
