package types

import (
	"encoding/json"
	"time"
)

// WebhookEvent represents an outbound webhook event to be delivered to a workspace
type WebhookEvent struct {
	ID            string          `json:"id"`
	EventName     string          `json:"event_name"`
	TenantID      string          `json:"tenant_id"`
	EnvironmentID string          `json:"environment_id"`
	WorkspaceID   string          `json:"workspace_id"`
	UserID        string          `json:"user_id"`
	Timestamp     time.Time       `json:"timestamp"`
	Payload       json.RawMessage `json:"payload"`
}

// Workspace webhook trigger names
const (
	WebhookEventSaleCreated       = "sale.created"
	WebhookEventLeadCreated       = "lead.created"
	WebhookEventLinkClicked       = "link.clicked"
	WebhookEventLinkCreated       = "link.created"
	WebhookEventLinkUpdated       = "link.updated"
	WebhookEventLinkDeleted       = "link.deleted"
	WebhookEventCommissionCreated = "commission.created"
)

// ProviderEventType identifies an inbound payment-provider webhook event type
type ProviderEventType string

const (
	ProviderEventTypeInvoicePaid          ProviderEventType = "invoice.paid"
	ProviderEventTypeInvoicePaymentFailed ProviderEventType = "invoice.payment_failed"
	ProviderEventTypeCustomerCreated      ProviderEventType = "customer.created"
	ProviderEventTypeCustomerUpdated      ProviderEventType = "customer.updated"
	ProviderEventTypeChargeRefunded       ProviderEventType = "charge.refunded"
)

// PaymentProcessor identifies the upstream billing provider of a sale
type PaymentProcessor string

const (
	PaymentProcessorStripe PaymentProcessor = "stripe"
)

// PubSubType is the type of pubsub backing the webhook pipeline
type PubSubType string

const (
	MemoryPubSub PubSubType = "memory"
)
