package webhookDto

import (
	"time"

	"github.com/partnerflow/partnerflow/internal/domain/customer"
	"github.com/partnerflow/partnerflow/internal/domain/events"
	"github.com/partnerflow/partnerflow/internal/domain/link"
)

// InternalSaleEvent is the message body published on the internal bus when a
// sale is recorded. Sale events are append-only, so the event itself travels
// inline; link and customer are looked up fresh at delivery time.
type InternalSaleEvent struct {
	SaleEvent  *events.SaleEvent `json:"sale_event"`
	CustomerID string            `json:"customer_id"`
	LinkID     string            `json:"link_id,omitempty"`
	TenantID   string            `json:"tenant_id"`
}

// SaleWebhookPayload is the outbound payload delivered to workspace endpoints
type SaleWebhookPayload struct {
	EventType string            `json:"event_type"`
	Sale      *SaleResponse     `json:"sale"`
	Link      *LinkResponse     `json:"link,omitempty"`
	Customer  *CustomerResponse `json:"customer"`
}

// SaleResponse is the outward view of a recorded sale event
type SaleResponse struct {
	ID               string    `json:"id"`
	EventName        string    `json:"event_name"`
	PaymentProcessor string    `json:"payment_processor"`
	InvoiceID        string    `json:"invoice_id"`
	Amount           int64     `json:"amount"`
	Currency         string    `json:"currency"`
	Timestamp        time.Time `json:"timestamp"`
}

// LinkResponse is the outward view of a referral link, with counters as of
// payload build time
type LinkResponse struct {
	ID         string `json:"id"`
	ShortLink  string `json:"short_link"`
	URL        string `json:"url"`
	Sales      int64  `json:"sales"`
	SaleAmount int64  `json:"sale_amount"`
	ProgramID  string `json:"program_id,omitempty"`
}

// CustomerResponse is the outward view of the converting customer
type CustomerResponse struct {
	ID         string    `json:"id"`
	ExternalID string    `json:"external_id"`
	Name       string    `json:"name,omitempty"`
	Email      string    `json:"email,omitempty"`
	ClickedAt  time.Time `json:"clicked_at"`
}

// NewSaleWebhookPayload assembles the sale webhook payload from the recorded
// event and the freshly loaded link and customer
func NewSaleWebhookPayload(eventType string, sale *events.SaleEvent, l *link.Link, cust *customer.Customer) *SaleWebhookPayload {
	payload := &SaleWebhookPayload{
		EventType: eventType,
		Sale: &SaleResponse{
			ID:               sale.ID,
			EventName:        sale.EventName,
			PaymentProcessor: string(sale.PaymentProcessor),
			InvoiceID:        sale.InvoiceID,
			Amount:           sale.Amount,
			Currency:         sale.Currency,
			Timestamp:        sale.Timestamp,
		},
		Customer: &CustomerResponse{
			ID:         cust.ID,
			ExternalID: cust.ExternalID,
			Name:       cust.Name,
			Email:      cust.Email,
			ClickedAt:  cust.AttributionTime(),
		},
	}

	if l != nil {
		payload.Link = &LinkResponse{
			ID:         l.ID,
			ShortLink:  l.ShortLink,
			URL:        l.URL,
			Sales:      l.Sales,
			SaleAmount: l.SaleAmount,
			ProgramID:  l.ProgramID,
		}
	}

	return payload
}
