package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/partnerflow/partnerflow/internal/commission"
	"github.com/partnerflow/partnerflow/internal/dedup"
	"github.com/partnerflow/partnerflow/internal/domain/earnings"
	"github.com/partnerflow/partnerflow/internal/domain/events"
	"github.com/partnerflow/partnerflow/internal/domain/link"
	ierr "github.com/partnerflow/partnerflow/internal/errors"
	"github.com/partnerflow/partnerflow/internal/notification"
	"github.com/partnerflow/partnerflow/internal/types"
	"github.com/partnerflow/partnerflow/internal/validator"
	webhookDto "github.com/partnerflow/partnerflow/internal/webhook/dto"
)

const saleEventName = "Invoice paid"

// InvoicePaidEvent is the normalized form of a payment provider's
// "invoice paid" notification
type InvoicePaidEvent struct {
	// ExternalCustomerID is the provider's customer identifier
	ExternalCustomerID string `json:"external_customer_id" validate:"required"`

	// InvoiceID is the provider's invoice identifier
	InvoiceID string `json:"invoice_id" validate:"required"`

	// AmountPaid in minor currency units
	AmountPaid int64 `json:"amount_paid"`

	// Currency is the ISO 4217 currency code
	Currency string `json:"currency"`

	// PaymentProcessor identifies the provider that sent the event
	PaymentProcessor types.PaymentProcessor `json:"payment_processor"`

	// RawInvoice is the provider's invoice payload, preserved verbatim for
	// audit purposes
	RawInvoice json.RawMessage `json:"raw_invoice"`
}

// BillingService handles payment provider billing events
type BillingService interface {
	// HandleInvoicePaid records a sale for a paid invoice. Expected skip
	// conditions return a descriptive status string with a nil error; errors
	// are reserved for unexpected collaborator failures.
	HandleInvoicePaid(ctx context.Context, event *InvoicePaidEvent) (string, error)
}

type billingService struct {
	ServiceParams
}

// NewBillingService creates a new billing service
func NewBillingService(params ServiceParams) BillingService {
	return &billingService{
		ServiceParams: params,
	}
}

func (s *billingService) HandleInvoicePaid(ctx context.Context, event *InvoicePaidEvent) (string, error) {
	if err := validator.ValidateRequest(event); err != nil {
		return "", err
	}

	// Resolve the customer by the provider's id. The provider may deliver
	// events for customers that were never synchronized, so absence is a
	// skip, not an error.
	cust, err := s.CustomerRepo.GetByExternalID(ctx, event.ExternalCustomerID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return fmt.Sprintf("Customer with external ID %s not found, skipping...", event.ExternalCustomerID), nil
		}
		return "", err
	}

	// Claim the invoice idempotency key before anything else. The claim is
	// deliberately taken ahead of the zero-amount guard: a zero-amount skip
	// still consumes the key, so a later non-zero retry of the same invoice
	// within the retention window is treated as already processed.
	claimed, err := s.DedupClaimer.Claim(ctx, dedup.InvoiceKey(event.InvoiceID), s.Config.Billing.DedupTTL)
	if err != nil {
		return "", err
	}
	if !claimed {
		return fmt.Sprintf("Invoice with ID %s already processed, skipping...", event.InvoiceID), nil
	}

	if event.AmountPaid == 0 {
		return fmt.Sprintf("Invoice with ID %s has an amount of 0, skipping...", event.InvoiceID), nil
	}

	// Resolve attribution through the customer's most recent lead event
	leadEvent, err := s.EventRepo.GetLatestLeadEvent(ctx, cust.ID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return fmt.Sprintf("No lead event found for customer with ID %s, skipping...", cust.ID), nil
		}
		return "", err
	}

	saleEvent := events.NewSaleEventFromLead(
		leadEvent,
		saleEventName,
		event.PaymentProcessor,
		event.InvoiceID,
		event.AmountPaid,
		event.Currency,
		string(event.RawInvoice),
	)

	resolvedLink, err := s.LinkRepo.Get(ctx, leadEvent.LinkID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return fmt.Sprintf("Link with ID %s not found, skipping...", leadEvent.LinkID), nil
		}
		return "", err
	}

	// Three independent durable writes, issued concurrently and jointly
	// awaited. No cross-write transaction: a partial failure leaves the
	// stores inconsistent and is surfaced as an error, not reconciled.
	writes := pool.New().WithContext(ctx).WithCancelOnError()
	writes.Go(func(ctx context.Context) error {
		return s.EventRepo.InsertSale(ctx, saleEvent)
	})
	writes.Go(func(ctx context.Context) error {
		return s.LinkRepo.IncrementSales(ctx, resolvedLink.ID, event.AmountPaid)
	})
	writes.Go(func(ctx context.Context) error {
		return s.WorkspaceRepo.IncrementUsage(ctx, cust.WorkspaceID, event.AmountPaid)
	})
	if err := writes.Wait(); err != nil {
		return "", err
	}

	if resolvedLink.HasProgram() {
		if err := s.recordCommission(ctx, resolvedLink, saleEvent, event); err != nil {
			return "", err
		}
	}

	s.publishSaleWebhook(ctx, cust.ID, cust.WorkspaceID, resolvedLink.ID, saleEvent)

	return fmt.Sprintf("Sale recorded for customer ID %s and invoice ID %s", cust.ID, event.InvoiceID), nil
}

// recordCommission creates the earnings record for a program link's sale and
// schedules the partner notification. A program link without an enrollment is
// a data-integrity anomaly and fails the whole invocation.
func (s *billingService) recordCommission(ctx context.Context, resolvedLink *link.Link, saleEvent *events.SaleEvent, event *InvoicePaidEvent) error {
	enrollment, err := s.ProgramRepo.GetEnrollmentByLinkID(ctx, resolvedLink.ID)
	if err != nil {
		return err
	}

	prog, err := s.ProgramRepo.GetProgram(ctx, enrollment.ProgramID)
	if err != nil {
		return err
	}

	earned, err := commission.Calculate(enrollment, commission.Sale{
		Amount:    event.AmountPaid,
		Currency:  event.Currency,
		InvoiceID: event.InvoiceID,
	})
	if err != nil {
		return err
	}

	record := &earnings.Earnings{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_EARNINGS),
		ProgramID:    enrollment.ProgramID,
		PartnerID:    enrollment.PartnerID,
		LinkID:       resolvedLink.ID,
		SaleEventID:  saleEvent.ID,
		InvoiceID:    event.InvoiceID,
		Amount:       event.AmountPaid,
		Earnings:     earned,
		Currency:     event.Currency,
		PayoutStatus: types.EarningsStatusPending,
	}
	record.BaseModel = types.GetDefaultBaseModel(ctx)

	if err := s.EarningsRepo.Create(ctx, record); err != nil {
		return err
	}

	// Detached from the response path. Notification failures are logged by
	// the runner and never surfaced to the caller.
	sale := &notification.SaleNotification{
		PartnerName:  enrollment.PartnerName,
		PartnerEmail: enrollment.PartnerEmail,
		ProgramName:  prog.Name,
		ShortLink:    resolvedLink.ShortLink,
		Amount:       event.AmountPaid,
		Currency:     event.Currency,
		Earnings:     earned,
		InvoiceID:    event.InvoiceID,
	}
	s.TaskRunner.Detach("partner_sale_notification", func(ctx context.Context) error {
		return s.PartnerNotifier.NotifySale(ctx, sale)
	})

	return nil
}

// publishSaleWebhook schedules the workspace-facing sale.created webhook.
// Publish failures never fail the handler.
func (s *billingService) publishSaleWebhook(ctx context.Context, customerID, workspaceID, linkID string, saleEvent *events.SaleEvent) {
	tenantID := types.GetTenantID(ctx)
	environmentID := types.GetEnvironmentID(ctx)
	userID := types.GetUserID(ctx)

	s.TaskRunner.Detach("sale_created_webhook", func(ctx context.Context) error {
		internalEvent := &webhookDto.InternalSaleEvent{
			SaleEvent:  saleEvent,
			CustomerID: customerID,
			LinkID:     linkID,
			TenantID:   tenantID,
		}

		payload, err := json.Marshal(internalEvent)
		if err != nil {
			return err
		}

		return s.WebhookPublisher.PublishWebhook(ctx, &types.WebhookEvent{
			ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_WEBHOOK_EVENT),
			EventName:     types.WebhookEventSaleCreated,
			TenantID:      tenantID,
			EnvironmentID: environmentID,
			WorkspaceID:   workspaceID,
			UserID:        userID,
			Timestamp:     time.Now().UTC(),
			Payload:       payload,
		})
	})
}
