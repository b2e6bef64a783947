package clickhouse

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/partnerflow/partnerflow/internal/clickhouse"
	"github.com/partnerflow/partnerflow/internal/domain/events"
	ierr "github.com/partnerflow/partnerflow/internal/errors"
)

// ConversionEventStore persists lead and sale events in the ClickHouse
// events table. The table is append-only; counters live in Postgres.
type ConversionEventStore struct {
	client *clickhouse.Client
}

func NewConversionEventStore(client *clickhouse.Client) *ConversionEventStore {
	return &ConversionEventStore{client: client}
}

func (s *ConversionEventStore) InsertLead(ctx context.Context, event *events.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO conversion_events (
			event_id, tenant_id, environment_id, event_type, event_name,
			customer_id, external_customer_id, workspace_id,
			link_id, click_id, country, device, browser, os, referer,
			timestamp
		) VALUES (
			?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
		)
	`

	err := s.client.GetConn().Exec(ctx, query,
		event.ID,
		event.TenantID,
		event.EnvironmentID,
		string(event.EventType),
		event.EventName,
		event.CustomerID,
		event.ExternalCustomerID,
		event.WorkspaceID,
		event.LinkID,
		event.ClickID,
		event.Country,
		event.Device,
		event.Browser,
		event.OS,
		event.Referer,
		event.Timestamp,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to insert lead event").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (s *ConversionEventStore) InsertSale(ctx context.Context, event *events.SaleEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO conversion_events (
			event_id, tenant_id, environment_id, event_type, event_name,
			customer_id, external_customer_id, workspace_id,
			link_id, click_id, country, device, browser, os, referer,
			timestamp,
			payment_processor, invoice_id, amount, currency, metadata
		) VALUES (
			?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
		)
	`

	err := s.client.GetConn().Exec(ctx, query,
		event.ID,
		event.TenantID,
		event.EnvironmentID,
		string(event.EventType),
		event.EventName,
		event.CustomerID,
		event.ExternalCustomerID,
		event.WorkspaceID,
		event.LinkID,
		event.ClickID,
		event.Country,
		event.Device,
		event.Browser,
		event.OS,
		event.Referer,
		event.Timestamp,
		string(event.PaymentProcessor),
		event.InvoiceID,
		event.Amount,
		event.Currency,
		event.Metadata,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to insert sale event").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

// GetLatestLeadEvent returns the most recent lead event for a customer.
// Event ids are ULIDs, so the id tiebreak keeps the ordering stable for
// events sharing a timestamp.
func (s *ConversionEventStore) GetLatestLeadEvent(ctx context.Context, customerID string) (*events.Event, error) {
	query := `
		SELECT
			event_id, tenant_id, environment_id, event_type, event_name,
			customer_id, external_customer_id, workspace_id,
			link_id, click_id, country, device, browser, os, referer,
			timestamp, ingested_at
		FROM conversion_events
		WHERE customer_id = ? AND event_type = ?
		ORDER BY timestamp DESC, event_id DESC
		LIMIT 1
	`

	var event events.Event
	var eventType string
	row := s.client.GetConn().QueryRow(ctx, query, customerID, string(events.EventTypeLead))
	err := row.Scan(
		&event.ID,
		&event.TenantID,
		&event.EnvironmentID,
		&eventType,
		&event.EventName,
		&event.CustomerID,
		&event.ExternalCustomerID,
		&event.WorkspaceID,
		&event.LinkID,
		&event.ClickID,
		&event.Country,
		&event.Device,
		&event.Browser,
		&event.OS,
		&event.Referer,
		&event.Timestamp,
		&event.IngestedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError(fmt.Sprintf("no lead event for customer %s", customerID)).
				WithHint("Customer has no recorded lead event").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to query lead event").
			Mark(ierr.ErrDatabase)
	}

	event.EventType = events.ConversionEventType(eventType)
	return &event, nil
}
