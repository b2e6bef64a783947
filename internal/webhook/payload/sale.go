package payload

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/partnerflow/partnerflow/internal/domain/link"
	ierr "github.com/partnerflow/partnerflow/internal/errors"
	webhookDto "github.com/partnerflow/partnerflow/internal/webhook/dto"
)

type SalePayloadBuilder struct {
	services *Services
}

func NewSalePayloadBuilder(services *Services) PayloadBuilder {
	return &SalePayloadBuilder{
		services: services,
	}
}

// BuildPayload builds the webhook payload for sale events. The link and
// customer are loaded at build time so counters reflect the recorded sale.
func (b *SalePayloadBuilder) BuildPayload(ctx context.Context, eventType string, data json.RawMessage) (json.RawMessage, error) {
	var parsedPayload webhookDto.InternalSaleEvent

	err := json.Unmarshal(data, &parsedPayload)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Unable to unmarshal sale event payload").
			Mark(ierr.ErrInvalidOperation)
	}

	if parsedPayload.SaleEvent == nil || parsedPayload.CustomerID == "" {
		return nil, ierr.NewError("invalid data type for sale event").
			WithHint("Please provide a valid sale event and customer ID").
			WithReportableDetails(map[string]any{
				"expected": "sale event with customer ID",
				"got":      fmt.Sprintf("%T", data),
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	cust, err := b.services.CustomerRepo.Get(ctx, parsedPayload.CustomerID)
	if err != nil {
		return nil, err
	}

	var l *link.Link
	if parsedPayload.LinkID != "" {
		l, err = b.services.LinkRepo.Get(ctx, parsedPayload.LinkID)
		if err != nil {
			return nil, err
		}
	}

	payload := webhookDto.NewSaleWebhookPayload(eventType, parsedPayload.SaleEvent, l, cust)
	return json.Marshal(payload)
}
