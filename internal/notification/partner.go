package notification

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/partnerflow/partnerflow/internal/logger"
)

// SaleNotification carries the details of a recorded sale for the partner
// email. Amounts are in minor currency units; Earnings is the commission in
// major units as calculated for the enrollment.
type SaleNotification struct {
	PartnerName  string
	PartnerEmail string
	ProgramName  string
	ShortLink    string
	Amount       int64
	Currency     string
	Earnings     decimal.Decimal
	InvoiceID    string
}

// PartnerNotifier notifies a partner that one of their referrals converted
type PartnerNotifier interface {
	NotifySale(ctx context.Context, n *SaleNotification) error
}

type emailPartnerNotifier struct {
	client *EmailClient
	logger *logger.Logger
}

// NewPartnerNotifier creates a partner notifier backed by email
func NewPartnerNotifier(client *EmailClient, logger *logger.Logger) PartnerNotifier {
	return &emailPartnerNotifier{
		client: client,
		logger: logger,
	}
}

func (n *emailPartnerNotifier) NotifySale(ctx context.Context, sale *SaleNotification) error {
	if !n.client.IsEnabled() {
		n.logger.Debugw("email client disabled, skipping partner notification",
			"partner_email", sale.PartnerEmail,
		)
		return nil
	}

	if sale.PartnerEmail == "" {
		n.logger.Warnw("partner has no email address, skipping notification",
			"program", sale.ProgramName,
		)
		return nil
	}

	currency := strings.ToUpper(sale.Currency)
	saleAmount := decimal.NewFromInt(sale.Amount).Div(decimal.NewFromInt(100))

	subject := fmt.Sprintf("You just made a %s %s sale via %s", saleAmount.StringFixed(2), currency, sale.ProgramName)

	html := fmt.Sprintf(
		`<p>Congratulations %s!</p>
<p>Your link <strong>%s</strong> just drove a <strong>%s %s</strong> sale for %s.</p>
<p>Your commission: <strong>%s %s</strong></p>`,
		sale.PartnerName,
		sale.ShortLink,
		saleAmount.StringFixed(2), currency,
		sale.ProgramName,
		sale.Earnings.StringFixed(2), currency,
	)

	text := fmt.Sprintf(
		"Congratulations %s! Your link %s just drove a %s %s sale for %s. Your commission: %s %s",
		sale.PartnerName,
		sale.ShortLink,
		saleAmount.StringFixed(2), currency,
		sale.ProgramName,
		sale.Earnings.StringFixed(2), currency,
	)

	messageID, err := n.client.SendEmail(ctx, sale.PartnerEmail, subject, html, text)
	if err != nil {
		return err
	}

	n.logger.Infow("partner sale notification sent",
		"partner_email", sale.PartnerEmail,
		"message_id", messageID,
		"invoice_id", sale.InvoiceID,
	)

	return nil
}
