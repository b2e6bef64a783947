package testutil

import (
	"context"
	"sync"

	"github.com/partnerflow/partnerflow/internal/notification"
)

// InMemoryPartnerNotifier implements notification.PartnerNotifier by
// recording notifications for assertions
type InMemoryPartnerNotifier struct {
	mu            sync.Mutex
	notifications []*notification.SaleNotification

	// Err, when set, is returned by NotifySale to exercise failure paths
	Err error
}

// NewInMemoryPartnerNotifier creates a new in-memory partner notifier
func NewInMemoryPartnerNotifier() *InMemoryPartnerNotifier {
	return &InMemoryPartnerNotifier{}
}

func (n *InMemoryPartnerNotifier) NotifySale(ctx context.Context, sale *notification.SaleNotification) error {
	if n.Err != nil {
		return n.Err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notifications = append(n.notifications, sale)
	return nil
}

// Notifications returns all recorded notifications
func (n *InMemoryPartnerNotifier) Notifications() []*notification.SaleNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	result := make([]*notification.SaleNotification, len(n.notifications))
	copy(result, n.notifications)
	return result
}
