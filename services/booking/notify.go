package booking

import (
	"sync"

	"stayhive/models"
)

// RangeSelected is published every time a selection completes. The draft
// travels with the event so subscribers mutate it in the same pass, before
// the session is saved.
type RangeSelected struct {
	Draft *models.BookingDraft
	Range models.DateRange
}

// PricingUpdated is published after every successful recompute.
type PricingUpdated struct {
	Draft    *models.BookingDraft
	Snapshot models.PricingSnapshot
}

// PaymentCompleted is published when a payment callback succeeds and the
// draft has been queued for submission.
type PaymentCompleted struct {
	Draft  *models.BookingDraft
	Result models.PaymentResult
}

// Notifier fans typed notifications out to subscribers. Components never
// reach into each other's state; they publish on completion and react to
// what they subscribed to.
type Notifier struct {
	mu          sync.RWMutex
	rangeSubs   []func(RangeSelected)
	pricingSubs []func(PricingUpdated)
	paymentSubs []func(PaymentCompleted)
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

// OnRangeSelected registers a subscriber for completed selections.
func (n *Notifier) OnRangeSelected(fn func(RangeSelected)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.rangeSubs = append(n.rangeSubs, fn)
}

// OnPricingUpdated registers a subscriber for pricing snapshots.
func (n *Notifier) OnPricingUpdated(fn func(PricingUpdated)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pricingSubs = append(n.pricingSubs, fn)
}

// OnPaymentCompleted registers a subscriber for terminal payment results.
func (n *Notifier) OnPaymentCompleted(fn func(PaymentCompleted)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paymentSubs = append(n.paymentSubs, fn)
}

func (n *Notifier) publishRangeSelected(ev RangeSelected) {
	n.mu.RLock()
	subs := n.rangeSubs
	n.mu.RUnlock()
	for _, fn := range subs {
		fn(ev)
	}
}

func (n *Notifier) publishPricingUpdated(ev PricingUpdated) {
	n.mu.RLock()
	subs := n.pricingSubs
	n.mu.RUnlock()
	for _, fn := range subs {
		fn(ev)
	}
}

func (n *Notifier) publishPaymentCompleted(ev PaymentCompleted) {
	n.mu.RLock()
	subs := n.paymentSubs
	n.mu.RUnlock()
	for _, fn := range subs {
		fn(ev)
	}
}
