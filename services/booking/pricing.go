package booking

import (
	"context"

	"stayhive/models"
	"stayhive/utils"

	"go.uber.org/zap"
)

// DefaultTaxRate is the GST rate applied to the room subtotal.
const DefaultTaxRate = 0.18

// ComputePricing derives a snapshot from a completed range and a nightly
// rate. It returns nil when the inputs cannot produce a meaningful total:
// incomplete range, unknown rate, or a non-positive night count.
func ComputePricing(rng models.DateRange, rate, taxRate, discount float64) *models.PricingSnapshot {
	if !rng.Complete() || rate <= 0 {
		return nil
	}
	nights := rng.Nights()
	if nights < 1 {
		return nil
	}

	base := utils.Round2(rate * float64(nights))
	tax := utils.Round2(base * taxRate)
	total := utils.Round2(base + tax)
	discount = utils.Round2(discount)
	final := utils.Round2(total - discount)
	if final < 0 {
		final = 0
	}

	return &models.PricingSnapshot{
		Nights:         nights,
		BaseAmount:     base,
		TaxAmount:      tax,
		TotalAmount:    total,
		DiscountAmount: discount,
		FinalAmount:    final,
	}
}

// recompute rebuilds the draft's pricing from its current range, rate and
// coupon. Every call advances PriceVersion, which is what invalidates
// coupon resolutions issued against older pricing.
func (s *DefaultBookingSessionService) recompute(draft *models.BookingDraft) {
	draft.PriceVersion++

	var discount float64
	if draft.Coupon != nil {
		discount = draft.Coupon.DiscountAmount
	}

	snap := ComputePricing(draft.Range, draft.Room.Price, s.TaxRate, discount)
	if snap == nil {
		if draft.Range.Complete() {
			s.Logger.Warn("pricing recompute skipped",
				zap.String("sessionID", draft.SessionID),
				zap.Float64("rate", draft.Room.Price),
				zap.Int("nights", draft.Range.Nights()))
		}
		draft.Pricing = nil
		return
	}

	draft.Pricing = snap
	s.Notifier.publishPricingUpdated(PricingUpdated{Draft: draft, Snapshot: *snap})
}

// invalidatePricing discards pricing and coupon when the range leaves the
// complete state. The version still advances so any in-flight coupon
// resolution lands stale.
func (s *DefaultBookingSessionService) invalidatePricing(draft *models.BookingDraft) {
	draft.PriceVersion++
	draft.Pricing = nil
	draft.Coupon = nil
}

// SetGuestCounts updates the party size. Counts do not feed the rate, but
// the recompute runs anyway so pricing always reflects the latest edit.
func (s *DefaultBookingSessionService) SetGuestCounts(ctx context.Context, sessionID string, adults, children int) (*models.BookingDraft, error) {
	draft, err := s.Store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if adults < 1 {
		return nil, NewValidationError("adults", "at least one adult is required")
	}
	if children < 0 {
		return nil, NewValidationError("children", "children cannot be negative")
	}
	if draft.Room.MaxAdults > 0 && adults > draft.Room.MaxAdults {
		return nil, NewValidationError("adults", "party exceeds the room's adult capacity")
	}
	if draft.Room.MaxChildren > 0 && children > draft.Room.MaxChildren {
		return nil, NewValidationError("children", "party exceeds the room's child capacity")
	}

	draft.Adults = adults
	draft.Children = children
	if draft.Range.Complete() {
		s.recompute(draft)
	}

	if err := s.save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}
