package booking

import (
	"context"
	"strings"

	"stayhive/models"

	"go.uber.org/zap"
)

// ApplyCoupon resolves a coupon code against the offers API and folds the
// discount into pricing. Local checks fail fast without a network call. Only
// one resolution may be in flight per session, and a resolution that comes
// back after pricing has moved on is discarded rather than applied.
func (s *DefaultBookingSessionService) ApplyCoupon(ctx context.Context, sessionID, code string) (*models.BookingDraft, error) {
	draft, err := s.Store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	code = strings.TrimSpace(code)
	if code == "" {
		return nil, NewValidationError("coupon_code", "coupon code is required")
	}
	if draft.Pricing == nil {
		return nil, NewValidationError("coupon_code", "select your dates before applying a coupon")
	}
	if draft.CouponPending {
		return nil, &BusinessRuleError{Message: "a coupon is already being validated"}
	}

	issuedVersion := draft.PriceVersion
	total := draft.Pricing.TotalAmount

	draft.CouponPending = true
	if err := s.save(ctx, draft); err != nil {
		return nil, err
	}

	result, valErr := s.Offers.Validate(ctx, code, total)

	// Reload: the draft may have changed while the call was in flight.
	draft, err = s.Store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	draft.CouponPending = false

	if valErr != nil {
		if err := s.save(ctx, draft); err != nil {
			return nil, err
		}
		return nil, valErr
	}

	if draft.PriceVersion != issuedVersion {
		s.Logger.Info("discarding stale coupon resolution",
			zap.String("sessionID", sessionID),
			zap.String("code", code),
			zap.Int64("issuedVersion", issuedVersion),
			zap.Int64("currentVersion", draft.PriceVersion))
		if err := s.save(ctx, draft); err != nil {
			return nil, err
		}
		return draft, nil
	}

	draft.Coupon = &models.Coupon{
		Code:           code,
		DiscountAmount: result.DiscountAmount,
		Message:        result.Message,
	}
	s.recompute(draft)

	if err := s.save(ctx, draft); err != nil {
		return nil, err
	}
	s.Logger.Info("coupon applied",
		zap.String("sessionID", sessionID),
		zap.String("code", code),
		zap.Float64("discount", result.DiscountAmount))
	return draft, nil
}
