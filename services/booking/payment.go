package booking

import (
	"context"
	"fmt"

	"stayhive/models"
	"stayhive/utils"

	"go.uber.org/zap"
)

// InitiatePayment opens an order with the gateway for the draft's final
// amount and returns the handoff payload for the client SDK. The draft must
// be at the payment step with pricing in place.
func (s *DefaultBookingSessionService) InitiatePayment(ctx context.Context, sessionID string) (*models.PaymentHandoff, error) {
	draft, err := s.Store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if draft.Step != models.StepPayment {
		return nil, NewValidationError("step", "complete the previous steps before payment")
	}
	if draft.Pricing == nil {
		return nil, NewValidationError("dates", "pricing is not ready, reselect your dates")
	}

	amount := utils.MinorUnits(draft.Pricing.FinalAmount)
	description := fmt.Sprintf("%s, %d night(s)", draft.Room.Name, draft.Pricing.Nights)

	orderID, err := s.Gateway.CreateOrder(ctx, amount, s.Currency, description, map[string]string{
		"session_id": draft.SessionID,
		"room_id":    fmt.Sprintf("%d", draft.RoomID),
	})
	if err != nil {
		s.Logger.Error("payment order creation failed",
			zap.String("sessionID", sessionID), zap.Error(err))
		return nil, &PaymentError{Message: "payment gateway error, please try again"}
	}

	draft.PaymentOrderID = orderID
	if err := s.save(ctx, draft); err != nil {
		return nil, err
	}

	s.Logger.Info("payment order created",
		zap.String("sessionID", sessionID),
		zap.String("orderID", orderID),
		zap.Int64("amount", amount))

	return &models.PaymentHandoff{
		OrderID:     orderID,
		Amount:      amount,
		Currency:    s.Currency,
		Description: description,
		PayeeName:   draft.Guest.Name,
		PayeeEmail:  draft.Guest.Email,
		PayeePhone:  draft.Guest.Phone,
	}, nil
}

// CompletePayment handles the gateway callback. On verified success the
// confirmed booking is queued for delivery to the hotel system and the
// session is discarded. On failure the draft stays at the payment step so
// the guest can retry.
func (s *DefaultBookingSessionService) CompletePayment(ctx context.Context, sessionID string, result models.PaymentResult) (*models.BookingDraft, error) {
	draft, err := s.Store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if draft.Step != models.StepPayment || draft.PaymentOrderID == "" {
		return nil, &PaymentError{Message: "no payment attempt in progress"}
	}

	if !result.Success {
		msg := result.Message
		if msg == "" {
			msg = "payment was not completed"
		}
		s.Logger.Warn("payment failed",
			zap.String("sessionID", sessionID),
			zap.String("orderID", draft.PaymentOrderID),
			zap.String("reason", msg))
		return nil, &PaymentError{Message: msg}
	}

	ok, err := s.Gateway.VerifyResult(ctx, draft.PaymentOrderID, result.Reference)
	if err != nil {
		s.Logger.Error("payment verification error",
			zap.String("sessionID", sessionID), zap.Error(err))
		return nil, &PaymentError{Message: "payment verification error, please contact support"}
	}
	if !ok {
		return nil, &PaymentError{Message: "payment verification failed"}
	}

	sub := buildSubmission(draft, result.Reference)
	if err := s.Queue.EnqueueSubmission(ctx, sub); err != nil {
		// Keep the draft so the callback can be replayed.
		s.Logger.Error("failed to queue booking submission",
			zap.String("sessionID", sessionID), zap.Error(err))
		return nil, &NetworkError{Op: "queue booking submission", Err: err}
	}

	s.Notifier.publishPaymentCompleted(PaymentCompleted{Draft: draft, Result: result})

	if err := s.Store.Delete(ctx, sessionID); err != nil {
		s.Logger.Warn("failed to discard completed session",
			zap.String("sessionID", sessionID), zap.Error(err))
	}

	s.Logger.Info("booking confirmed",
		zap.String("sessionID", sessionID),
		zap.String("paymentRef", result.Reference))
	return draft, nil
}

func buildSubmission(draft *models.BookingDraft, paymentRef string) models.BookingSubmission {
	sub := models.BookingSubmission{
		SessionID:   draft.SessionID,
		RoomID:      draft.RoomID,
		Adults:      draft.Adults,
		Children:    draft.Children,
		GuestName:   draft.Guest.Name,
		GuestEmail:  draft.Guest.Email,
		GuestPhone:  draft.Guest.Phone,
		SpecialReqs: draft.Guest.SpecialRequests,
		PaymentRef:  paymentRef,
	}
	if draft.Range.Complete() {
		sub.CheckIn = draft.Range.CheckIn.Format(models.DateLayout)
		sub.CheckOut = draft.Range.CheckOut.Format(models.DateLayout)
	}
	if draft.Pricing != nil {
		sub.TotalNights = draft.Pricing.Nights
		sub.BaseAmount = draft.Pricing.BaseAmount
		sub.TaxAmount = draft.Pricing.TaxAmount
		sub.DiscountAmount = draft.Pricing.DiscountAmount
		sub.TotalAmount = draft.Pricing.TotalAmount
		sub.FinalAmount = draft.Pricing.FinalAmount
	}
	if draft.Coupon != nil {
		sub.CouponCode = draft.Coupon.Code
	}
	return sub
}
