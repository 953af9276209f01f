package payment

import (
	"context"
	"strings"

	"stayhive/services/booking"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// StripeGateway opens and verifies payment intents. The API key is set
// globally at startup; this type only builds requests.
type StripeGateway struct {
	Logger *zap.Logger
}

func NewStripeGateway(logger *zap.Logger) *StripeGateway {
	return &StripeGateway{Logger: logger}
}

// CreateOrder opens a payment intent for the given minor-unit amount and
// returns its id.
func (g *StripeGateway) CreateOrder(ctx context.Context, amount int64, currency, description string, metadata map[string]string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(amount),
		Currency:    stripe.String(strings.ToLower(currency)),
		Description: stripe.String(description),
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", &booking.NetworkError{Op: "create payment intent", Err: err}
	}

	g.Logger.Debug("payment intent created",
		zap.String("intentID", pi.ID), zap.Int64("amount", amount))
	return pi.ID, nil
}

// VerifyResult confirms with Stripe that the intent actually succeeded. The
// client-reported reference must match the intent we opened.
func (g *StripeGateway) VerifyResult(ctx context.Context, orderID, reference string) (bool, error) {
	if reference != "" && reference != orderID {
		g.Logger.Warn("payment reference mismatch",
			zap.String("orderID", orderID), zap.String("reference", reference))
		return false, nil
	}

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	pi, err := paymentintent.Get(orderID, params)
	if err != nil {
		return false, &booking.NetworkError{Op: "fetch payment intent", Err: err}
	}
	return pi.Status == stripe.PaymentIntentStatusSucceeded, nil
}
