package booking

import (
	"context"
	"time"

	"stayhive/models"

	"go.uber.org/zap"
)

// RoomSource resolves room data from the hotel inventory API.
type RoomSource interface {
	GetRoom(ctx context.Context, roomID int64) (*models.Room, error)
}

// OfferValidator checks a coupon code against the offers API for a given
// pre-discount total.
type OfferValidator interface {
	Validate(ctx context.Context, code string, total float64) (*models.CouponResult, error)
}

// PaymentGateway opens and verifies orders with the payment processor.
// Amounts are in minor units.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, description string, metadata map[string]string) (string, error)
	VerifyResult(ctx context.Context, orderID, reference string) (bool, error)
}

// SubmissionQueue hands a confirmed booking off for asynchronous delivery to
// the hotel system.
type SubmissionQueue interface {
	EnqueueSubmission(ctx context.Context, sub models.BookingSubmission) error
}

// OpenSessionRequest starts a booking session for a room, optionally with
// dates carried over from a search.
type OpenSessionRequest struct {
	RoomID   int64  `json:"room_id" binding:"required"`
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
	Adults   int    `json:"adults"`
	Children int    `json:"children"`
}

// BookingSessionService drives a booking draft from room selection through
// payment handoff.
type BookingSessionService interface {
	OpenSession(ctx context.Context, req OpenSessionRequest) (*models.BookingDraft, error)
	GetSession(ctx context.Context, sessionID string) (*models.BookingDraft, error)
	CancelSession(ctx context.Context, sessionID string) error

	SelectDate(ctx context.Context, sessionID string, day time.Time) (*models.BookingDraft, error)
	ClearSelection(ctx context.Context, sessionID string) (*models.BookingDraft, error)
	SetUnavailableDates(ctx context.Context, sessionID string, days []time.Time) (*models.BookingDraft, error)
	MonthView(ctx context.Context, sessionID string, offset int) (*models.MonthView, error)

	SetGuestCounts(ctx context.Context, sessionID string, adults, children int) (*models.BookingDraft, error)
	SetGuestInfo(ctx context.Context, sessionID string, guest models.GuestInfo) (*models.BookingDraft, error)
	ApplyCoupon(ctx context.Context, sessionID, code string) (*models.BookingDraft, error)
	GoToStep(ctx context.Context, sessionID string, target models.WorkflowStep) (*models.BookingDraft, error)

	InitiatePayment(ctx context.Context, sessionID string) (*models.PaymentHandoff, error)
	CompletePayment(ctx context.Context, sessionID string, result models.PaymentResult) (*models.BookingDraft, error)
}

// DefaultBookingSessionService is the production implementation. All
// mutations load the draft, apply the change, and save exactly once, so a
// draft in the store is always internally consistent.
type DefaultBookingSessionService struct {
	Store    SessionStore
	Rooms    RoomSource
	Offers   OfferValidator
	Gateway  PaymentGateway
	Queue    SubmissionQueue
	Notifier *Notifier
	Logger   *zap.Logger
	TaxRate  float64
	Currency string

	validate *guestValidator
}

// NewBookingSessionService wires the service and subscribes the pricing
// recompute to completed range selections.
func NewBookingSessionService(
	store SessionStore,
	rooms RoomSource,
	offers OfferValidator,
	gateway PaymentGateway,
	queue SubmissionQueue,
	notifier *Notifier,
	logger *zap.Logger,
	taxRate float64,
	currency string,
) *DefaultBookingSessionService {
	if notifier == nil {
		notifier = NewNotifier()
	}
	if taxRate <= 0 {
		taxRate = DefaultTaxRate
	}
	svc := &DefaultBookingSessionService{
		Store:    store,
		Rooms:    rooms,
		Offers:   offers,
		Gateway:  gateway,
		Queue:    queue,
		Notifier: notifier,
		Logger:   logger,
		TaxRate:  taxRate,
		Currency: currency,
		validate: newGuestValidator(),
	}
	notifier.OnRangeSelected(func(ev RangeSelected) {
		svc.recompute(ev.Draft)
	})
	return svc
}
