package models

import "time"

// WorkflowStep identifies one step of the checkout workflow.
type WorkflowStep int

const (
	StepBookingDetails WorkflowStep = 1
	StepGuestInfo      WorkflowStep = 2
	StepPayment        WorkflowStep = 3
)

// GuestInfo is the step-2 slice of the draft.
type GuestInfo struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required,guestphone"`
	SpecialRequests string `json:"specialRequests,omitempty"`
}

// BookingDraft holds the full context of one in-progress checkout. It lives
// in the session cache for the duration of the booking page and is discarded
// on successful submission, cancellation or TTL expiry.
type BookingDraft struct {
	SessionID string `json:"sessionId"`
	RoomID    int64  `json:"roomId"`
	Room      Room   `json:"room"`

	Range       DateRange       `json:"range"`
	Unavailable map[string]bool `json:"unavailable,omitempty"`
	Adults      int             `json:"adults"`
	Children    int             `json:"children"`

	Guest   GuestInfo        `json:"guest"`
	Pricing *PricingSnapshot `json:"pricing,omitempty"`
	Coupon  *Coupon          `json:"coupon,omitempty"`

	Step WorkflowStep `json:"step"`

	// PriceVersion increments on every recompute; in-flight coupon
	// resolutions carry the version they were issued against and are
	// discarded when it has moved on.
	PriceVersion  int64 `json:"priceVersion"`
	CouponPending bool  `json:"couponPending"`

	PaymentOrderID string    `json:"paymentOrderId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// IsUnavailable reports whether d is excluded from selection by the room
// subsystem's availability data. Past dates are checked separately.
func (d *BookingDraft) IsUnavailable(day time.Time) bool {
	if d.Unavailable == nil {
		return false
	}
	return d.Unavailable[Day(day).Format(DateLayout)]
}

// PaymentHandoff is the opaque payload handed to the payment SDK on the
// client: the order reference, the amount in minor currency units, and
// payee prefill.
type PaymentHandoff struct {
	OrderID     string `json:"orderId"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
	PayeeName   string `json:"payeeName"`
	PayeeEmail  string `json:"payeeEmail"`
	PayeePhone  string `json:"payeePhone"`
}

// PaymentResult is the gateway's terminal answer for one payment attempt.
type PaymentResult struct {
	Success   bool   `json:"success"`
	Reference string `json:"reference"`
	Message   string `json:"message,omitempty"`
}

// BookingSubmission is the confirmed draft as sent to the hotel server
// collaborator after a successful payment.
type BookingSubmission struct {
	SessionID      string  `json:"session_id"`
	RoomID         int64   `json:"room_id"`
	CheckIn        string  `json:"check_in"`
	CheckOut       string  `json:"check_out"`
	Adults         int     `json:"adults"`
	Children       int     `json:"children"`
	TotalNights    int     `json:"total_nights"`
	BaseAmount     float64 `json:"base_amount"`
	TaxAmount      float64 `json:"tax_amount"`
	DiscountAmount float64 `json:"discount_amount"`
	TotalAmount    float64 `json:"total_amount"`
	FinalAmount    float64 `json:"final_amount"`
	CouponCode     string  `json:"coupon_code,omitempty"`
	GuestName      string  `json:"guest_name"`
	GuestEmail     string  `json:"guest_email"`
	GuestPhone     string  `json:"guest_phone"`
	SpecialReqs    string  `json:"special_requests,omitempty"`
	PaymentRef     string  `json:"payment_reference"`
}
