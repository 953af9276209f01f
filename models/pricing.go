package models

// PricingSnapshot is the derived price breakdown for the current selection.
// It is recomputed whenever the range, guest counts or discount change and is
// never persisted; every field is recomputable from {range, rate, discount}.
type PricingSnapshot struct {
	Nights         int     `json:"nights"`
	BaseAmount     float64 `json:"baseAmount"`
	TaxAmount      float64 `json:"taxAmount"`
	TotalAmount    float64 `json:"totalAmount"`
	DiscountAmount float64 `json:"discountAmount"`
	FinalAmount    float64 `json:"finalAmount"`
}

// Coupon is a transient coupon resolution, scoped to the total it was
// validated against. A new total invalidates it.
type Coupon struct {
	Code           string  `json:"code"`
	DiscountAmount float64 `json:"discountAmount"`
	Message        string  `json:"message,omitempty"`
}

// CouponResult is the offers service's answer for one validation call.
type CouponResult struct {
	DiscountAmount float64 `json:"discount"`
	FinalAmount    float64 `json:"final_amount"`
	Message        string  `json:"message,omitempty"`
}
