package offers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"stayhive/models"
	"stayhive/services/booking"

	"go.uber.org/zap"
)

// HTTPClient talks to the offers subsystem. Validation calls are never
// retried automatically; a failed call is abandoned and the guest retries
// by clicking apply again.
type HTTPClient struct {
	BaseURL string
	HTTP    *http.Client
	Logger  *zap.Logger
}

func NewHTTPClient(baseURL string, logger *zap.Logger) *HTTPClient {
	return &HTTPClient{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 5 * time.Second},
		Logger:  logger,
	}
}

type validateRequest struct {
	CouponCode  string  `json:"coupon_code"`
	TotalAmount float64 `json:"total_amount"`
}

type validateResponse struct {
	Success     bool    `json:"success"`
	Discount    float64 `json:"discount"`
	FinalAmount float64 `json:"final_amount"`
	Message     string  `json:"message,omitempty"`
	Error       string  `json:"error,omitempty"`
}

// Validate checks a coupon code against the given pre-discount total.
// A domain rejection carries the server's message verbatim.
func (c *HTTPClient) Validate(ctx context.Context, code string, total float64) (*models.CouponResult, error) {
	body, err := json.Marshal(validateRequest{CouponCode: code, TotalAmount: total})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/api/offers/validate", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, &booking.NetworkError{Op: "validate coupon", Err: err}
	}
	defer resp.Body.Close()

	var out validateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &booking.NetworkError{
			Op:  "validate coupon",
			Err: fmt.Errorf("failed to decode offers response: %w", err),
		}
	}

	if !out.Success {
		msg := out.Error
		if msg == "" {
			msg = "coupon is not valid"
		}
		c.Logger.Debug("coupon rejected",
			zap.String("code", code), zap.String("reason", msg))
		return nil, &booking.BusinessRuleError{Message: msg}
	}

	return &models.CouponResult{
		DiscountAmount: out.Discount,
		FinalAmount:    out.FinalAmount,
		Message:        out.Message,
	}, nil
}
