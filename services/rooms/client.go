package rooms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"stayhive/models"
	"stayhive/services/booking"

	"go.uber.org/zap"
)

// HTTPClient talks to the room subsystem's REST API. Reads are idempotent,
// so transient failures are retried with exponential backoff before the
// operation is abandoned.
type HTTPClient struct {
	BaseURL    string
	HTTP       *http.Client
	Logger     *zap.Logger
	MaxRetries int
	Backoff    time.Duration
}

func NewHTTPClient(baseURL string, logger *zap.Logger) *HTTPClient {
	return &HTTPClient{
		BaseURL:    baseURL,
		HTTP:       &http.Client{Timeout: 5 * time.Second},
		Logger:     logger,
		MaxRetries: 3,
		Backoff:    200 * time.Millisecond,
	}
}

type roomResponse struct {
	Success bool        `json:"success"`
	Room    models.Room `json:"room"`
	Error   string      `json:"error,omitempty"`
}

// GetRoom fetches one room record.
func (c *HTTPClient) GetRoom(ctx context.Context, roomID int64) (*models.Room, error) {
	var out roomResponse
	status, err := c.getJSON(ctx, fmt.Sprintf("%s/api/rooms/%d", c.BaseURL, roomID), &out)
	if err != nil {
		return nil, &booking.NetworkError{Op: "fetch room", Err: err}
	}
	if status == http.StatusNotFound {
		return nil, &booking.BusinessRuleError{Message: "room not found"}
	}
	if status != http.StatusOK || !out.Success {
		msg := out.Error
		if msg == "" {
			msg = fmt.Sprintf("room service returned status %d", status)
		}
		return nil, &booking.BusinessRuleError{Message: msg}
	}
	return &out.Room, nil
}

type availabilityResponse struct {
	Success        bool          `json:"success"`
	AvailableRooms []models.Room `json:"available_rooms"`
	Error          string        `json:"error,omitempty"`
}

// CheckAvailability asks the room subsystem which rooms are free for the
// date window and reports whether the given room is among them.
func (c *HTTPClient) CheckAvailability(ctx context.Context, roomID int64, checkIn, checkOut string) (bool, error) {
	q := url.Values{}
	q.Set("check_in", checkIn)
	q.Set("check_out", checkOut)

	var out availabilityResponse
	endpoint := c.BaseURL + "/api/rooms/availability?" + q.Encode()
	status, err := c.getJSON(ctx, endpoint, &out)
	if err != nil {
		return false, &booking.NetworkError{Op: "check availability", Err: err}
	}
	if status != http.StatusOK || !out.Success {
		msg := out.Error
		if msg == "" {
			msg = fmt.Sprintf("room service returned status %d", status)
		}
		return false, &booking.BusinessRuleError{Message: msg}
	}
	for _, room := range out.AvailableRooms {
		if room.ID == roomID {
			return true, nil
		}
	}
	return false, nil
}

// getJSON performs a GET with bounded retries. Connection errors and 5xx
// responses are retried; any other response is decoded and returned.
func (c *HTTPClient) getJSON(ctx context.Context, endpoint string, out interface{}) (int, error) {
	var lastErr error
	for attempt := 0; attempt < c.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := c.Backoff << (attempt - 1)
			c.Logger.Debug("retrying room service call",
				zap.String("endpoint", endpoint),
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay))
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return 0, ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return 0, err
		}
		resp, err := c.HTTP.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode >= http.StatusInternalServerError {
			resp.Body.Close()
			lastErr = fmt.Errorf("room service returned status %d", resp.StatusCode)
			continue
		}

		decErr := json.NewDecoder(resp.Body).Decode(out)
		resp.Body.Close()
		if decErr != nil && resp.StatusCode == http.StatusOK {
			return resp.StatusCode, fmt.Errorf("failed to decode room service response: %w", decErr)
		}
		return resp.StatusCode, nil
	}
	return 0, lastErr
}
