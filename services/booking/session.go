package booking

import (
	"context"
	"strings"
	"time"

	"stayhive/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OpenSession resolves the room, creates a fresh draft at the booking-details
// step and persists it. Dates carried over from a search are applied when
// they form a valid future range; otherwise they are dropped and the guest
// reselects on the calendar.
func (s *DefaultBookingSessionService) OpenSession(ctx context.Context, req OpenSessionRequest) (*models.BookingDraft, error) {
	room, err := s.Rooms.GetRoom(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}
	if room.Status != "" && !strings.EqualFold(room.Status, "available") {
		return nil, &BusinessRuleError{Message: "room is not available for booking"}
	}

	adults := req.Adults
	if adults < 1 {
		adults = 1
	}
	children := req.Children
	if children < 0 {
		children = 0
	}

	now := time.Now()
	draft := &models.BookingDraft{
		SessionID: uuid.New().String(),
		RoomID:    room.ID,
		Room:      *room,
		Adults:    adults,
		Children:  children,
		Step:      models.StepBookingDetails,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if rng, ok := carriedRange(req.CheckIn, req.CheckOut, now); ok {
		draft.Range = rng
		s.Notifier.publishRangeSelected(RangeSelected{Draft: draft, Range: draft.Range})
	} else if req.CheckIn != "" || req.CheckOut != "" {
		s.Logger.Info("dropping carried-over dates",
			zap.String("sessionID", draft.SessionID),
			zap.String("checkIn", req.CheckIn),
			zap.String("checkOut", req.CheckOut))
	}

	if err := s.Store.Save(ctx, draft); err != nil {
		return nil, err
	}
	s.Logger.Info("booking session opened",
		zap.String("sessionID", draft.SessionID),
		zap.Int64("roomID", draft.RoomID))
	return draft, nil
}

// carriedRange validates search dates handed to OpenSession. Both must
// parse, check-in must not be in the past, and check-out must be strictly
// after check-in.
func carriedRange(checkIn, checkOut string, now time.Time) (models.DateRange, bool) {
	if checkIn == "" || checkOut == "" {
		return models.DateRange{}, false
	}
	in, err := models.ParseDate(checkIn)
	if err != nil {
		return models.DateRange{}, false
	}
	out, err := models.ParseDate(checkOut)
	if err != nil {
		return models.DateRange{}, false
	}
	in, out = models.Day(in), models.Day(out)
	if in.Before(models.Day(now)) || !out.After(in) {
		return models.DateRange{}, false
	}
	return models.DateRange{CheckIn: &in, CheckOut: &out}, true
}

// GetSession returns the current draft.
func (s *DefaultBookingSessionService) GetSession(ctx context.Context, sessionID string) (*models.BookingDraft, error) {
	return s.Store.Load(ctx, sessionID)
}

// CancelSession discards the draft. Cancelling an already-expired session is
// not an error.
func (s *DefaultBookingSessionService) CancelSession(ctx context.Context, sessionID string) error {
	if err := s.Store.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.Logger.Info("booking session cancelled", zap.String("sessionID", sessionID))
	return nil
}

// save stamps UpdatedAt and persists the draft.
func (s *DefaultBookingSessionService) save(ctx context.Context, draft *models.BookingDraft) error {
	draft.UpdatedAt = time.Now()
	return s.Store.Save(ctx, draft)
}
