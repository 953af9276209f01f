package booking

import (
	"context"
	"time"

	"stayhive/models"

	"go.uber.org/zap"
)

// SelectDate applies one calendar click to the draft's range. Two-click
// semantics: the first click sets check-in, the second sets check-out. A
// second click strictly before check-in swaps the endpoints, so the clicked
// day becomes check-in and the earlier pick becomes check-out. Clicks on
// past or unavailable days are ignored.
func (s *DefaultBookingSessionService) SelectDate(ctx context.Context, sessionID string, day time.Time) (*models.BookingDraft, error) {
	draft, err := s.Store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	day = models.Day(day)
	if day.Before(models.Day(time.Now())) || draft.IsUnavailable(day) {
		s.Logger.Debug("ignoring click on unselectable day",
			zap.String("sessionID", sessionID),
			zap.String("day", day.Format(models.DateLayout)))
		return draft, nil
	}

	switch {
	case draft.Range.CheckIn == nil || draft.Range.Complete():
		// First click, or a fresh selection over a completed range.
		draft.Range = models.DateRange{CheckIn: &day}
		s.invalidatePricing(draft)
	case day.Equal(*draft.Range.CheckIn):
		// Same-day second click restarts; a swap here would complete a
		// zero-night range.
		draft.Range = models.DateRange{CheckIn: &day}
		s.invalidatePricing(draft)
	case day.Before(*draft.Range.CheckIn):
		// Clicked before the pending check-in: swap, completing the range
		// with the clicked day as check-in.
		prev := *draft.Range.CheckIn
		draft.Range = models.DateRange{CheckIn: &day, CheckOut: &prev}
		draft.Coupon = nil
		s.Notifier.publishRangeSelected(RangeSelected{Draft: draft, Range: draft.Range})
	default:
		draft.Range.CheckOut = &day
		draft.Coupon = nil
		s.Notifier.publishRangeSelected(RangeSelected{Draft: draft, Range: draft.Range})
	}

	if err := s.save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// ClearSelection resets the range. Idempotent; clearing an empty range
// changes nothing.
func (s *DefaultBookingSessionService) ClearSelection(ctx context.Context, sessionID string) (*models.BookingDraft, error) {
	draft, err := s.Store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !draft.Range.Empty() {
		draft.Range = models.DateRange{}
		s.invalidatePricing(draft)
	}
	if err := s.save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// SetUnavailableDates replaces the room's blocked-out days. A selection that
// now touches a blocked day is reset.
func (s *DefaultBookingSessionService) SetUnavailableDates(ctx context.Context, sessionID string, days []time.Time) (*models.BookingDraft, error) {
	draft, err := s.Store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	draft.Unavailable = make(map[string]bool, len(days))
	for _, d := range days {
		draft.Unavailable[models.Day(d).Format(models.DateLayout)] = true
	}

	if (draft.Range.CheckIn != nil && draft.IsUnavailable(*draft.Range.CheckIn)) ||
		(draft.Range.CheckOut != nil && draft.IsUnavailable(*draft.Range.CheckOut)) {
		s.Logger.Info("selection reset by availability update", zap.String("sessionID", sessionID))
		draft.Range = models.DateRange{}
		s.invalidatePricing(draft)
	}

	if err := s.save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// MonthView renders the month at the given offset from the current one.
// States are derived fresh on every render; nothing about the grid is stored
// on the draft.
func (s *DefaultBookingSessionService) MonthView(ctx context.Context, sessionID string, offset int) (*models.MonthView, error) {
	draft, err := s.Store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return renderMonth(draft, time.Now(), offset), nil
}

// renderMonth builds the day grid for the month at offset months from now.
// Precedence per day: past, then unavailable, then selected endpoints, then
// in-range, then selectable.
func renderMonth(draft *models.BookingDraft, now time.Time, offset int) *models.MonthView {
	today := models.Day(now)
	first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, offset, 0)

	view := &models.MonthView{Year: first.Year(), Month: first.Month()}
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		view.Days = append(view.Days, models.CalendarDay{
			Date:  d.Format(models.DateLayout),
			State: dayState(draft, d, today),
			Today: d.Equal(today),
		})
	}
	return view
}

func dayState(draft *models.BookingDraft, day, today time.Time) models.DayState {
	switch {
	case day.Before(today):
		return models.DayPast
	case draft.IsUnavailable(day):
		return models.DayUnavailable
	case draft.Range.CheckIn != nil && day.Equal(*draft.Range.CheckIn):
		return models.DaySelected
	case draft.Range.CheckOut != nil && day.Equal(*draft.Range.CheckOut):
		return models.DaySelected
	case draft.Range.Complete() && day.After(*draft.Range.CheckIn) && day.Before(*draft.Range.CheckOut):
		return models.DayInRange
	default:
		return models.DaySelectable
	}
}
