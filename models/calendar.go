package models

import "time"

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// Day truncates t to midnight UTC so calendar dates compare exactly.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// DateRange is the guest's two-click selection. At most one of three states:
// empty, check-in only, complete. When complete, CheckOut is strictly after
// CheckIn.
type DateRange struct {
	CheckIn  *time.Time `json:"checkIn,omitempty"`
	CheckOut *time.Time `json:"checkOut,omitempty"`
}

// Empty reports whether no date has been selected yet.
func (r DateRange) Empty() bool {
	return r.CheckIn == nil && r.CheckOut == nil
}

// Complete reports whether both endpoints are set.
func (r DateRange) Complete() bool {
	return r.CheckIn != nil && r.CheckOut != nil
}

// Nights returns the whole-day count between check-in and check-out,
// or 0 when the range is incomplete.
func (r DateRange) Nights() int {
	if !r.Complete() {
		return 0
	}
	return int(Day(*r.CheckOut).Sub(Day(*r.CheckIn)).Hours() / 24)
}

// DayState is the single tagged state of one displayed calendar day.
type DayState string

const (
	DayPast        DayState = "past"
	DayUnavailable DayState = "unavailable"
	DaySelectable  DayState = "selectable"
	DaySelected    DayState = "selected"
	DayInRange     DayState = "in_range"
)

// CalendarDay is one cell of a rendered month. State is derived per render
// pass, never stored. Today is independent of State.
type CalendarDay struct {
	Date  string   `json:"date"`
	State DayState `json:"state"`
	Today bool     `json:"today"`
}

// MonthView is a rendered calendar month. It is a pure function of the
// session's anchor month plus a navigation offset.
type MonthView struct {
	Year  int           `json:"year"`
	Month time.Month    `json:"month"`
	Days  []CalendarDay `json:"days"`
}
