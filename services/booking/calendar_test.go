package booking

import (
	"context"
	"testing"
	"time"

	"stayhive/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectDateTwoClicks(t *testing.T) {
	env := newTestEnv(t)
	id := env.seedDraft(t)
	ctx := context.Background()

	in := futureDay(10)
	out := futureDay(13)

	draft, err := env.svc.SelectDate(ctx, id, in)
	require.NoError(t, err)
	require.NotNil(t, draft.Range.CheckIn)
	assert.Nil(t, draft.Range.CheckOut)
	assert.Nil(t, draft.Pricing)

	draft, err = env.svc.SelectDate(ctx, id, out)
	require.NoError(t, err)
	require.True(t, draft.Range.Complete())
	assert.Equal(t, in, *draft.Range.CheckIn)
	assert.Equal(t, out, *draft.Range.CheckOut)
	assert.Equal(t, 3, draft.Range.Nights())

	// Pricing follows the completed selection.
	require.NotNil(t, draft.Pricing)
	assert.Equal(t, 3, draft.Pricing.Nights)
}

func TestSelectDateEarlierSecondClickSwaps(t *testing.T) {
	env := newTestEnv(t)
	id := env.seedDraft(t)
	ctx := context.Background()

	first := futureDay(10)
	earlier := futureDay(8)

	_, err := env.svc.SelectDate(ctx, id, first)
	require.NoError(t, err)

	// The clicked day becomes check-in, the earlier pick check-out.
	draft, err := env.svc.SelectDate(ctx, id, earlier)
	require.NoError(t, err)
	require.True(t, draft.Range.Complete())
	assert.Equal(t, earlier, *draft.Range.CheckIn)
	assert.Equal(t, first, *draft.Range.CheckOut)
	assert.Equal(t, 2, draft.Range.Nights())

	// The swap completes a selection, so pricing follows immediately.
	require.NotNil(t, draft.Pricing)
	assert.Equal(t, 2, draft.Pricing.Nights)
}

func TestSelectDateSameDayRestarts(t *testing.T) {
	env := newTestEnv(t)
	id := env.seedDraft(t)
	ctx := context.Background()

	day := futureDay(10)
	_, err := env.svc.SelectDate(ctx, id, day)
	require.NoError(t, err)

	draft, err := env.svc.SelectDate(ctx, id, day)
	require.NoError(t, err)
	assert.Equal(t, day, *draft.Range.CheckIn)
	assert.Nil(t, draft.Range.CheckOut)
}

func TestSelectDateOrderInsensitivePair(t *testing.T) {
	env := newTestEnv(t)

	a := futureDay(10)
	b := futureDay(8)

	// Clicking {a, b} or {b, a} yields the same completed range, and the
	// completed range always keeps check-out strictly after check-in.
	for name, clicks := range map[string][2]time.Time{
		"ascending":  {b, a},
		"descending": {a, b},
	} {
		id := env.seedDraft(t)
		draft := env.selectRange(t, id, clicks[0], clicks[1])
		require.True(t, draft.Range.Complete(), name)
		assert.Equal(t, b, *draft.Range.CheckIn, name)
		assert.Equal(t, a, *draft.Range.CheckOut, name)
		assert.True(t, draft.Range.CheckOut.After(*draft.Range.CheckIn), name)
	}
}

func TestSelectDateThirdClickStartsFresh(t *testing.T) {
	env := newTestEnv(t)
	id := env.seedDraft(t)

	env.selectRange(t, id, futureDay(10), futureDay(13))

	fresh := futureDay(20)
	draft, err := env.svc.SelectDate(context.Background(), id, fresh)
	require.NoError(t, err)
	assert.Equal(t, fresh, *draft.Range.CheckIn)
	assert.Nil(t, draft.Range.CheckOut)
	assert.Nil(t, draft.Pricing)
	assert.Nil(t, draft.Coupon)
}

func TestSelectDateIgnoresPastAndUnavailable(t *testing.T) {
	env := newTestEnv(t)
	id := env.seedDraft(t)
	ctx := context.Background()

	draft, err := env.svc.SelectDate(ctx, id, futureDay(-1))
	require.NoError(t, err)
	assert.True(t, draft.Range.Empty())

	blocked := futureDay(5)
	_, err = env.svc.SetUnavailableDates(ctx, id, []time.Time{blocked})
	require.NoError(t, err)

	draft, err = env.svc.SelectDate(ctx, id, blocked)
	require.NoError(t, err)
	assert.True(t, draft.Range.Empty())
}

func TestClearSelectionIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	id := env.seedDraft(t)
	ctx := context.Background()

	env.selectRange(t, id, futureDay(10), futureDay(12))

	draft, err := env.svc.ClearSelection(ctx, id)
	require.NoError(t, err)
	assert.True(t, draft.Range.Empty())
	assert.Nil(t, draft.Pricing)

	// Clearing again changes nothing.
	again, err := env.svc.ClearSelection(ctx, id)
	require.NoError(t, err)
	assert.True(t, again.Range.Empty())
}

func TestSetUnavailableDatesResetsTouchedSelection(t *testing.T) {
	env := newTestEnv(t)
	id := env.seedDraft(t)
	ctx := context.Background()

	in := futureDay(10)
	env.selectRange(t, id, in, futureDay(12))

	draft, err := env.svc.SetUnavailableDates(ctx, id, []time.Time{in})
	require.NoError(t, err)
	assert.True(t, draft.Range.Empty())
	assert.Nil(t, draft.Pricing)
}

func TestRenderMonthStates(t *testing.T) {
	now := time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)
	in := time.Date(2024, time.June, 20, 0, 0, 0, 0, time.UTC)
	out := time.Date(2024, time.June, 23, 0, 0, 0, 0, time.UTC)

	draft := &models.BookingDraft{
		Range:       models.DateRange{CheckIn: &in, CheckOut: &out},
		Unavailable: map[string]bool{"2024-06-18": true},
	}

	view := renderMonth(draft, now, 0)
	require.Equal(t, 2024, view.Year)
	require.Equal(t, time.June, view.Month)
	require.Len(t, view.Days, 30)

	byDate := make(map[string]models.CalendarDay, len(view.Days))
	for _, d := range view.Days {
		byDate[d.Date] = d
	}

	assert.Equal(t, models.DayPast, byDate["2024-06-14"].State)
	assert.Equal(t, models.DayUnavailable, byDate["2024-06-18"].State)
	assert.Equal(t, models.DaySelected, byDate["2024-06-20"].State)
	assert.Equal(t, models.DayInRange, byDate["2024-06-21"].State)
	assert.Equal(t, models.DayInRange, byDate["2024-06-22"].State)
	assert.Equal(t, models.DaySelected, byDate["2024-06-23"].State)
	assert.Equal(t, models.DaySelectable, byDate["2024-06-25"].State)
	assert.True(t, byDate["2024-06-15"].Today)
	assert.False(t, byDate["2024-06-16"].Today)
}

func TestRenderMonthOffset(t *testing.T) {
	now := time.Date(2024, time.December, 2, 0, 0, 0, 0, time.UTC)
	draft := &models.BookingDraft{}

	next := renderMonth(draft, now, 1)
	assert.Equal(t, 2025, next.Year)
	assert.Equal(t, time.January, next.Month)
	assert.Len(t, next.Days, 31)

	prev := renderMonth(draft, now, -1)
	assert.Equal(t, time.November, prev.Month)
	// An earlier month renders, every day is in the past.
	for _, d := range prev.Days {
		assert.Equal(t, models.DayPast, d.State)
	}
}
