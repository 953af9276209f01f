package booking

import (
	"context"
	"testing"

	"stayhive/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedRange(in, out string) models.DateRange {
	a, _ := models.ParseDate(in)
	b, _ := models.ParseDate(out)
	return models.DateRange{CheckIn: &a, CheckOut: &b}
}

func TestComputePricingBreakdown(t *testing.T) {
	snap := ComputePricing(fixedRange("2024-06-01", "2024-06-04"), 1000, DefaultTaxRate, 0)
	require.NotNil(t, snap)

	assert.Equal(t, 3, snap.Nights)
	assert.Equal(t, 3000.0, snap.BaseAmount)
	assert.Equal(t, 540.0, snap.TaxAmount)
	assert.Equal(t, 3540.0, snap.TotalAmount)
	assert.Equal(t, 0.0, snap.DiscountAmount)
	assert.Equal(t, 3540.0, snap.FinalAmount)
}

func TestComputePricingWithDiscount(t *testing.T) {
	snap := ComputePricing(fixedRange("2024-06-01", "2024-06-04"), 1000, DefaultTaxRate, 354)
	require.NotNil(t, snap)

	assert.Equal(t, 354.0, snap.DiscountAmount)
	assert.Equal(t, 3186.0, snap.FinalAmount)
}

func TestComputePricingFloorsAtZero(t *testing.T) {
	snap := ComputePricing(fixedRange("2024-06-01", "2024-06-02"), 100, DefaultTaxRate, 5000)
	require.NotNil(t, snap)
	assert.Equal(t, 0.0, snap.FinalAmount)
}

func TestComputePricingRejectsBadInputs(t *testing.T) {
	assert.Nil(t, ComputePricing(models.DateRange{}, 1000, DefaultTaxRate, 0))

	in, _ := models.ParseDate("2024-06-01")
	half := models.DateRange{CheckIn: &in}
	assert.Nil(t, ComputePricing(half, 1000, DefaultTaxRate, 0))

	assert.Nil(t, ComputePricing(fixedRange("2024-06-01", "2024-06-04"), 0, DefaultTaxRate, 0))

	// Same-day "range" yields zero nights.
	assert.Nil(t, ComputePricing(fixedRange("2024-06-01", "2024-06-01"), 1000, DefaultTaxRate, 0))
}

func TestComputePricingRoundsToCents(t *testing.T) {
	snap := ComputePricing(fixedRange("2024-06-01", "2024-06-04"), 333.33, DefaultTaxRate, 0)
	require.NotNil(t, snap)

	assert.Equal(t, 999.99, snap.BaseAmount)
	assert.Equal(t, 180.0, snap.TaxAmount)
	assert.Equal(t, 1179.99, snap.TotalAmount)
}

func TestRecomputeAdvancesPriceVersion(t *testing.T) {
	env := newTestEnv(t)
	id := env.seedDraft(t)

	draft := env.selectRange(t, id, futureDay(10), futureDay(13))
	v1 := draft.PriceVersion
	assert.Greater(t, v1, int64(0))

	draft = env.selectRange(t, id, futureDay(20), futureDay(22))
	assert.Greater(t, draft.PriceVersion, v1)
}

func TestSetGuestCountsValidatesAgainstRoom(t *testing.T) {
	env := newTestEnv(t)
	id := env.seedDraft(t)
	ctx := context.Background()

	_, err := env.svc.SetGuestCounts(ctx, id, 0, 0)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "adults", ve.Field)

	_, err = env.svc.SetGuestCounts(ctx, id, 5, 0)
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "adults", ve.Field)

	_, err = env.svc.SetGuestCounts(ctx, id, 2, 3)
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "children", ve.Field)

	draft, err := env.svc.SetGuestCounts(ctx, id, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, draft.Adults)
	assert.Equal(t, 1, draft.Children)
}

func TestSetGuestCountsKeepsPricingAndCoupon(t *testing.T) {
	env := newTestEnv(t)
	id := env.seedDraft(t)
	ctx := context.Background()

	env.selectRange(t, id, futureDay(10), futureDay(13))

	// Attach a coupon directly; party size does not feed the total, so the
	// discount survives the recompute.
	draft, err := env.store.Load(ctx, id)
	require.NoError(t, err)
	draft.Coupon = &models.Coupon{Code: "SAVE10", DiscountAmount: 100}
	require.NoError(t, env.store.Save(ctx, draft))

	draft, err = env.svc.SetGuestCounts(ctx, id, 2, 0)
	require.NoError(t, err)
	require.NotNil(t, draft.Pricing)
	require.NotNil(t, draft.Coupon)
	assert.Equal(t, 100.0, draft.Pricing.DiscountAmount)
	assert.Equal(t, 3440.0, draft.Pricing.FinalAmount)
}

func TestPricingUpdatedNotification(t *testing.T) {
	env := newTestEnv(t)
	id := env.seedDraft(t)

	var got []models.PricingSnapshot
	env.svc.Notifier.OnPricingUpdated(func(ev PricingUpdated) {
		got = append(got, ev.Snapshot)
	})

	env.selectRange(t, id, futureDay(10), futureDay(12))
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Nights)
	assert.Equal(t, 2360.0, got[0].FinalAmount)
}
