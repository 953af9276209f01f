package booking

import (
	"context"
	"errors"
	"testing"

	"stayhive/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestApplyCouponLocalChecks(t *testing.T) {
	env := newTestEnv(t)
	id := env.seedDraft(t)
	ctx := context.Background()

	var ve *ValidationError

	// Blank code fails before any network call.
	_, err := env.svc.ApplyCoupon(ctx, id, "   ")
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "coupon_code", ve.Field)

	// No pricing yet fails before any network call.
	_, err = env.svc.ApplyCoupon(ctx, id, "SAVE10")
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "coupon_code", ve.Field)

	env.offers.AssertNotCalled(t, "Validate")
}

func TestApplyCouponSuccess(t *testing.T) {
	env := newTestEnv(t)
	id := env.seedDraft(t)
	ctx := context.Background()

	env.selectRange(t, id, futureDay(10), futureDay(13))

	env.offers.On("Validate", mock.Anything, "SAVE10", 3540.0).
		Return(&models.CouponResult{DiscountAmount: 354, Message: "10% off"}, nil)

	draft, err := env.svc.ApplyCoupon(ctx, id, "SAVE10")
	require.NoError(t, err)
	require.NotNil(t, draft.Coupon)
	assert.Equal(t, "SAVE10", draft.Coupon.Code)
	assert.False(t, draft.CouponPending)
	require.NotNil(t, draft.Pricing)
	assert.Equal(t, 354.0, draft.Pricing.DiscountAmount)
	assert.Equal(t, 3186.0, draft.Pricing.FinalAmount)

	env.offers.AssertExpectations(t)
}

func TestApplyCouponRejection(t *testing.T) {
	env := newTestEnv(t)
	id := env.seedDraft(t)
	ctx := context.Background()

	env.selectRange(t, id, futureDay(10), futureDay(13))

	env.offers.On("Validate", mock.Anything, "EXPIRED", 3540.0).
		Return(nil, &BusinessRuleError{Message: "coupon has expired"})

	_, err := env.svc.ApplyCoupon(ctx, id, "EXPIRED")
	var be *BusinessRuleError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "coupon has expired", be.Message)

	// The draft keeps its undiscounted pricing and is no longer pending.
	draft, err := env.svc.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, draft.Coupon)
	assert.False(t, draft.CouponPending)
	assert.Equal(t, 3540.0, draft.Pricing.FinalAmount)
}

func TestApplyCouponNetworkFailure(t *testing.T) {
	env := newTestEnv(t)
	id := env.seedDraft(t)
	ctx := context.Background()

	env.selectRange(t, id, futureDay(10), futureDay(13))

	env.offers.On("Validate", mock.Anything, "SAVE10", 3540.0).
		Return(nil, &NetworkError{Op: "validate coupon", Err: errors.New("connection refused")})

	_, err := env.svc.ApplyCoupon(ctx, id, "SAVE10")
	var ne *NetworkError
	require.ErrorAs(t, err, &ne)

	draft, err := env.svc.GetSession(ctx, id)
	require.NoError(t, err)
	assert.False(t, draft.CouponPending, "a failed call must release the pending flag")
	assert.Nil(t, draft.Coupon)
}

func TestApplyCouponRejectsOverlappingValidation(t *testing.T) {
	env := newTestEnv(t)
	id := env.seedDraft(t)
	ctx := context.Background()

	env.selectRange(t, id, futureDay(10), futureDay(13))

	draft, err := env.store.Load(ctx, id)
	require.NoError(t, err)
	draft.CouponPending = true
	require.NoError(t, env.store.Save(ctx, draft))

	_, err = env.svc.ApplyCoupon(ctx, id, "SAVE10")
	var be *BusinessRuleError
	require.ErrorAs(t, err, &be)
	env.offers.AssertNotCalled(t, "Validate")
}

func TestApplyCouponDiscardsStaleResolution(t *testing.T) {
	env := newTestEnv(t)
	id := env.seedDraft(t)
	ctx := context.Background()

	env.selectRange(t, id, futureDay(10), futureDay(13))

	// The dates change while the validation is in flight, so the resolution
	// comes back against pricing that no longer exists.
	env.offers.On("Validate", mock.Anything, "SAVE10", 3540.0).
		Run(func(args mock.Arguments) {
			env.selectRange(t, id, futureDay(20), futureDay(22))
		}).
		Return(&models.CouponResult{DiscountAmount: 354}, nil)

	draft, err := env.svc.ApplyCoupon(ctx, id, "SAVE10")
	require.NoError(t, err)

	assert.Nil(t, draft.Coupon, "stale discount must not be applied")
	assert.False(t, draft.CouponPending)
	require.NotNil(t, draft.Pricing)
	assert.Equal(t, 2, draft.Pricing.Nights)
	assert.Equal(t, 2360.0, draft.Pricing.FinalAmount)
}

func TestDateChangeInvalidatesAppliedCoupon(t *testing.T) {
	env := newTestEnv(t)
	id := env.seedDraft(t)
	ctx := context.Background()

	env.selectRange(t, id, futureDay(10), futureDay(13))

	env.offers.On("Validate", mock.Anything, "SAVE10", 3540.0).
		Return(&models.CouponResult{DiscountAmount: 354}, nil)
	_, err := env.svc.ApplyCoupon(ctx, id, "SAVE10")
	require.NoError(t, err)

	draft := env.selectRange(t, id, futureDay(20), futureDay(22))
	assert.Nil(t, draft.Coupon)
	require.NotNil(t, draft.Pricing)
	assert.Equal(t, 0.0, draft.Pricing.DiscountAmount)
	assert.Equal(t, 2360.0, draft.Pricing.FinalAmount)
}
