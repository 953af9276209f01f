package booking

import (
	"context"
	"testing"
	"time"

	"stayhive/models"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockRoomSource struct {
	mock.Mock
}

func (m *mockRoomSource) GetRoom(ctx context.Context, roomID int64) (*models.Room, error) {
	args := m.Called(ctx, roomID)
	if r := args.Get(0); r != nil {
		return r.(*models.Room), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockOfferValidator struct {
	mock.Mock
}

func (m *mockOfferValidator) Validate(ctx context.Context, code string, total float64) (*models.CouponResult, error) {
	args := m.Called(ctx, code, total)
	if r := args.Get(0); r != nil {
		return r.(*models.CouponResult), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) CreateOrder(ctx context.Context, amount int64, currency, description string, metadata map[string]string) (string, error) {
	args := m.Called(ctx, amount, currency, description, metadata)
	return args.String(0), args.Error(1)
}

func (m *mockGateway) VerifyResult(ctx context.Context, orderID, reference string) (bool, error) {
	args := m.Called(ctx, orderID, reference)
	return args.Bool(0), args.Error(1)
}

type mockQueue struct {
	mock.Mock
}

func (m *mockQueue) EnqueueSubmission(ctx context.Context, sub models.BookingSubmission) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

type testEnv struct {
	svc     *DefaultBookingSessionService
	store   *MemorySessionStore
	rooms   *mockRoomSource
	offers  *mockOfferValidator
	gateway *mockGateway
	queue   *mockQueue
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		store:   NewMemorySessionStore(),
		rooms:   &mockRoomSource{},
		offers:  &mockOfferValidator{},
		gateway: &mockGateway{},
		queue:   &mockQueue{},
	}
	env.svc = NewBookingSessionService(
		env.store, env.rooms, env.offers, env.gateway, env.queue,
		NewNotifier(), zap.NewNop(), DefaultTaxRate, "INR",
	)
	return env
}

// seedDraft saves a fresh draft for a room priced at 1000 per night and
// returns its session id.
func (env *testEnv) seedDraft(t *testing.T) string {
	t.Helper()
	now := time.Now()
	draft := &models.BookingDraft{
		SessionID: "test-session",
		RoomID:    7,
		Room: models.Room{
			ID: 7, Name: "Deluxe Suite", Price: 1000,
			MaxAdults: 4, MaxChildren: 2, Status: "available",
		},
		Adults:    1,
		Step:      models.StepBookingDetails,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, env.store.Save(context.Background(), draft))
	return draft.SessionID
}

// futureDay returns today+offset truncated to a calendar date.
func futureDay(offset int) time.Time {
	return models.Day(time.Now().AddDate(0, 0, offset))
}

// selectRange walks a draft through both calendar clicks.
func (env *testEnv) selectRange(t *testing.T, sessionID string, in, out time.Time) *models.BookingDraft {
	t.Helper()
	ctx := context.Background()
	_, err := env.svc.SelectDate(ctx, sessionID, in)
	require.NoError(t, err)
	draft, err := env.svc.SelectDate(ctx, sessionID, out)
	require.NoError(t, err)
	return draft
}
