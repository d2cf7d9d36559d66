package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gameroom/gameroom-api/internal/domain"
)

var availabilityTestBase = time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC)

func newTestAvailability(t *testing.T, clock *testClock, activities []domain.Activity, transactions []domain.Transaction) *AvailabilityService {
	t.Helper()

	svc := NewAvailabilityService(
		&stubActivityRepo{activities: activities},
		&stubTransactionRepo{transactions: transactions},
	)
	svc.now = clock.Now
	t.Cleanup(svc.Close)

	return svc
}

func TestDeriveStates(t *testing.T) {
	now := availabilityTestBase

	activities := []domain.Activity{
		{ID: 1, Name: "Billiards Table 1", IsActive: true},
		{ID: 2, Name: "PS5 Station", IsActive: true},
		{ID: 3, Name: "Board Game: Chess", IsActive: true},
		{ID: 4, Name: "Xbox Corner", IsActive: false},
	}
	transactions := []domain.Transaction{
		{ID: 10, ActivityName: "Billiards Table 1", TimeEnd: now.Add(45 * time.Minute)},
		{ID: 11, ActivityName: "PS5 Station", TimeEnd: now.Add(-5 * time.Minute)},
		{ID: 12, ActivityName: "Board Game: Chess", TimeEnd: now.Add(20 * time.Minute)},
		{ID: 13, ActivityName: "Xbox Corner", TimeEnd: now.Add(30 * time.Minute)},
	}

	states := DeriveStates(activities, transactions, now)

	require.Len(t, states, 3)
	assert.NotContains(t, states, uint(4), "inactive activities are not tracked")

	billiards := states[1]
	assert.False(t, billiards.Available)
	require.NotNil(t, billiards.EndsAt)
	assert.Equal(t, now.Add(45*time.Minute), *billiards.EndsAt)
	assert.Equal(t, "14:45", billiards.NextAvailable)

	ps5 := states[2]
	assert.True(t, ps5.Available, "an expired booking leaves the tile available")
	assert.Nil(t, ps5.EndsAt)

	chess := states[3]
	assert.False(t, chess.Available)
	assert.Nil(t, chess.EndsAt, "board games carry no end time")
	assert.Empty(t, chess.NextAvailable)
}

func TestDeriveStates_MatchesByNameSubstring(t *testing.T) {
	now := availabilityTestBase

	// The ledger stores a denormalized name; matching is containment, not a
	// foreign key. A renamed activity no longer matches its open booking.
	activities := []domain.Activity{
		{ID: 1, Name: "Billiards", IsActive: true},
		{ID: 2, Name: "Snooker Table", IsActive: true},
	}
	transactions := []domain.Transaction{
		{ActivityID: 2, ActivityName: "Billiards Table 1", TimeEnd: now.Add(time.Hour)},
	}

	states := DeriveStates(activities, transactions, now)

	assert.False(t, states[1].Available, "substring match puts Billiards in use")
	assert.True(t, states[2].Available, "the booking's own activity, renamed, no longer matches")
}

func TestDeriveStates_FirstOpenTransactionWins(t *testing.T) {
	now := availabilityTestBase

	activities := []domain.Activity{{ID: 1, Name: "PS5 Station", IsActive: true}}
	transactions := []domain.Transaction{
		{ActivityName: "PS5 Station", TimeEnd: now.Add(10 * time.Minute)},
		{ActivityName: "PS5 Station", TimeEnd: now.Add(90 * time.Minute)},
	}

	states := DeriveStates(activities, transactions, now)

	require.NotNil(t, states[1].EndsAt)
	assert.Equal(t, now.Add(10*time.Minute), *states[1].EndsAt)
}

func TestAvailabilityService_Refresh(t *testing.T) {
	clock := newTestClock(availabilityTestBase)
	svc := newTestAvailability(t, clock,
		[]domain.Activity{{ID: 1, Name: "PS5 Station", IsActive: true}},
		[]domain.Transaction{{ActivityName: "PS5 Station", TimeEnd: availabilityTestBase.Add(45 * time.Minute)}},
	)

	require.NoError(t, svc.Refresh(context.Background()))

	status, err := svc.Status(1)
	require.NoError(t, err)
	assert.False(t, status.Available)
	assert.Equal(t, "45:00", status.Countdown)
	assert.Equal(t, "14:45", status.NextAvailable)
}

func TestAvailabilityService_ManualToggle(t *testing.T) {
	clock := newTestClock(availabilityTestBase)
	svc := newTestAvailability(t, clock,
		[]domain.Activity{{ID: 1, Name: "PS5 Station", IsActive: true}},
		nil,
	)
	require.NoError(t, svc.Refresh(context.Background()))

	event, err := svc.ManualToggle(1)
	require.NoError(t, err)
	assert.False(t, event.Available)
	require.NotNil(t, event.EndsAt)
	assert.Equal(t, availabilityTestBase.Add(DefaultSessionLength), *event.EndsAt)
	assert.Equal(t, "30:00", event.Countdown)
	assert.Equal(t, "The activity has been marked as in use.", event.Message)

	event, err = svc.ManualToggle(1)
	require.NoError(t, err)
	assert.True(t, event.Available)
	assert.Empty(t, event.Countdown)
	assert.Equal(t, "The activity has been marked as available.", event.Message)
}

func TestAvailabilityService_ManualToggle_BoardGame(t *testing.T) {
	clock := newTestClock(availabilityTestBase)
	svc := newTestAvailability(t, clock,
		[]domain.Activity{{ID: 1, Name: "Board Game: Catan", IsActive: true}},
		nil,
	)
	require.NoError(t, svc.Refresh(context.Background()))

	event, err := svc.ManualToggle(1)
	require.NoError(t, err)
	assert.False(t, event.Available)
	assert.Nil(t, event.EndsAt, "board games never get a timer")
	assert.Empty(t, event.Countdown)
	assert.Equal(t, "The board game has been marked as in use.", event.Message)

	svc.mu.Lock()
	_, hasTimer := svc.timers[1]
	svc.mu.Unlock()
	assert.False(t, hasTimer)

	event, err = svc.ManualToggle(1)
	require.NoError(t, err)
	assert.True(t, event.Available)
}

func TestAvailabilityService_ManualToggle_Untracked(t *testing.T) {
	clock := newTestClock(availabilityTestBase)
	svc := newTestAvailability(t, clock, nil, nil)

	_, err := svc.ManualToggle(99)
	assert.ErrorIs(t, err, ErrActivityNotTracked)
}

func TestAvailabilityService_CountdownAdvances(t *testing.T) {
	clock := newTestClock(availabilityTestBase)
	svc := newTestAvailability(t, clock,
		[]domain.Activity{{ID: 1, Name: "PS5 Station", IsActive: true}},
		nil,
	)
	require.NoError(t, svc.Refresh(context.Background()))

	_, err := svc.Restart(1)
	require.NoError(t, err)
	endsAt := availabilityTestBase.Add(DefaultSessionLength)

	clock.Advance(time.Second)
	assert.False(t, svc.advance(1, endsAt))

	status, err := svc.Status(1)
	require.NoError(t, err)
	assert.Equal(t, "29:59", status.Countdown)

	// A sub-second remainder still renders as 0:00 for one tick before the
	// transition.
	clock.Set(endsAt.Add(-500 * time.Millisecond))
	assert.False(t, svc.advance(1, endsAt))

	status, err = svc.Status(1)
	require.NoError(t, err)
	assert.Equal(t, "0:00", status.Countdown)
	assert.False(t, status.Available)

	clock.Set(endsAt.Add(time.Second))
	assert.True(t, svc.advance(1, endsAt))

	status, err = svc.Status(1)
	require.NoError(t, err)
	assert.True(t, status.Available)
	assert.Empty(t, status.Countdown)
	assert.Empty(t, status.NextAvailable)
}

func TestAvailabilityService_AdvanceIgnoresStaleTimer(t *testing.T) {
	clock := newTestClock(availabilityTestBase)
	svc := newTestAvailability(t, clock,
		[]domain.Activity{{ID: 1, Name: "PS5 Station", IsActive: true}},
		nil,
	)
	require.NoError(t, svc.Refresh(context.Background()))

	_, err := svc.Restart(1)
	require.NoError(t, err)

	staleEndsAt := availabilityTestBase.Add(10 * time.Minute)
	assert.True(t, svc.advance(1, staleEndsAt), "a timer for a replaced window stops itself")

	status, err := svc.Status(1)
	require.NoError(t, err)
	assert.False(t, status.Available, "the stale tick does not touch the tile")
	assert.Equal(t, "30:00", status.Countdown)
}

func TestAvailabilityService_StopThenSweepReverts(t *testing.T) {
	clock := newTestClock(availabilityTestBase)
	svc := newTestAvailability(t, clock,
		[]domain.Activity{{ID: 1, Name: "PS5 Station", IsActive: true}},
		[]domain.Transaction{{ActivityName: "PS5 Station", TimeEnd: availabilityTestBase.Add(time.Hour)}},
	)
	require.NoError(t, svc.Refresh(context.Background()))

	event, err := svc.Stop(1)
	require.NoError(t, err)
	assert.True(t, event.Available)
	assert.Equal(t, "Timer stopped. The activity is now available.", event.Message)

	// The booking stays open in the ledger, so the next sweep puts the tile
	// right back in use. Manual state is never written back.
	require.NoError(t, svc.Refresh(context.Background()))

	status, err := svc.Status(1)
	require.NoError(t, err)
	assert.False(t, status.Available)
	require.NotNil(t, status.EndsAt)
	assert.Equal(t, availabilityTestBase.Add(time.Hour), *status.EndsAt)
}

func TestAvailabilityService_Restart(t *testing.T) {
	clock := newTestClock(availabilityTestBase)
	svc := newTestAvailability(t, clock,
		[]domain.Activity{{ID: 1, Name: "PS5 Station", IsActive: true}},
		[]domain.Transaction{{ActivityName: "PS5 Station", TimeEnd: availabilityTestBase.Add(5 * time.Minute)}},
	)
	require.NoError(t, svc.Refresh(context.Background()))

	event, err := svc.Restart(1)
	require.NoError(t, err)
	assert.False(t, event.Available)
	require.NotNil(t, event.EndsAt)
	assert.Equal(t, availabilityTestBase.Add(DefaultSessionLength), *event.EndsAt)
	assert.Equal(t, "30:00", event.Countdown)
	assert.Equal(t, "The timer has been reset to 30 minutes.", event.Message)
}

func TestAvailabilityService_OnTransactionCreated(t *testing.T) {
	clock := newTestClock(availabilityTestBase)
	svc := newTestAvailability(t, clock,
		[]domain.Activity{{ID: 1, Name: "PS5 Station", IsActive: true}},
		nil,
	)
	require.NoError(t, svc.Refresh(context.Background()))

	endsAt := availabilityTestBase.Add(31 * time.Minute)
	svc.OnTransactionCreated(context.Background(), 1, endsAt)

	status, err := svc.Status(1)
	require.NoError(t, err)
	assert.False(t, status.Available)
	require.NotNil(t, status.EndsAt)
	assert.Equal(t, endsAt, *status.EndsAt)
	assert.Equal(t, "31:00", status.Countdown)
	assert.Equal(t, "14:31", status.NextAvailable)
}

func TestAvailabilityService_OnTransactionCreated_LazyTile(t *testing.T) {
	clock := newTestClock(availabilityTestBase)
	svc := newTestAvailability(t, clock,
		[]domain.Activity{
			{ID: 1, Name: "PS5 Station", IsActive: true},
			{ID: 2, Name: "Retired Corner", IsActive: false},
		},
		nil,
	)

	// No Refresh has run; the tile is created on demand from the repository.
	svc.OnTransactionCreated(context.Background(), 1, availabilityTestBase.Add(time.Hour))

	status, err := svc.Status(1)
	require.NoError(t, err)
	assert.False(t, status.Available)

	// Inactive activities are ignored entirely.
	svc.OnTransactionCreated(context.Background(), 2, availabilityTestBase.Add(time.Hour))
	_, err = svc.Status(2)
	assert.ErrorIs(t, err, ErrActivityNotTracked)
}

func TestAvailabilityService_OnTransactionCreated_BoardGame(t *testing.T) {
	clock := newTestClock(availabilityTestBase)
	svc := newTestAvailability(t, clock,
		[]domain.Activity{{ID: 1, Name: "Board Game: Chess", IsActive: true}},
		nil,
	)
	require.NoError(t, svc.Refresh(context.Background()))

	svc.OnTransactionCreated(context.Background(), 1, availabilityTestBase.Add(time.Hour))

	status, err := svc.Status(1)
	require.NoError(t, err)
	assert.False(t, status.Available)
	assert.Nil(t, status.EndsAt)
	assert.Empty(t, status.Countdown)
}

func TestAvailabilityService_RefreshDropsRetiredTiles(t *testing.T) {
	clock := newTestClock(availabilityTestBase)
	activityRepo := &stubActivityRepo{activities: []domain.Activity{{ID: 1, Name: "PS5 Station", IsActive: true}}}
	svc := NewAvailabilityService(activityRepo, &stubTransactionRepo{})
	svc.now = clock.Now
	t.Cleanup(svc.Close)

	require.NoError(t, svc.Refresh(context.Background()))
	_, err := svc.Status(1)
	require.NoError(t, err)

	activityRepo.mu.Lock()
	activityRepo.activities[0].IsActive = false
	activityRepo.mu.Unlock()

	require.NoError(t, svc.Refresh(context.Background()))
	_, err = svc.Status(1)
	assert.ErrorIs(t, err, ErrActivityNotTracked)
}

func TestAvailabilityService_Snapshot(t *testing.T) {
	clock := newTestClock(availabilityTestBase)
	svc := newTestAvailability(t, clock,
		[]domain.Activity{
			{ID: 3, Name: "Switch Corner", IsActive: true},
			{ID: 1, Name: "PS5 Station", IsActive: true},
			{ID: 2, Name: "Billiards Table 1", IsActive: true},
		},
		nil,
	)
	require.NoError(t, svc.Refresh(context.Background()))

	snapshot := svc.Snapshot()

	require.Len(t, snapshot, 3)
	assert.Equal(t, uint(1), snapshot[0].ActivityID)
	assert.Equal(t, uint(2), snapshot[1].ActivityID)
	assert.Equal(t, uint(3), snapshot[2].ActivityID)
}

func TestAvailabilityService_Subscribe(t *testing.T) {
	clock := newTestClock(availabilityTestBase)
	svc := newTestAvailability(t, clock,
		[]domain.Activity{{ID: 1, Name: "PS5 Station", IsActive: true}},
		nil,
	)
	require.NoError(t, svc.Refresh(context.Background()))

	events, unsubscribe := svc.Subscribe()
	defer unsubscribe()

	_, err := svc.ManualToggle(1)
	require.NoError(t, err)

	select {
	case event := <-events:
		assert.Equal(t, uint(1), event.ActivityID)
		assert.False(t, event.Available)
		assert.NotEmpty(t, event.Message)
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}

	unsubscribe()
	_, ok := <-events
	assert.False(t, ok, "unsubscribe closes the channel")
}

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		remaining time.Duration
		want      string
	}{
		{30 * time.Minute, "30:00"},
		{90 * time.Second, "1:30"},
		{59 * time.Second, "0:59"},
		{500 * time.Millisecond, "0:00"},
		{-time.Second, "0:00"},
		{61 * time.Minute, "61:00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatCountdown(tt.remaining), "remaining %v", tt.remaining)
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "9:05", formatClock(time.Date(2024, 3, 15, 9, 5, 0, 0, time.UTC)))
	assert.Equal(t, "14:45", formatClock(time.Date(2024, 3, 15, 14, 45, 0, 0, time.UTC)))
	assert.Equal(t, "0:00", formatClock(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)))
}
