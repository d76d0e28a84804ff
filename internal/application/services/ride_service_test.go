package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zinklake/shuttle/internal/adapters/catalog"
	"github.com/zinklake/shuttle/internal/adapters/memory"
	"github.com/zinklake/shuttle/internal/application/services"
	"github.com/zinklake/shuttle/internal/domain/entities"
	"github.com/zinklake/shuttle/internal/domain/providers"
	"github.com/zinklake/shuttle/internal/domain/ride"
	apperrors "github.com/zinklake/shuttle/pkg/errors"
)

func TestRideService_Track(t *testing.T) {
	svc := services.NewRideService(memory.NewRideAdapter(catalog.DefaultRides()), nil, services.RideServiceOptions{})

	tracking, err := svc.Track(context.Background())
	require.NoError(t, err)

	require.NotNil(t, tracking.Active)
	assert.Equal(t, "12345", tracking.Active.ID)
	assert.Equal(t, 2, tracking.Active.Tracker.StepIndex)
	assert.Equal(t, "In Progress", tracking.Active.StatusInfo.Label)

	require.Len(t, tracking.Upcoming, 1)
	assert.Equal(t, "12346", tracking.Upcoming[0].ID)
	assert.Equal(t, 1, tracking.Upcoming[0].Tracker.StepIndex)
}

func TestRideService_Track_NoActiveRide(t *testing.T) {
	repo := memory.NewRideAdapter([]entities.Ride{
		{ID: "a", Status: entities.RideStatusCompleted},
		{ID: "b", Status: entities.RideStatusCancelled},
	})
	svc := services.NewRideService(repo, nil, services.RideServiceOptions{})

	tracking, err := svc.Track(context.Background())
	require.NoError(t, err)

	assert.Nil(t, tracking.Active)
	assert.NotNil(t, tracking.Upcoming)
	assert.Empty(t, tracking.Upcoming)
}

func TestRideService_Track_CanceledBeforeFeedRead(t *testing.T) {
	repo := &mockRideRepository{}
	svc := services.NewRideService(repo, nil, services.RideServiceOptions{FeedLatency: time.Hour})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := svc.Track(ctx)

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeCanceled))
	repo.AssertNotCalled(t, "List", mock.Anything)
}

func TestRideService_Track_ReadsFeedAfterLatency(t *testing.T) {
	svc := services.NewRideService(memory.NewRideAdapter(catalog.DefaultRides()), nil, services.RideServiceOptions{FeedLatency: 20 * time.Millisecond})

	start := time.Now()
	tracking, err := svc.Track(context.Background())
	require.NoError(t, err)

	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	require.NotNil(t, tracking.Active)
	assert.Equal(t, "12345", tracking.Active.ID)
}

func TestRideService_Track_AbandonedMidDelay(t *testing.T) {
	repo := &mockRideRepository{}
	svc := services.NewRideService(repo, nil, services.RideServiceOptions{FeedLatency: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := svc.Track(ctx)
		done <- err
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeCanceled))
	case <-time.After(time.Second):
		t.Fatal("Track did not return after its context was canceled")
	}
	repo.AssertNotCalled(t, "List", mock.Anything)
}

func TestRideService_Track_RepositoryError(t *testing.T) {
	repo := &mockRideRepository{}
	repo.On("List", mock.Anything).Return(nil, errors.New("feed down"))
	svc := services.NewRideService(repo, nil, services.RideServiceOptions{})

	_, err := svc.Track(context.Background())

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInternal))
	repo.AssertExpectations(t)
}

func TestRideService_Progress(t *testing.T) {
	svc := services.NewRideService(memory.NewRideAdapter(catalog.DefaultRides()), nil, services.RideServiceOptions{})

	view, err := svc.Progress(context.Background(), "12346")
	require.NoError(t, err)
	assert.Equal(t, entities.RideStatusScheduled, view.Status)
	assert.True(t, view.Tracker.Visible)

	_, err = svc.Progress(context.Background(), "nope")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestRideService_Progress_CancelledPolicy(t *testing.T) {
	seed := []entities.Ride{{ID: "c", Status: entities.RideStatusCancelled}}

	hide := services.NewRideService(memory.NewRideAdapter(seed), nil, services.RideServiceOptions{})
	view, err := hide.Progress(context.Background(), "c")
	require.NoError(t, err)
	assert.False(t, view.Tracker.Visible)

	reset := services.NewRideService(memory.NewRideAdapter(seed), nil, services.RideServiceOptions{CancelledPolicy: ride.CancelledPolicyReset})
	view, err = reset.Progress(context.Background(), "c")
	require.NoError(t, err)
	assert.True(t, view.Tracker.Visible)
	assert.Zero(t, view.Tracker.StepIndex)
}

func TestRideService_UpdateStatus_PublishesEvent(t *testing.T) {
	bus := newRecordingEventBus()
	svc := services.NewRideService(memory.NewRideAdapter(catalog.DefaultRides()), bus, services.RideServiceOptions{})

	view, err := svc.UpdateStatus(context.Background(), "12345", "arriving")
	require.NoError(t, err)
	assert.Equal(t, entities.RideStatusArriving, view.Status)
	assert.Equal(t, 3, view.Tracker.StepIndex)

	rideEvents := bus.events(providers.GetRideChannel("12345"))
	require.Len(t, rideEvents, 1)
	assert.Equal(t, "12345", rideEvents[0].RideID)
	assert.Equal(t, entities.RideStatusArriving, rideEvents[0].Status)
	assert.Equal(t, 3, rideEvents[0].StepIndex)
	assert.NotEmpty(t, rideEvents[0].ID)

	assert.Len(t, bus.events(providers.EventChannelRideUpdates), 1)

	stored, err := svc.Progress(context.Background(), "12345")
	require.NoError(t, err)
	assert.Equal(t, entities.RideStatusArriving, stored.Status)
}

func TestRideService_UpdateStatus_InvalidStatus(t *testing.T) {
	bus := newRecordingEventBus()
	svc := services.NewRideService(memory.NewRideAdapter(catalog.DefaultRides()), bus, services.RideServiceOptions{})

	_, err := svc.UpdateStatus(context.Background(), "12345", "teleporting")

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	assert.Empty(t, bus.events(providers.EventChannelRideUpdates))
}

func TestRideService_UpdateStatus_UnknownRide(t *testing.T) {
	bus := newRecordingEventBus()
	svc := services.NewRideService(memory.NewRideAdapter(nil), bus, services.RideServiceOptions{})

	_, err := svc.UpdateStatus(context.Background(), "ghost", "completed")

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	assert.Empty(t, bus.events(providers.EventChannelRideUpdates))
}

func TestRideService_UpdateStatus_PublishFailureKeepsUpdate(t *testing.T) {
	bus := newRecordingEventBus()
	bus.publishErr = errors.New("redis down")
	svc := services.NewRideService(memory.NewRideAdapter(catalog.DefaultRides()), bus, services.RideServiceOptions{})

	view, err := svc.UpdateStatus(context.Background(), "12346", "cancelled")
	require.NoError(t, err)
	assert.Equal(t, entities.RideStatusCancelled, view.Status)
	assert.False(t, view.Tracker.Visible)
}

func TestRideService_UpdateStatus_ClearsRideCache(t *testing.T) {
	invalidator := &recordingInvalidator{}
	svc := services.NewRideService(memory.NewRideAdapter(catalog.DefaultRides()), nil, services.RideServiceOptions{Invalidator: invalidator})

	_, err := svc.UpdateStatus(context.Background(), "12346", "in-progress")
	require.NoError(t, err)
	assert.Equal(t, []string{"12346"}, invalidator.invalidated())

	_, err = svc.UpdateStatus(context.Background(), "12346", "warp")
	require.Error(t, err)
	assert.Len(t, invalidator.invalidated(), 1)
}

func TestRideService_UpdateStatus_InvalidationFailureKeepsUpdate(t *testing.T) {
	invalidator := &recordingInvalidator{err: errors.New("redis down")}
	svc := services.NewRideService(memory.NewRideAdapter(catalog.DefaultRides()), nil, services.RideServiceOptions{Invalidator: invalidator})

	view, err := svc.UpdateStatus(context.Background(), "12346", "arriving")
	require.NoError(t, err)
	assert.Equal(t, entities.RideStatusArriving, view.Status)
}
