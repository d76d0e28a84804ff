package services_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"
	"github.com/zinklake/shuttle/internal/domain/entities"
)

// recordingEventBus keeps published events and hands out channels that tests
// can feed directly.
type recordingEventBus struct {
	mu          sync.Mutex
	published   map[string][]*entities.RideEvent
	subscribers map[string]chan *entities.RideEvent
	publishErr  error
}

func newRecordingEventBus() *recordingEventBus {
	return &recordingEventBus{
		published:   make(map[string][]*entities.RideEvent),
		subscribers: make(map[string]chan *entities.RideEvent),
	}
}

func (b *recordingEventBus) Publish(ctx context.Context, channel string, event *entities.RideEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.publishErr != nil {
		return b.publishErr
	}
	b.published[channel] = append(b.published[channel], event)
	return nil
}

func (b *recordingEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.RideEvent, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan *entities.RideEvent, 10)
	b.subscribers[channel] = ch
	return ch, nil
}

func (b *recordingEventBus) Unsubscribe(ctx context.Context, channel string) error {
	return nil
}

func (b *recordingEventBus) Close() error {
	return nil
}

func (b *recordingEventBus) send(channel string, event *entities.RideEvent) {
	b.mu.Lock()
	ch := b.subscribers[channel]
	b.mu.Unlock()
	ch <- event
}

func (b *recordingEventBus) events(channel string) []*entities.RideEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*entities.RideEvent(nil), b.published[channel]...)
}

// mockRideRepository is a testify mock for failure paths.
type mockRideRepository struct {
	mock.Mock
}

func (m *mockRideRepository) List(ctx context.Context) ([]entities.Ride, error) {
	args := m.Called(ctx)
	rides, _ := args.Get(0).([]entities.Ride)
	return rides, args.Error(1)
}

func (m *mockRideRepository) GetByID(ctx context.Context, id string) (*entities.Ride, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*entities.Ride)
	return r, args.Error(1)
}

func (m *mockRideRepository) Create(ctx context.Context, ride *entities.Ride) error {
	return m.Called(ctx, ride).Error(0)
}

func (m *mockRideRepository) UpdateStatus(ctx context.Context, id string, status entities.RideStatus) (*entities.Ride, error) {
	args := m.Called(ctx, id, status)
	r, _ := args.Get(0).(*entities.Ride)
	return r, args.Error(1)
}

type mockFaqRepository struct {
	mock.Mock
}

func (m *mockFaqRepository) List(ctx context.Context) ([]entities.FaqEntry, error) {
	args := m.Called(ctx)
	entries, _ := args.Get(0).([]entities.FaqEntry)
	return entries, args.Error(1)
}

func (m *mockFaqRepository) GetByID(ctx context.Context, id string) (*entities.FaqEntry, error) {
	args := m.Called(ctx, id)
	e, _ := args.Get(0).(*entities.FaqEntry)
	return e, args.Error(1)
}

// recordingInvalidator remembers which rides had their cache cleared.
type recordingInvalidator struct {
	mu    sync.Mutex
	rides []string
	err   error
}

func (i *recordingInvalidator) InvalidateRide(ctx context.Context, rideID string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.rides = append(i.rides, rideID)
	return i.err
}

func (i *recordingInvalidator) invalidated() []string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return append([]string(nil), i.rides...)
}
