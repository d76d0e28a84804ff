package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zinklake/shuttle/internal/domain/entities"
	"github.com/zinklake/shuttle/internal/domain/providers"
)

const (
	// rideTrackCachePattern matches cached tracker responses.
	rideTrackCachePattern = "http:cache:/api/rides/track:*"
)

// CacheInvalidationService drops cached ride responses when a ride changes.
type CacheInvalidationService struct {
	cache    providers.CacheProvider
	eventBus providers.EventBus
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewCacheInvalidationService creates a new cache invalidation service
func NewCacheInvalidationService(cache providers.CacheProvider, eventBus providers.EventBus) *CacheInvalidationService {
	ctx, cancel := context.WithCancel(context.Background())
	return &CacheInvalidationService{
		cache:    cache,
		eventBus: eventBus,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start begins listening for ride events. Without an event bus the service
// only serves direct InvalidateRide calls.
func (s *CacheInvalidationService) Start() error {
	if s.eventBus == nil {
		return errors.New("no event bus configured")
	}
	eventChan, err := s.eventBus.Subscribe(s.ctx, providers.EventChannelRideUpdates)
	if err != nil {
		return fmt.Errorf("failed to subscribe to ride updates: %w", err)
	}

	s.wg.Add(1)
	go s.processEvents(eventChan)
	log.Info().Msg("cache invalidation service started")
	return nil
}

// Stop stops the service and waits for the event loop to exit.
func (s *CacheInvalidationService) Stop() {
	s.cancel()
	s.wg.Wait()
	log.Info().Msg("cache invalidation service stopped")
}

func (s *CacheInvalidationService) processEvents(eventChan <-chan *entities.RideEvent) {
	defer s.wg.Done()
	for {
		select {
		case <-s.ctx.Done():
			return
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			if event == nil {
				continue
			}
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := s.InvalidateRide(ctx, event.RideID); err != nil {
				log.Warn().Err(err).Str("ride_id", event.RideID).Str("event_id", event.ID).Msg("cache invalidation failed")
			}
			cancel()
		}
	}
}

// InvalidateRide drops the tracker and the ride's own cached responses.
func (s *CacheInvalidationService) InvalidateRide(ctx context.Context, rideID string) error {
	patterns := []string{
		rideTrackCachePattern,
		fmt.Sprintf("http:cache:/api/rides/%s/*", rideID),
	}
	for _, pattern := range patterns {
		if err := s.cache.DeletePattern(ctx, pattern); err != nil {
			return fmt.Errorf("failed to invalidate pattern %s: %w", pattern, err)
		}
	}
	log.Debug().Str("ride_id", rideID).Msg("invalidated ride caches")
	return nil
}
