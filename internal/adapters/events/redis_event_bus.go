package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/zinklake/shuttle/internal/domain/entities"
	"github.com/zinklake/shuttle/internal/domain/providers"
	redisclient "github.com/zinklake/shuttle/internal/infrastructure/clients/redis"
)

const subscriberBuffer = 100

// subscription is the part of *redis.PubSub the bus uses.
type subscription interface {
	Channel(opts ...redis.ChannelOption) <-chan *redis.Message
	Close() error
}

type pubSub interface {
	publish(ctx context.Context, channel string, payload []byte) error
	subscribe(ctx context.Context, channel string) subscription
}

type redisPubSub struct {
	client *redis.Client
}

func (r redisPubSub) publish(ctx context.Context, channel string, payload []byte) error {
	return r.client.Publish(ctx, channel, payload).Err()
}

func (r redisPubSub) subscribe(ctx context.Context, channel string) subscription {
	return r.client.Subscribe(ctx, channel)
}

// RedisEventBus implements the EventBus interface using Redis Pub/Sub
type RedisEventBus struct {
	client        pubSub
	subscriptions map[string]subscription
	subscribers   map[string]map[chan *entities.RideEvent]struct{}
	mu            sync.RWMutex
	ctx           context.Context
	cancel        context.CancelFunc
}

var _ providers.EventBus = (*RedisEventBus)(nil)

// NewRedisEventBus creates a new Redis-based event bus
func NewRedisEventBus(client *redisclient.Client) *RedisEventBus {
	return newEventBus(redisPubSub{client: client.Client()})
}

func newEventBus(client pubSub) *RedisEventBus {
	ctx, cancel := context.WithCancel(context.Background())
	return &RedisEventBus{
		client:        client,
		subscriptions: make(map[string]subscription),
		subscribers:   make(map[string]map[chan *entities.RideEvent]struct{}),
		ctx:           ctx,
		cancel:        cancel,
	}
}

// Publish publishes an event to all subscribers
func (b *RedisEventBus) Publish(ctx context.Context, channel string, event *entities.RideEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := b.client.publish(ctx, channel, data); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	log.Debug().Str("channel", channel).Str("event_id", event.ID).Msg("published ride event")
	return nil
}

// Subscribe subscribes to events on a channel. The returned channel is closed
// when ctx ends or the bus is closed.
func (b *RedisEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.RideEvent, error) {
	if err := b.ctx.Err(); err != nil {
		return nil, fmt.Errorf("event bus closed: %w", err)
	}

	b.mu.Lock()
	if _, exists := b.subscriptions[channel]; !exists {
		sub := b.client.subscribe(b.ctx, channel)
		b.subscriptions[channel] = sub
		go b.receiveMessages(channel, sub)
	}

	if b.subscribers[channel] == nil {
		b.subscribers[channel] = make(map[chan *entities.RideEvent]struct{})
	}

	eventChan := make(chan *entities.RideEvent, subscriberBuffer)
	b.subscribers[channel][eventChan] = struct{}{}
	subscriberCount := len(b.subscribers[channel])
	b.mu.Unlock()

	log.Info().Str("channel", channel).Int("subscribers", subscriberCount).Msg("subscribed to channel")

	go func() {
		select {
		case <-ctx.Done():
		case <-b.ctx.Done():
		}
		b.removeSubscriber(channel, eventChan)
	}()

	return eventChan, nil
}

// receiveMessages fans messages from Redis out to local subscribers. When sub
// ends on its own it tears the channel down, unless sub has already been
// replaced by a newer subscription on the same channel.
func (b *RedisEventBus) receiveMessages(channel string, sub subscription) {
	defer b.releaseSubscription(channel, sub)

	ch := sub.Channel()
	for {
		select {
		case <-b.ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}

			var event entities.RideEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Warn().Err(err).Str("channel", channel).Msg("dropping undecodable ride event")
				continue
			}

			b.mu.RLock()
			for subscriber := range b.subscribers[channel] {
				select {
				case subscriber <- &event:
				default:
					log.Warn().Str("channel", channel).Str("event_id", event.ID).Msg("subscriber channel full, skipping event")
				}
			}
			b.mu.RUnlock()
		}
	}
}

func (b *RedisEventBus) removeSubscriber(channel string, eventChan chan *entities.RideEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subscribers, exists := b.subscribers[channel]
	if !exists {
		return
	}
	if _, ok := subscribers[eventChan]; !ok {
		return
	}

	delete(subscribers, eventChan)
	close(eventChan)

	if len(subscribers) == 0 {
		delete(b.subscribers, channel)
		if sub, ok := b.subscriptions[channel]; ok {
			_ = sub.Close()
			delete(b.subscriptions, channel)
			log.Info().Str("channel", channel).Msg("closed subscription")
		}
	}
}

func (b *RedisEventBus) releaseSubscription(channel string, sub subscription) {
	if err := b.cleanupSubscription(channel, sub); err != nil {
		log.Error().Err(err).Str("channel", channel).Msg("failed to cleanup channel")
	}
}

// cleanupSubscription is cleanupChannel restricted to sub still being the
// channel's live subscription.
func (b *RedisEventBus) cleanupSubscription(channel string, sub subscription) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if current, ok := b.subscriptions[channel]; !ok || current != sub {
		return nil
	}
	return b.cleanupLocked(channel)
}

func (b *RedisEventBus) cleanupChannel(channel string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cleanupLocked(channel)
}

func (b *RedisEventBus) cleanupLocked(channel string) error {
	if subscribers, exists := b.subscribers[channel]; exists {
		for subscriber := range subscribers {
			close(subscriber)
		}
		delete(b.subscribers, channel)
	}

	if sub, ok := b.subscriptions[channel]; ok {
		delete(b.subscriptions, channel)
		if err := sub.Close(); err != nil {
			return fmt.Errorf("failed to close subscription %s: %w", channel, err)
		}
	}

	return nil
}

// Unsubscribe unsubscribes from a channel
func (b *RedisEventBus) Unsubscribe(ctx context.Context, channel string) error {
	return b.cleanupChannel(channel)
}

// Close closes the event bus and all subscriptions
func (b *RedisEventBus) Close() error {
	b.cancel()

	b.mu.RLock()
	channels := make([]string, 0, len(b.subscriptions))
	for channel := range b.subscriptions {
		channels = append(channels, channel)
	}
	b.mu.RUnlock()

	var errs []error
	for _, channel := range channels {
		if err := b.cleanupChannel(channel); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing event bus: %w", errors.Join(errs...))
	}

	log.Info().Msg("event bus closed")
	return nil
}
