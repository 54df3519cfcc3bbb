package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	notificationDto "anoa.com/learnquest/internal/modules/notification/dto"
	"anoa.com/learnquest/pkg/logger"
	"anoa.com/learnquest/pkg/metrics"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const subscriberBuffer = 16

// Notifier delivers gamification events to a user. Delivery is best effort.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, event notificationDto.Event)
}

type NotificationService interface {
	Notifier
	// Subscribe streams the user's events as JSON until the subscription is closed.
	Subscribe(ctx context.Context, userID uuid.UUID) (*Subscription, error)
}

type Subscription struct {
	C      <-chan []byte
	once   sync.Once
	cancel func()
}

func (s *Subscription) Close() {
	s.once.Do(s.cancel)
}

// notificationService fans events out through Redis pub/sub when Redis is
// configured, so every instance reaches its own sockets, and in process otherwise.
type notificationService struct {
	redisClient *redis.Client

	mu          sync.RWMutex
	subscribers map[uuid.UUID]map[chan []byte]struct{}
}

func NewNotificationService(redisClient *redis.Client) NotificationService {
	return &notificationService{
		redisClient: redisClient,
		subscribers: make(map[uuid.UUID]map[chan []byte]struct{}),
	}
}

func channelName(userID uuid.UUID) string {
	return fmt.Sprintf("user_notifications:%s", userID.String())
}

func (s *notificationService) Notify(ctx context.Context, userID uuid.UUID, event notificationDto.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Log.Warnw("failed to encode notification", "user_id", userID, "error", err)
		return
	}
	metrics.NotificationsTotal.WithLabelValues(event.Type).Inc()

	if s.redisClient != nil {
		if err := s.redisClient.Publish(ctx, channelName(userID), payload).Err(); err != nil {
			logger.Log.Warnw("failed to publish notification", "user_id", userID, "error", err)
		}
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for ch := range s.subscribers[userID] {
		select {
		case ch <- payload:
		default:
			logger.Log.Warnw("notification dropped for slow subscriber", "user_id", userID, "type", event.Type)
		}
	}
}

func (s *notificationService) Subscribe(ctx context.Context, userID uuid.UUID) (*Subscription, error) {
	if s.redisClient != nil {
		return s.subscribeRedis(ctx, userID)
	}

	ch := make(chan []byte, subscriberBuffer)
	s.mu.Lock()
	if s.subscribers[userID] == nil {
		s.subscribers[userID] = make(map[chan []byte]struct{})
	}
	s.subscribers[userID][ch] = struct{}{}
	s.mu.Unlock()

	return &Subscription{
		C: ch,
		cancel: func() {
			s.mu.Lock()
			delete(s.subscribers[userID], ch)
			if len(s.subscribers[userID]) == 0 {
				delete(s.subscribers, userID)
			}
			s.mu.Unlock()
			close(ch)
		},
	}, nil
}

func (s *notificationService) subscribeRedis(ctx context.Context, userID uuid.UUID) (*Subscription, error) {
	pubsub := s.redisClient.Subscribe(ctx, channelName(userID))
	// Wait for confirmation that subscription is created
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to redis channel: %w", err)
	}

	out := make(chan []byte, subscriberBuffer)
	done := make(chan struct{})
	go func() {
		defer close(out)
		messages := pubsub.Channel()
		for {
			select {
			case msg, ok := <-messages:
				if !ok {
					return
				}
				select {
				case out <- []byte(msg.Payload):
				case <-done:
					return
				}
			case <-done:
				return
			}
		}
	}()

	return &Subscription{
		C: out,
		cancel: func() {
			close(done)
			_ = pubsub.Close()
		},
	}, nil
}
