package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	notificationDto "anoa.com/learnquest/internal/modules/notification/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, sub *Subscription) notificationDto.Event {
	t.Helper()
	select {
	case payload := <-sub.C:
		var event notificationDto.Event
		require.NoError(t, json.Unmarshal(payload, &event))
		return event
	case <-time.After(time.Second):
		t.Fatal("no notification received")
		return notificationDto.Event{}
	}
}

func TestNotificationService_InMemoryFanOut(t *testing.T) {
	svc := NewNotificationService(nil)
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	first, err := svc.Subscribe(ctx, alice)
	require.NoError(t, err)
	defer first.Close()
	second, err := svc.Subscribe(ctx, alice)
	require.NoError(t, err)
	defer second.Close()
	other, err := svc.Subscribe(ctx, bob)
	require.NoError(t, err)
	defer other.Close()

	svc.Notify(ctx, alice, notificationDto.Event{Type: notificationDto.TypeTierUp, UserID: alice, Tier: "Gold"})

	for _, sub := range []*Subscription{first, second} {
		event := receive(t, sub)
		assert.Equal(t, notificationDto.TypeTierUp, event.Type)
		assert.Equal(t, "Gold", event.Tier)
	}
	assert.Empty(t, other.C, "events are scoped to their user")
}

func TestNotificationService_CloseUnsubscribes(t *testing.T) {
	svc := NewNotificationService(nil).(*notificationService)
	ctx := context.Background()
	userID := uuid.New()

	sub, err := svc.Subscribe(ctx, userID)
	require.NoError(t, err)
	sub.Close()
	sub.Close()

	_, open := <-sub.C
	assert.False(t, open)
	assert.NotContains(t, svc.subscribers, userID)

	// No subscriber left; must not block or panic.
	svc.Notify(ctx, userID, notificationDto.Event{Type: notificationDto.TypeBadgeEarned})
}

func TestNotificationService_SlowSubscriberDoesNotBlock(t *testing.T) {
	svc := NewNotificationService(nil)
	ctx := context.Background()
	userID := uuid.New()

	sub, err := svc.Subscribe(ctx, userID)
	require.NoError(t, err)
	defer sub.Close()

	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer+5; i++ {
			svc.Notify(ctx, userID, notificationDto.Event{Type: notificationDto.TypeBadgeEarned})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Notify blocked on a full subscriber")
	}
	assert.Len(t, sub.C, subscriberBuffer)
}
