package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"notepad-be/internal/dto"
	"notepad-be/internal/pkg/logger"
	"notepad-be/internal/repository/memory"
	"notepad-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTopic = "NOTE_CHANGES_TEST"

type recordingBroadcaster struct {
	payloads chan []byte
}

func (b *recordingBroadcaster) Broadcast(payload []byte) {
	b.payloads <- payload
}

type recordingEventPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingEventPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingEventPublisher) recorded() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Event(nil), p.events...)
}

func newTestPubSub(t *testing.T) *gochannel.GoChannel {
	t.Helper()
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { _ = pubSub.Close() })
	return pubSub
}

func TestConsumerService_FansOutChanges(t *testing.T) {
	pubSub := newTestPubSub(t)
	cache := memory.NewOverviewCache(time.Minute)
	broadcaster := &recordingBroadcaster{payloads: make(chan []byte, 1)}
	forwarder := &recordingEventPublisher{}

	consumer := NewConsumerService(pubSub, testTopic, cache, broadcaster, forwarder, logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, consumer.Consume(ctx))

	require.True(t, cache.SaveIfCurrent(cache.Generation(), &dto.FoldersOverviewResponse{}))

	noteId := uuid.New()
	payload, err := json.Marshal(dto.ChangeMessage{Type: events.NoteCreated, NoteId: &noteId, OccurredAt: testStart})
	require.NoError(t, err)
	require.NoError(t, NewPublisherService(pubSub, testTopic).Publish(ctx, payload))

	select {
	case got := <-broadcaster.payloads:
		assert.JSONEq(t, string(payload), string(got))
	case <-time.After(2 * time.Second):
		t.Fatal("change was not broadcast")
	}

	assert.Eventually(t, func() bool { return len(forwarder.recorded()) == 1 }, 2*time.Second, 10*time.Millisecond)
	evt := forwarder.recorded()[0]
	assert.Equal(t, events.NoteCreated, evt.EventType())
	assert.Equal(t, noteId.String(), evt.Payload()["note_id"])
	assert.True(t, evt.Timestamp().Equal(testStart))

	_, cached := cache.Get()
	assert.False(t, cached, "remote or local changes drop the overview snapshot")
}

func TestConsumerService_AcksUndecodableMessages(t *testing.T) {
	pubSub := newTestPubSub(t)
	broadcaster := &recordingBroadcaster{payloads: make(chan []byte, 1)}

	consumer := NewConsumerService(pubSub, testTopic, nil, broadcaster, nil, logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, consumer.Consume(ctx))

	require.NoError(t, pubSub.Publish(testTopic, message.NewMessage(watermill.NewUUID(), []byte("not json"))))

	valid, err := json.Marshal(dto.ChangeMessage{Type: events.NoteDeleted, OccurredAt: testStart})
	require.NoError(t, err)
	require.NoError(t, pubSub.Publish(testTopic, message.NewMessage(watermill.NewUUID(), valid)))

	// the bad message was acked, otherwise the valid one would never arrive
	select {
	case got := <-broadcaster.payloads:
		assert.JSONEq(t, string(valid), string(got))
	case <-time.After(2 * time.Second):
		t.Fatal("consumer stalled on an undecodable message")
	}
}

func TestChangeNotifier_PublishesAndInvalidates(t *testing.T) {
	pubSub := newTestPubSub(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	messages, err := pubSub.Subscribe(ctx, testTopic)
	require.NoError(t, err)

	cache := memory.NewOverviewCache(time.Minute)
	require.True(t, cache.SaveIfCurrent(cache.Generation(), &dto.FoldersOverviewResponse{}))

	notifier := NewChangeNotifier(NewPublisherService(pubSub, testTopic), cache, logger.NewNopLogger())
	folderId := uuid.New()
	notifier.Notify(ctx, dto.ChangeMessage{Type: events.FolderDeleted, FolderId: &folderId, Affected: 2, OccurredAt: testStart})

	_, cached := cache.Get()
	assert.False(t, cached)

	select {
	case msg := <-messages:
		var change dto.ChangeMessage
		require.NoError(t, json.Unmarshal(msg.Payload, &change))
		msg.Ack()
		assert.Equal(t, events.FolderDeleted, change.Type)
		assert.Equal(t, int64(2), change.Affected)
		require.NotNil(t, change.FolderId)
		assert.Equal(t, folderId, *change.FolderId)
	case <-time.After(2 * time.Second):
		t.Fatal("change message not published")
	}
}
