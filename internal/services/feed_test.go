package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFeedConn struct {
	events chan FeedEvent
}

func newFakeFeedConn() *fakeFeedConn {
	return &fakeFeedConn{events: make(chan FeedEvent, 8)}
}

func (c *fakeFeedConn) WriteJSON(v interface{}) error {
	c.events <- v.(FeedEvent)
	return nil
}

func (c *fakeFeedConn) Close() error { return nil }

func (c *fakeFeedConn) next(t *testing.T) FeedEvent {
	t.Helper()
	select {
	case ev := <-c.events:
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for feed event")
		return FeedEvent{}
	}
}

func TestFeedHubDeliversToSubscribers(t *testing.T) {
	hub := NewFeedHub()
	conn := newFakeFeedConn()
	unsubscribe := hub.Subscribe("ABCD1234", conn)
	defer unsubscribe()

	hub.Publish(FeedEvent{Type: "entries_synced", ShareKey: "ABCD1234", Synced: 2})

	ev := conn.next(t)
	assert.Equal(t, "entries_synced", ev.Type)
	assert.Equal(t, 2, ev.Synced)
	assert.False(t, ev.Timestamp.IsZero())
}

func TestFeedHubScopesByShareKey(t *testing.T) {
	hub := NewFeedHub()
	watching := newFakeFeedConn()
	other := newFakeFeedConn()
	defer hub.Subscribe("ABCD1234", watching)()
	defer hub.Subscribe("EFGH5678", other)()

	hub.Publish(FeedEvent{Type: "journal_deleted", ShareKey: "ABCD1234"})

	ev := watching.next(t)
	assert.Equal(t, "journal_deleted", ev.Type)

	select {
	case ev := <-other.events:
		t.Fatalf("viewer of another journal received %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestFeedHubUnsubscribeStopsDelivery(t *testing.T) {
	hub := NewFeedHub()
	conn := newFakeFeedConn()
	unsubscribe := hub.Subscribe("ABCD1234", conn)

	hub.Publish(FeedEvent{Type: "entries_synced", ShareKey: "ABCD1234"})
	require.Equal(t, "entries_synced", conn.next(t).Type)

	unsubscribe()
	hub.Publish(FeedEvent{Type: "journal_deleted", ShareKey: "ABCD1234"})

	select {
	case ev := <-conn.events:
		t.Fatalf("unsubscribed viewer received %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}
