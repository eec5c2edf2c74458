package websocket

import (
	"context"
	"encoding/json"
	"testing"
)

func newTestClient(topics ...string) *Client {
	return &Client{ID: "test", Topics: topics, Send: make(chan []byte, 8)}
}

func TestHub_BroadcastToTopic(t *testing.T) {
	hub := NewHub()
	sub := newTestClient("messages:u1")
	other := newTestClient("messages:u2")
	hub.Register(sub)
	hub.Register(other)

	event, err := NewEvent("message.created", "messages:u1", map[string]string{"content": "hi"})
	if err != nil {
		t.Fatalf("NewEvent error: %v", err)
	}
	if err := hub.Publish(context.Background(), event); err != nil {
		t.Fatalf("Publish error: %v", err)
	}

	select {
	case data := <-sub.Send:
		var got Event
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got.Type != "message.created" || got.Topic != "messages:u1" {
			t.Errorf("unexpected event: %+v", got)
		}
	default:
		t.Fatal("subscriber did not receive event")
	}

	select {
	case <-other.Send:
		t.Fatal("client on another topic received event")
	default:
	}
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	hub := NewHub()
	c := newTestClient("orders:p1")
	hub.Register(c)
	if hub.TopicCount("orders:p1") != 1 {
		t.Fatalf("expected 1 subscriber, got %d", hub.TopicCount("orders:p1"))
	}

	hub.Unregister(c)
	if hub.ClientCount() != 0 {
		t.Errorf("expected 0 clients, got %d", hub.ClientCount())
	}
	if _, open := <-c.Send; open {
		t.Error("expected Send channel to be closed")
	}

	// Second unregister is a no-op.
	hub.Unregister(c)
}

func TestHub_SubscribeUnsubscribe(t *testing.T) {
	hub := NewHub()
	c := newTestClient()
	hub.Register(c)

	hub.ProcessMessage(c, ClientMessage{Action: "subscribe", Topics: []string{"a", "b"}})
	if hub.TopicCount("a") != 1 || hub.TopicCount("b") != 1 {
		t.Fatal("expected subscriptions on a and b")
	}

	hub.ProcessMessage(c, ClientMessage{Action: "unsubscribe", Topics: []string{"a"}})
	if hub.TopicCount("a") != 0 {
		t.Error("expected unsubscribe from a")
	}
	if hub.TopicCount("b") != 1 {
		t.Error("expected b subscription to remain")
	}
}

func TestHub_FullBufferDoesNotBlock(t *testing.T) {
	hub := NewHub()
	c := &Client{ID: "slow", Topics: []string{"t"}, Send: make(chan []byte)}
	hub.Register(c)

	event, _ := NewEvent("x", "t", nil)
	done := make(chan struct{})
	go func() {
		hub.Broadcast(event)
		close(done)
	}()
	<-done
}
