package live

import (
	"encoding/json"
	"testing"
	"time"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	// create fake client
	client := &Client{
		Send: make(chan []byte, 10),
	}

	// register client
	hub.register <- client

	// broadcast a test event
	msg := map[string]any{"event": "order-created", "order_id": "oTest123"}
	data, _ := json.Marshal(msg)
	hub.Broadcast(data)

	select {
	case got := <-client.Send:
		if string(got) != string(data) {
			t.Fatalf("expected %s, got %s", data, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	// unregister client
	hub.unregister <- client
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	// a full send queue with nobody draining it
	slow := &Client{Send: make(chan []byte, 1)}
	slow.Send <- []byte(`{"event":"order-created"}`)
	hub.register <- slow

	hub.Broadcast([]byte(`{"event":"order-paid"}`))

	// the hub loop is serial, so once this register is accepted the
	// broadcast fan-out has finished and the slow client is gone
	sentinel := &Client{Send: make(chan []byte, 1)}
	hub.register <- sentinel

	// drain the backlog; the channel is closed once the client is dropped
	deadline := time.After(1 * time.Second)
	for {
		select {
		case _, open := <-slow.Send:
			if !open {
				return
			}
		case <-deadline:
			t.Fatal("timeout waiting for drop")
		}
	}
}

func TestBroadcastAfterStopReturns(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	hub.Stop()

	finished := make(chan struct{})
	go func() {
		hub.Broadcast([]byte(`{"event":"order-created"}`))
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(1 * time.Second):
		t.Fatal("broadcast blocked after stop")
	}
}
