package livefeed

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
		Send:   make(chan []byte, 10),
		UserID: "u1",
	}

	// register client
	if !hub.addClient(client) {
		t.Fatal("addClient failed on a running hub")
	}

	// broadcast a notification
	data, _ := json.Marshal(map[string]string{"type": "inquiry-created", "inquiryId": "q1"})
	hub.Broadcast(data)

	select {
	case got := <-client.Send:
		if string(got) != string(data) {
			t.Fatalf("expected %s, got %s", data, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for notification")
	}
}

func TestHubStopDisconnectsClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{Send: make(chan []byte, 1), UserID: "u1"}
	hub.addClient(client)

	hub.Stop()

	select {
	case _, ok := <-client.Send:
		if ok {
			t.Fatal("expected closed channel after Stop")
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for Stop to close clients")
	}
}

func TestHubAddClientAfterStop(t *testing.T) {
	hub := NewHub()
	hub.Stop()

	done := make(chan bool, 1)
	go func() {
		done <- hub.addClient(&Client{Send: make(chan []byte, 1), UserID: "u1"})
	}()

	select {
	case ok := <-done:
		if ok {
			t.Fatal("addClient should refuse after Stop")
		}
	case <-time.After(1 * time.Second):
		t.Fatal("addClient blocked on a stopped hub")
	}
}
