package websocket

import (
	"testing"
	"time"
)

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

func (h *Hub) clientCount(conversationId string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[conversationId])
}

func waitUntil(t *testing.T, cond func() bool, what string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestRegisterAndFanout(t *testing.T) {
	hub := NewHub(nil, noopLogger{})
	go hub.Run()

	a := &Client{Hub: hub, ConversationId: "c1", Send: make(chan []byte, 4)}
	b := &Client{Hub: hub, ConversationId: "c1", Send: make(chan []byte, 4)}
	hub.register <- a
	hub.register <- b
	waitUntil(t, func() bool { return hub.clientCount("c1") == 2 }, "both tabs registered")

	hub.SendToConversation("c1", []byte("hello"))

	for _, c := range []*Client{a, b} {
		select {
		case msg := <-c.Send:
			if string(msg) != "hello" {
				t.Errorf("got %q, want hello", msg)
			}
		case <-time.After(time.Second):
			t.Fatal("client did not receive the fanout")
		}
	}
}

func TestSlowConsumerDroppedWithoutDoubleClose(t *testing.T) {
	hub := NewHub(nil, noopLogger{})
	go hub.Run()

	// Unbuffered Send with no reader simulates a stuck consumer.
	client := &Client{Hub: hub, ConversationId: "c1", Send: make(chan []byte)}
	hub.register <- client
	waitUntil(t, func() bool { return hub.clientCount("c1") == 1 }, "client registered")

	// Each send finds the buffer full and drops the connection. The
	// second one must not panic on an already-closed channel.
	hub.SendToConversation("c1", []byte("one"))
	hub.SendToConversation("c1", []byte("two"))

	waitUntil(t, func() bool { return hub.clientCount("c1") == 0 }, "client unregistered")

	select {
	case _, ok := <-client.Send:
		if ok {
			t.Fatal("unexpected message on a dropped client")
		}
	case <-time.After(time.Second):
		t.Fatal("send channel was never closed")
	}
}
