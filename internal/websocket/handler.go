package websocket

import (
	"context"
	"encoding/json"

	"clinic-assistant-be/internal/dto"

	"github.com/gofiber/websocket/v2"
)

// ServeWs handles a websocket connection for one conversation.
func ServeWs(hub *Hub, c *websocket.Conn, conversationId string, assistant Assistant) {
	client := &Client{
		Hub:            hub,
		Conn:           c,
		ConversationId: conversationId,
		Assistant:      assistant,
		Send:           make(chan []byte, 256),
	}
	client.Hub.register <- client

	// Welcome goes out immediately, to this connection only, so a
	// reconnecting tab does not replay the greeting to its siblings.
	greeting := assistant.Greet(context.Background(), conversationId)
	if out, err := json.Marshal(dto.WsOutbound{
		Type:           "reply",
		ConversationId: conversationId,
		Reply:          greeting.Reply,
		State:          greeting.State,
	}); err == nil {
		client.Send <- out
	}

	go client.writePump()
	client.readPump() // Run readPump in current goroutine (handler)
}
