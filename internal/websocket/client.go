package websocket

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"clinic-assistant-be/internal/dto"

	"github.com/gofiber/websocket/v2"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Assistant is the conversational backend a client feeds user messages
// into. Satisfied by service.IAssistantService.
type Assistant interface {
	Ask(ctx context.Context, req *dto.AskRequest) (*dto.AskResponse, error)
	Greet(ctx context.Context, conversationId string) *dto.AskResponse
	Reset(ctx context.Context, conversationId string)
}

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	Hub *Hub

	// The websocket connection.
	Conn *websocket.Conn

	// ConversationId associated with this connection
	ConversationId string

	// Assistant handles inbound user messages.
	Assistant Assistant

	// Buffered channel of outbound messages.
	Send chan []byte
}

// readPump pumps messages from the websocket connection into the
// assistant and fans replies back out through the hub. Replies go
// through the hub so every tab of the conversation sees them.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("readPump error for conversation %s: %v", c.ConversationId, err)
			}
			break
		}

		var inbound dto.WsInbound
		if err := json.Unmarshal(raw, &inbound); err != nil {
			c.sendError("invalid message format")
			continue
		}

		switch inbound.Type {
		case "reset":
			c.Assistant.Reset(context.Background(), c.ConversationId)
		case "message", "":
			if inbound.Message == "" {
				c.sendError("message is empty")
				continue
			}
			res, err := c.Assistant.Ask(context.Background(), &dto.AskRequest{
				ConversationId: c.ConversationId,
				Message:        inbound.Message,
			})
			if err != nil {
				c.sendError("failed to process message")
				continue
			}
			out, _ := json.Marshal(dto.WsOutbound{
				Type:           "reply",
				ConversationId: c.ConversationId,
				Reply:          res.Reply,
				State:          res.State,
			})
			c.Hub.SendToConversation(c.ConversationId, out)
		default:
			c.sendError("unknown message type")
		}
	}
}

func (c *Client) sendError(msg string) {
	out, _ := json.Marshal(dto.WsOutbound{
		Type:           "error",
		ConversationId: c.ConversationId,
		Error:          msg,
	})
	select {
	case c.Send <- out:
	default:
	}
}

// writePump pumps messages from the hub to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current websocket message.
			n := len(c.Send)
			for i := 0; i < n; i++ {
				w.Write(<-c.Send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
