package dto

type AskRequest struct {
	ConversationId string `json:"conversation_id" validate:"required"`
	Message        string `json:"message" validate:"required"`
}

type AskResponse struct {
	ConversationId string `json:"conversation_id"`
	Reply          string `json:"reply"`
	State          string `json:"state"`
	Language       string `json:"language"`
}

// WsInbound is the shape of messages the browser sends over the socket.
type WsInbound struct {
	Type    string `json:"type"` // "message" | "reset"
	Message string `json:"message"`
}

// WsOutbound is the shape of messages pushed back to the browser.
type WsOutbound struct {
	Type           string `json:"type"` // "reply" | "error"
	ConversationId string `json:"conversation_id"`
	Reply          string `json:"reply,omitempty"`
	State          string `json:"state,omitempty"`
	Error          string `json:"error,omitempty"`
}
