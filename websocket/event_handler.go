package websocket

import (
	"encoding/json"
	"log/slog"
)

// HandleIncomingMessage processes an incoming WebSocket message. Clients only
// send watch/unwatch requests; all data flows through the REST API.
func HandleIncomingMessage(client *Client, messageBytes []byte) {
	var msg Message
	if err := json.Unmarshal(messageBytes, &msg); err != nil {
		slog.Warn("failed to unmarshal websocket message", "user_id", client.userID, "error", err)
		return
	}

	switch msg.Type {
	case "watch":
		if requestID, ok := msg.Payload.(string); ok && requestID != "" {
			client.watch(requestID)
		}
	case "unwatch":
		if requestID, ok := msg.Payload.(string); ok && requestID != "" {
			client.unwatch(requestID)
		}
	default:
		sendErrorToClient(client, "Unknown message type")
	}
}

func sendErrorToClient(client *Client, errorMessage string) {
	errorMsg := Message{
		Type: "error",
		Payload: map[string]string{
			"message": errorMessage,
		},
	}

	errorBytes, _ := json.Marshal(errorMsg)
	client.send <- errorBytes
}
