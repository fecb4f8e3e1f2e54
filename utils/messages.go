package utils

import (
	"github.com/gin-gonic/gin"
)

// UserMessage is a user-facing notification: a short title and a longer
// description. Every store failure is reported to the client as exactly one
// of these.
type UserMessage struct {
	Title       string
	Description string
}

// Offline messages, shown when the store is unreachable and the operation
// was not attempted.
var (
	OfflineFetch = UserMessage{"You're offline", "Reconnect to refresh dining requests or join a table."}
	OfflineJoin  = UserMessage{"You're offline", "Reconnect to join a dining request."}
	OfflineLeave = UserMessage{"You're offline", "Reconnect to update your participation."}
)

// Action failure messages.
var (
	ErrLoadingRequests = UserMessage{"Error loading requests", "Failed to load dining requests. Please try again."}
	ErrLoadingHistory  = UserMessage{"Error loading history", "Failed to load your dining history. Please try again."}
	ErrCreatingRequest = UserMessage{"Error creating request", "Failed to create dining request. Please try again."}
	ErrJoiningRequest  = UserMessage{"Couldn't join", "Failed to join dining request. Please try again."}
	ErrLeavingRequest  = UserMessage{"Couldn't leave", "Failed to leave dining request. Please try again."}
	ErrSavingProfile   = UserMessage{"Error saving profile", "Failed to save your profile. Please try again."}
	ErrGeneric         = UserMessage{"Something went wrong", "An unexpected error occurred. Please try again."}
)

// Success messages.
var (
	RequestCreated = UserMessage{"Request created!", "Your dining request has been posted."}
	JoinedRequest  = UserMessage{"Joined!", "You've successfully joined this dining request."}
	LeftRequest    = UserMessage{"Left request", "You've left this dining request."}
)

// Error writes a failure notification. When detail is non-empty it replaces
// the message's generic description, surfacing the underlying store error.
func Error(c *gin.Context, status int, msg UserMessage, detail string) {
	description := msg.Description
	if detail != "" {
		description = detail
	}
	c.JSON(status, gin.H{"error": msg.Title, "detail": description})
}
