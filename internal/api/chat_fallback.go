package api

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cultura-atlas/atlas-backend/internal/models"
)

// ChatFallbackContent is returned in-band when the generative service fails
// during chat. Chat is the one path that never surfaces an HTTP error for a
// generation failure.
const ChatFallbackContent = "I'm sorry, I couldn't process that request right now. Please try again."

func fallbackChatMessage(current *models.Itinerary, prefs []models.Preference) models.ChatMessage {
	contextFlag := "new_conversation"
	if current != nil {
		contextFlag = "itinerary_exists"
	}

	return models.ChatMessage{
		ID:        fmt.Sprintf("msg-%s", uuid.NewString()),
		Type:      "assistant",
		Content:   ChatFallbackContent,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Metadata: &models.ChatMetadata{
			Preferences: prefs,
			Context:     contextFlag,
		},
	}
}
