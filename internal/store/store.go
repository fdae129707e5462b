package store

import "github.com/salesdojo/salesdojo/internal/models"

// SessionStore defines the registry of live conversation state, keyed by
// sessionId. A miss is reported via the ok bool, never an error; callers
// upgrade misses to a session-not-found error.
type SessionStore interface {
	Put(id string, state *models.ConversationState)
	Get(id string) (*models.ConversationState, bool)
	Delete(id string) bool
	Exists(id string) bool
	ListAll() []*models.ConversationState
}
