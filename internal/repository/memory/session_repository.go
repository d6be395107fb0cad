package memory

import (
	"time"

	"clinic-assistant-be/pkg/dialog"

	"github.com/patrickmn/go-cache"
)

// SessionRepository holds the per-conversation dialogue sessions.
// Entries expire after the idle TTL so abandoned conversations do not
// accumulate; every Save refreshes the expiration.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository(idleTTL time.Duration) *SessionRepository {
	c := cache.New(idleTTL, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *dialog.Session) {
	r.cache.Set(session.ConversationId, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(conversationId string) (*dialog.Session, bool) {
	if x, found := r.cache.Get(conversationId); found {
		return x.(*dialog.Session), true
	}
	return nil, false
}

// GetOrCreate returns the existing session for the conversation or
// registers a fresh one.
func (r *SessionRepository) GetOrCreate(conversationId string) *dialog.Session {
	if s, found := r.Get(conversationId); found {
		return s
	}
	s := dialog.NewSession(conversationId)
	r.Save(s)
	return s
}

func (r *SessionRepository) Delete(conversationId string) {
	r.cache.Delete(conversationId)
}
