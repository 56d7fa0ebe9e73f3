package memory

import (
	"context"
	"sync"
	"time"

	"taxifleet/pkg/models"
	"taxifleet/storage"
)

type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]models.Session
	now      func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]models.Session),
		now:      time.Now,
	}
}

func (s *SessionStore) Create(_ context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = *session
	return nil
}

// getLocked drops the session once it has expired.
func (s *SessionStore) getLocked(id string) (models.Session, bool) {
	session, ok := s.sessions[id]
	if !ok {
		return models.Session{}, false
	}
	if !s.now().Before(session.ExpiresAt) {
		delete(s.sessions, id)
		return models.Session{}, false
	}
	return session, true
}

func (s *SessionStore) Get(_ context.Context, id string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.getLocked(id)
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &session, nil
}

func (s *SessionStore) Touch(_ context.Context, id string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.getLocked(id)
	if !ok {
		return nil, storage.ErrNotFound
	}
	session.Visits++
	s.sessions[id] = session
	return &session, nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
