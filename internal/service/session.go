package service

import (
	"context"
	"sync"

	"prizehouse-api/internal/model"
	"prizehouse-api/internal/store"
	"prizehouse-api/pkg/uid"
)

// SessionService tracks which student is at the kiosk. A session is a
// weak reference by student id: every read re-resolves the id against
// the store, so a point adjustment made in the admin workbench shows up
// immediately, not only after re-login. If the student was deleted the
// session dies with them.
type SessionService struct {
	store *store.Store

	mu       sync.RWMutex
	sessions map[string]string // token -> student id
}

// NewSessionService creates a session service with no active sessions.
func NewSessionService(st *store.Store) *SessionService {
	return &SessionService{
		store:    st,
		sessions: make(map[string]string),
	}
}

// Login starts a session for the student and returns the session token.
func (s *SessionService) Login(ctx context.Context, studentID string) (string, model.Student, error) {
	student, ok := s.store.Snapshot().FindStudent(studentID)
	if !ok {
		return "", model.Student{}, ErrStudentNotFound
	}

	token := uid.New()
	s.mu.Lock()
	s.sessions[token] = studentID
	s.mu.Unlock()

	return token, student, nil
}

// Resolve returns the current student for the token, re-fetched from the
// store. Unknown tokens and sessions whose student no longer exists both
// yield ErrNoActiveSession.
func (s *SessionService) Resolve(ctx context.Context, token string) (model.Student, error) {
	s.mu.RLock()
	studentID, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return model.Student{}, ErrNoActiveSession
	}

	student, ok := s.store.Snapshot().FindStudent(studentID)
	if !ok {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return model.Student{}, ErrNoActiveSession
	}
	return student, nil
}

// Logout ends the session. Unknown tokens are a no-op.
func (s *SessionService) Logout(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}
