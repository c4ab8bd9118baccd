package exam

import (
	"sync"

	"examhub-server/models"
)

// Manager tracks the single active session per student. Starting a new
// session replaces whatever session the student had before, submitted or not.
type Manager struct {
	mu     sync.RWMutex
	active map[string]*Session // keyed by external student id
}

func NewManager() *Manager {
	return &Manager{active: make(map[string]*Session)}
}

// Start creates a session and makes it the student's active one.
func (m *Manager) Start(student models.Student, category models.Category, questions []models.Question) (*Session, error) {
	sess, err := NewSession(student, category, questions)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.active[student.StudentID] = sess
	m.mu.Unlock()
	return sess, nil
}

// Get returns the student's active session, or ErrNoActiveSession.
func (m *Manager) Get(studentID string) (*Session, error) {
	m.mu.RLock()
	sess, ok := m.active[studentID]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNoActiveSession
	}
	return sess, nil
}

// End drops the student's active session, if any.
func (m *Manager) End(studentID string) {
	m.mu.Lock()
	delete(m.active, studentID)
	m.mu.Unlock()
}
