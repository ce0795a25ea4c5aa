// Package session tracks uploaded documents and action outputs per user.
//
// Types:
//   - Document: an uploaded PDF and its page count, the upper bound for page
//     range specifications typed against it.
//   - Session: the documents and signature images of one user, the latest
//     output and whether an action is running.
//   - SessionManager: all active sessions, expired by the server janitor.
//
// Cleanup removes every file a session owns.
package session

import (
	"errors"
	"os"
	"slices"
	"sync"
	"time"

	"go-pagerange/internal/utils"
)

const (
	StatusIdle       = "idle"
	StatusInProgress = "in_progress"
)

var (
	ErrBusy         = errors.New("an action is already in progress")
	ErrInvalidOrder = errors.New("order must list every document exactly once")
)

type Document struct {
	Name  string `json:"name"`
	Path  string `json:"-"`
	Pages int    `json:"pages"`
}

type Session struct {
	ID         string
	Documents  []Document
	Signatures []string
	OutputFile string
	CreatedAt  time.Time
	Status     string
	Mutex      sync.Mutex
}

type SessionManager struct {
	Sessions map[string]*Session
	Mutex    sync.RWMutex
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		Sessions: make(map[string]*Session),
	}
}

func (sm *SessionManager) CreateSession() *Session {
	sm.Mutex.Lock()
	defer sm.Mutex.Unlock()

	session := &Session{
		ID:        utils.GenerateUUID(),
		Documents: []Document{},
		CreatedAt: time.Now(),
		Status:    StatusIdle,
	}
	sm.Sessions[session.ID] = session
	return session
}

func (sm *SessionManager) GetSession(id string) (*Session, bool) {
	sm.Mutex.RLock()
	defer sm.Mutex.RUnlock()
	session, exists := sm.Sessions[id]
	return session, exists
}

func (sm *SessionManager) DeleteSession(id string) {
	sm.Mutex.Lock()
	defer sm.Mutex.Unlock()
	delete(sm.Sessions, id)
}

// Expire cleans up and drops sessions older than maxAge. A session with an
// action in progress is kept until a later sweep. It returns the number of
// sessions removed.
func (sm *SessionManager) Expire(maxAge time.Duration) int {
	sm.Mutex.Lock()
	defer sm.Mutex.Unlock()
	removed := 0
	for id, session := range sm.Sessions {
		if time.Since(session.CreatedAt) <= maxAge {
			continue
		}
		// Holding the session busy keeps a late action from starting on it.
		if session.Begin() != nil {
			continue
		}
		session.Cleanup()
		delete(sm.Sessions, id)
		removed++
	}
	return removed
}

// CleanupAll removes the files of every session and forgets them.
func (sm *SessionManager) CleanupAll() {
	sm.Mutex.Lock()
	defer sm.Mutex.Unlock()
	for id, session := range sm.Sessions {
		session.Cleanup()
		delete(sm.Sessions, id)
	}
}

func (s *Session) AddDocument(doc Document) {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	s.Documents = append(s.Documents, doc)
}

// GetDocuments returns a copy of the session's documents in upload order.
func (s *Session) GetDocuments() []Document {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	return append([]Document(nil), s.Documents...)
}

// Document looks a document up by its stored name.
func (s *Session) Document(name string) (Document, bool) {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	for _, doc := range s.Documents {
		if doc.Name == name {
			return doc, true
		}
	}
	return Document{}, false
}

// SetOrder reorders the documents to follow names, which must be a
// permutation of the stored names.
func (s *Session) SetOrder(names []string) error {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	if len(names) != len(s.Documents) {
		return ErrInvalidOrder
	}
	byName := make(map[string]Document, len(s.Documents))
	for _, doc := range s.Documents {
		byName[doc.Name] = doc
	}
	ordered := make([]Document, 0, len(names))
	for _, name := range names {
		doc, ok := byName[name]
		if !ok {
			return ErrInvalidOrder
		}
		delete(byName, name)
		ordered = append(ordered, doc)
	}
	s.Documents = ordered
	return nil
}

func (s *Session) AddSignature(path string) {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	s.Signatures = append(s.Signatures, path)
}

func (s *Session) HasSignature(path string) bool {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	return slices.Contains(s.Signatures, path)
}

// Begin marks an action as running. It fails with ErrBusy while another
// action on the same session has not called End.
func (s *Session) Begin() error {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	if s.Status == StatusInProgress {
		return ErrBusy
	}
	s.Status = StatusInProgress
	return nil
}

func (s *Session) End() {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	s.Status = StatusIdle
}

// SetOutput records path as the latest output, deleting the previous one.
func (s *Session) SetOutput(path string) {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	if s.OutputFile != "" && s.OutputFile != path {
		os.Remove(s.OutputFile)
	}
	s.OutputFile = path
}

func (s *Session) GetOutput() string {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	return s.OutputFile
}

func (s *Session) Cleanup() {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	for _, doc := range s.Documents {
		os.Remove(doc.Path)
	}
	for _, sig := range s.Signatures {
		os.Remove(sig)
	}
	if s.OutputFile != "" {
		os.Remove(s.OutputFile)
	}
}
