package chat

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/salesdesk/backend/internal/application/analysis"
	"github.com/salesdesk/backend/internal/domain/shared"
)

// Role identifies who produced a turn
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one entry in a conversation log
type Turn struct {
	ID         uuid.UUID                `json:"id"`
	Role       Role                     `json:"role"`
	Content    string                   `json:"content"`
	Timestamp  time.Time                `json:"timestamp"`
	Data       any                      `json:"data,omitempty"`
	Charts     []analysis.Visualization `json:"charts,omitempty"`
	WorkflowID string                   `json:"workflow_id,omitempty"`
	Loading    bool                     `json:"loading,omitempty"`
}

// Session is the conversation state machine: an append-only turn log plus
// a pointer to at most one pending assistant placeholder. Send appends a
// user turn and the placeholder together and is refused while a previous
// placeholder is unresolved; Resolve and Fail replace the placeholder in
// place rather than appending.
type Session struct {
	mu      sync.Mutex
	turns   []Turn
	pending *uuid.UUID
}

// NewSession creates an empty session
func NewSession() *Session {
	return &Session{turns: []Turn{}}
}

// Send appends the user turn and a loading placeholder in one update.
// Returns the placeholder id, or an error while a request is in flight.
func (s *Session) Send(message string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending != nil {
		return uuid.Nil, shared.NewDomainError("REQUEST_IN_FLIGHT", "A previous message is still being processed")
	}

	now := time.Now()
	s.turns = append(s.turns, Turn{
		ID:        uuid.New(),
		Role:      RoleUser,
		Content:   message,
		Timestamp: now,
	})

	placeholder := Turn{
		ID:        uuid.New(),
		Role:      RoleAssistant,
		Timestamp: now,
		Loading:   true,
	}
	s.turns = append(s.turns, placeholder)
	s.pending = &placeholder.ID

	return placeholder.ID, nil
}

// Resolve replaces the pending placeholder with the real assistant turn
// and clears the pending pointer. When the envelope's data already embeds
// visualizations the legacy charts list is dropped so the same chart never
// renders twice.
func (s *Session) Resolve(env *Envelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.pendingIndexLocked()
	if err != nil {
		return err
	}

	charts := env.Charts
	if dataHasVisualizations(env.Data) {
		charts = nil
	}

	s.turns[idx] = Turn{
		ID:         s.turns[idx].ID,
		Role:       RoleAssistant,
		Content:    env.Response,
		Timestamp:  time.Now(),
		Data:       env.Data,
		Charts:     charts,
		WorkflowID: env.WorkflowID,
	}
	s.pending = nil

	return nil
}

// Fail replaces the pending placeholder with an error turn
func (s *Session) Fail(message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.pendingIndexLocked()
	if err != nil {
		return err
	}

	s.turns[idx] = Turn{
		ID:        s.turns[idx].ID,
		Role:      RoleAssistant,
		Content:   message,
		Timestamp: time.Now(),
	}
	s.pending = nil

	return nil
}

// Pending reports whether a request is in flight
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// Turns returns a copy of the conversation log
func (s *Session) Turns() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

func (s *Session) pendingIndexLocked() (int, error) {
	if s.pending == nil {
		return 0, shared.NewDomainError("NO_PENDING_TURN", "No request is in flight")
	}
	for i := range s.turns {
		if s.turns[i].ID == *s.pending {
			return i, nil
		}
	}
	return 0, shared.NewDomainError("NO_PENDING_TURN", "Pending turn is missing from the log")
}

// dataHasVisualizations reports whether the structured payload embeds its
// own chart list
func dataHasVisualizations(data any) bool {
	switch v := data.(type) {
	case *analysis.InventoryAnalysisResponse:
		return v != nil && len(v.Visualizations) > 0
	case *analysis.SalesAnalysisResponse:
		return v != nil && len(v.Visualizations) > 0
	case *analysis.BusinessReportResponse:
		return v != nil && len(v.Visualizations) > 0
	}
	return false
}

// SessionStore keeps in-memory sessions keyed by an opaque id. Sessions
// are ephemeral; a restart drops them.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessionStore creates an empty session store
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: map[string]*Session{}}
}

// Get returns the session for the id, creating it on first use
func (s *SessionStore) Get(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		session = NewSession()
		s.sessions[id] = session
	}
	return session
}
