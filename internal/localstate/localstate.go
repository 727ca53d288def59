// Package localstate keeps a session's in-memory copy of the user's
// todos together with an explicit per-entity write state machine
// (idle → pending → committed | rolled back). A client stages the
// expected effect of a write when it issues the remote operation,
// then commits or rolls back when the operation resolves, so the
// transient optimistic state is observable instead of incidental.
package localstate

import (
	"sort"
	"sync"

	"github.com/WunderTransportTechnologies/ultimate-todo/internal/model"
)

// WriteState tracks the progress of an optimistic mutation for one
// entity.
type WriteState int

const (
	StateIdle WriteState = iota
	StatePending
	StateCommitted
	StateRolledBack
)

func (s WriteState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateCommitted:
		return "committed"
	case StateRolledBack:
		return "rolled-back"
	default:
		return "idle"
	}
}

// Store is the session-local todo cache. It never talks to the remote
// store itself.
type Store struct {
	mu     sync.Mutex
	todos  map[string]model.Todo
	states map[string]WriteState
	// prev snapshots the value before a pending write so Rollback can
	// restore it; a nil entry means the entity did not exist.
	prev map[string]*model.Todo
}

func New() *Store {
	return &Store{
		todos:  make(map[string]model.Todo),
		states: make(map[string]WriteState),
		prev:   make(map[string]*model.Todo),
	}
}

// Replace swaps in a freshly fetched list and resets every entity to
// idle. This is the recovery path after a failed write left local
// state out of sync.
func (s *Store) Replace(todos []model.Todo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.todos = make(map[string]model.Todo, len(todos))
	for _, todo := range todos {
		s.todos[todo.ID] = todo
	}
	s.states = make(map[string]WriteState)
	s.prev = make(map[string]*model.Todo)
}

// Stage applies the expected effect of a create or update and marks
// the entity pending. The prior value is kept for rollback; staging on
// top of an unresolved write keeps the original snapshot.
func (s *Store) Stage(todo model.Todo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot(todo.ID)
	s.todos[todo.ID] = todo
	s.states[todo.ID] = StatePending
}

// StageDelete applies the expected effect of a delete.
func (s *Store) StageDelete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot(id)
	delete(s.todos, id)
	s.states[id] = StatePending
}

func (s *Store) snapshot(id string) {
	if s.states[id] == StatePending {
		return
	}
	if cur, ok := s.todos[id]; ok {
		s.prev[id] = &cur
	} else {
		s.prev[id] = nil
	}
}

// Commit finalizes a pending write; the staged value becomes the local
// truth.
func (s *Store) Commit(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.states[id] != StatePending {
		return
	}
	s.states[id] = StateCommitted
	delete(s.prev, id)
}

// Rollback restores the value from before the pending write.
func (s *Store) Rollback(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.states[id] != StatePending {
		return
	}
	if prior := s.prev[id]; prior != nil {
		s.todos[id] = *prior
	} else {
		delete(s.todos, id)
	}
	s.states[id] = StateRolledBack
	delete(s.prev, id)
}

// State reports the write state of one entity.
func (s *Store) State(id string) WriteState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[id]
}

// Get returns the current local value of one todo.
func (s *Store) Get(id string) (model.Todo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	todo, ok := s.todos[id]
	return todo, ok
}

// List returns the local view in the canonical store order, most
// recently created first.
func (s *Store) List() []model.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Todo, 0, len(s.todos))
	for _, todo := range s.todos {
		out = append(out, todo)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
