package state

import (
	"fmt"
	"sync"

	"github.com/julianstephens/triage/internal/logger"
)

// Store holds the current snapshot. Dispatch is safe from any goroutine;
// the UI loop is the usual writer.
type Store struct {
	mu     sync.RWMutex
	snap   Snapshot
	subs   map[int]func(Snapshot)
	nextID int
}

func NewStore(initial Snapshot) *Store {
	return &Store{snap: initial, subs: make(map[int]func(Snapshot))}
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Dispatch applies the actions in order as one transition and notifies
// subscribers once with the result.
func (s *Store) Dispatch(actions ...Action) Snapshot {
	s.mu.Lock()
	next := s.snap
	for _, a := range actions {
		logger.Debug("Dispatch", "action", fmt.Sprintf("%T", a))
		next = Reduce(next, a)
	}
	s.snap = next
	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return next
}

// Subscribe registers fn to run after every dispatch. The returned func
// removes it.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}
