package call

import (
	"sync"
	"time"

	"github.com/railvoice/railvoice/internal/menu"
)

// Store holds the active registry of in-progress calls and the
// append-only archive of ended ones. A single mutex guards both, so a
// lookup, mutation, and possible archive-and-remove happen as one
// critical section even when the serving layer dispatches concurrent
// requests for the same call id.
type Store struct {
	mu      sync.Mutex
	active  map[string]*Session
	archive []Session
}

func NewStore() *Store {
	return &Store{active: make(map[string]*Session)}
}

// Create registers a fresh session starting at the main menu and
// returns its snapshot.
func (st *Store) Create(callerNumber string) Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	s := &Session{
		CallID:       NewCallID(),
		CallerNumber: callerNumber,
		StartTime:    time.Now().UTC(),
		CurrentMenu:  menu.Main,
		MenuPath:     []menu.ID{menu.Main},
		Inputs:       []string{},
	}
	st.active[s.CallID] = s
	return s.snapshot()
}

// Get returns a snapshot of the active session, if any.
func (st *Store) Get(id string) (Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.active[id]
	if !ok {
		return Session{}, false
	}
	return s.snapshot(), true
}

// Update runs fn on the live session under the store lock. When fn
// returns true the call ends: the end time is stamped, a snapshot goes
// to the archive, and the session leaves the active registry. The
// returned snapshot reflects the state after fn ran. ok is false when
// no active session has the given id.
func (st *Store) Update(id string, fn func(*Session) bool) (Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.active[id]
	if !ok {
		return Session{}, false
	}
	if ended := fn(s); ended {
		now := time.Now().UTC()
		s.EndTime = &now
		st.archive = append(st.archive, s.snapshot())
		delete(st.active, id)
	}
	return s.snapshot(), true
}

// End archives the session. Ending an unknown or already-ended call
// reports ok=false; it is never fatal to the caller.
func (st *Store) End(id string) (Session, bool) {
	return st.Update(id, func(*Session) bool { return true })
}

// Counts returns the number of active and archived calls.
func (st *Store) Counts() (active, ended int) {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.active), len(st.archive)
}
