package app

import "sync"

// Store serialises dispatches and notifies subscribers with each new state.
type Store struct {
	mu    sync.Mutex
	state State
	subs  map[int]func(State)
	next  int
}

func NewStore(initial State) *Store {
	return &Store{state: initial, subs: make(map[int]func(State))}
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Store) Dispatch(actions ...Action) State {
	s.mu.Lock()
	for _, a := range actions {
		s.state = Reduce(s.state, a)
	}
	st := s.state
	subs := s.snapshotSubs()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(st)
	}
	return st
}

// Subscribe registers fn for every later dispatch; call the returned func
// to unsubscribe.
func (s *Store) Subscribe(fn func(State)) (cancel func()) {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// tryBusy sets Busy and returns true, or returns false if already busy.
func (s *Store) tryBusy() bool {
	s.mu.Lock()
	if s.state.Busy {
		s.mu.Unlock()
		return false
	}
	s.state = Reduce(s.state, BusyChanged{Busy: true})
	st := s.state
	subs := s.snapshotSubs()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(st)
	}
	return true
}

func (s *Store) snapshotSubs() []func(State) {
	out := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		out = append(out, fn)
	}
	return out
}
