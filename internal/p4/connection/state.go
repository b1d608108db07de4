package connection

import "sync"

// Observer is notified with the new snapshot every time the current connection changes.
type Observer interface {
	OnConnectionChanged(current Config)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(current Config)

func (f ObserverFunc) OnConnectionChanged(current Config) { f(current) }

// State holds the active connection. Readers always get a copy; writers publish
// a new snapshot to subscribers.
type State struct {
	mu        sync.RWMutex
	current   Config
	observers map[int]Observer
	nextID    int
}

// NewState creates a State seeded with initial.
func NewState(initial Config) *State {
	return &State{
		current:   initial.Clone(),
		observers: make(map[int]Observer),
	}
}

// Current returns a snapshot of the active connection.
func (s *State) Current() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// Apply merges cfg into the active connection with ApplyConnection and notifies
// subscribers with the result.
func (s *State) Apply(cfg Config) Config {
	s.mu.Lock()
	s.current.ApplyConnection(cfg)
	snapshot := s.current.Clone()
	observers := make([]Observer, 0, len(s.observers))
	for _, o := range s.observers {
		observers = append(observers, o)
	}
	s.mu.Unlock()

	for _, o := range observers {
		o.OnConnectionChanged(snapshot)
	}
	return snapshot
}

// Replace sets the active connection to cfg and notifies subscribers.
func (s *State) Replace(cfg Config) Config {
	s.mu.Lock()
	s.current = cfg.Clone()
	snapshot := s.current.Clone()
	observers := make([]Observer, 0, len(s.observers))
	for _, o := range s.observers {
		observers = append(observers, o)
	}
	s.mu.Unlock()

	for _, o := range observers {
		o.OnConnectionChanged(snapshot)
	}
	return snapshot
}

// Subscribe registers o and returns a function that removes it again.
func (s *State) Subscribe(o Observer) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.observers[id] = o
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.observers, id)
			s.mu.Unlock()
		})
	}
}
