package connection

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState_CurrentIsSnapshot(t *testing.T) {
	s := NewState(Config{Port: "p1"})
	snap := s.Current()
	snap.Port = "mutated"

	assert.Equal(t, "p1", s.Current().Port)
}

func TestState_ApplyNotifiesSubscribers(t *testing.T) {
	s := NewState(Config{Port: "p1", User: "u"})

	var got []Config
	unsubscribe := s.Subscribe(ObserverFunc(func(c Config) { got = append(got, c) }))

	s.Apply(Config{Client: "ws"})
	s.Apply(Config{})

	assert.Len(t, got, 2)
	assert.Equal(t, Config{Port: "p1", User: "u", Client: "ws"}, got[0])

	unsubscribe()
	unsubscribe()
	s.Apply(Config{Port: "p2"})
	assert.Len(t, got, 2)
	assert.Equal(t, "p2", s.Current().Port)
}

func TestState_Replace(t *testing.T) {
	s := NewState(Config{Port: "p1", User: "u"})
	s.Replace(Config{Client: "c"})
	assert.Equal(t, Config{Client: "c"}, s.Current())
}

func TestState_ConcurrentAccess(t *testing.T) {
	s := NewState(Config{})
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Apply(Config{Port: "p", User: "u", Client: "c"})
		}()
		go func() {
			defer wg.Done()
			_ = s.Current()
		}()
	}
	wg.Wait()
	assert.Equal(t, Config{Port: "p", User: "u", Client: "c"}, s.Current())
}
