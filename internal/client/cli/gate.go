package cli

import (
	"errors"
	"sync"
)

var ErrBusy = errors.New("that action is already in progress")

// Gate admits one in-flight gesture per key. A key is an action name plus the
// id of the resource it targets.
type Gate struct {
	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewGate() *Gate {
	return &Gate{inFlight: make(map[string]struct{})}
}

// Acquire returns a release func and true, or nil and false when the same
// gesture is already running.
func (g *Gate) Acquire(action, id string) (func(), bool) {
	key := action + "\x00" + id

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.inFlight[key]; busy {
		return nil, false
	}
	g.inFlight[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.inFlight, key)
			g.mu.Unlock()
		})
	}, true
}

// Run executes fn while holding the gate for action and id.
func (g *Gate) Run(action, id string, fn func() error) error {
	release, ok := g.Acquire(action, id)
	if !ok {
		return ErrBusy
	}
	defer release()
	return fn()
}
