package services

import (
	"context"
	"sync"
)

// Sessions tracks the in-flight generation of each client session so a new
// request, or an explicit reset, cancels the previous one.
type Sessions struct {
	mu      sync.Mutex
	nextGen uint64
	active  map[string]*generation
}

type generation struct {
	id     uint64
	cancel context.CancelFunc
}

func NewSessions() *Sessions {
	return &Sessions{active: make(map[string]*generation)}
}

// Begin cancels any generation already running for sessionID and returns a
// context for the new one. done must be called when the work finishes; it
// reports whether the result is still current, meaning no later Begin or
// Reset superseded it. An empty sessionID is not tracked.
func (s *Sessions) Begin(parent context.Context, sessionID string) (ctx context.Context, done func() bool) {
	ctx, cancel := context.WithCancel(parent)
	if sessionID == "" {
		return ctx, func() bool {
			current := ctx.Err() == nil
			cancel()
			return current
		}
	}

	s.mu.Lock()
	if prev, ok := s.active[sessionID]; ok {
		prev.cancel()
	}
	s.nextGen++
	gen := &generation{id: s.nextGen, cancel: cancel}
	s.active[sessionID] = gen
	s.mu.Unlock()

	return ctx, func() bool {
		s.mu.Lock()
		cur, ok := s.active[sessionID]
		current := ok && cur.id == gen.id
		if current {
			delete(s.active, sessionID)
		}
		s.mu.Unlock()

		current = current && ctx.Err() == nil
		cancel()
		return current
	}
}

// Reset cancels the running generation for sessionID, if any, and reports
// whether there was one.
func (s *Sessions) Reset(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	gen, ok := s.active[sessionID]
	if !ok {
		return false
	}
	gen.cancel()
	delete(s.active, sessionID)
	return true
}

// Active returns the number of sessions with a generation in flight.
func (s *Sessions) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}
