// Package state holds the in-process view of authenticated sessions: the
// session code issued at OTP verification, the creator's email, publication
// name and the "existed before" flag. Updates happen through discrete
// dispatched actions and interested callers subscribe for changes instead of
// polling. The container is passed around explicitly; there is no package
// singleton.
package state

import (
	"context"
	"sync"
)

type Action int

const (
	SessionVerified Action = iota
	PublicationSet
	LoggedOut
)

// Session is the authenticated snapshot for one icode.
type Session struct {
	ICode       string
	Email       string
	Username    string
	Publication string
	Exist       bool
}

type Listener func(Action, Session)

type Store struct {
	mu       sync.RWMutex
	sessions map[string]Session
	subs     map[int]Listener
	nextSub  int
}

func New() *Store {
	return &Store{
		sessions: make(map[string]Session),
		subs:     make(map[int]Listener),
	}
}

// Get returns the cached session for an icode.
func (s *Store) Get(icode string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[icode]
	return sess, ok
}

// Dispatch applies one action and notifies subscribers after the state
// change is committed. Listeners run on the dispatching goroutine, so they
// must not dispatch re-entrantly.
func (s *Store) Dispatch(a Action, sess Session) {
	s.mu.Lock()
	switch a {
	case SessionVerified:
		s.sessions[sess.ICode] = sess
	case PublicationSet:
		if cur, ok := s.sessions[sess.ICode]; ok {
			cur.Publication = sess.Publication
			s.sessions[sess.ICode] = cur
			sess = cur
		} else {
			s.sessions[sess.ICode] = sess
		}
	case LoggedOut:
		delete(s.sessions, sess.ICode)
	}
	listeners := make([]Listener, 0, len(s.subs))
	for _, fn := range s.subs {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(a, sess)
	}
}

// Subscribe registers a listener and returns its unsubscribe func.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// WaitFor blocks until a session for icode is present, via subscription
// rather than polling. Returns immediately when it is already cached.
func (s *Store) WaitFor(ctx context.Context, icode string) (Session, error) {
	if sess, ok := s.Get(icode); ok {
		return sess, nil
	}
	ch := make(chan Session, 1)
	unsub := s.Subscribe(func(a Action, sess Session) {
		if a == SessionVerified && sess.ICode == icode {
			select {
			case ch <- sess:
			default:
			}
		}
	})
	defer unsub()

	// the session may have arrived between Get and Subscribe
	if sess, ok := s.Get(icode); ok {
		return sess, nil
	}
	select {
	case sess := <-ch:
		return sess, nil
	case <-ctx.Done():
		return Session{}, ctx.Err()
	}
}
