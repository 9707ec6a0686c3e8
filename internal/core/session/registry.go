package session

import (
	"sync"

	"github.com/yndnr/zombienet-go/internal/core/domain"
)

// Registry holds at most one active Session.
//
// The registry owns the handle once Set; it never copies it. It is safe for
// concurrent use because termination events arrive on their own goroutines.
type Registry struct {
	mu      sync.Mutex
	current Session
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Set registers s as the active session.
// It fails with domain.ErrSessionActive if a session is already held.
func (r *Registry) Set(s Session) error {
	if s == nil {
		return domain.ErrSessionActive.WithDetails("nil session")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current != nil {
		return domain.ErrSessionActive.WithDetails(r.current.Namespace())
	}
	r.current = s
	return nil
}

// Get returns the active session, if any.
func (r *Registry) Get() (Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current, r.current != nil
}

// Clear drops the active session.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = nil
}
