// Package session implements the admin session registry: it mints bearer
// tokens against the single shared admin password and validates them until
// they expire. Sessions live only in process memory, so a restart logs every
// admin out.
package session

import (
	"crypto/subtle"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/David-Van-Dyne/pickup-scheduler/errors"
	"github.com/David-Van-Dyne/pickup-scheduler/metrics"
)

const adminRole = "admin"

// Store is the session surface handlers depend on, so tests can swap in doubles
type Store interface {
	Login(password string) (string, error)
	Authenticate(token string) bool
}

type entry struct {
	role      string
	createdAt time.Time
}

// Registry issues and validates admin bearer tokens with a fixed TTL
type Registry struct {
	secret string
	ttl    time.Duration

	mu       sync.RWMutex
	sessions map[string]entry

	now func() time.Time
}

// NewRegistry creates a session registry for the given shared secret and token TTL
func NewRegistry(secret string, ttl time.Duration) *Registry {
	return &Registry{
		secret:   secret,
		ttl:      ttl,
		sessions: make(map[string]entry),
		now:      time.Now,
	}
}

// Login checks the shared admin password and mints a fresh opaque token on
// match. The comparison is constant-time; the credential model is still a
// single shared secret.
func (r *Registry) Login(password string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(password), []byte(r.secret)) != 1 {
		metrics.RecordLogin(false)
		return "", errors.NewUnauthorizedError("invalid credentials")
	}

	token := "adm_" + uuid.NewString()

	r.mu.Lock()
	r.sessions[token] = entry{role: adminRole, createdAt: r.now()}
	r.mu.Unlock()

	metrics.RecordLogin(true)
	return token, nil
}

// Authenticate reports whether token maps to an unexpired admin session.
// Expired entries found here are evicted.
func (r *Registry) Authenticate(token string) bool {
	if token == "" {
		return false
	}

	r.mu.RLock()
	sess, ok := r.sessions[token]
	r.mu.RUnlock()

	if !ok || sess.role != adminRole {
		return false
	}

	if r.now().Sub(sess.createdAt) > r.ttl {
		r.mu.Lock()
		delete(r.sessions, token)
		r.mu.Unlock()
		return false
	}

	return true
}

// Sweep evicts every expired session and returns how many were removed
func (r *Registry) Sweep() int {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for token, sess := range r.sessions {
		if now.Sub(sess.createdAt) > r.ttl {
			delete(r.sessions, token)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored sessions, expired entries included
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}

var _ Store = (*Registry)(nil)
