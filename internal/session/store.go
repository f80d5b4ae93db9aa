package session

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"restorder/internal/models"
)

// CookieName is the cookie carrying the session ID.
const CookieName = "session_id"

// Session holds the per-client state: the cart being built and the employee
// login flag. A session is owned by one client; handlers lock it for the
// duration of a mutation.
type Session struct {
	mu sync.Mutex

	ID       string
	Cart     models.Cart
	LoggedIn bool
	Username string

	lastSeen time.Time
}

// Do runs fn while holding the session lock.
func (s *Session) Do(fn func(*Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s)
}

// Store keeps sessions in memory and expires them after a TTL of
// inactivity. Expiry destroys the session's cart.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	stop     chan struct{}
}

// NewStore creates a session store and starts its expiry sweeper.
func NewStore(ttl time.Duration) *Store {
	st := &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}
	go st.sweep()
	return st
}

// Get returns the session for the request, creating one (and setting the
// cookie) when the request carries no known session.
func (st *Store) Get(w http.ResponseWriter, r *http.Request) *Session {
	if cookie, err := r.Cookie(CookieName); err == nil {
		if sess := st.lookup(cookie.Value); sess != nil {
			return sess
		}
	}

	sess := st.create()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

// Lookup returns the live session with the given ID, or nil.
func (st *Store) Lookup(id string) *Session {
	return st.lookup(id)
}

func (st *Store) lookup(id string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	sess, ok := st.sessions[id]
	if !ok {
		return nil
	}
	if time.Since(sess.lastSeen) > st.ttl {
		delete(st.sessions, id)
		return nil
	}
	sess.lastSeen = time.Now()
	return sess
}

func (st *Store) create() *Session {
	sess := &Session{
		ID:       uuid.NewString(),
		lastSeen: time.Now(),
	}

	st.mu.Lock()
	st.sessions[sess.ID] = sess
	st.mu.Unlock()

	return sess
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Close stops the expiry sweeper.
func (st *Store) Close() {
	close(st.stop)
}

func (st *Store) sweep() {
	ticker := time.NewTicker(st.ttl / 2)
	defer ticker.Stop()

	for {
		select {
		case <-st.stop:
			return
		case <-ticker.C:
			st.expire(time.Now())
		}
	}
}

// expire removes sessions idle longer than the TTL.
func (st *Store) expire(now time.Time) {
	st.mu.Lock()
	defer st.mu.Unlock()

	for id, sess := range st.sessions {
		if now.Sub(sess.lastSeen) > st.ttl {
			delete(st.sessions, id)
		}
	}
}
