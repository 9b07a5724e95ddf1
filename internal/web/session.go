package web

import (
	"sync"
	"time"

	"github.com/Dan9191/simulador-financeiro/internal/form"
	"github.com/Dan9191/simulador-financeiro/internal/utils"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Session binds one browser to one form. Every event takes mu, so field
// changes, submissions and resets never interleave.
type Session struct {
	ID string

	mu       sync.Mutex
	form     *form.State
	lastSeen time.Time
}

// Store keeps the live sessions
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	mode     utils.Mode
	idle     time.Duration
	now      func() time.Time
}

// NewStore creates an empty session store
func NewStore(mode utils.Mode, idle time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		mode:     mode,
		idle:     idle,
		now:      time.Now,
	}
}

// Get returns the session for id, or nil when unknown
func (s *Store) Get(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil
	}
	sess.lastSeen = s.now()
	return sess
}

// Create registers a new session with an empty form
func (s *Store) Create() *Session {
	sess := &Session{
		ID:   uuid.NewString(),
		form: form.New(s.mode),
	}
	s.mu.Lock()
	sess.lastSeen = s.now()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

// Sweep drops sessions idle for longer than the configured timeout
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	removed := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.idle {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// StartJanitor schedules Sweep; the returned cron must be stopped by the caller
func StartJanitor(store *Store, schedule string, log *logrus.Logger) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		if n := store.Sweep(); n > 0 {
			log.Infof("Evicted %d idle sessions", n)
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	log.Infof("Session janitor scheduled: %s", schedule)
	return c, nil
}
