package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"admissions-intake-api/metrics"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("wizard session not found")

type wizardEntry struct {
	wizard   *Wizard
	lastSeen time.Time
}

// WizardStore keeps wizards in memory between requests. Sessions idle for
// longer than the TTL are dropped; nothing is persisted.
type WizardStore struct {
	mu        sync.RWMutex
	sessions  map[string]*wizardEntry
	ttl       time.Duration
	submitter Submitter
	metrics   *metrics.Metrics
	now       func() time.Time
}

func NewWizardStore(submitter Submitter, ttl time.Duration, m *metrics.Metrics) *WizardStore {
	return &WizardStore{
		sessions:  make(map[string]*wizardEntry),
		ttl:       ttl,
		submitter: submitter,
		metrics:   m,
		now:       time.Now,
	}
}

// Create starts a new empty wizard and returns its session id.
func (s *WizardStore) Create() (string, *Wizard) {
	id := uuid.NewString()
	wizard := NewWizard(s.submitter, s.metrics)

	s.mu.Lock()
	s.sessions[id] = &wizardEntry{wizard: wizard, lastSeen: s.now()}
	s.mu.Unlock()

	s.metrics.IncrementWizardsStarted()
	return id, wizard
}

// Get returns the wizard for id and refreshes its idle timer.
func (s *WizardStore) Get(id string) (*Wizard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	now := s.now()
	if s.expired(entry, now) {
		delete(s.sessions, id)
		return nil, ErrSessionNotFound
	}
	entry.lastSeen = now
	return entry.wizard, nil
}

// Discard removes a session. Unknown ids are ignored.
func (s *WizardStore) Discard(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len reports the number of live sessions.
func (s *WizardStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep drops expired sessions and returns how many were removed. A
// session with a submission in flight is kept until it finishes.
func (s *WizardStore) Sweep() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, entry := range s.sessions {
		if s.expired(entry, now) && !entry.wizard.State().Submitting {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// StartSweeper runs Sweep every interval until ctx is done.
func (s *WizardStore) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := s.Sweep(); n > 0 {
					log.Printf("wizard store: swept %d idle sessions", n)
				}
			}
		}
	}()
}

func (s *WizardStore) expired(entry *wizardEntry, now time.Time) bool {
	return s.ttl > 0 && now.Sub(entry.lastSeen) > s.ttl
}
