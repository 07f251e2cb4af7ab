package service

import (
	"sync"
	"time"

	"github.com/noah-isme/timetable-wizard-api/internal/models"
)

// wizardSession is the live state of one wizard session. mu serialises
// mutations; readers copy a snapshot under the same lock.
type wizardSession struct {
	mu          sync.Mutex
	id          string
	ownerID     string
	version     int64
	constraints ConstraintStore
	slots       FixedSlotStore
	cursor      models.SelectionCursor
	createdAt   time.Time
	updatedAt   time.Time
	lastSeen    time.Time
}

func sessionFromModel(m models.WizardSession) *wizardSession {
	slots, _ := NewFixedSlotStore(m.FixedSlots)
	return &wizardSession{
		id:          m.ID,
		ownerID:     m.OwnerID,
		version:     m.Version,
		constraints: NewConstraintStore(m.Constraints),
		slots:       slots,
		cursor:      m.Cursor,
		createdAt:   m.CreatedAt,
		updatedAt:   m.UpdatedAt,
	}
}

// snapshot must be called with mu held.
func (s *wizardSession) snapshot() models.WizardSession {
	return models.WizardSession{
		ID:          s.id,
		OwnerID:     s.ownerID,
		Version:     s.version,
		Constraints: s.constraints.Records(),
		FixedSlots:  s.slots.Records(),
		Cursor:      s.cursor,
		CreatedAt:   s.createdAt,
		UpdatedAt:   s.updatedAt,
	}
}

// sessionRegistry keeps sessions in memory and forgets idle ones after ttl.
// Deleted ids are remembered for ttl so late snapshot writes can be dropped.
type sessionRegistry struct {
	ttl     time.Duration
	mu      sync.RWMutex
	items   map[string]*wizardSession
	deleted map[string]time.Time
}

func newSessionRegistry(ttl time.Duration) *sessionRegistry {
	return &sessionRegistry{
		ttl:     ttl,
		items:   make(map[string]*wizardSession),
		deleted: make(map[string]time.Time),
	}
}

func (r *sessionRegistry) Put(session *wizardSession, now time.Time) *wizardSession {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.items[session.id]; ok {
		return existing
	}
	session.lastSeen = now
	r.items[session.id] = session
	return session
}

func (r *sessionRegistry) Get(id string, now time.Time) (*wizardSession, bool) {
	r.mu.RLock()
	session, ok := r.items[id]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	session.mu.Lock()
	expired := now.Sub(session.lastSeen) > r.ttl
	if !expired {
		session.lastSeen = now
	}
	session.mu.Unlock()
	if expired {
		r.Delete(id)
		return nil, false
	}
	return session, true
}

func (r *sessionRegistry) Delete(id string) {
	r.mu.Lock()
	delete(r.items, id)
	r.mu.Unlock()
}

// Tombstone forgets the session and marks its id deleted.
func (r *sessionRegistry) Tombstone(id string, now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	for deletedID, at := range r.deleted {
		if now.Sub(at) > r.ttl {
			delete(r.deleted, deletedID)
		}
	}
	r.deleted[id] = now
}

// Deleted reports whether id was deleted within the last ttl.
func (r *sessionRegistry) Deleted(id string, now time.Time) bool {
	r.mu.RLock()
	at, ok := r.deleted[id]
	r.mu.RUnlock()
	return ok && now.Sub(at) <= r.ttl
}
