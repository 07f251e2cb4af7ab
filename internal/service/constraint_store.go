package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/timetable-wizard-api/internal/models"
	appErrors "github.com/noah-isme/timetable-wizard-api/pkg/errors"
)

// ConstraintStore is an immutable collection of time constraints. Every
// mutation returns a new store and leaves the receiver untouched, so a store
// value can be shared freely with readers.
type ConstraintStore struct {
	version uint64
	records []models.TimeConstraint
}

// NewConstraintStore rehydrates a store from persisted records. When two
// records share a natural key the later one wins.
func NewConstraintStore(records []models.TimeConstraint) ConstraintStore {
	out := make([]models.TimeConstraint, 0, len(records))
	index := make(map[models.ConstraintKey]int, len(records))
	for _, rec := range records {
		if i, ok := index[rec.Key()]; ok {
			out[i] = rec
			continue
		}
		index[rec.Key()] = len(out)
		out = append(out, rec)
	}
	return ConstraintStore{records: out}
}

// Version counts the mutations that produced this store.
func (s ConstraintStore) Version() uint64 { return s.version }

// Len returns the number of stored constraints.
func (s ConstraintStore) Len() int { return len(s.records) }

// Records returns a copy of the constraints in insertion order.
func (s ConstraintStore) Records() []models.TimeConstraint {
	out := make([]models.TimeConstraint, len(s.records))
	copy(out, s.records)
	return out
}

// ForEntity returns the constraints of one entity in insertion order.
func (s ConstraintStore) ForEntity(entityType models.EntityType, entityID string) []models.TimeConstraint {
	var out []models.TimeConstraint
	for _, rec := range s.records {
		if rec.EntityType == entityType && rec.EntityID == entityID {
			out = append(out, rec)
		}
	}
	return out
}

// Query looks a constraint up by its natural key.
func (s ConstraintStore) Query(entityType models.EntityType, entityID string, day models.Day, period string) (models.TimeConstraint, bool) {
	key := models.ConstraintKey{EntityType: entityType, EntityID: entityID, Day: day, Period: period}
	if i := s.indexOf(key); i >= 0 {
		return s.records[i], true
	}
	return models.TimeConstraint{}, false
}

// Toggle cycles the cell (ref, day, period) through the requested kind:
// an absent cell gains a constraint of that kind, a cell holding another kind
// switches to it, and a cell already holding it is cleared.
func (s ConstraintStore) Toggle(ref models.EntityRef, day models.Day, period string, kind models.ConstraintType, reason string, now time.Time) (ConstraintStore, error) {
	if err := validateConstraintTarget(ref, kind); err != nil {
		return s, err
	}
	if !assignable(ref.Level, day, period) {
		return s, appErrors.Clone(appErrors.ErrInvalidPeriod, fmt.Sprintf("%s period %q is not assignable for level %q", day, period, ref.Level))
	}

	key := models.ConstraintKey{EntityType: ref.Type, EntityID: ref.ID, Day: day, Period: period}
	i := s.indexOf(key)
	switch {
	case i >= 0 && s.records[i].ConstraintType == kind:
		next := make([]models.TimeConstraint, 0, len(s.records)-1)
		next = append(next, s.records[:i]...)
		next = append(next, s.records[i+1:]...)
		return s.with(next), nil
	case i >= 0:
		next := s.Records()
		next[i].ConstraintType = kind
		next[i].Reason = reason
		next[i].UpdatedAt = now
		return s.with(next), nil
	default:
		next := make([]models.TimeConstraint, len(s.records), len(s.records)+1)
		copy(next, s.records)
		next = append(next, newConstraint(key, kind, reason, now))
		return s.with(next), nil
	}
}

// BulkSet replaces every constraint of the entity. Unless kind is the
// baseline, one constraint is created for each assignable cell of the
// entity's grid.
func (s ConstraintStore) BulkSet(ref models.EntityRef, kind models.ConstraintType, now time.Time) (ConstraintStore, error) {
	if err := validateConstraintTarget(ref, kind); err != nil {
		return s, err
	}
	lessons := LessonPeriods(ref.Level)
	if kind != models.BaselineConstraint && len(lessons) == 0 {
		return s, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s %s has no time grid for level %q", ref.Type, ref.ID, ref.Level))
	}

	next := s.without(ref.ID)
	if kind == models.BaselineConstraint {
		return s.with(next), nil
	}
	reason := fmt.Sprintf("Toplu atama: %s", kind)
	for _, day := range schoolDays {
		for _, p := range lessons {
			key := models.ConstraintKey{EntityType: ref.Type, EntityID: ref.ID, Day: day, Period: p.Period}
			next = append(next, newConstraint(key, kind, reason, now))
		}
	}
	return s.with(next), nil
}

// Reset removes every constraint of the entity.
func (s ConstraintStore) Reset(entityID string) ConstraintStore {
	return s.with(s.without(entityID))
}

func (s ConstraintStore) indexOf(key models.ConstraintKey) int {
	for i, rec := range s.records {
		if rec.Key() == key {
			return i
		}
	}
	return -1
}

func (s ConstraintStore) without(entityID string) []models.TimeConstraint {
	next := make([]models.TimeConstraint, 0, len(s.records))
	for _, rec := range s.records {
		if rec.EntityID != entityID {
			next = append(next, rec)
		}
	}
	return next
}

func (s ConstraintStore) with(records []models.TimeConstraint) ConstraintStore {
	return ConstraintStore{version: s.version + 1, records: records}
}

func newConstraint(key models.ConstraintKey, kind models.ConstraintType, reason string, now time.Time) models.TimeConstraint {
	return models.TimeConstraint{
		ID:             uuid.NewString(),
		EntityType:     key.EntityType,
		EntityID:       key.EntityID,
		Day:            key.Day,
		Period:         key.Period,
		ConstraintType: kind,
		Reason:         reason,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func validateConstraintTarget(ref models.EntityRef, kind models.ConstraintType) error {
	if !ref.Type.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown entity type %q", ref.Type))
	}
	if strings.TrimSpace(ref.ID) == "" {
		return appErrors.Clone(appErrors.ErrValidation, "entity id is required")
	}
	if !kind.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown constraint type %q", kind))
	}
	return nil
}
