package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/timetable-wizard-api/internal/models"
	appErrors "github.com/noah-isme/timetable-wizard-api/pkg/errors"
)

// FixedSlotStore is an immutable collection of pinned lessons. A class holds
// at most one lesson per (day, period), and so does a teacher.
type FixedSlotStore struct {
	version uint64
	slots   []models.FixedSlot
}

// NewFixedSlotStore rehydrates a store from persisted records. Records that
// would break either uniqueness rule are dropped and returned separately.
func NewFixedSlotStore(records []models.FixedSlot) (FixedSlotStore, []models.FixedSlot) {
	var (
		store    FixedSlotStore
		rejected []models.FixedSlot
	)
	for _, rec := range records {
		if _, conflict := store.conflictFor(rec.TeacherID, rec.ClassID, rec.Day, rec.Period); conflict != nil {
			rejected = append(rejected, rec)
			continue
		}
		store.slots = append(store.slots, rec)
	}
	return store, rejected
}

// Version counts the mutations that produced this store.
func (s FixedSlotStore) Version() uint64 { return s.version }

// Len returns the number of pinned lessons.
func (s FixedSlotStore) Len() int { return len(s.slots) }

// Records returns a copy of the pinned lessons in insertion order.
func (s FixedSlotStore) Records() []models.FixedSlot {
	out := make([]models.FixedSlot, len(s.slots))
	copy(out, s.slots)
	return out
}

// Add pins a lesson. The class slot is checked before the teacher slot, and
// either collision rejects the write with the conflicting record attached.
func (s FixedSlotStore) Add(teacher, class, subject models.EntityRef, day models.Day, period string, now time.Time) (FixedSlotStore, error) {
	if teacher.ID == "" || class.ID == "" || subject.ID == "" {
		return s, appErrors.Clone(appErrors.ErrValidation, "teacher, class and subject are required")
	}
	if !assignable(class.Level, day, period) {
		return s, appErrors.Clone(appErrors.ErrInvalidPeriod, fmt.Sprintf("%s period %q is not assignable for level %q", day, period, class.Level))
	}
	if base, conflict := s.conflictFor(teacher.ID, class.ID, day, period); conflict != nil {
		return s, appErrors.Wrap(conflict, base.Code, base.Status, conflict.Message)
	}

	slot := models.FixedSlot{
		ID:          uuid.NewString(),
		TeacherID:   teacher.ID,
		TeacherName: teacher.Name,
		ClassID:     class.ID,
		ClassName:   class.Name,
		SubjectID:   subject.ID,
		SubjectName: subject.Name,
		Day:         day,
		Period:      period,
		CreatedAt:   now,
	}
	next := make([]models.FixedSlot, len(s.slots), len(s.slots)+1)
	copy(next, s.slots)
	next = append(next, slot)
	return FixedSlotStore{version: s.version + 1, slots: next}, nil
}

// Remove drops the pinned lesson with the given id. Unknown ids are ignored.
func (s FixedSlotStore) Remove(id string) FixedSlotStore {
	next := make([]models.FixedSlot, 0, len(s.slots))
	for _, slot := range s.slots {
		if slot.ID != id {
			next = append(next, slot)
		}
	}
	if len(next) == len(s.slots) {
		return s
	}
	return FixedSlotStore{version: s.version + 1, slots: next}
}

// GroupByTeacher groups pinned lessons per teacher, keeping insertion order
// inside each group.
func (s FixedSlotStore) GroupByTeacher() map[string][]models.FixedSlot {
	groups := make(map[string][]models.FixedSlot)
	for _, slot := range s.slots {
		groups[slot.TeacherID] = append(groups[slot.TeacherID], slot)
	}
	return groups
}

// TeacherOrder lists teacher ids in the order they first appear.
func (s FixedSlotStore) TeacherOrder() []string {
	seen := make(map[string]struct{})
	var order []string
	for _, slot := range s.slots {
		if _, ok := seen[slot.TeacherID]; ok {
			continue
		}
		seen[slot.TeacherID] = struct{}{}
		order = append(order, slot.TeacherID)
	}
	return order
}

func (s FixedSlotStore) conflictFor(teacherID, classID string, day models.Day, period string) (*appErrors.Error, *models.FixedSlotConflictError) {
	for _, slot := range s.slots {
		if slot.ClassID == classID && slot.Day == day && slot.Period == period {
			return appErrors.ErrClassSlotTaken, &models.FixedSlotConflictError{
				Type:     models.ConflictClassSlotTaken,
				Message:  fmt.Sprintf("class %s already has %s with %s on %s period %s", slot.ClassName, slot.SubjectName, slot.TeacherName, day, period),
				Conflict: slot,
			}
		}
	}
	for _, slot := range s.slots {
		if slot.TeacherID == teacherID && slot.Day == day && slot.Period == period {
			return appErrors.ErrTeacherSlotTaken, &models.FixedSlotConflictError{
				Type:     models.ConflictTeacherSlotTaken,
				Message:  fmt.Sprintf("teacher %s already teaches %s in class %s on %s period %s", slot.TeacherName, slot.SubjectName, slot.ClassName, day, period),
				Conflict: slot,
			}
		}
	}
	return nil, nil
}
