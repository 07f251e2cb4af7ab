package service

import (
	"strings"

	"github.com/noah-isme/timetable-wizard-api/internal/models"
)

var entityIDPrefixes = []string{"teacher", "class", "subject"}

// NormalizeEntityID canonicalises an id across entity types by trimming
// whitespace and a leading type prefix such as "teacher:" or "class_".
func NormalizeEntityID(id string) string {
	id = strings.TrimSpace(id)
	lower := strings.ToLower(id)
	for _, prefix := range entityIDPrefixes {
		if len(lower) <= len(prefix)+1 || !strings.HasPrefix(lower, prefix) {
			continue
		}
		switch lower[len(prefix)] {
		case ':', '_', '-':
			return strings.TrimSpace(id[len(prefix)+1:])
		}
	}
	return id
}

// IDSet is a set of normalised entity ids.
type IDSet map[string]struct{}

// NewIDSet normalises and collects the given ids.
func NewIDSet(ids ...string) IDSet {
	set := make(IDSet, len(ids))
	for _, id := range ids {
		if n := NormalizeEntityID(id); n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}

// Has reports whether the normalised id is in the set.
func (s IDSet) Has(id string) bool {
	_, ok := s[NormalizeEntityID(id)]
	return ok
}

// Partition splits constraints into those referencing a live entity and the
// orphaned rest. Every input record lands in exactly one side, in its
// original relative order.
func Partition(constraints []models.TimeConstraint, validIDs IDSet) (active, orphaned []models.TimeConstraint) {
	active = make([]models.TimeConstraint, 0, len(constraints))
	orphaned = make([]models.TimeConstraint, 0)
	for _, rec := range constraints {
		if validIDs.Has(rec.EntityID) {
			active = append(active, rec)
		} else {
			orphaned = append(orphaned, rec)
		}
	}
	return active, orphaned
}

// PartitionFixedSlots splits pinned lessons the same way; a lesson is
// orphaned as soon as its teacher, class or subject is gone.
func PartitionFixedSlots(slots []models.FixedSlot, validIDs IDSet) (active, orphaned []models.FixedSlot) {
	active = make([]models.FixedSlot, 0, len(slots))
	orphaned = make([]models.FixedSlot, 0)
	for _, slot := range slots {
		if validIDs.Has(slot.TeacherID) && validIDs.Has(slot.ClassID) && validIDs.Has(slot.SubjectID) {
			active = append(active, slot)
		} else {
			orphaned = append(orphaned, slot)
		}
	}
	return active, orphaned
}
