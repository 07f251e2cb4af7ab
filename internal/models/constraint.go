package models

import "time"

// EntityType tags what a reference points at in the roster.
type EntityType string

const (
	EntityTeacher EntityType = "teacher"
	EntityClass   EntityType = "class"
	EntitySubject EntityType = "subject"
)

// Valid reports whether the entity type is one of the known kinds.
func (t EntityType) Valid() bool {
	switch t {
	case EntityTeacher, EntityClass, EntitySubject:
		return true
	}
	return false
}

// EntityRef references a roster entity. Level is resolved once when the
// reference is built and is never looked up again.
type EntityRef struct {
	Type  EntityType `json:"type"`
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Level Level      `json:"level"`
}

// NewEntityRef builds a reference, taking the first non-empty level candidate.
func NewEntityRef(entityType EntityType, id, name string, levels ...string) EntityRef {
	ref := EntityRef{Type: entityType, ID: id, Name: name}
	for _, candidate := range levels {
		if level, ok := ParseLevel(candidate); ok {
			ref.Level = level
			break
		}
	}
	return ref
}

// ConstraintType is the policy kind attached to an (entity, day, period) cell.
type ConstraintType string

const (
	ConstraintUnavailable ConstraintType = "unavailable"
	ConstraintPreferred   ConstraintType = "preferred"
	ConstraintRestricted  ConstraintType = "restricted"
)

// BaselineConstraint is the neutral kind; bulk-setting to it clears an entity.
const BaselineConstraint = ConstraintPreferred

// Valid reports whether the kind is known.
func (c ConstraintType) Valid() bool {
	switch c {
	case ConstraintUnavailable, ConstraintPreferred, ConstraintRestricted:
		return true
	}
	return false
}

// TimeConstraint marks one (entity, day, period) cell with a policy kind.
type TimeConstraint struct {
	ID             string         `json:"id"`
	EntityType     EntityType     `json:"entity_type"`
	EntityID       string         `json:"entity_id"`
	Day            Day            `json:"day"`
	Period         string         `json:"period"`
	ConstraintType ConstraintType `json:"constraint_type"`
	Reason         string         `json:"reason,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// ConstraintKey is the natural key of a TimeConstraint.
type ConstraintKey struct {
	EntityType EntityType
	EntityID   string
	Day        Day
	Period     string
}

// Key returns the natural key of the constraint.
func (c TimeConstraint) Key() ConstraintKey {
	return ConstraintKey{EntityType: c.EntityType, EntityID: c.EntityID, Day: c.Day, Period: c.Period}
}
