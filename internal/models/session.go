package models

import "time"

// SelectionCursor is the entity and kind currently selected in the wizard.
type SelectionCursor struct {
	EntityType EntityType     `json:"entity_type,omitempty"`
	EntityID   string         `json:"entity_id,omitempty"`
	Level      Level          `json:"level,omitempty"`
	Kind       ConstraintType `json:"kind,omitempty"`
}

// WizardSession is the complete state of one wizard session. It is replaced
// wholesale on every mutation; Version increases by one each time.
type WizardSession struct {
	ID          string           `json:"id"`
	OwnerID     string           `json:"owner_id,omitempty"`
	Version     int64            `json:"version"`
	Constraints []TimeConstraint `json:"constraints"`
	FixedSlots  []FixedSlot      `json:"fixed_slots"`
	Cursor      SelectionCursor  `json:"cursor"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// ReconciliationReport splits session records into live and orphaned ones.
type ReconciliationReport struct {
	SessionID         string           `json:"session_id"`
	Version           int64            `json:"version"`
	ActiveConstraints []TimeConstraint `json:"active_constraints"`
	OrphanConstraints []TimeConstraint `json:"orphan_constraints"`
	ActiveFixedSlots  []FixedSlot      `json:"active_fixed_slots"`
	OrphanFixedSlots  []FixedSlot      `json:"orphan_fixed_slots"`
}
