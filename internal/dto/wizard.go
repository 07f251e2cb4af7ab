package dto

import "github.com/noah-isme/timetable-wizard-api/internal/models"

// ToggleConstraintRequest cycles one grid cell of an entity through a kind.
// Level is used when the roster does not know the entity's tier.
type ToggleConstraintRequest struct {
	EntityType      string `json:"entityType" validate:"required,oneof=teacher class subject"`
	EntityID        string `json:"entityId" validate:"required"`
	Level           string `json:"level"`
	Day             string `json:"day" validate:"required"`
	Period          string `json:"period" validate:"required"`
	Kind            string `json:"kind" validate:"required,oneof=unavailable preferred restricted"`
	Reason          string `json:"reason" validate:"max=255"`
	ExpectedVersion *int64 `json:"expectedVersion" validate:"omitempty,min=0"`
}

// BulkSetConstraintsRequest sets every cell of an entity to one kind.
type BulkSetConstraintsRequest struct {
	EntityType      string `json:"entityType" validate:"required,oneof=teacher class subject"`
	EntityID        string `json:"entityId" validate:"required"`
	Level           string `json:"level"`
	Kind            string `json:"kind" validate:"required,oneof=unavailable preferred restricted"`
	ExpectedVersion *int64 `json:"expectedVersion" validate:"omitempty,min=0"`
}

// ConstraintLookupQuery addresses one cell by its natural key.
type ConstraintLookupQuery struct {
	EntityType string `form:"entity_type" json:"entityType" validate:"required,oneof=teacher class subject"`
	EntityID   string `form:"entity_id" json:"entityId" validate:"required"`
	Day        string `form:"day" json:"day" validate:"required"`
	Period     string `form:"period" json:"period" validate:"required"`
}

// AddFixedSlotRequest pins a lesson.
type AddFixedSlotRequest struct {
	TeacherID       string `json:"teacherId" validate:"required"`
	ClassID         string `json:"classId" validate:"required"`
	SubjectID       string `json:"subjectId" validate:"required"`
	Level           string `json:"level"`
	Day             string `json:"day" validate:"required"`
	Period          string `json:"period" validate:"required"`
	ExpectedVersion *int64 `json:"expectedVersion" validate:"omitempty,min=0"`
}

// UpdateCursorRequest moves the wizard selection.
type UpdateCursorRequest struct {
	EntityType string `json:"entityType" validate:"omitempty,oneof=teacher class subject"`
	EntityID   string `json:"entityId"`
	Level      string `json:"level"`
	Kind       string `json:"kind" validate:"omitempty,oneof=unavailable preferred restricted"`
}

// FixedSlotGroup lists the pinned lessons of one teacher.
type FixedSlotGroup struct {
	TeacherID   string             `json:"teacherId"`
	TeacherName string             `json:"teacherName"`
	Slots       []models.FixedSlot `json:"slots"`
}

// ConstraintLookupResponse reports the constraint found for a cell, if any.
type ConstraintLookupResponse struct {
	Found      bool                   `json:"found"`
	Constraint *models.TimeConstraint `json:"constraint,omitempty"`
}
