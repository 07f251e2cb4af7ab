package models

import "time"

// FixedSlot is a pinned lesson excluded from later optimisation. The name
// fields cache the roster names at creation time and are not kept in sync.
type FixedSlot struct {
	ID          string    `json:"id"`
	TeacherID   string    `json:"teacher_id"`
	TeacherName string    `json:"teacher_name"`
	ClassID     string    `json:"class_id"`
	ClassName   string    `json:"class_name"`
	SubjectID   string    `json:"subject_id"`
	SubjectName string    `json:"subject_name"`
	Day         Day       `json:"day"`
	Period      string    `json:"period"`
	CreatedAt   time.Time `json:"created_at"`
}

// Fixed slot conflict types.
const (
	ConflictClassSlotTaken   = "CLASS_SLOT_TAKEN"
	ConflictTeacherSlotTaken = "TEACHER_SLOT_TAKEN"
)

// FixedSlotConflictError is returned when a pinned lesson collides with an
// existing one. Conflict is the record already holding the slot.
type FixedSlotConflictError struct {
	Type     string    `json:"type"`
	Message  string    `json:"message"`
	Conflict FixedSlot `json:"conflict"`
}

// Error implements the error interface for conflict errors.
func (e *FixedSlotConflictError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}
