package models

// LoadStatus tags a line of the load audit report.
type LoadStatus string

const (
	LoadStatusOK         LoadStatus = "OK"
	LoadStatusOverload   LoadStatus = "OVERLOAD"
	LoadStatusUnderload  LoadStatus = "UNDERLOAD"
	LoadStatusImpossible LoadStatus = "IMPOSSIBLE"
)

// LoadRecord is one parsed row of a weekly load report. ClassID carries the
// report's class name column.
type LoadRecord struct {
	TeacherID        string `json:"teacher_id"`
	Branch           string `json:"branch"`
	Level            string `json:"level"`
	Subject          string `json:"subject"`
	ClassID          string `json:"class_id"`
	WeeklyHours      int    `json:"weekly_hours"`
	DistributionCode string `json:"distribution_code,omitempty"`
	Line             int    `json:"line"`
}

// SkippedLine records a report row that could not be parsed.
type SkippedLine struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// ClassLoadEntry is the weekly total of one class.
type ClassLoadEntry struct {
	ClassID    string     `json:"class_id"`
	TotalHours int        `json:"total_hours"`
	WeeklyCap  int        `json:"weekly_cap"`
	Status     LoadStatus `json:"status"`
}

// FeasibilityEntry is the weekly total of one teacher/class pair at the
// audited level.
type FeasibilityEntry struct {
	TeacherID  string     `json:"teacher_id"`
	ClassID    string     `json:"class_id"`
	TotalHours int        `json:"total_hours"`
	MaxHours   int        `json:"max_hours"`
	Status     LoadStatus `json:"status"`
}

// LoadAuditReport bundles both audit views for one report.
type LoadAuditReport struct {
	Classes      []ClassLoadEntry   `json:"classes"`
	Feasibility  []FeasibilityEntry `json:"feasibility"`
	RecordCount  int                `json:"record_count"`
	SkippedCount int                `json:"skipped_count"`
	Skipped      []SkippedLine      `json:"skipped,omitempty"`
}
