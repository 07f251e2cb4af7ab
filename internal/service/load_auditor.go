package service

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/noah-isme/timetable-wizard-api/internal/models"
)

// AuditPolicy holds the load limits the auditor checks against.
type AuditPolicy struct {
	WeeklyCap    int
	DailyCap     int
	SchoolDays   int
	AuditedLevel models.Level
}

// DefaultAuditPolicy is a 45-period week with at most three lessons of one
// teacher in one class per day, audited at middle school.
func DefaultAuditPolicy() AuditPolicy {
	return AuditPolicy{WeeklyCap: 45, DailyCap: 3, SchoolDays: len(schoolDays), AuditedLevel: models.LevelMiddle}
}

// NewAuditPolicy builds a policy from raw settings. Zero values fall back to
// the defaults; an unrecognised level is an error.
func NewAuditPolicy(weeklyCap, dailyCap, schoolDays int, level string) (AuditPolicy, error) {
	policy := AuditPolicy{WeeklyCap: weeklyCap, DailyCap: dailyCap, SchoolDays: schoolDays}
	if level != "" {
		parsed, ok := models.ParseLevel(level)
		if !ok {
			return AuditPolicy{}, fmt.Errorf("unknown audit level %q", level)
		}
		policy.AuditedLevel = parsed
	}
	return policy.normalized(), nil
}

func (p AuditPolicy) normalized() AuditPolicy {
	def := DefaultAuditPolicy()
	if p.WeeklyCap <= 0 {
		p.WeeklyCap = def.WeeklyCap
	}
	if p.DailyCap <= 0 {
		p.DailyCap = def.DailyCap
	}
	if p.SchoolDays <= 0 {
		p.SchoolDays = def.SchoolDays
	}
	if p.AuditedLevel == "" {
		p.AuditedLevel = def.AuditedLevel
	}
	return p
}

// MaxPairHours is the most a teacher can give one class in a week without
// any day exceeding the daily cap.
func (p AuditPolicy) MaxPairHours() int {
	p = p.normalized()
	return p.SchoolDays * p.DailyCap
}

func (p AuditPolicy) String() string {
	p = p.normalized()
	return fmt.Sprintf("weekly=%d daily=%d days=%d level=%s", p.WeeklyCap, p.DailyCap, p.SchoolDays, p.AuditedLevel)
}

// ClassLoad totals weekly hours per class over every level and compares each
// total with the weekly cap.
func ClassLoad(records []models.LoadRecord, policy AuditPolicy) []models.ClassLoadEntry {
	policy = policy.normalized()
	totals := make(map[string]int)
	for _, rec := range records {
		totals[rec.ClassID] += rec.WeeklyHours
	}

	entries := make([]models.ClassLoadEntry, 0, len(totals))
	for classID, total := range totals {
		status := models.LoadStatusOK
		switch {
		case total > policy.WeeklyCap:
			status = models.LoadStatusOverload
		case total < policy.WeeklyCap:
			status = models.LoadStatusUnderload
		}
		entries = append(entries, models.ClassLoadEntry{ClassID: classID, TotalHours: total, WeeklyCap: policy.WeeklyCap, Status: status})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ClassID < entries[j].ClassID })
	return entries
}

type pairKey struct {
	teacherID string
	classID   string
}

// TeacherClassFeasibility totals weekly hours per teacher/class pair at the
// audited level. A pair is IMPOSSIBLE when its total exceeds
// SchoolDays*DailyCap: no spread over the week keeps every day at or under
// the cap. Passing the check does not prove a valid spread exists.
func TeacherClassFeasibility(records []models.LoadRecord, policy AuditPolicy) []models.FeasibilityEntry {
	policy = policy.normalized()
	limit := policy.MaxPairHours()
	totals := make(map[pairKey]int)
	for _, rec := range records {
		level, ok := models.ParseLevel(rec.Level)
		if !ok || level != policy.AuditedLevel {
			continue
		}
		totals[pairKey{teacherID: rec.TeacherID, classID: rec.ClassID}] += rec.WeeklyHours
	}

	entries := make([]models.FeasibilityEntry, 0, len(totals))
	for key, total := range totals {
		status := models.LoadStatusOK
		if total > limit {
			status = models.LoadStatusImpossible
		}
		entries = append(entries, models.FeasibilityEntry{TeacherID: key.teacherID, ClassID: key.classID, TotalHours: total, MaxHours: limit, Status: status})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TeacherID != entries[j].TeacherID {
			return entries[i].TeacherID < entries[j].TeacherID
		}
		return entries[i].ClassID < entries[j].ClassID
	})
	return entries
}

// Audit runs both checks over a parsed report.
func Audit(parsed LoadParseResult, policy AuditPolicy) models.LoadAuditReport {
	return models.LoadAuditReport{
		Classes:      ClassLoad(parsed.Records, policy),
		Feasibility:  TeacherClassFeasibility(parsed.Records, policy),
		RecordCount:  len(parsed.Records),
		SkippedCount: len(parsed.Skipped),
		Skipped:      parsed.Skipped,
	}
}

// WriteAuditText renders the report as plain text, one line per class and per
// teacher/class pair.
func WriteAuditText(w io.Writer, report models.LoadAuditReport) error {
	var b strings.Builder
	b.WriteString("== Sınıf haftalık yük ==\n")
	for _, entry := range report.Classes {
		fmt.Fprintf(&b, "%-12s %3d/%d  %s\n", entry.ClassID, entry.TotalHours, entry.WeeklyCap, entry.Status)
	}
	b.WriteString("== Öğretmen/sınıf dağılımı ==\n")
	for _, entry := range report.Feasibility {
		fmt.Fprintf(&b, "%-12s %-12s %3d/%d  %s\n", entry.TeacherID, entry.ClassID, entry.TotalHours, entry.MaxHours, entry.Status)
	}
	fmt.Fprintf(&b, "records=%d skipped=%d\n", report.RecordCount, report.SkippedCount)
	_, err := io.WriteString(w, b.String())
	return err
}
