package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timetable-wizard-api/internal/models"
)

func loadRecord(teacher, class, level string, hours int) models.LoadRecord {
	return models.LoadRecord{TeacherID: teacher, ClassID: class, Level: level, WeeklyHours: hours}
}

func TestTeacherClassFeasibility(t *testing.T) {
	records := []models.LoadRecord{
		loadRecord("T1", "C1", "Ortaokul", 45),
		loadRecord("T1", "C2", "Ortaokul", 3),
	}
	entries := TeacherClassFeasibility(records, DefaultAuditPolicy())

	require.Len(t, entries, 2)
	assert.Equal(t, models.FeasibilityEntry{TeacherID: "T1", ClassID: "C1", TotalHours: 45, MaxHours: 15, Status: models.LoadStatusImpossible}, entries[0])
	assert.Equal(t, models.LoadStatusOK, entries[1].Status)
	assert.Equal(t, 3, entries[1].TotalHours)
}

func TestTeacherClassFeasibilitySumsAndFiltersLevel(t *testing.T) {
	records := []models.LoadRecord{
		loadRecord("T1", "C1", "Ortaokul", 8),
		loadRecord("T1", "C1", "ORTAOKUL", 8),
		loadRecord("T2", "C1", "İlkokul", 30),
		loadRecord("T3", "C1", "lise", 30),
	}
	entries := TeacherClassFeasibility(records, DefaultAuditPolicy())

	require.Len(t, entries, 1)
	assert.Equal(t, 16, entries[0].TotalHours)
	assert.Equal(t, models.LoadStatusImpossible, entries[0].Status)

	primary, err := NewAuditPolicy(0, 0, 0, "İlkokul")
	require.NoError(t, err)
	entries = TeacherClassFeasibility(records, primary)
	require.Len(t, entries, 1)
	assert.Equal(t, "T2", entries[0].TeacherID)
}

func TestTeacherClassFeasibilityBoundary(t *testing.T) {
	entries := TeacherClassFeasibility([]models.LoadRecord{loadRecord("T1", "C1", "Ortaokul", 15)}, DefaultAuditPolicy())
	require.Len(t, entries, 1)
	assert.Equal(t, models.LoadStatusOK, entries[0].Status)
}

func TestClassLoad(t *testing.T) {
	records := []models.LoadRecord{
		loadRecord("T1", "C1", "Ortaokul", 40),
		loadRecord("T2", "C1", "İlkokul", 6),
		loadRecord("T1", "C2", "Ortaokul", 45),
		loadRecord("T3", "C3", "Anaokulu", 40),
	}
	entries := ClassLoad(records, DefaultAuditPolicy())

	require.Len(t, entries, 3)
	assert.Equal(t, models.ClassLoadEntry{ClassID: "C1", TotalHours: 46, WeeklyCap: 45, Status: models.LoadStatusOverload}, entries[0])
	assert.Equal(t, models.LoadStatusOK, entries[1].Status)
	assert.Equal(t, models.LoadStatusUnderload, entries[2].Status)
}

func TestAuditCountsRows(t *testing.T) {
	parsed := LoadParseResult{
		Records: []models.LoadRecord{loadRecord("T1", "C1", "Ortaokul", 5)},
		Skipped: []models.SkippedLine{{Line: 2, Reason: "bad"}},
	}
	report := Audit(parsed, DefaultAuditPolicy())
	assert.Equal(t, 1, report.RecordCount)
	assert.Equal(t, 1, report.SkippedCount)
	assert.Len(t, report.Classes, 1)
	assert.Len(t, report.Feasibility, 1)
}

func TestNewAuditPolicy(t *testing.T) {
	policy, err := NewAuditPolicy(40, 2, 0, "")
	require.NoError(t, err)
	assert.Equal(t, 40, policy.WeeklyCap)
	assert.Equal(t, 2, policy.DailyCap)
	assert.Equal(t, 5, policy.SchoolDays)
	assert.Equal(t, models.LevelMiddle, policy.AuditedLevel)
	assert.Equal(t, 10, policy.MaxPairHours())
	assert.Equal(t, "weekly=40 daily=2 days=5 level=Ortaokul", policy.String())

	_, err = NewAuditPolicy(0, 0, 0, "lise")
	assert.Error(t, err)
}

func TestWriteAuditText(t *testing.T) {
	report := Audit(LoadParseResult{Records: []models.LoadRecord{loadRecord("T1", "C1", "Ortaokul", 45)}}, DefaultAuditPolicy())

	var buf bytes.Buffer
	require.NoError(t, WriteAuditText(&buf, report))
	out := buf.String()
	assert.Contains(t, out, "C1")
	assert.Contains(t, out, "45/45  OK")
	assert.Contains(t, out, "45/15  IMPOSSIBLE")
	assert.Contains(t, out, "records=1 skipped=0")
}
