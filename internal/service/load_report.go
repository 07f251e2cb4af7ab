package service

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/noah-isme/timetable-wizard-api/internal/models"
)

const (
	minLoadReportFields = 6
	maxLoadReportLine   = 1 << 20
)

// LoadParseResult holds the usable rows of a load report and the rows that
// were skipped.
type LoadParseResult struct {
	Records []models.LoadRecord
	Skipped []models.SkippedLine
}

// ParseLoadReport reads ';'-separated rows of the form
// teacherId;branch;level;subjectName;className;weeklyHours[;distributionCode...].
// Every physical line is one row. Rows that cannot be used are skipped and
// counted; only read failures of the underlying reader are returned as errors.
func ParseLoadReport(r io.Reader) (LoadParseResult, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLoadReportLine)

	var result LoadParseResult
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		if line == 1 {
			text = strings.TrimPrefix(text, "\ufeff")
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		record, reason := parseLoadFields(strings.Split(text, ";"))
		if reason != "" {
			result.Skipped = append(result.Skipped, models.SkippedLine{Line: line, Reason: reason})
			continue
		}
		record.Line = line
		result.Records = append(result.Records, record)
	}
	if err := scanner.Err(); err != nil {
		return result, fmt.Errorf("read load report line %d: %w", line+1, err)
	}
	return result, nil
}

func parseLoadFields(fields []string) (models.LoadRecord, string) {
	if len(fields) < minLoadReportFields {
		return models.LoadRecord{}, fmt.Sprintf("expected at least %d fields, got %d", minLoadReportFields, len(fields))
	}
	for i := range fields {
		fields[i] = strings.Trim(strings.TrimSpace(fields[i]), `"`)
	}
	hours, err := strconv.Atoi(fields[5])
	if err != nil {
		return models.LoadRecord{}, fmt.Sprintf("weekly hours %q is not a number", fields[5])
	}
	if hours < 0 {
		return models.LoadRecord{}, fmt.Sprintf("weekly hours %d is negative", hours)
	}
	if fields[0] == "" || fields[4] == "" {
		return models.LoadRecord{}, "teacher id and class name are required"
	}
	record := models.LoadRecord{
		TeacherID:   fields[0],
		Branch:      fields[1],
		Level:       fields[2],
		Subject:     fields[3],
		ClassID:     fields[4],
		WeeklyHours: hours,
	}
	if len(fields) > minLoadReportFields {
		record.DistributionCode = fields[6]
	}
	return record, ""
}
