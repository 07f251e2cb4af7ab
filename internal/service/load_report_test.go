package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLoadReport(t *testing.T) {
	input := strings.Join([]string{
		"T1;MAT;Ortaokul;Matematik;5A;5;D2",
		"T1;BR;ORTAOKUL;MATH",
		"",
		"T2;TUR;Ortaokul;Türkçe;5A;abc",
		"T3;FEN;Ortaokul;Fen;5B;-2",
		" T4 ; ING ; İlkokul ; İngilizce ; 3C ; 2 ",
	}, "\n")

	result, err := ParseLoadReport(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, result.Records, 2)
	first := result.Records[0]
	assert.Equal(t, "T1", first.TeacherID)
	assert.Equal(t, "5A", first.ClassID)
	assert.Equal(t, 5, first.WeeklyHours)
	assert.Equal(t, "D2", first.DistributionCode)
	assert.Equal(t, 1, first.Line)

	second := result.Records[1]
	assert.Equal(t, "T4", second.TeacherID)
	assert.Equal(t, "İlkokul", second.Level)
	assert.Equal(t, "3C", second.ClassID)
	assert.Empty(t, second.DistributionCode)
	assert.Equal(t, 6, second.Line)

	require.Len(t, result.Skipped, 3)
	assert.Equal(t, 2, result.Skipped[0].Line)
	assert.Contains(t, result.Skipped[0].Reason, "at least 6 fields")
	assert.Equal(t, 4, result.Skipped[1].Line)
	assert.Contains(t, result.Skipped[1].Reason, "not a number")
	assert.Equal(t, 5, result.Skipped[2].Line)
	assert.Contains(t, result.Skipped[2].Reason, "negative")
}

func TestParseLoadReportRequiresTeacherAndClass(t *testing.T) {
	result, err := ParseLoadReport(strings.NewReader(";MAT;Ortaokul;Matematik;5A;4\nT1;MAT;Ortaokul;Matematik;;4\n"))
	require.NoError(t, err)
	assert.Empty(t, result.Records)
	assert.Len(t, result.Skipped, 2)
}

func TestParseLoadReportEmpty(t *testing.T) {
	result, err := ParseLoadReport(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, result.Records)
	assert.Empty(t, result.Skipped)
}

func TestParseLoadReportStrayQuoteStaysOnItsLine(t *testing.T) {
	input := "T1;BR;ORTAOKUL;\"MATH;7A\n" +
		"T2;BR;ORTAOKUL;FEN;7A;4\r\n" +
		"T3;BR;ORTAOKUL;\"TR;7B;6\n" +
		"T4;BR;ORTAOKUL;TR;7B;2\n"

	result, err := ParseLoadReport(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, result.Skipped, 1)
	assert.Equal(t, 1, result.Skipped[0].Line)

	require.Len(t, result.Records, 3)
	assert.Equal(t, "T2", result.Records[0].TeacherID)
	assert.Equal(t, 2, result.Records[0].Line)
	assert.Equal(t, 4, result.Records[0].WeeklyHours)
	assert.Equal(t, "T3", result.Records[1].TeacherID)
	assert.Equal(t, "TR", result.Records[1].Subject)
	assert.Equal(t, 3, result.Records[1].Line)
	assert.Equal(t, "T4", result.Records[2].TeacherID)
	assert.Equal(t, 4, result.Records[2].Line)
}

func TestParseLoadReportStripsByteOrderMark(t *testing.T) {
	result, err := ParseLoadReport(strings.NewReader("\ufeffT1;MAT;Ortaokul;Matematik;5A;5\n"))
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "T1", result.Records[0].TeacherID)
}
