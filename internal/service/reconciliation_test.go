package service

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/timetable-wizard-api/internal/models"
)

func TestNormalizeEntityID(t *testing.T) {
	cases := map[string]string{
		"t-1":           "t-1",
		"  5A ":         "5A",
		"teacher:t-1":   "t-1",
		"Class_5A":      "5A",
		"subject-mat":   "mat",
		"teacher":       "teacher",
		"teachers-room": "teachers-room",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeEntityID(in), in)
	}
}

func TestPartition(t *testing.T) {
	constraints := []models.TimeConstraint{
		{ID: "1", EntityID: "t-1"},
		{ID: "2", EntityID: "teacher:t-2"},
		{ID: "3", EntityID: "gone"},
		{ID: "4", EntityID: "5A"},
	}
	active, orphaned := Partition(constraints, NewIDSet("t-1", "t-2", "class_5A"))

	assert.Equal(t, []string{"1", "2", "4"}, constraintIDs(active))
	assert.Equal(t, []string{"3"}, constraintIDs(orphaned))
	assert.Len(t, constraints, 4)
}

func TestPartitionIsATotalDisjointSplit(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 50; round++ {
		var constraints []models.TimeConstraint
		for i := 0; i < rng.Intn(30); i++ {
			constraints = append(constraints, models.TimeConstraint{ID: fmt.Sprintf("c%d", i), EntityID: fmt.Sprintf("e%d", rng.Intn(10))})
		}
		var valid []string
		for i := 0; i < rng.Intn(10); i++ {
			valid = append(valid, fmt.Sprintf("e%d", rng.Intn(10)))
		}

		active, orphaned := Partition(constraints, NewIDSet(valid...))
		assert.Equal(t, len(constraints), len(active)+len(orphaned))

		seen := make(map[string]int)
		for _, rec := range append(active, orphaned...) {
			seen[rec.ID]++
		}
		for _, rec := range constraints {
			assert.Equal(t, 1, seen[rec.ID], "record %s", rec.ID)
		}
	}
}

func TestPartitionFixedSlots(t *testing.T) {
	slots := []models.FixedSlot{
		{ID: "keep", TeacherID: "t-1", ClassID: "5A", SubjectID: "mat"},
		{ID: "no-teacher", TeacherID: "t-9", ClassID: "5A", SubjectID: "mat"},
		{ID: "no-subject", TeacherID: "t-1", ClassID: "5A", SubjectID: "din"},
	}
	active, orphaned := PartitionFixedSlots(slots, NewIDSet("t-1", "5A", "mat"))
	assert.Len(t, active, 1)
	assert.Equal(t, "keep", active[0].ID)
	assert.Len(t, orphaned, 2)

	active, orphaned = PartitionFixedSlots(nil, NewIDSet())
	assert.Empty(t, active)
	assert.NotNil(t, orphaned)
}

func constraintIDs(records []models.TimeConstraint) []string {
	ids := make([]string, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.ID)
	}
	return ids
}
