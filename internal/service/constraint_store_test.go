package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timetable-wizard-api/internal/models"
	appErrors "github.com/noah-isme/timetable-wizard-api/pkg/errors"
)

var (
	fixedNow      = time.Date(2024, 9, 9, 8, 0, 0, 0, time.UTC)
	teacherAyse   = models.NewEntityRef(models.EntityTeacher, "t-1", "Ayşe Yılmaz", "Ortaokul")
	teacherMehmet = models.NewEntityRef(models.EntityTeacher, "t-2", "Mehmet Kaya", "Ortaokul")
	class5A       = models.NewEntityRef(models.EntityClass, "5A", "5-A", "Ortaokul")
	class5B       = models.NewEntityRef(models.EntityClass, "5B", "5-B", "Ortaokul")
	subjectMat    = models.NewEntityRef(models.EntitySubject, "mat", "Matematik")
)

func TestConstraintToggleCycle(t *testing.T) {
	store := ConstraintStore{}

	store, err := store.Toggle(teacherAyse, models.DayMonday, "1", models.ConstraintUnavailable, "toplantı", fixedNow)
	require.NoError(t, err)
	rec, ok := store.Query(models.EntityTeacher, "t-1", models.DayMonday, "1")
	require.True(t, ok)
	assert.Equal(t, models.ConstraintUnavailable, rec.ConstraintType)
	assert.Equal(t, fixedNow, rec.CreatedAt)
	assert.Equal(t, fixedNow, rec.UpdatedAt)

	later := fixedNow.Add(time.Minute)
	store, err = store.Toggle(teacherAyse, models.DayMonday, "1", models.ConstraintRestricted, "nöbet", later)
	require.NoError(t, err)
	rec, ok = store.Query(models.EntityTeacher, "t-1", models.DayMonday, "1")
	require.True(t, ok)
	assert.Equal(t, models.ConstraintRestricted, rec.ConstraintType)
	assert.Equal(t, "nöbet", rec.Reason)
	assert.Equal(t, fixedNow, rec.CreatedAt)
	assert.Equal(t, later, rec.UpdatedAt)
	assert.Equal(t, 1, store.Len())

	store, err = store.Toggle(teacherAyse, models.DayMonday, "1", models.ConstraintRestricted, "", later)
	require.NoError(t, err)
	_, ok = store.Query(models.EntityTeacher, "t-1", models.DayMonday, "1")
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, uint64(3), store.Version())
}

func TestConstraintToggleSameKindAlternates(t *testing.T) {
	store := ConstraintStore{}
	for i := 1; i <= 6; i++ {
		var err error
		store, err = store.Toggle(class5A, models.DayWednesday, "4", models.ConstraintPreferred, "", fixedNow)
		require.NoError(t, err)
		_, present := store.Query(models.EntityClass, "5A", models.DayWednesday, "4")
		assert.Equal(t, i%2 == 1, present, "after %d toggles", i)
	}
}

func TestConstraintToggleLeavesReceiverUntouched(t *testing.T) {
	before, err := ConstraintStore{}.Toggle(teacherAyse, models.DayMonday, "2", models.ConstraintUnavailable, "", fixedNow)
	require.NoError(t, err)

	after, err := before.Toggle(teacherAyse, models.DayMonday, "2", models.ConstraintRestricted, "", fixedNow)
	require.NoError(t, err)

	rec, _ := before.Query(models.EntityTeacher, "t-1", models.DayMonday, "2")
	assert.Equal(t, models.ConstraintUnavailable, rec.ConstraintType)
	rec, _ = after.Query(models.EntityTeacher, "t-1", models.DayMonday, "2")
	assert.Equal(t, models.ConstraintRestricted, rec.ConstraintType)
}

func TestConstraintToggleRejections(t *testing.T) {
	store, err := ConstraintStore{}.Toggle(teacherAyse, models.DayMonday, "1", models.ConstraintUnavailable, "", fixedNow)
	require.NoError(t, err)

	cases := []struct {
		name   string
		ref    models.EntityRef
		day    models.Day
		period string
		kind   models.ConstraintType
		want   *appErrors.Error
	}{
		{"break period", teacherAyse, models.DayMonday, "Öğle Arası", models.ConstraintUnavailable, appErrors.ErrInvalidPeriod},
		{"period beyond level", models.NewEntityRef(models.EntityClass, "1A", "1-A", "İlkokul"), models.DayMonday, "8", models.ConstraintUnavailable, appErrors.ErrInvalidPeriod},
		{"unknown day", teacherAyse, "Cumartesi", "1", models.ConstraintUnavailable, appErrors.ErrInvalidPeriod},
		{"no level", models.EntityRef{Type: models.EntityTeacher, ID: "t-9"}, models.DayMonday, "1", models.ConstraintUnavailable, appErrors.ErrInvalidPeriod},
		{"unknown kind", teacherAyse, models.DayMonday, "2", "blocked", appErrors.ErrValidation},
		{"unknown entity type", models.EntityRef{Type: "room", ID: "r-1", Level: models.LevelMiddle}, models.DayMonday, "2", models.ConstraintUnavailable, appErrors.ErrValidation},
		{"empty id", models.EntityRef{Type: models.EntityTeacher, Level: models.LevelMiddle}, models.DayMonday, "2", models.ConstraintUnavailable, appErrors.ErrValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next, err := store.Toggle(tc.ref, tc.day, tc.period, tc.kind, "", fixedNow)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
			assert.Equal(t, store.Version(), next.Version())
			assert.Equal(t, store.Records(), next.Records())
		})
	}
}

func TestConstraintBulkSetAndReset(t *testing.T) {
	store, err := ConstraintStore{}.Toggle(teacherAyse, models.DayFriday, "9", models.ConstraintPreferred, "", fixedNow)
	require.NoError(t, err)
	store, err = store.Toggle(teacherMehmet, models.DayFriday, "9", models.ConstraintRestricted, "", fixedNow)
	require.NoError(t, err)

	store, err = store.BulkSet(teacherAyse, models.ConstraintUnavailable, fixedNow)
	require.NoError(t, err)
	records := store.ForEntity(models.EntityTeacher, "t-1")
	assert.Len(t, records, 5*9)
	for _, rec := range records {
		assert.Equal(t, models.ConstraintUnavailable, rec.ConstraintType)
		assert.Equal(t, "Toplu atama: unavailable", rec.Reason)
		assert.NotEqual(t, "Öğle Arası", rec.Period)
	}
	assert.Equal(t, models.DayMonday, records[0].Day)
	assert.Equal(t, "1", records[0].Period)

	store = store.Reset("t-1")
	assert.Empty(t, store.ForEntity(models.EntityTeacher, "t-1"))
	assert.Len(t, store.ForEntity(models.EntityTeacher, "t-2"), 1)
}

func TestConstraintBulkSetBaselineClears(t *testing.T) {
	store, err := ConstraintStore{}.BulkSet(class5A, models.ConstraintRestricted, fixedNow)
	require.NoError(t, err)
	require.Equal(t, 45, store.Len())

	store, err = store.BulkSet(class5A, models.BaselineConstraint, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 0, store.Len())

	_, err = ConstraintStore{}.BulkSet(models.EntityRef{Type: models.EntityClass, ID: "x"}, models.ConstraintUnavailable, fixedNow)
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	_, err = ConstraintStore{}.BulkSet(models.EntityRef{Type: models.EntityClass, ID: "x"}, models.BaselineConstraint, fixedNow)
	assert.NoError(t, err)
}

func TestNewConstraintStoreLaterRecordWins(t *testing.T) {
	first := models.TimeConstraint{ID: "a", EntityType: models.EntityTeacher, EntityID: "t-1", Day: models.DayMonday, Period: "1", ConstraintType: models.ConstraintPreferred}
	second := first
	second.ID = "b"
	second.ConstraintType = models.ConstraintUnavailable
	other := models.TimeConstraint{ID: "c", EntityType: models.EntityTeacher, EntityID: "t-1", Day: models.DayMonday, Period: "2", ConstraintType: models.ConstraintPreferred}

	store := NewConstraintStore([]models.TimeConstraint{first, other, second})
	require.Equal(t, 2, store.Len())
	rec, ok := store.Query(models.EntityTeacher, "t-1", models.DayMonday, "1")
	require.True(t, ok)
	assert.Equal(t, "b", rec.ID)
	assert.Equal(t, uint64(0), store.Version())
}
