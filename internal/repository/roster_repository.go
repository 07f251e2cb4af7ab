package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/timetable-wizard-api/internal/models"
)

const (
	rosterTeachersQuery = `SELECT id, full_name AS name, NULL::text AS level, NULL::text AS grade, expertise AS branch FROM teachers WHERE active = TRUE`
	rosterClassesQuery  = `SELECT id, name, level, grade, track AS branch FROM classes`
	rosterSubjectsQuery = `SELECT id, name, level, NULL::text AS grade, subject_group AS branch FROM subjects`
)

// RosterRepository reads the live teacher, class and subject roster.
type RosterRepository struct {
	db *sqlx.DB
}

// NewRosterRepository constructs the repository.
func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

// Load returns every roster entity resolved into tagged references.
func (r *RosterRepository) Load(ctx context.Context) (models.Roster, error) {
	teachers, err := r.load(ctx, rosterTeachersQuery, models.EntityTeacher)
	if err != nil {
		return models.Roster{}, err
	}
	classes, err := r.load(ctx, rosterClassesQuery, models.EntityClass)
	if err != nil {
		return models.Roster{}, err
	}
	subjects, err := r.load(ctx, rosterSubjectsQuery, models.EntitySubject)
	if err != nil {
		return models.Roster{}, err
	}
	return models.Roster{Teachers: teachers, Classes: classes, Subjects: subjects}, nil
}

func (r *RosterRepository) load(ctx context.Context, query string, entityType models.EntityType) (map[string]models.EntityRef, error) {
	var entries []models.RosterEntry
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("load %s roster: %w", entityType, err)
	}
	refs := make(map[string]models.EntityRef, len(entries))
	for _, entry := range entries {
		refs[entry.ID] = entry.Ref(entityType)
	}
	return refs, nil
}
