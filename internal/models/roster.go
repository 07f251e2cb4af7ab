package models

// RosterEntry is a row of the roster tables as read by the roster provider.
// Older rows carry the tier in grade, newer ones in level.
type RosterEntry struct {
	ID     string  `db:"id" json:"id"`
	Name   string  `db:"name" json:"name"`
	Level  *string `db:"level" json:"level,omitempty"`
	Grade  *string `db:"grade" json:"grade,omitempty"`
	Branch *string `db:"branch" json:"branch,omitempty"`
}

// Ref resolves the entry into a tagged reference once.
func (e RosterEntry) Ref(entityType EntityType) EntityRef {
	return NewEntityRef(entityType, e.ID, e.Name, deref(e.Level), deref(e.Grade))
}

// Roster is the live set of roster entities keyed by id.
type Roster struct {
	Teachers map[string]EntityRef `json:"teachers"`
	Classes  map[string]EntityRef `json:"classes"`
	Subjects map[string]EntityRef `json:"subjects"`
}

// IDs lists every entity id in the roster.
func (r Roster) IDs() []string {
	ids := make([]string, 0, len(r.Teachers)+len(r.Classes)+len(r.Subjects))
	for _, group := range []map[string]EntityRef{r.Teachers, r.Classes, r.Subjects} {
		for id := range group {
			ids = append(ids, id)
		}
	}
	return ids
}

// Lookup finds a reference by type and id.
func (r Roster) Lookup(entityType EntityType, id string) (EntityRef, bool) {
	var group map[string]EntityRef
	switch entityType {
	case EntityTeacher:
		group = r.Teachers
	case EntityClass:
		group = r.Classes
	case EntitySubject:
		group = r.Subjects
	}
	ref, ok := group[id]
	return ref, ok
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
