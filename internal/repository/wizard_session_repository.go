package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"

	"github.com/noah-isme/timetable-wizard-api/internal/models"
)

type wizardSessionRow struct {
	ID        string         `db:"id"`
	OwnerID   string         `db:"owner_id"`
	Version   int64          `db:"version"`
	State     types.JSONText `db:"state"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

type wizardSessionState struct {
	Constraints []models.TimeConstraint `json:"constraints"`
	FixedSlots  []models.FixedSlot      `json:"fixed_slots"`
	Cursor      models.SelectionCursor  `json:"cursor"`
}

// WizardSessionRepository persists wizard session snapshots.
type WizardSessionRepository struct {
	db *sqlx.DB
}

// NewWizardSessionRepository constructs the repository.
func NewWizardSessionRepository(db *sqlx.DB) *WizardSessionRepository {
	return &WizardSessionRepository{db: db}
}

// FindByID loads the latest stored snapshot of a session.
func (r *WizardSessionRepository) FindByID(ctx context.Context, id string) (*models.WizardSession, error) {
	const query = `SELECT id, owner_id, version, state, created_at, updated_at FROM wizard_sessions WHERE id = $1`
	var row wizardSessionRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}
	var state wizardSessionState
	if err := json.Unmarshal(row.State, &state); err != nil {
		return nil, fmt.Errorf("decode wizard session %s: %w", id, err)
	}
	return &models.WizardSession{
		ID:          row.ID,
		OwnerID:     row.OwnerID,
		Version:     row.Version,
		Constraints: state.Constraints,
		FixedSlots:  state.FixedSlots,
		Cursor:      state.Cursor,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}

// Upsert stores a snapshot. Snapshots older than the stored version are
// ignored so out-of-order writes cannot roll a session back.
func (r *WizardSessionRepository) Upsert(ctx context.Context, session *models.WizardSession) error {
	state, err := json.Marshal(wizardSessionState{
		Constraints: session.Constraints,
		FixedSlots:  session.FixedSlots,
		Cursor:      session.Cursor,
	})
	if err != nil {
		return fmt.Errorf("encode wizard session %s: %w", session.ID, err)
	}
	row := wizardSessionRow{
		ID:        session.ID,
		OwnerID:   session.OwnerID,
		Version:   session.Version,
		State:     types.JSONText(state),
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
	}

	const query = `INSERT INTO wizard_sessions (id, owner_id, version, state, created_at, updated_at)
		VALUES (:id, :owner_id, :version, :state, :created_at, :updated_at)
		ON CONFLICT (id) DO UPDATE
		SET version = EXCLUDED.version,
		    state = EXCLUDED.state,
		    updated_at = EXCLUDED.updated_at
		WHERE wizard_sessions.version < EXCLUDED.version`
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("upsert wizard session: %w", err)
	}
	return nil
}

// Delete removes a session snapshot.
func (r *WizardSessionRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM wizard_sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete wizard session: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete wizard session rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
