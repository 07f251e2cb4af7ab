package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/timetable-wizard-api/internal/dto"
	"github.com/noah-isme/timetable-wizard-api/internal/models"
	appErrors "github.com/noah-isme/timetable-wizard-api/pkg/errors"
	"github.com/noah-isme/timetable-wizard-api/pkg/jobs"
)

// PersistSessionJobType tags write-behind session snapshot jobs.
const PersistSessionJobType = "wizard_session.persist"

type wizardSessionRepository interface {
	FindByID(ctx context.Context, id string) (*models.WizardSession, error)
	Upsert(ctx context.Context, session *models.WizardSession) error
	Delete(ctx context.Context, id string) error
}

type rosterProvider interface {
	Load(ctx context.Context) (models.Roster, error)
}

type jobEnqueuer interface {
	Enqueue(job jobs.Job) error
}

// WizardConfig governs session handling.
type WizardConfig struct {
	SessionTTL time.Duration
	Clock      func() time.Time
}

// WizardService owns wizard sessions and applies constraint and fixed-slot
// mutations to them one at a time per session. A session is reachable by its
// owner and by ADMIN or SUPERADMIN callers.
type WizardService struct {
	sessions  wizardSessionRepository
	roster    rosterProvider
	queue     jobEnqueuer
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	registry  *sessionRegistry
	now       func() time.Time
}

// NewWizardService wires wizard dependencies. sessions, roster and queue are
// optional; without a repository sessions live in memory only.
func NewWizardService(
	sessions wizardSessionRepository,
	roster rosterProvider,
	queue jobEnqueuer,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg WizardConfig,
) *WizardService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 12 * time.Hour
	}
	if cfg.Clock == nil {
		cfg.Clock = func() time.Time { return time.Now().UTC() }
	}
	return &WizardService{
		sessions:  sessions,
		roster:    roster,
		queue:     queue,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		registry:  newSessionRegistry(cfg.SessionTTL),
		now:       cfg.Clock,
	}
}

// CreateSession starts an empty wizard session.
func (s *WizardService) CreateSession(ctx context.Context, ownerID string) (*models.WizardSession, error) {
	now := s.now()
	session := s.registry.Put(&wizardSession{
		id:        uuid.NewString(),
		ownerID:   ownerID,
		createdAt: now,
		updatedAt: now,
	}, now)

	session.mu.Lock()
	snap := session.snapshot()
	session.mu.Unlock()

	s.persist(ctx, snap)
	s.logger.Info("wizard session created", zap.String("session_id", snap.ID), zap.String("owner_id", ownerID))
	return &snap, nil
}

// GetSession returns the current snapshot of a session.
func (s *WizardService) GetSession(ctx context.Context, actor models.Actor, id string) (*models.WizardSession, error) {
	session, err := s.session(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	snap := session.snapshot()
	session.mu.Unlock()
	return &snap, nil
}

// DeleteSession forgets a session in memory and in the repository.
func (s *WizardService) DeleteSession(ctx context.Context, actor models.Actor, id string) error {
	if _, err := s.session(ctx, actor, id); err != nil {
		return err
	}
	s.registry.Tombstone(id, s.now())
	if s.sessions != nil {
		if err := s.sessions.Delete(ctx, id); err != nil && !errors.Is(err, sql.ErrNoRows) {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete wizard session")
		}
	}
	s.logger.Info("wizard session deleted", zap.String("session_id", id), zap.String("user_id", actor.UserID))
	return nil
}

// SetCursor records what the wizard currently has selected.
func (s *WizardService) SetCursor(ctx context.Context, actor models.Actor, id string, req dto.UpdateCursorRequest) (*models.WizardSession, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid cursor payload")
	}
	level, err := optionalLevel(req.Level)
	if err != nil {
		return nil, err
	}
	cursor := models.SelectionCursor{
		EntityType: models.EntityType(req.EntityType),
		EntityID:   req.EntityID,
		Level:      level,
		Kind:       models.ConstraintType(req.Kind),
	}
	return s.mutate(ctx, actor, id, "set_cursor", nil, func(session *wizardSession, _ time.Time) error {
		session.cursor = cursor
		return nil
	})
}

// ToggleConstraint cycles one cell of an entity's grid through a kind.
func (s *WizardService) ToggleConstraint(ctx context.Context, actor models.Actor, id string, req dto.ToggleConstraintRequest) (*models.WizardSession, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid toggle payload")
	}
	roster, err := s.loadRoster(ctx)
	if err != nil {
		return nil, err
	}
	ref, err := resolveRef(roster, models.EntityType(req.EntityType), req.EntityID, req.Level)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, actor, id, "toggle_constraint", req.ExpectedVersion, func(session *wizardSession, now time.Time) error {
		next, err := session.constraints.Toggle(ref, models.Day(req.Day), req.Period, models.ConstraintType(req.Kind), req.Reason, now)
		if err != nil {
			return err
		}
		session.constraints = next
		return nil
	})
}

// BulkSetConstraints sets every cell of an entity to one kind; the baseline
// kind clears the entity.
func (s *WizardService) BulkSetConstraints(ctx context.Context, actor models.Actor, id string, req dto.BulkSetConstraintsRequest) (*models.WizardSession, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid bulk constraint payload")
	}
	roster, err := s.loadRoster(ctx)
	if err != nil {
		return nil, err
	}
	ref, err := resolveRef(roster, models.EntityType(req.EntityType), req.EntityID, req.Level)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, actor, id, "bulk_set_constraints", req.ExpectedVersion, func(session *wizardSession, now time.Time) error {
		next, err := session.constraints.BulkSet(ref, models.ConstraintType(req.Kind), now)
		if err != nil {
			return err
		}
		session.constraints = next
		return nil
	})
}

// ResetConstraints removes every constraint of an entity.
func (s *WizardService) ResetConstraints(ctx context.Context, actor models.Actor, id, entityID string, expectedVersion *int64) (*models.WizardSession, error) {
	if entityID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "entity id is required")
	}
	return s.mutate(ctx, actor, id, "reset_constraints", expectedVersion, func(session *wizardSession, _ time.Time) error {
		session.constraints = session.constraints.Reset(entityID)
		return nil
	})
}

// QueryConstraint looks one cell up.
func (s *WizardService) QueryConstraint(ctx context.Context, actor models.Actor, id string, query dto.ConstraintLookupQuery) (*dto.ConstraintLookupResponse, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid constraint lookup")
	}
	session, err := s.session(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	store := session.constraints
	session.mu.Unlock()

	constraint, ok := store.Query(models.EntityType(query.EntityType), query.EntityID, models.Day(query.Day), query.Period)
	if !ok {
		return &dto.ConstraintLookupResponse{Found: false}, nil
	}
	return &dto.ConstraintLookupResponse{Found: true, Constraint: &constraint}, nil
}

// AddFixedSlot pins a lesson, rejecting class and teacher double bookings.
func (s *WizardService) AddFixedSlot(ctx context.Context, actor models.Actor, id string, req dto.AddFixedSlotRequest) (*models.WizardSession, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid fixed slot payload")
	}
	roster, err := s.loadRoster(ctx)
	if err != nil {
		return nil, err
	}
	teacher, err := resolveRef(roster, models.EntityTeacher, req.TeacherID, "")
	if err != nil {
		return nil, err
	}
	class, err := resolveRef(roster, models.EntityClass, req.ClassID, req.Level)
	if err != nil {
		return nil, err
	}
	subject, err := resolveRef(roster, models.EntitySubject, req.SubjectID, "")
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, actor, id, "add_fixed_slot", req.ExpectedVersion, func(session *wizardSession, now time.Time) error {
		next, err := session.slots.Add(teacher, class, subject, models.Day(req.Day), req.Period, now)
		if err != nil {
			return err
		}
		session.slots = next
		return nil
	})
}

// RemoveFixedSlot unpins a lesson. Unknown slot ids are not an error.
func (s *WizardService) RemoveFixedSlot(ctx context.Context, actor models.Actor, id, slotID string, expectedVersion *int64) (*models.WizardSession, error) {
	return s.mutate(ctx, actor, id, "remove_fixed_slot", expectedVersion, func(session *wizardSession, _ time.Time) error {
		session.slots = session.slots.Remove(slotID)
		return nil
	})
}

// FixedSlotsByTeacher groups pinned lessons per teacher in first-seen order.
func (s *WizardService) FixedSlotsByTeacher(ctx context.Context, actor models.Actor, id string) ([]dto.FixedSlotGroup, error) {
	session, err := s.session(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	store := session.slots
	session.mu.Unlock()

	groups := store.GroupByTeacher()
	result := make([]dto.FixedSlotGroup, 0, len(groups))
	for _, teacherID := range store.TeacherOrder() {
		slots := groups[teacherID]
		result = append(result, dto.FixedSlotGroup{TeacherID: teacherID, TeacherName: slots[0].TeacherName, Slots: slots})
	}
	return result, nil
}

// Reconcile reports session records whose entities left the roster. It never
// changes the session.
func (s *WizardService) Reconcile(ctx context.Context, actor models.Actor, id string) (*models.ReconciliationReport, error) {
	if s.roster == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "roster provider unavailable")
	}
	session, err := s.session(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	roster, err := s.loadRoster(ctx)
	if err != nil {
		return nil, err
	}
	validIDs := NewIDSet(roster.IDs()...)

	session.mu.Lock()
	snap := session.snapshot()
	session.mu.Unlock()

	report := &models.ReconciliationReport{SessionID: snap.ID, Version: snap.Version}
	report.ActiveConstraints, report.OrphanConstraints = Partition(snap.Constraints, validIDs)
	report.ActiveFixedSlots, report.OrphanFixedSlots = PartitionFixedSlots(snap.FixedSlots, validIDs)
	if n := len(report.OrphanConstraints) + len(report.OrphanFixedSlots); n > 0 {
		s.logger.Info("orphaned wizard records found", zap.String("session_id", snap.ID), zap.Int("orphans", n))
	}
	return report, nil
}

// PersistSnapshot is the queue handler writing session snapshots.
func (s *WizardService) PersistSnapshot(ctx context.Context, job jobs.Job) error {
	snap, ok := job.Payload.(models.WizardSession)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", job.Payload, job.Type)
	}
	return s.writeSnapshot(ctx, snap)
}

// writeSnapshot upserts a snapshot unless its session was deleted. A delete
// racing the upsert is repeated so the row does not come back.
func (s *WizardService) writeSnapshot(ctx context.Context, snap models.WizardSession) error {
	if s.sessions == nil || s.registry.Deleted(snap.ID, s.now()) {
		return nil
	}
	if err := s.sessions.Upsert(ctx, &snap); err != nil {
		return fmt.Errorf("persist wizard session %s v%d: %w", snap.ID, snap.Version, err)
	}
	if s.registry.Deleted(snap.ID, s.now()) {
		if err := s.sessions.Delete(ctx, snap.ID); err != nil && !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("delete resurrected wizard session %s: %w", snap.ID, err)
		}
	}
	return nil
}

func (s *WizardService) mutate(ctx context.Context, actor models.Actor, id, op string, expectedVersion *int64, apply func(session *wizardSession, now time.Time) error) (*models.WizardSession, error) {
	session, err := s.session(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	if expectedVersion != nil && *expectedVersion != session.version {
		current := session.version
		session.mu.Unlock()
		s.metrics.ObserveWizardMutation(op, appErrors.ErrSessionVersionStale.Code)
		return nil, appErrors.Clone(appErrors.ErrSessionVersionStale, fmt.Sprintf("session is at version %d, expected %d", current, *expectedVersion))
	}
	now := s.now()
	if err := apply(session, now); err != nil {
		session.mu.Unlock()
		s.recordRejection(id, op, err)
		return nil, err
	}
	session.version++
	session.updatedAt = now
	snap := session.snapshot()
	session.mu.Unlock()

	s.metrics.ObserveWizardMutation(op, "OK")
	s.persist(ctx, snap)
	return &snap, nil
}

func (s *WizardService) recordRejection(id, op string, err error) {
	appErr := appErrors.FromError(err)
	s.metrics.ObserveWizardMutation(op, appErr.Code)

	fields := []zap.Field{zap.String("session_id", id), zap.String("op", op), zap.String("code", appErr.Code)}
	var conflict *models.FixedSlotConflictError
	if errors.As(err, &conflict) {
		fields = append(fields, zap.String("conflict_slot_id", conflict.Conflict.ID))
	}
	s.logger.Info("wizard mutation rejected", append(fields, zap.String("reason", appErr.Message))...)
}

func (s *WizardService) session(ctx context.Context, actor models.Actor, id string) (*wizardSession, error) {
	session, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(session.ownerID) {
		s.logger.Warn("wizard session access denied", zap.String("session_id", id), zap.String("user_id", actor.UserID))
		return nil, appErrors.Clone(appErrors.ErrForbidden, "wizard session belongs to another user")
	}
	return session, nil
}

func (s *WizardService) lookup(ctx context.Context, id string) (*wizardSession, error) {
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "session id is required")
	}
	now := s.now()
	if session, ok := s.registry.Get(id, now); ok {
		return session, nil
	}
	if s.sessions == nil || s.registry.Deleted(id, now) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "wizard session not found")
	}
	stored, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "wizard session not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load wizard session")
	}
	return s.registry.Put(sessionFromModel(*stored), now), nil
}

func (s *WizardService) loadRoster(ctx context.Context) (models.Roster, error) {
	if s.roster == nil {
		return models.Roster{}, nil
	}
	roster, err := s.roster.Load(ctx)
	if err != nil {
		return models.Roster{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster")
	}
	return roster, nil
}

func resolveRef(roster models.Roster, entityType models.EntityType, id, rawLevel string) (models.EntityRef, error) {
	level, err := optionalLevel(rawLevel)
	if err != nil {
		return models.EntityRef{}, err
	}
	ref, ok := roster.Lookup(entityType, id)
	if !ok {
		// Unknown entities are accepted; reconciliation reports them later.
		ref = models.EntityRef{Type: entityType, ID: id, Name: id}
	}
	if ref.Level == "" {
		ref.Level = level
	}
	return ref, nil
}

func (s *WizardService) persist(ctx context.Context, snap models.WizardSession) {
	if s.sessions == nil {
		return
	}
	if s.queue != nil {
		err := s.queue.Enqueue(jobs.Job{ID: uuid.NewString(), Type: PersistSessionJobType, Payload: snap})
		if err == nil {
			return
		}
		s.logger.Warn("wizard session enqueue failed, writing inline", zap.String("session_id", snap.ID), zap.Error(err))
	}
	if err := s.writeSnapshot(ctx, snap); err != nil {
		s.logger.Error("failed to persist wizard session", zap.String("session_id", snap.ID), zap.Int64("version", snap.Version), zap.Error(err))
	}
}

func optionalLevel(raw string) (models.Level, error) {
	if raw == "" {
		return "", nil
	}
	level, ok := models.ParseLevel(raw)
	if !ok {
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown level %q", raw))
	}
	return level, nil
}
