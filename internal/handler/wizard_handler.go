package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/timetable-wizard-api/internal/dto"
	"github.com/noah-isme/timetable-wizard-api/internal/models"
	appErrors "github.com/noah-isme/timetable-wizard-api/pkg/errors"
	"github.com/noah-isme/timetable-wizard-api/pkg/response"
)

type wizardService interface {
	CreateSession(ctx context.Context, ownerID string) (*models.WizardSession, error)
	GetSession(ctx context.Context, actor models.Actor, id string) (*models.WizardSession, error)
	DeleteSession(ctx context.Context, actor models.Actor, id string) error
	SetCursor(ctx context.Context, actor models.Actor, id string, req dto.UpdateCursorRequest) (*models.WizardSession, error)
	ToggleConstraint(ctx context.Context, actor models.Actor, id string, req dto.ToggleConstraintRequest) (*models.WizardSession, error)
	BulkSetConstraints(ctx context.Context, actor models.Actor, id string, req dto.BulkSetConstraintsRequest) (*models.WizardSession, error)
	ResetConstraints(ctx context.Context, actor models.Actor, id, entityID string, expectedVersion *int64) (*models.WizardSession, error)
	QueryConstraint(ctx context.Context, actor models.Actor, id string, query dto.ConstraintLookupQuery) (*dto.ConstraintLookupResponse, error)
	AddFixedSlot(ctx context.Context, actor models.Actor, id string, req dto.AddFixedSlotRequest) (*models.WizardSession, error)
	RemoveFixedSlot(ctx context.Context, actor models.Actor, id, slotID string, expectedVersion *int64) (*models.WizardSession, error)
	FixedSlotsByTeacher(ctx context.Context, actor models.Actor, id string) ([]dto.FixedSlotGroup, error)
	Reconcile(ctx context.Context, actor models.Actor, id string) (*models.ReconciliationReport, error)
}

// WizardHandler exposes wizard session endpoints.
type WizardHandler struct {
	service wizardService
}

// NewWizardHandler constructs the handler.
func NewWizardHandler(service wizardService) *WizardHandler {
	return &WizardHandler{service: service}
}

// Register mounts the wizard routes on group.
func (h *WizardHandler) Register(group *gin.RouterGroup) {
	sessions := group.Group("/wizard/sessions")
	sessions.POST("", h.Create)
	sessions.GET("/:id", h.Get)
	sessions.DELETE("/:id", h.Delete)
	sessions.PUT("/:id/cursor", h.SetCursor)
	sessions.POST("/:id/constraints/toggle", h.Toggle)
	sessions.POST("/:id/constraints/bulk", h.BulkSet)
	sessions.GET("/:id/constraints/lookup", h.Lookup)
	sessions.DELETE("/:id/constraints/:entityId", h.Reset)
	sessions.POST("/:id/fixed-slots", h.AddFixedSlot)
	sessions.GET("/:id/fixed-slots/by-teacher", h.FixedSlotsByTeacher)
	sessions.DELETE("/:id/fixed-slots/:slotId", h.RemoveFixedSlot)
	sessions.GET("/:id/reconciliation", h.Reconcile)
}

// Create godoc
// @Summary Start a wizard session
// @Tags Wizard
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /wizard/sessions [post]
func (h *WizardHandler) Create(c *gin.Context) {
	session, err := h.service.CreateSession(c.Request.Context(), ownerFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, session, versionMeta(session))
}

// Get godoc
// @Summary Get a wizard session
// @Tags Wizard
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /wizard/sessions/{id} [get]
func (h *WizardHandler) Get(c *gin.Context) {
	session, err := h.service.GetSession(c.Request.Context(), actorFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, session, versionMeta(session))
}

// Delete godoc
// @Summary Delete a wizard session
// @Tags Wizard
// @Param id path string true "Session ID"
// @Success 204
// @Router /wizard/sessions/{id} [delete]
func (h *WizardHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteSession(c.Request.Context(), actorFromContext(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// SetCursor godoc
// @Summary Move the wizard selection
// @Tags Wizard
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.UpdateCursorRequest true "Cursor"
// @Success 200 {object} response.Envelope
// @Router /wizard/sessions/{id}/cursor [put]
func (h *WizardHandler) SetCursor(c *gin.Context) {
	var req dto.UpdateCursorRequest
	if !bindJSON(c, &req, "invalid cursor payload") {
		return
	}
	h.respondSession(c, http.StatusOK)(h.service.SetCursor(c.Request.Context(), actorFromContext(c), c.Param("id"), req))
}

// Toggle godoc
// @Summary Toggle a constraint cell
// @Description Same kind removes the cell, another kind replaces it, an empty cell gets the kind.
// @Tags Wizard
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.ToggleConstraintRequest true "Cell"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /wizard/sessions/{id}/constraints/toggle [post]
func (h *WizardHandler) Toggle(c *gin.Context) {
	var req dto.ToggleConstraintRequest
	if !bindJSON(c, &req, "invalid constraint payload") {
		return
	}
	h.respondSession(c, http.StatusOK)(h.service.ToggleConstraint(c.Request.Context(), actorFromContext(c), c.Param("id"), req))
}

// BulkSet godoc
// @Summary Set every cell of an entity to one kind
// @Tags Wizard
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.BulkSetConstraintsRequest true "Entity and kind"
// @Success 200 {object} response.Envelope
// @Router /wizard/sessions/{id}/constraints/bulk [post]
func (h *WizardHandler) BulkSet(c *gin.Context) {
	var req dto.BulkSetConstraintsRequest
	if !bindJSON(c, &req, "invalid bulk constraint payload") {
		return
	}
	h.respondSession(c, http.StatusOK)(h.service.BulkSetConstraints(c.Request.Context(), actorFromContext(c), c.Param("id"), req))
}

// Reset godoc
// @Summary Remove every constraint of an entity
// @Tags Wizard
// @Produce json
// @Param id path string true "Session ID"
// @Param entityId path string true "Entity ID"
// @Param expected_version query int false "Expected session version"
// @Success 200 {object} response.Envelope
// @Router /wizard/sessions/{id}/constraints/{entityId} [delete]
func (h *WizardHandler) Reset(c *gin.Context) {
	expected, ok := expectedVersionQuery(c)
	if !ok {
		return
	}
	h.respondSession(c, http.StatusOK)(h.service.ResetConstraints(c.Request.Context(), actorFromContext(c), c.Param("id"), c.Param("entityId"), expected))
}

// Lookup godoc
// @Summary Find the constraint of one cell
// @Tags Wizard
// @Produce json
// @Param id path string true "Session ID"
// @Param entity_type query string true "teacher, class or subject"
// @Param entity_id query string true "Entity ID"
// @Param day query string true "Day"
// @Param period query string true "Period"
// @Success 200 {object} response.Envelope
// @Router /wizard/sessions/{id}/constraints/lookup [get]
func (h *WizardHandler) Lookup(c *gin.Context) {
	var query dto.ConstraintLookupQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid lookup query"))
		return
	}
	result, err := h.service.QueryConstraint(c.Request.Context(), actorFromContext(c), c.Param("id"), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// AddFixedSlot godoc
// @Summary Pin a lesson
// @Tags Wizard
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.AddFixedSlotRequest true "Lesson"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope "CLASS_SLOT_TAKEN or TEACHER_SLOT_TAKEN, meta.conflict holds the existing slot"
// @Router /wizard/sessions/{id}/fixed-slots [post]
func (h *WizardHandler) AddFixedSlot(c *gin.Context) {
	var req dto.AddFixedSlotRequest
	if !bindJSON(c, &req, "invalid fixed slot payload") {
		return
	}
	h.respondSession(c, http.StatusCreated)(h.service.AddFixedSlot(c.Request.Context(), actorFromContext(c), c.Param("id"), req))
}

// RemoveFixedSlot godoc
// @Summary Unpin a lesson
// @Tags Wizard
// @Produce json
// @Param id path string true "Session ID"
// @Param slotId path string true "Slot ID"
// @Param expected_version query int false "Expected session version"
// @Success 200 {object} response.Envelope
// @Router /wizard/sessions/{id}/fixed-slots/{slotId} [delete]
func (h *WizardHandler) RemoveFixedSlot(c *gin.Context) {
	expected, ok := expectedVersionQuery(c)
	if !ok {
		return
	}
	h.respondSession(c, http.StatusOK)(h.service.RemoveFixedSlot(c.Request.Context(), actorFromContext(c), c.Param("id"), c.Param("slotId"), expected))
}

// FixedSlotsByTeacher godoc
// @Summary List pinned lessons grouped by teacher
// @Tags Wizard
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /wizard/sessions/{id}/fixed-slots/by-teacher [get]
func (h *WizardHandler) FixedSlotsByTeacher(c *gin.Context) {
	groups, err := h.service.FixedSlotsByTeacher(c.Request.Context(), actorFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, groups)
}

// Reconcile godoc
// @Summary Split session records into live and orphaned ones
// @Tags Wizard
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /wizard/sessions/{id}/reconciliation [get]
func (h *WizardHandler) Reconcile(c *gin.Context) {
	report, err := h.service.Reconcile(c.Request.Context(), actorFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, map[string]interface{}{
		"orphan_constraints": len(report.OrphanConstraints),
		"orphan_fixed_slots": len(report.OrphanFixedSlots),
	})
}

func (h *WizardHandler) respondSession(c *gin.Context, status int) func(*models.WizardSession, error) {
	return func(session *models.WizardSession, err error) {
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, status, session, versionMeta(session))
	}
}

func versionMeta(session *models.WizardSession) map[string]interface{} {
	return map[string]interface{}{"version": session.Version}
}

func bindJSON(c *gin.Context, dest interface{}, message string) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message))
		return false
	}
	return true
}

func expectedVersionQuery(c *gin.Context) (*int64, bool) {
	raw := strings.TrimSpace(c.Query("expected_version"))
	if raw == "" {
		return nil, true
	}
	version, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || version < 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "expected_version must be a non-negative integer"))
		return nil, false
	}
	return &version, true
}
