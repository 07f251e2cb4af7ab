package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/timetable-wizard-api/internal/models"
	"github.com/noah-isme/timetable-wizard-api/internal/service"
	appErrors "github.com/noah-isme/timetable-wizard-api/pkg/errors"
	"github.com/noah-isme/timetable-wizard-api/pkg/response"
)

// TimeGridHandler serves the bell schedules.
type TimeGridHandler struct{}

// NewTimeGridHandler constructs the handler.
func NewTimeGridHandler() *TimeGridHandler {
	return &TimeGridHandler{}
}

// Get godoc
// @Summary Get the weekly grid of a school level
// @Tags TimeGrid
// @Produce json
// @Param level path string true "Anaokulu, İlkokul or Ortaokul"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /timegrid/{level} [get]
func (h *TimeGridHandler) Get(c *gin.Context) {
	level, ok := models.ParseLevel(c.Param("level"))
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "unknown school level"))
		return
	}
	response.JSON(c, http.StatusOK, service.GridFor(level))
}
