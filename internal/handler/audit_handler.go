package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/timetable-wizard-api/internal/dto"
	"github.com/noah-isme/timetable-wizard-api/internal/models"
	appErrors "github.com/noah-isme/timetable-wizard-api/pkg/errors"
	"github.com/noah-isme/timetable-wizard-api/pkg/response"
)

const maxLoadReportBytes = 4 << 20

type auditService interface {
	AuditReport(ctx context.Context, content []byte) (*models.LoadAuditReport, error)
	Export(ctx context.Context, content []byte, format string) (*dto.AuditExport, error)
	PurgeCache(ctx context.Context) error
}

// AuditHandler exposes load report audits.
type AuditHandler struct {
	service auditService
}

// NewAuditHandler constructs the handler.
func NewAuditHandler(service auditService) *AuditHandler {
	return &AuditHandler{service: service}
}

// Audit godoc
// @Summary Audit a weekly load report
// @Description Body is the ';' separated load report. Malformed rows are skipped and listed in the result.
// @Tags Audit
// @Accept plain
// @Produce json,plain,text/csv,application/pdf
// @Param format query string false "json, text, csv or pdf"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /audits/load [post]
func (h *AuditHandler) Audit(c *gin.Context) {
	var query dto.AuditExportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid audit query"))
		return
	}
	switch query.Format {
	case "", dto.AuditFormatJSON, dto.AuditFormatText, dto.AuditFormatCSV, dto.AuditFormatPDF:
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported audit format %q", query.Format)))
		return
	}

	content, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxLoadReportBytes))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "load report could not be read"))
		return
	}

	if query.Format == "" || query.Format == dto.AuditFormatJSON {
		report, err := h.service.AuditReport(c.Request.Context(), content)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, report, map[string]interface{}{
			"records": report.RecordCount,
			"skipped": report.SkippedCount,
		})
		return
	}

	export, err := h.service.Export(c.Request.Context(), content, query.Format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	c.Data(http.StatusOK, export.ContentType, export.Body)
}

// PurgeCache godoc
// @Summary Drop cached load audits
// @Tags Audit
// @Success 204
// @Router /audits/cache [delete]
func (h *AuditHandler) PurgeCache(c *gin.Context) {
	if err := h.service.PurgeCache(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
