package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/timetable-wizard-api/internal/dto"
	"github.com/noah-isme/timetable-wizard-api/internal/models"
	appErrors "github.com/noah-isme/timetable-wizard-api/pkg/errors"
	"github.com/noah-isme/timetable-wizard-api/pkg/export"
)

const auditCachePrefix = "load_audit:"

// AuditConfig governs load audits.
type AuditConfig struct {
	Policy   AuditPolicy
	CacheTTL time.Duration
}

// AuditService runs load audits over uploaded reports and renders them.
type AuditService struct {
	policy   AuditPolicy
	cache    *CacheService
	metrics  *MetricsService
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	logger   *zap.Logger
	cacheTTL time.Duration
}

// NewAuditService constructs the audit service. cache may be nil.
func NewAuditService(cache *CacheService, metrics *MetricsService, logger *zap.Logger, cfg AuditConfig) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{
		policy:   cfg.Policy.normalized(),
		cache:    cache,
		metrics:  metrics,
		csv:      export.NewCSVExporter(';'),
		pdf:      export.NewPDFExporter(),
		logger:   logger,
		cacheTTL: cfg.CacheTTL,
	}
}

// Policy returns the limits the service audits against.
func (s *AuditService) Policy() AuditPolicy {
	return s.policy
}

// AuditReport parses and audits a load report. Malformed rows are reported
// in the result, never as an error.
func (s *AuditService) AuditReport(ctx context.Context, content []byte) (*models.LoadAuditReport, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "load report is empty")
	}
	key := s.cacheKey(content)

	var cached models.LoadAuditReport
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		s.metrics.ObserveAudit(true, cached.SkippedCount)
		return &cached, nil
	}

	parsed, err := ParseLoadReport(bytes.NewReader(content))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "failed to read load report")
	}
	report := Audit(parsed, s.policy)
	s.metrics.ObserveAudit(false, report.SkippedCount)
	if report.SkippedCount > 0 {
		s.logger.Info("load report rows skipped", zap.Int("skipped", report.SkippedCount), zap.Int("records", report.RecordCount))
	}

	_ = s.cache.Set(ctx, key, report, s.cacheTTL)
	return &report, nil
}

// Export audits the report and renders it in the requested format.
func (s *AuditService) Export(ctx context.Context, content []byte, format string) (*dto.AuditExport, error) {
	if format == "" {
		format = dto.AuditFormatJSON
	}
	report, err := s.AuditReport(ctx, content)
	if err != nil {
		return nil, err
	}

	switch format {
	case dto.AuditFormatJSON:
		body, err := json.Marshal(report)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode audit")
		}
		return &dto.AuditExport{ContentType: "application/json", Filename: "load-audit.json", Body: body}, nil
	case dto.AuditFormatText:
		var buf bytes.Buffer
		if err := WriteAuditText(&buf, *report); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render audit")
		}
		return &dto.AuditExport{ContentType: "text/plain; charset=utf-8", Filename: "load-audit.txt", Body: buf.Bytes()}, nil
	case dto.AuditFormatCSV:
		body, err := s.csv.Render(AuditDataset(*report, s.policy))
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render audit csv")
		}
		return &dto.AuditExport{ContentType: "text/csv", Filename: "load-audit.csv", Body: body}, nil
	case dto.AuditFormatPDF:
		body, err := s.pdf.Render(AuditDataset(*report, s.policy), "Haftalık Ders Yükü Denetimi")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render audit pdf")
		}
		return &dto.AuditExport{ContentType: "application/pdf", Filename: "load-audit.pdf", Body: body}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported audit format %q", format))
	}
}

// PurgeCache drops every cached audit.
func (s *AuditService) PurgeCache(ctx context.Context) error {
	if err := s.cache.Invalidate(ctx, auditCachePrefix+"*"); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to purge audit cache")
	}
	return nil
}

// AuditDataset flattens a report into export rows.
func AuditDataset(report models.LoadAuditReport, policy AuditPolicy) export.Dataset {
	data := export.Dataset{Headers: []string{"Kapsam", "Öğretmen", "Sınıf", "Saat", "Sınır", "Durum"}}
	for _, entry := range report.Classes {
		data.Rows = append(data.Rows, map[string]string{
			"Kapsam": "sınıf",
			"Sınıf":  entry.ClassID,
			"Saat":   strconv.Itoa(entry.TotalHours),
			"Sınır":  strconv.Itoa(entry.WeeklyCap),
			"Durum":  string(entry.Status),
		})
	}
	for _, entry := range report.Feasibility {
		data.Rows = append(data.Rows, map[string]string{
			"Kapsam":   "öğretmen/sınıf",
			"Öğretmen": entry.TeacherID,
			"Sınıf":    entry.ClassID,
			"Saat":     strconv.Itoa(entry.TotalHours),
			"Sınır":    strconv.Itoa(entry.MaxHours),
			"Durum":    string(entry.Status),
		})
	}
	data.Notes = []string{
		fmt.Sprintf("Politika: %s", policy),
		fmt.Sprintf("Kayıt: %d, atlanan satır: %d", report.RecordCount, report.SkippedCount),
	}
	return data
}

func (s *AuditService) cacheKey(content []byte) string {
	sum := sha256.New()
	sum.Write([]byte(s.policy.String()))
	sum.Write([]byte{'\n'})
	sum.Write(content)
	return auditCachePrefix + hex.EncodeToString(sum.Sum(nil))
}
