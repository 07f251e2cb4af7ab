package dto

// Audit export formats.
const (
	AuditFormatJSON = "json"
	AuditFormatText = "text"
	AuditFormatCSV  = "csv"
	AuditFormatPDF  = "pdf"
)

// AuditExportQuery selects the rendering of a load audit.
type AuditExportQuery struct {
	Format string `form:"format" json:"format" validate:"omitempty,oneof=json text csv pdf"`
}

// AuditExport is a rendered load audit.
type AuditExport struct {
	ContentType string
	Filename    string
	Body        []byte
}
