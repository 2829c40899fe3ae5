package domain

const (
	HTMLFileName = "Resumatic_AI_Resume.html"
	PDFFileName  = "Resumatic_AI_Resume.pdf"

	ContentTypeHTML = "text/html; charset=utf-8"
	ContentTypePDF  = "application/pdf"
)

// Format names an export format.
type Format string

const (
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
)

// ExportArtifact is a transient downloadable file. It is handed to the
// client and never retained.
type ExportArtifact struct {
	Format      Format
	FileName    string
	ContentType string
	Body        []byte
}
