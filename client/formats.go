package client

import (
	"fmt"
	"strings"
)

// ExportFormat names one of the export renditions the portal can produce.
// The value doubles as the final URL segment of the export endpoint, so the
// casing matters.
type ExportFormat string

const (
	FormatPDF        ExportFormat = "pdf"
	FormatOpenOffice ExportFormat = "openOffice"
	FormatOkstra     ExportFormat = "okstra"
	FormatLoinXML    ExportFormat = "loinXML"
	FormatIDS        ExportFormat = "IDS"
)

// AllFormats lists every rendition of projects, LOINs and domain specific
// models.
var AllFormats = []ExportFormat{FormatPDF, FormatOpenOffice, FormatOkstra, FormatLoinXML, FormatIDS}

// DocumentFormats lists the renditions available for context information and
// AIA templates.
var DocumentFormats = []ExportFormat{FormatPDF, FormatOpenOffice}

// Extension returns the file extension used when saving this rendition.
// OKSTRA and LOIN-XML exports arrive as zip archives.
func (f ExportFormat) Extension() string {
	switch f {
	case FormatPDF:
		return "pdf"
	case FormatOpenOffice:
		return "odt"
	case FormatOkstra, FormatLoinXML:
		return "zip"
	case FormatIDS:
		return "ids"
	default:
		return "bin"
	}
}

// String returns the URL segment of the format.
func (f ExportFormat) String() string {
	return string(f)
}

// ParseExportFormat maps a user-supplied name onto a known format. Matching
// is case-insensitive and accepts the file extension spellings as aliases.
func ParseExportFormat(name string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "pdf":
		return FormatPDF, nil
	case "openoffice", "odt":
		return FormatOpenOffice, nil
	case "okstra":
		return FormatOkstra, nil
	case "loinxml", "loin-xml":
		return FormatLoinXML, nil
	case "ids":
		return FormatIDS, nil
	default:
		return "", fmt.Errorf("unknown export format %q (expected one of: pdf, openOffice, okstra, loinXML, IDS)", name)
	}
}
