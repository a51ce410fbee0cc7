package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ExportFormat is a supported expense download format
type ExportFormat string

const (
	ExportXLSX ExportFormat = "xlsx"
	ExportCSV  ExportFormat = "csv"
)

var ErrUnsupportedExportFormat = errors.New("unsupported export format")

// ParseExportFormat accepts "xlsx" or "csv", case-insensitively. Empty
// defaults to xlsx.
func ParseExportFormat(value string) (ExportFormat, error) {
	switch ExportFormat(strings.ToLower(strings.TrimSpace(value))) {
	case "", ExportXLSX:
		return ExportXLSX, nil
	case ExportCSV:
		return ExportCSV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedExportFormat, value)
	}
}

// ContentType returns the MIME type of the format
func (f ExportFormat) ContentType() string {
	if f == ExportCSV {
		return "text/csv; charset=utf-8"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Filename returns the download name for an export produced at t
func (f ExportFormat) Filename(t time.Time) string {
	return fmt.Sprintf("expenses_%s.%s", t.Format("20060102_150405"), f)
}
