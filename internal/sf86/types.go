package sf86

import (
	"github.com/clearform/sf86-filler/internal/mapping"
	"github.com/clearform/sf86-filler/internal/validate"
)

// Request types

// ValidateDataRequest asks for a validation pass over a form-data document.
type ValidateDataRequest struct {
	Path string `json:"path"`
}

// MapFormRequest asks for a full mapping pass over a form-data document.
type MapFormRequest struct {
	Path string `json:"path"`
}

// CoverageReportRequest asks for coverage diagnostics over a document.
type CoverageReportRequest struct {
	Path string `json:"path"`
}

// FillPDFRequest asks for a filled copy of the template. Validation errors
// block the fill unless Force is set.
type FillPDFRequest struct {
	DataPath   string `json:"data_path"`
	OutputPath string `json:"output_path"`
	Force      bool   `json:"force,omitempty"`
}

// Result types

// ValidateDataResult carries the combined validation outcome plus the
// per-section results it was gathered from.
type ValidateDataResult struct {
	Path     string                     `json:"path"`
	Combined validate.Result            `json:"combined"`
	Sections map[string]validate.Result `json:"sections"`
}

// MapFormResult carries one mapping pass's merged target map and stats.
type MapFormResult struct {
	Path    string            `json:"path"`
	Targets mapping.TargetMap `json:"targets"`
	Stats   *mapping.Stats    `json:"stats"`
}

// CoverageReportResult carries the derived coverage report.
type CoverageReportResult struct {
	Path   string                  `json:"path"`
	Report *mapping.CoverageReport `json:"report"`
}

// FillPDFResult reports a fill attempt. Blocked fills carry the validation
// errors and write nothing.
type FillPDFResult struct {
	DataPath      string         `json:"data_path"`
	OutputPath    string         `json:"output_path,omitempty"`
	Blocked       bool           `json:"blocked,omitempty"`
	Errors        []string       `json:"errors,omitempty"`
	Warnings      []string       `json:"warnings,omitempty"`
	FieldsWritten int            `json:"fields_written"`
	UnmatchedIDs  int            `json:"unmatched_ids"`
	LegacyIDs     int            `json:"legacy_ids"`
	Stats         *mapping.Stats `json:"stats,omitempty"`
}
