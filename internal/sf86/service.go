// Package sf86 orchestrates the form pipeline: load a form-data document,
// validate it, map it to PDF field targets, and hand the merged map to the
// PDF writer. The MCP server and the CLI both drive this service.
package sf86

import (
	"fmt"
	"log"
	"os"

	"github.com/clearform/sf86-filler/internal/form"
	"github.com/clearform/sf86-filler/internal/mapping"
	"github.com/clearform/sf86-filler/internal/pdffill"
	"github.com/clearform/sf86-filler/internal/security"
	"github.com/clearform/sf86-filler/internal/validate"
)

const outputFilePerm = 0o600

// Service wires the mapping engine, validators and PDF writer behind one
// façade. All collaborators are constructed explicitly; there is no shared
// package-level state, so two services never interfere.
type Service struct {
	engine    *mapping.Engine
	filler    *pdffill.Filler
	workspace *security.Workspace
	logger    *log.Logger
}

// NewService builds the pipeline. templatePath may be empty when no fill
// operations will be requested; Fill rejects the call instead of failing at
// startup. The logger may be nil.
func NewService(templatePath, workspaceDir string, maxFileSize int64, logger *log.Logger) (*Service, error) {
	engine, err := mapping.NewEngine(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create mapping engine: %w", err)
	}

	workspace, err := security.NewWorkspace(workspaceDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace guard: %w", err)
	}

	var filler *pdffill.Filler
	if templatePath != "" {
		filler = pdffill.NewFiller(templatePath, maxFileSize, logger)
	}

	return &Service{
		engine:    engine,
		filler:    filler,
		workspace: workspace,
		logger:    logger,
	}, nil
}

// Engine exposes the mapping engine for callers that need direct table
// access, such as the field-audit tool.
func (s *Service) Engine() *mapping.Engine {
	return s.engine
}

func (s *Service) loadData(path string) (form.Data, error) {
	if err := s.workspace.CheckPath(path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	return form.Load(path)
}

// ValidateData validates a form-data document and returns the combined and
// per-section results. Business-rule violations live inside the result;
// only unreadable input is an error.
func (s *Service) ValidateData(req ValidateDataRequest) (*ValidateDataResult, error) {
	data, err := s.loadData(req.Path)
	if err != nil {
		return nil, err
	}

	combined, sections := validate.ValidateSections(data)
	return &ValidateDataResult{
		Path:     req.Path,
		Combined: combined,
		Sections: sections,
	}, nil
}

// MapForm maps a form-data document into the merged target-field map.
func (s *Service) MapForm(req MapFormRequest) (*MapFormResult, error) {
	data, err := s.loadData(req.Path)
	if err != nil {
		return nil, err
	}

	targets, stats := s.engine.MapForm(data)
	return &MapFormResult{
		Path:    req.Path,
		Targets: targets,
		Stats:   stats,
	}, nil
}

// CoverageReport derives per-section coverage diagnostics for a document.
func (s *Service) CoverageReport(req CoverageReportRequest) (*CoverageReportResult, error) {
	data, err := s.loadData(req.Path)
	if err != nil {
		return nil, err
	}

	_, stats := s.engine.MapForm(data)
	return &CoverageReportResult{
		Path:   req.Path,
		Report: mapping.BuildCoverageReport(stats),
	}, nil
}

// FillPDF validates, maps and writes a filled copy of the template.
// Validation errors block the fill unless the request forces it; a blocked
// fill is a normal result, not a Go error.
func (s *Service) FillPDF(req FillPDFRequest) (*FillPDFResult, error) {
	if s.filler == nil {
		return nil, fmt.Errorf("no PDF template configured")
	}

	data, err := s.loadData(req.DataPath)
	if err != nil {
		return nil, err
	}

	combined := validate.ValidateAll(data)
	result := &FillPDFResult{
		DataPath: req.DataPath,
		Errors:   combined.Errors,
		Warnings: combined.Warnings,
	}

	if !combined.IsValid && !req.Force {
		result.Blocked = true
		return result, nil
	}

	targets, stats := s.engine.MapForm(data)
	result.Stats = stats

	bytes, fillResult, err := s.filler.Fill(targets)
	if err != nil {
		return nil, fmt.Errorf("failed to fill PDF: %w", err)
	}
	result.FieldsWritten = fillResult.FieldsWritten
	result.UnmatchedIDs = len(fillResult.Unmatched)
	result.LegacyIDs = fillResult.LegacyIDs

	outPath, err := s.workspace.Resolve(req.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	if err := os.WriteFile(outPath, bytes, outputFilePerm); err != nil {
		return nil, fmt.Errorf("failed to write output PDF: %w", err)
	}
	result.OutputPath = outPath

	if s.logger != nil {
		s.logger.Printf("filled %d fields into %s (%d unmatched, %d legacy ids)",
			result.FieldsWritten, outPath, result.UnmatchedIDs, result.LegacyIDs)
	}
	return result, nil
}

// ValidateTemplate checks the configured template is usable.
func (s *Service) ValidateTemplate() error {
	if s.filler == nil {
		return fmt.Errorf("no PDF template configured")
	}
	return s.filler.ValidateTemplate()
}

// TemplateFieldNames lists the template's form-field identifiers.
func (s *Service) TemplateFieldNames() ([]string, error) {
	if s.filler == nil {
		return nil, fmt.Errorf("no PDF template configured")
	}
	return s.filler.FieldNames()
}
