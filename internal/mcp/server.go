package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/clearform/sf86-filler/internal/config"
	"github.com/clearform/sf86-filler/internal/descriptions"
	"github.com/clearform/sf86-filler/internal/sf86"
)

// Server represents the MCP server instance
type Server struct {
	config    *config.Config
	service   *sf86.Service
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, service *sf86.Service) (*Server, error) {
	if service == nil {
		return nil, fmt.Errorf("service cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // the tool set is static
	)

	s := &Server{
		config:    cfg,
		service:   service,
		mcpServer: mcpServer,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	validateTool := mcp.NewTool(
		"sf86_validate_data",
		mcp.WithDescription(descriptions.SF86ValidateDataDescription),
		mcp.WithString("data_path",
			mcp.Required(),
			mcp.Description("Path to the exported form-data JSON document"),
		),
	)
	s.mcpServer.AddTool(validateTool, s.handleValidateData)

	mapTool := mcp.NewTool(
		"sf86_map_form",
		mcp.WithDescription(descriptions.SF86MapFormDescription),
		mcp.WithString("data_path",
			mcp.Required(),
			mcp.Description("Path to the exported form-data JSON document"),
		),
		mcp.WithString("section",
			mcp.Description("Optional section key (e.g. 'section13') to restrict the output to"),
		),
	)
	s.mcpServer.AddTool(mapTool, s.handleMapForm)

	coverageTool := mcp.NewTool(
		"sf86_coverage_report",
		mcp.WithDescription(descriptions.SF86CoverageReportDescription),
		mcp.WithString("data_path",
			mcp.Required(),
			mcp.Description("Path to the exported form-data JSON document"),
		),
	)
	s.mcpServer.AddTool(coverageTool, s.handleCoverageReport)

	fillTool := mcp.NewTool(
		"sf86_fill_pdf",
		mcp.WithDescription(descriptions.SF86FillPDFDescription),
		mcp.WithString("data_path",
			mcp.Required(),
			mcp.Description("Path to the exported form-data JSON document"),
		),
		mcp.WithString("output_path",
			mcp.Required(),
			mcp.Description("Destination path for the filled PDF"),
		),
		mcp.WithBoolean("force",
			mcp.Description("Fill even when validation reports blocking errors"),
		),
	)
	s.mcpServer.AddTool(fillTool, s.handleFillPDF)
}

// Handler functions

func (s *Server) handleValidateData(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dataPath, err := request.RequireString("data_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.service.ValidateData(sf86.ValidateDataRequest{Path: dataPath})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := s.formatValidateDataResult(result)
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleMapForm(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dataPath, err := request.RequireString("data_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	section := ""
	if v, ok := request.GetArguments()["section"].(string); ok {
		section = v
	}

	result, err := s.service.MapForm(sf86.MapFormRequest{Path: dataPath})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	targets := result.Targets
	if section != "" {
		t := s.service.Engine().Table(section)
		if t == nil {
			return mcp.NewToolResultError(fmt.Sprintf("unknown section: %s", section)), nil
		}
		sectionIDs := make(map[string]bool, len(t.Mappings))
		for _, r := range t.Mappings {
			sectionIDs[r.PDFFieldID] = true
		}
		for _, p := range t.Propagations {
			for _, id := range p.PDFFieldIDs {
				sectionIDs[id] = true
			}
		}
		filtered := make(map[string]any)
		for id, v := range targets {
			if sectionIDs[id] {
				filtered[id] = v
			}
		}
		targets = filtered
	}

	payload, err := json.MarshalIndent(map[string]any{
		"path":    result.Path,
		"targets": targets,
		"stats":   result.Stats,
	}, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Mapped %d PDF fields from %s\n\n%s",
		len(targets), result.Path, string(payload))
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleCoverageReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dataPath, err := request.RequireString("data_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.service.CoverageReport(sf86.CoverageReportRequest{Path: dataPath})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(result.Report.String()), nil
}

func (s *Server) handleFillPDF(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dataPath, err := request.RequireString("data_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	outputPath, err := request.RequireString("output_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	force := false
	if v, ok := request.GetArguments()["force"].(bool); ok {
		force = v
	}

	result, err := s.service.FillPDF(sf86.FillPDFRequest{
		DataPath:   dataPath,
		OutputPath: outputPath,
		Force:      force,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := s.formatFillPDFResult(result)
	return mcp.NewToolResultText(responseText), nil
}

// Formatting helpers

func (s *Server) formatValidateDataResult(result *sf86.ValidateDataResult) string {
	var sb strings.Builder
	if result.Combined.IsValid {
		sb.WriteString(fmt.Sprintf("Validation passed for %s\n", result.Path))
	} else {
		sb.WriteString(fmt.Sprintf("Validation failed for %s: %d error(s)\n",
			result.Path, len(result.Combined.Errors)))
	}

	for _, e := range result.Combined.Errors {
		sb.WriteString(fmt.Sprintf("  ERROR: %s\n", e))
	}
	for _, w := range result.Combined.Warnings {
		sb.WriteString(fmt.Sprintf("  WARNING: %s\n", w))
	}
	return sb.String()
}

func (s *Server) formatFillPDFResult(result *sf86.FillPDFResult) string {
	if result.Blocked {
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Fill blocked: %d validation error(s). Fix them or pass force=true.\n",
			len(result.Errors)))
		for _, e := range result.Errors {
			sb.WriteString(fmt.Sprintf("  ERROR: %s\n", e))
		}
		return sb.String()
	}

	responseText := fmt.Sprintf("Filled PDF written to %s\n", result.OutputPath)
	responseText += fmt.Sprintf("Fields written: %d\n", result.FieldsWritten)
	if result.UnmatchedIDs > 0 {
		responseText += fmt.Sprintf("Unmatched target ids: %d\n", result.UnmatchedIDs)
	}
	if result.LegacyIDs > 0 {
		responseText += fmt.Sprintf("Legacy numeric ids without template fields: %d\n", result.LegacyIDs)
	}
	if len(result.Warnings) > 0 {
		responseText += fmt.Sprintf("Validation warnings: %d\n", len(result.Warnings))
	}
	return responseText
}

// Run starts the MCP server in stdio mode and blocks until the transport
// closes.
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting SF-86 filler MCP server in stdio mode")
		log.Printf("Workspace directory: %s", s.config.WorkspaceDir)
	}

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}
