package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/clearform/sf86-filler/internal/config"
	"github.com/clearform/sf86-filler/internal/mcp"
	"github.com/clearform/sf86-filler/internal/sf86"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// setupLogging configures logging based on the execution mode
func setupLogging(cfg *config.Config) {
	if cfg.IsStdioMode() {
		// In stdio mode, redirect log output to stderr to avoid interfering
		// with the MCP protocol
		log.SetOutput(os.Stderr)
		if !cfg.IsDebug() {
			log.SetOutput(os.NewFile(0, os.DevNull))
		}
	} else {
		log.SetOutput(os.Stderr)
		log.SetFlags(log.LstdFlags)
	}
}

// runStdioMode runs the MCP server; the parent process controls our
// lifecycle and we exit when stdin closes.
func runStdioMode(ctx context.Context, server *mcp.Server) {
	if err := server.Run(ctx); err != nil {
		if os.Getenv("DEBUG") != "" {
			log.Printf("Server error: %v", err)
		}
		os.Exit(1)
	}
}

// runOneShot executes a single validate, coverage or fill pass and prints
// the outcome.
func runOneShot(cfg *config.Config, service *sf86.Service) int {
	switch cfg.Mode {
	case config.ModeValidate:
		result, err := service.ValidateData(sf86.ValidateDataRequest{Path: cfg.DataPath})
		if err != nil {
			log.Printf("Validation failed to run: %v", err)
			return 1
		}
		for _, e := range result.Combined.Errors {
			fmt.Printf("ERROR: %s\n", e)
		}
		for _, w := range result.Combined.Warnings {
			fmt.Printf("WARNING: %s\n", w)
		}
		if !result.Combined.IsValid {
			fmt.Printf("Validation failed: %d error(s), %d warning(s)\n",
				len(result.Combined.Errors), len(result.Combined.Warnings))
			return 1
		}
		fmt.Printf("Validation passed with %d warning(s)\n", len(result.Combined.Warnings))
		return 0

	case config.ModeCoverage:
		result, err := service.CoverageReport(sf86.CoverageReportRequest{Path: cfg.DataPath})
		if err != nil {
			log.Printf("Coverage report failed: %v", err)
			return 1
		}
		fmt.Print(result.Report.String())
		return 0

	case config.ModeFill:
		if err := service.ValidateTemplate(); err != nil {
			log.Printf("Template validation failed: %v", err)
			return 1
		}
		result, err := service.FillPDF(sf86.FillPDFRequest{
			DataPath:   cfg.DataPath,
			OutputPath: cfg.OutputPath,
			Force:      cfg.Force,
		})
		if err != nil {
			log.Printf("Fill failed: %v", err)
			return 1
		}
		if result.Blocked {
			fmt.Printf("Fill blocked by %d validation error(s); use --force to override\n", len(result.Errors))
			for _, e := range result.Errors {
				fmt.Printf("ERROR: %s\n", e)
			}
			return 1
		}
		fmt.Printf("Wrote %s (%d fields", result.OutputPath, result.FieldsWritten)
		if result.UnmatchedIDs > 0 {
			fmt.Printf(", %d unmatched ids", result.UnmatchedIDs)
		}
		fmt.Println(")")
		return 0
	}

	log.Printf("Unknown mode: %s", cfg.Mode)
	return 1
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg)

	// Set version if it was provided during build
	if version != "dev" {
		cfg.Version = version
	}

	if cfg.IsDebug() && !cfg.IsStdioMode() {
		log.Printf("Starting with configuration: %s", cfg.String())
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)
	if cfg.IsStdioMode() && !cfg.IsDebug() {
		logger = log.New(os.NewFile(0, os.DevNull), "", 0)
	}

	templatePath := cfg.TemplatePath
	if cfg.Mode == config.ModeValidate || cfg.Mode == config.ModeCoverage {
		// These modes never touch the template.
		templatePath = ""
	}

	service, err := sf86.NewService(templatePath, cfg.WorkspaceDir, cfg.MaxFileSize, logger)
	if err != nil {
		log.Fatalf("Failed to create service: %v", err)
	}

	if cfg.IsStdioMode() {
		server, err := mcp.NewServer(cfg, service)
		if err != nil {
			log.Fatalf("Failed to create MCP server: %v", err)
		}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		runStdioMode(ctx, server)
		return
	}

	os.Exit(runOneShot(cfg, service))
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("SF-86 Filler\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
