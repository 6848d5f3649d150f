package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeStdio    = "stdio"
	ModeFill     = "fill"
	ModeValidate = "validate"
	ModeCoverage = "coverage"

	// Default values
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB
	DefaultTemplate    = "sf86-template.pdf"
	DefaultOutput      = "sf86-filled.pdf"
)

// Config holds all configuration for the SF-86 filler
type Config struct {
	// Execution mode: "stdio" runs the MCP server; "fill", "validate" and
	// "coverage" run one-shot against the data file.
	Mode string

	// Pipeline configuration
	TemplatePath string // SF-86 AcroForm template PDF
	DataPath     string // exported form-data JSON document
	OutputPath   string // filled PDF destination (fill mode)
	WorkspaceDir string // directory MCP tool paths are confined to
	Force        bool   // fill despite validation errors

	// Application configuration
	Version     string
	ServerName  string
	LogLevel    string
	MaxFileSize int64 // maximum template PDF size in bytes
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		currentDir = "."
	}

	return &Config{
		Mode:         ModeStdio, // default to stdio mode for MCP compatibility
		TemplatePath: DefaultTemplate,
		OutputPath:   DefaultOutput,
		WorkspaceDir: currentDir,
		Version:      "1.0.0",
		ServerName:   "sf86-filler",
		LogLevel:     DefaultLogLevel,
		MaxFileSize:  DefaultMaxFileSize,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	// Expand paths if needed
	if cfg.WorkspaceDir != "" {
		if expandedPath, err := filepath.Abs(cfg.WorkspaceDir); err == nil {
			cfg.WorkspaceDir = expandedPath
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("SF86")
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("template", cfg.TemplatePath)
	viper.SetDefault("data", cfg.DataPath)
	viper.SetDefault("out", cfg.OutputPath)
	viper.SetDefault("dir", cfg.WorkspaceDir)
	viper.SetDefault("force", cfg.Force)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Execution mode: 'stdio' for the MCP server, 'fill', 'validate' or 'coverage' for one-shot runs")
	pflag.String("template", cfg.TemplatePath, "Path to the SF-86 AcroForm template PDF")
	pflag.String("data", cfg.DataPath, "Path to the exported form-data JSON document")
	pflag.String("out", cfg.OutputPath, "Destination path for the filled PDF (fill mode)")
	pflag.String("dir", cfg.WorkspaceDir, "Workspace directory MCP tool paths are confined to")
	pflag.Bool("force", cfg.Force, "Fill the PDF even when validation reports errors")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum template PDF size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("mode", pflag.Lookup("mode"))
	_ = viper.BindPFlag("template", pflag.Lookup("template"))
	_ = viper.BindPFlag("data", pflag.Lookup("data"))
	_ = viper.BindPFlag("out", pflag.Lookup("out"))
	_ = viper.BindPFlag("dir", pflag.Lookup("dir"))
	_ = viper.BindPFlag("force", pflag.Lookup("force"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nSF-86 Filler - maps exported questionnaire data into the SF-86 PDF\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                                # MCP stdio mode (default)\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=validate --data=form.json               # validate a document\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=coverage --data=form.json               # coverage diagnostics\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=fill --data=form.json --out=filled.pdf  # fill the template\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  SF86_MODE         Execution mode\n")
		fmt.Fprintf(os.Stderr, "  SF86_TEMPLATE     Template PDF path\n")
		fmt.Fprintf(os.Stderr, "  SF86_DATA         Form-data JSON path\n")
		fmt.Fprintf(os.Stderr, "  SF86_OUT          Output PDF path\n")
		fmt.Fprintf(os.Stderr, "  SF86_DIR          Workspace directory\n")
		fmt.Fprintf(os.Stderr, "  SF86_LOGLEVEL     Log level\n")
		fmt.Fprintf(os.Stderr, "  SF86_MAXFILESIZE  Maximum template size\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.TemplatePath = viper.GetString("template")
	cfg.DataPath = viper.GetString("data")
	cfg.OutputPath = viper.GetString("out")
	cfg.WorkspaceDir = viper.GetString("dir")
	cfg.Force = viper.GetBool("force")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeStdio, ModeFill, ModeValidate, ModeCoverage:
	default:
		return errors.New("mode must be one of 'stdio', 'fill', 'validate', 'coverage'")
	}

	// One-shot modes need a data document up front; in stdio mode every
	// tool call names its own.
	if c.Mode != ModeStdio && c.DataPath == "" {
		return fmt.Errorf("%s mode requires --data", c.Mode)
	}

	if c.Mode == ModeFill {
		if c.TemplatePath == "" {
			return errors.New("fill mode requires --template")
		}
		if c.OutputPath == "" {
			return errors.New("fill mode requires --out")
		}
	}

	if c.WorkspaceDir == "" {
		return errors.New("workspace directory cannot be empty")
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Template: %s, Data: %s, Out: %s, Workspace: %s, LogLevel: %s, MaxFileSize: %d}",
		c.Mode, c.TemplatePath, c.DataPath, c.OutputPath, c.WorkspaceDir, c.LogLevel, c.MaxFileSize)
}

// IsStdioMode returns true if the filler is running as an MCP stdio server
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}
