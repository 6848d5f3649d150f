package config

import (
	"os"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// Test default values
	if cfg.Mode != "stdio" {
		t.Errorf("Expected default mode to be 'stdio', got '%s'", cfg.Mode)
	}

	if cfg.TemplatePath != "sf86-template.pdf" {
		t.Errorf("Expected default template to be 'sf86-template.pdf', got '%s'", cfg.TemplatePath)
	}

	if cfg.OutputPath != "sf86-filled.pdf" {
		t.Errorf("Expected default output to be 'sf86-filled.pdf', got '%s'", cfg.OutputPath)
	}

	if cfg.Version != "1.0.0" {
		t.Errorf("Expected default version to be '1.0.0', got '%s'", cfg.Version)
	}

	if cfg.ServerName != "sf86-filler" {
		t.Errorf("Expected default server name to be 'sf86-filler', got '%s'", cfg.ServerName)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level to be 'info', got '%s'", cfg.LogLevel)
	}

	if cfg.MaxFileSize != 100*1024*1024 {
		t.Errorf("Expected default max file size to be 100MB, got %d", cfg.MaxFileSize)
	}

	// Test that workspace directory is set to current working directory by default
	currentDir, _ := os.Getwd()
	if cfg.WorkspaceDir != currentDir {
		t.Errorf("Expected default workspace directory to be '%s', got '%s'", currentDir, cfg.WorkspaceDir)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "valid config - stdio mode",
			config:  DefaultConfig(),
			wantErr: false,
		},
		{
			name: "valid config - fill mode",
			config: func() *Config {
				cfg := DefaultConfig()
				cfg.Mode = ModeFill
				cfg.DataPath = "form.json"
				return cfg
			}(),
			wantErr: false,
		},
		{
			name: "valid config - validate mode",
			config: func() *Config {
				cfg := DefaultConfig()
				cfg.Mode = ModeValidate
				cfg.DataPath = "form.json"
				return cfg
			}(),
			wantErr: false,
		},
		{
			name: "valid config - coverage mode",
			config: func() *Config {
				cfg := DefaultConfig()
				cfg.Mode = ModeCoverage
				cfg.DataPath = "form.json"
				return cfg
			}(),
			wantErr: false,
		},
		{
			name: "invalid mode",
			config: func() *Config {
				cfg := DefaultConfig()
				cfg.Mode = "invalid"
				return cfg
			}(),
			wantErr: true,
		},
		{
			name: "fill mode without data",
			config: func() *Config {
				cfg := DefaultConfig()
				cfg.Mode = ModeFill
				return cfg
			}(),
			wantErr: true,
		},
		{
			name: "fill mode without template",
			config: func() *Config {
				cfg := DefaultConfig()
				cfg.Mode = ModeFill
				cfg.DataPath = "form.json"
				cfg.TemplatePath = ""
				return cfg
			}(),
			wantErr: true,
		},
		{
			name: "fill mode without output",
			config: func() *Config {
				cfg := DefaultConfig()
				cfg.Mode = ModeFill
				cfg.DataPath = "form.json"
				cfg.OutputPath = ""
				return cfg
			}(),
			wantErr: true,
		},
		{
			name: "validate mode without data",
			config: func() *Config {
				cfg := DefaultConfig()
				cfg.Mode = ModeValidate
				return cfg
			}(),
			wantErr: true,
		},
		{
			name: "empty workspace directory",
			config: func() *Config {
				cfg := DefaultConfig()
				cfg.WorkspaceDir = ""
				return cfg
			}(),
			wantErr: true,
		},
		{
			name: "zero max file size",
			config: func() *Config {
				cfg := DefaultConfig()
				cfg.MaxFileSize = 0
				return cfg
			}(),
			wantErr: true,
		},
		{
			name: "negative max file size",
			config: func() *Config {
				cfg := DefaultConfig()
				cfg.MaxFileSize = -1
				return cfg
			}(),
			wantErr: true,
		},
		{
			name: "invalid log level",
			config: func() *Config {
				cfg := DefaultConfig()
				cfg.LogLevel = "verbose"
				return cfg
			}(),
			wantErr: true,
		},
		{
			name: "debug log level",
			config: func() *Config {
				cfg := DefaultConfig()
				cfg.LogLevel = "debug"
				return cfg
			}(),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigIsDebug(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.IsDebug() {
		t.Error("Expected IsDebug() to be false for default config")
	}

	cfg.LogLevel = "debug"
	if !cfg.IsDebug() {
		t.Error("Expected IsDebug() to be true when log level is debug")
	}
}

func TestConfigIsStdioMode(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.IsStdioMode() {
		t.Error("Expected IsStdioMode() to be true for default config")
	}

	cfg.Mode = ModeFill
	if cfg.IsStdioMode() {
		t.Error("Expected IsStdioMode() to be false in fill mode")
	}
}

func TestConfigString(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataPath = "form.json"

	s := cfg.String()
	for _, want := range []string{"stdio", "form.json", "sf86-template.pdf"} {
		if !strings.Contains(s, want) {
			t.Errorf("Expected String() to contain '%s', got '%s'", want, s)
		}
	}
}
