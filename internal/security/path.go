// Package security confines the file paths the MCP tools will touch to the
// configured workspace directory. Tool callers supply arbitrary path
// strings; nothing outside the workspace may be read or written through
// them.
package security

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Workspace validates that form-data documents and fill outputs stay inside
// one configured directory.
type Workspace struct {
	dir string
}

// NewWorkspace creates a workspace guard rooted at dir. The directory does
// not have to exist yet; paths are only confined once it does.
func NewWorkspace(dir string) (*Workspace, error) {
	if dir == "" {
		return nil, fmt.Errorf("workspace directory cannot be empty")
	}
	return &Workspace{dir: dir}, nil
}

// Dir returns the workspace root.
func (w *Workspace) Dir() string {
	return w.dir
}

// CheckPath verifies that path resolves inside the workspace, following
// symlinks so a link inside the workspace cannot smuggle a target outside
// it.
func (w *Workspace) CheckPath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}
	if _, err := os.Stat(w.dir); os.IsNotExist(err) {
		return nil
	}

	within, err := w.contains(path)
	if err != nil {
		return fmt.Errorf("path validation failed: %w", err)
	}
	if !within {
		return fmt.Errorf("path is outside the workspace directory: %s", path)
	}
	return nil
}

// Resolve joins a relative path onto the workspace root, cleans it, and
// verifies the result still lies inside the workspace.
func (w *Workspace) Resolve(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(w.dir, path)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}
	if err := w.CheckPath(absPath); err != nil {
		return "", err
	}
	return absPath, nil
}

func (w *Workspace) contains(path string) (bool, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, fmt.Errorf("failed to resolve path: %w", err)
	}
	absDir, err := filepath.Abs(w.dir)
	if err != nil {
		return false, fmt.Errorf("failed to resolve workspace directory: %w", err)
	}

	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(absDir)

	realPath := cleanPath
	if info, err := os.Lstat(cleanPath); err == nil && info.Mode()&os.ModeSymlink != 0 {
		if resolved, err := filepath.EvalSymlinks(cleanPath); err == nil {
			realPath = resolved
		}
	}
	realDir := cleanDir
	if resolved, err := filepath.EvalSymlinks(cleanDir); err == nil {
		realDir = resolved
	}

	inside := func(p, dir string) bool {
		withSep := dir
		if !strings.HasSuffix(withSep, string(filepath.Separator)) {
			withSep += string(filepath.Separator)
		}
		return p == dir || strings.HasPrefix(p, withSep)
	}

	pathOk := inside(cleanPath, cleanDir) || inside(cleanPath, realDir)
	realPathOk := inside(realPath, cleanDir) || inside(realPath, realDir)
	return pathOk && realPathOk, nil
}
