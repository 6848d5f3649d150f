package security

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorkspace(t *testing.T) {
	w, err := NewWorkspace("/tmp/data")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/data", w.Dir())

	_, err = NewWorkspace("")
	assert.Error(t, err)
}

func TestCheckPath(t *testing.T) {
	tempDir := t.TempDir()
	w, err := NewWorkspace(tempDir)
	require.NoError(t, err)

	inside := filepath.Join(tempDir, "data.json")
	require.NoError(t, os.WriteFile(inside, []byte("{}"), 0o644))

	tests := []struct {
		name          string
		path          string
		expectedError bool
	}{
		{"file_inside_workspace", inside, false},
		{"workspace_root_itself", tempDir, false},
		{"nonexistent_inside", filepath.Join(tempDir, "new.json"), false},
		{"outside_workspace", "/etc/passwd", true},
		{"traversal_escape", filepath.Join(tempDir, "..", "escape.json"), true},
		{"empty_path", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := w.CheckPath(tt.path)
			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckPath_WorkspaceNotYetCreated(t *testing.T) {
	w, err := NewWorkspace(filepath.Join(t.TempDir(), "does-not-exist-yet"))
	require.NoError(t, err)

	// Until the workspace directory exists there is nothing to confine.
	assert.NoError(t, w.CheckPath("/anywhere/at/all"))
}

func TestCheckPath_SymlinkEscape(t *testing.T) {
	tempDir := t.TempDir()
	outsideDir := t.TempDir()
	w, err := NewWorkspace(tempDir)
	require.NoError(t, err)

	secret := filepath.Join(outsideDir, "secret.json")
	require.NoError(t, os.WriteFile(secret, []byte("{}"), 0o644))

	link := filepath.Join(tempDir, "link.json")
	require.NoError(t, os.Symlink(secret, link))

	assert.Error(t, w.CheckPath(link))
}

func TestResolve(t *testing.T) {
	tempDir := t.TempDir()
	w, err := NewWorkspace(tempDir)
	require.NoError(t, err)

	t.Run("relative_joins_workspace", func(t *testing.T) {
		resolved, err := w.Resolve("output.pdf")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(tempDir, "output.pdf"), resolved)
	})

	t.Run("absolute_inside_passes", func(t *testing.T) {
		target := filepath.Join(tempDir, "sub", "output.pdf")
		resolved, err := w.Resolve(target)
		require.NoError(t, err)
		assert.Equal(t, target, resolved)
	})

	t.Run("absolute_outside_rejected", func(t *testing.T) {
		_, err := w.Resolve("/etc/output.pdf")
		assert.Error(t, err)
	})

	t.Run("relative_traversal_rejected", func(t *testing.T) {
		_, err := w.Resolve("../escape.pdf")
		assert.Error(t, err)
	})

	t.Run("empty_rejected", func(t *testing.T) {
		_, err := w.Resolve("")
		assert.Error(t, err)
	})
}
