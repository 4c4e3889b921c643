package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserConfigPath(t *testing.T) {
	path, err := UserConfigPath()
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(path), "want absolute path, got %q", path)
	assert.Equal(t, filepath.Join("yuzu-updater", "config.yml"), filepath.Join(filepath.Base(filepath.Dir(path)), filepath.Base(path)))
}

func TestUserConfigPath_XDGConfigHome(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME is only used on Linux")
	}

	customDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", customDir)

	path, err := UserConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(customDir, "yuzu-updater", "config.yml"), path)
}

func TestFindUserConfig(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME is only used on Linux")
	}

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	assert.Empty(t, FindUserConfig())

	path, err := UserConfigPath()
	require.NoError(t, err)
	require.NoError(t, WriteDefaultConfig(path, false))

	assert.Equal(t, path, FindUserConfig())
}

func TestWriteDefaultConfig(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		existing string
		force    bool
		wantErr  error
		wantBody string
	}{
		"new file in missing directory": {
			wantBody: GetDefaultConfigTemplate(),
		},
		"existing file kept without force": {
			existing: "update_type: standalone\n",
			wantErr:  ErrConfigExists,
			wantBody: "update_type: standalone\n",
		},
		"existing file replaced with force": {
			existing: "update_type: standalone\n",
			force:    true,
			wantBody: GetDefaultConfigTemplate(),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "nested", "config.yml")
			if tt.existing != "" {
				require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
				require.NoError(t, os.WriteFile(path, []byte(tt.existing), 0o644))
			}

			err := WriteDefaultConfig(path, tt.force)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			} else {
				require.NoError(t, err)
			}

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.wantBody, string(data))

			entries, err := os.ReadDir(filepath.Dir(path))
			require.NoError(t, err)
			assert.Len(t, entries, 1, "no temp files left behind")

			_, err = Load(path, nil)
			assert.NoError(t, err, "written file must load")
		})
	}
}
