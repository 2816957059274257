package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazuruo/binget/internal/errors"
)

func TestNewValidRepo(t *testing.T) {
	cfg, err := New(Inputs{RepoSpec: "owner/tool"}, nil)
	require.NoError(t, err)

	assert.Equal(t, "owner", cfg.Owner)
	assert.Equal(t, "tool", cfg.Repo)
	assert.Equal(t, "tool", cfg.BinaryName, "binary name defaults to repo")
	assert.Equal(t, DefaultInstallDir, cfg.InstallDir)
	assert.Equal(t, DefaultHost, cfg.Host)
	assert.Equal(t, runtime.GOOS, cfg.Platform.OS)
	assert.Equal(t, runtime.GOARCH, cfg.Platform.Arch)
}

func TestNewInvalidRepo(t *testing.T) {
	tests := []string{
		"",
		"noslash",
		"owner/repo/extra",
		"owner/re po",
		"own$er/repo",
	}

	for _, spec := range tests {
		t.Run(spec, func(t *testing.T) {
			_, err := New(Inputs{RepoSpec: spec}, nil)
			require.Error(t, err)
			assert.True(t, errors.IsValidation(err))
		})
	}
}

func TestNewInvalidBinaryName(t *testing.T) {
	_, err := New(Inputs{RepoSpec: "owner/tool", BinaryName: "bad name"}, nil)
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestNewCanonicalizesOverrides(t *testing.T) {
	cfg, err := New(Inputs{RepoSpec: "owner/tool", OS: "macOS", Arch: "x86_64"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "darwin", cfg.Platform.OS)
	assert.Equal(t, "amd64", cfg.Platform.Arch)
}

func TestNewStripsVersionPrefix(t *testing.T) {
	cfg, err := New(Inputs{RepoSpec: "owner/tool", Version: "v1.2.3"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", cfg.Version)
}

func TestNewFlagsWinOverDefaults(t *testing.T) {
	defaults := &Defaults{InstallDir: "/opt/bin", Host: "https://git.corp.example", Quiet: true}

	cfg, err := New(Inputs{RepoSpec: "owner/tool", InstallDir: "/my/bin"}, defaults)
	require.NoError(t, err)
	assert.Equal(t, "/my/bin", cfg.InstallDir, "flag beats defaults file")
	assert.Equal(t, "https://git.corp.example", cfg.Host, "defaults file fills unset flag")
	assert.True(t, cfg.Quiet)
}

func TestLoadDefaults(t *testing.T) {
	t.Run("missing file yields zero defaults", func(t *testing.T) {
		d, err := LoadDefaults(filepath.Join(t.TempDir(), "nope.toml"))
		require.NoError(t, err)
		assert.Equal(t, &Defaults{}, d)
	})

	t.Run("empty path yields zero defaults", func(t *testing.T) {
		d, err := LoadDefaults("")
		require.NoError(t, err)
		assert.Equal(t, &Defaults{}, d)
	})

	t.Run("parses toml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := "install_dir = \"/opt/tools\"\nhost = \"https://git.corp.example\"\nquiet = true\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		d, err := LoadDefaults(path)
		require.NoError(t, err)
		assert.Equal(t, "/opt/tools", d.InstallDir)
		assert.Equal(t, "https://git.corp.example", d.Host)
		assert.True(t, d.Quiet)
	})

	t.Run("rejects malformed toml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("install_dir = ["), 0644))

		_, err := LoadDefaults(path)
		assert.Error(t, err)
	})
}
