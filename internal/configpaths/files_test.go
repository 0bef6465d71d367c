package configpaths

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigDirUsesXDG(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG_CONFIG_HOME is not consulted on windows")
	}
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	dir, err := DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(xdg, "bindoc"), dir)

	p, err := DefaultNamedConfigPath("generate", "yml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(xdg, "bindoc", "generate.yaml"), p)
}

func TestDefaultConfigDirFallsBackToHome(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("HOME is not consulted on windows")
	}
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", home)

	dir, err := DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "bindoc"), dir)
}

func TestConfigCandidatePathsRoutesUserPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"custom.json", "json"},
		{"custom.yml", "yaml"},
		{"custom.yaml", "yaml"},
		{"custom.toml", "toml"},
		{"custom.conf", "json"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			jsonPaths, yamlPaths, tomlPaths := ConfigCandidatePaths(tt.path)
			got := map[string][]string{"json": jsonPaths, "yaml": yamlPaths, "toml": tomlPaths}
			assert.Equal(t, tt.path, got[tt.want][0])
		})
	}
}

func TestConfigCandidatePathsIncludesWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	jsonPaths, yamlPaths, tomlPaths := ConfigCandidatePaths("")
	assert.Contains(t, jsonPaths, filepath.Join(dir, "bindoc.json"))
	assert.Contains(t, yamlPaths, filepath.Join(dir, "generate.yml"))
	assert.Contains(t, tomlPaths, filepath.Join(dir, "generate.toml"))
}

func TestExt(t *testing.T) {
	assert.Equal(t, "json", Ext("json"))
	assert.Equal(t, "yaml", Ext("yml"))
	assert.Equal(t, "toml", Ext("toml"))
	assert.Equal(t, "json", Ext(""))
}
