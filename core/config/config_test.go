package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, filepath.Join("data", "images"), cfg.InputDir)
	assert.Equal(t, filepath.Join("data", "output"), cfg.OutputDir)
	assert.Equal(t, ".txt", cfg.ReportSuffix)
	assert.Equal(t, OnErrorAbort, cfg.XMP.OnError)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "imgmeta.toml")
	data := `
input_dir = "/photos/in"
output_dir = "/photos/reports"

[xmp]
on_error = "Skip"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/photos/in", cfg.InputDir)
	assert.Equal(t, "/photos/reports", cfg.OutputDir)
	assert.Equal(t, ".txt", cfg.ReportSuffix)
	assert.Equal(t, OnErrorSkip, cfg.XMP.OnError)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadRejectsBadPolicy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "imgmeta.toml")
	require.NoError(t, os.WriteFile(path, []byte("[xmp]\non_error = \"retry\"\n"), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "xmp.on_error")
}

func TestLoadRejectsBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "imgmeta.toml")
	require.NoError(t, os.WriteFile(path, []byte("input_dir = "), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	if d := cmp.Diff(Default(), cfg); d != "" {
		t.Errorf("config mismatch (-want +got):\n%s", d)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.OutputDir = "reports"

	var buf bytes.Buffer
	require.NoError(t, cfg.Encode(&buf))

	var back Config
	_, err := toml.Decode(buf.String(), &back)
	require.NoError(t, err)
	if d := cmp.Diff(cfg, &back); d != "" {
		t.Errorf("config mismatch (-want +got):\n%s", d)
	}
}

func TestEnsureDirs(t *testing.T) {
	root := t.TempDir()
	cfg := Default()
	cfg.DataDir = filepath.Join(root, "data")
	cfg.InputDir = filepath.Join(root, "data", "images")
	cfg.OutputDir = filepath.Join(root, "data", "output")

	require.NoError(t, cfg.EnsureDirs())
	for _, dir := range []string{cfg.DataDir, cfg.InputDir, cfg.OutputDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}
