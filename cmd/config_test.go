package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: json\nexclude:\n  - vendor/\n"), 0644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, []string{"vendor/"}, cfg.Exclude)
}

func TestLoadConfigExplicitMissingFileFails(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigDefaultMissingFileIsEmpty(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer os.Chdir(wd)

	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestLoadConfigBadYAMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: [unclosed"), 0644))

	_, err := loadConfig(path)
	assert.Error(t, err)
}

func TestExcluded(t *testing.T) {
	cfg := &Config{Exclude: []string{"vendor/", "third_party"}}

	assert.True(t, cfg.excluded("vendor/lib.h"))
	assert.True(t, cfg.excluded("src/third_party/x.h"))
	assert.False(t, cfg.excluded("src/app.h"))
	assert.False(t, (&Config{}).excluded("anything.h"))
}
