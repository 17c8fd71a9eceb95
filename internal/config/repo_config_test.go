package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRepoConfig_Missing(t *testing.T) {
	cfg, err := LoadRepoConfig(t.TempDir())

	assert.ErrorIs(t, err, ErrConfigNotFound)
	require.NotNil(t, cfg)
	assert.Empty(t, cfg.Exclude)
	assert.Empty(t, cfg.Template)
}

func TestLoadRepoConfig_Valid(t *testing.T) {
	dir := t.TempDir()
	content := `
template: security
exclude:
  - "vendor/*"
  - "*.lock"
focus:
  - auth
ignore:
  - style
custom_instructions:
  - "Flag uses of math/rand for tokens."
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".diffwarden.yml"), []byte(content), 0o644))

	cfg, err := LoadRepoConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "security", cfg.Template)
	assert.Equal(t, []string{"vendor/*", "*.lock"}, cfg.Exclude)
	assert.Equal(t, []string{"auth"}, cfg.Focus)
	assert.Equal(t, []string{"style"}, cfg.Ignore)
	assert.Len(t, cfg.CustomInstructions, 1)
}

func TestLoadRepoConfig_Malformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".diffwarden.yml"), []byte("exclude: {not: [valid"), 0o644))

	_, err := LoadRepoConfig(dir)
	assert.ErrorIs(t, err, ErrConfigParsing)
}
