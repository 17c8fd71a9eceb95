package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "review.md")
	review := "# Review\n\nLooks fine.\n"

	require.NoError(t, WriteFile(path, review))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, review, string(data))
}

func TestWriteFile_BadPath(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "review.md"), "text")
	assert.Error(t, err)
}

func TestRender_KeepsContent(t *testing.T) {
	out := Render("# Summary\n\nNo issues found.\n")
	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "No issues found")
}

func TestHeader(t *testing.T) {
	h := Header("commit:abc123", "model-A", true)
	assert.Contains(t, h, "commit:abc123")
	assert.Contains(t, h, "model-A")
	assert.Contains(t, h, "cached")
}
