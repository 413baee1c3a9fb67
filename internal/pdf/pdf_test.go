package pdf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMarkdown(t *testing.T) {
	pdfPath := filepath.Join(t.TempDir(), "exports", "saved.pdf")
	content := []byte("# Saved words\n\n| Original | Translation |\n|---|---|\n| hello | xin chao |\n")

	require.NoError(t, RenderMarkdown(content, pdfPath))

	info, err := os.Stat(pdfPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
