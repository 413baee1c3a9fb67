package savedwords

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func seededStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(NewMemoryBackend())
	savedAt := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	for _, entry := range []Entry{
		{Original: "hello", Translated: "xin chào", SourceLanguage: "en", TargetLanguage: "vi", SavedAt: savedAt},
		{Original: "a | b", Translated: "x", TargetLanguage: "vi", SavedAt: savedAt},
	} {
		_, err := store.Save(context.Background(), entry)
		require.NoError(t, err)
	}
	return store
}

func TestStore_Export(t *testing.T) {
	store := seededStore(t)

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, store.Export(context.Background(), &buf, FormatYAML))

		var decoded []Entry
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		require.Len(t, decoded, 2)
		assert.Equal(t, "hello", decoded[0].Original)
		assert.Equal(t, "xin chào", decoded[0].Translated)
		assert.Contains(t, buf.String(), "source_language: en")
	})

	t.Run("markdown", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, store.Export(context.Background(), &buf, FormatMarkdown))
		assert.Equal(t, "# Saved words\n\n"+
			"| Original | Translation | Languages | Saved at |\n"+
			"|---|---|---|---|\n"+
			"| hello | xin chào | en → VI | 2025-01-02T03:04:05.000Z |\n"+
			"| a \\| b | x | Auto → VI | 2025-01-02T03:04:05.000Z |\n",
			buf.String())
	})

	t.Run("pdf needs a path", func(t *testing.T) {
		assert.Error(t, store.Export(context.Background(), &bytes.Buffer{}, FormatPDF))
	})

	t.Run("pdf", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "saved.pdf")
		require.NoError(t, store.ExportPDF(context.Background(), path))
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	})
}

func TestMarkdown_Empty(t *testing.T) {
	assert.Equal(t, "# Saved words\n\nNo saved words yet.\n", Markdown(nil))
}

func TestFormat_Set(t *testing.T) {
	var f Format
	require.NoError(t, f.Set("yaml"))
	assert.Equal(t, FormatYAML, f)
	assert.Error(t, f.Set("csv"))
	assert.Equal(t, "Format", f.Type())
}

func TestLanguagePair(t *testing.T) {
	assert.Equal(t, "en → VI", LanguagePair("en", "vi"))
	assert.Equal(t, "Auto → VI", LanguagePair("", "vi"))
}
