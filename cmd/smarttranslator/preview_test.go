package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/smarttranslator/internal/popup"
	"github.com/at-ishikawa/smarttranslator/internal/testutil"
)

func TestPreviewCommand(t *testing.T) {
	api := newTranslationAPI(t)

	tests := []struct {
		name string
		args []string

		wantContains    []string
		wantNotContains []string
	}{
		{
			name:         "translation",
			args:         []string{"preview", "hello"},
			wantContains: []string{`class="smart-translator-popup show"`, "xin chào", "en → VI", `data-arrow="down"`},
		},
		{
			name:         "save then list",
			args:         []string{"preview", "hello", "--click", "save,view-saved"},
			wantContains: []string{"saved-words-list", "xin chào"},
		},
		{
			name:         "near the top",
			args:         []string{"preview", "hello", "--top", "5"},
			wantContains: []string{`data-arrow="up"`},
		},
		{
			name:            "closed",
			args:            []string{"preview", "hello", "--click", "close"},
			wantNotContains: []string{"smart-translator-popup"},
		},
		{
			name:            "too long selection",
			args:            []string{"preview", strings.Repeat("a", popup.MaxSelectionLength)},
			wantNotContains: []string{"smart-translator-popup"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfgPath := testutil.SetupTestConfigWithAPI(t, t.TempDir(), api.URL+"/api")

			output, err := execute(t, "", append([]string{"--config", cfgPath}, tc.args...)...)
			require.NoError(t, err)
			for _, want := range tc.wantContains {
				assert.Contains(t, output, want)
			}
			for _, unwanted := range tc.wantNotContains {
				assert.NotContains(t, output, unwanted)
			}
		})
	}
}
