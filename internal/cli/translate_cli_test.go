package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_cli "github.com/at-ishikawa/smarttranslator/internal/mocks/cli"
	mock_translation "github.com/at-ishikawa/smarttranslator/internal/mocks/translation"
	"github.com/at-ishikawa/smarttranslator/internal/popup"
	"github.com/at-ishikawa/smarttranslator/internal/relay"
	"github.com/at-ishikawa/smarttranslator/internal/savedwords"
	"github.com/at-ishikawa/smarttranslator/internal/translation"
)

const helloBody = `{"isSuccessful":true,"data":{"originalText":"hello","translatedText":"xin chào","sourceLanguage":"en","targetLanguage":"vi"}}`

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

func TestTranslateCLI_Session(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		autoSave  bool
		setupMock func(m *mock_translation.MockTranslator)

		wantErr    error
		wantOutput []string
		wantSaved  int
	}{
		{
			name:  "translate and save",
			input: "hello\ny\n",
			setupMock: func(m *mock_translation.MockTranslator) {
				m.EXPECT().
					Translate(gomock.Any(), translation.Request{Text: "hello", TargetLanguage: "vi"}).
					Return(json.RawMessage(helloBody), nil).
					Times(1)
			},
			wantOutput: []string{"xin chào  (en → VI)", "Save? [y/N]: ", popup.MessageWordSaved},
			wantSaved:  1,
		},
		{
			name:  "translate without saving",
			input: "  hello  \nn\n",
			setupMock: func(m *mock_translation.MockTranslator) {
				m.EXPECT().Translate(gomock.Any(), gomock.Any()).Return(json.RawMessage(helloBody), nil).Times(1)
			},
			wantOutput: []string{"xin chào"},
		},
		{
			name:     "auto save",
			input:    "hello\n",
			autoSave: true,
			setupMock: func(m *mock_translation.MockTranslator) {
				m.EXPECT().Translate(gomock.Any(), gomock.Any()).Return(json.RawMessage(helloBody), nil).Times(1)
			},
			wantOutput: []string{popup.MessageWordSaved},
			wantSaved:  1,
		},
		{
			name:       "blank line",
			input:      "   \n",
			setupMock:  func(m *mock_translation.MockTranslator) {},
			wantOutput: []string{"Text: "},
		},
		{
			name:       "too long",
			input:      strings.Repeat("a", popup.MaxSelectionLength) + "\n",
			setupMock:  func(m *mock_translation.MockTranslator) {},
			wantOutput: []string{"Text must be shorter than 500 characters"},
		},
		{
			name:  "api error",
			input: "hello\n",
			setupMock: func(m *mock_translation.MockTranslator) {
				m.EXPECT().Translate(gomock.Any(), gomock.Any()).Return(nil, errors.New("HTTP error! status: 500")).Times(1)
			},
			wantOutput: []string{popup.MessageConnectionFailed},
		},
		{
			name:  "unsuccessful translation",
			input: "hello\n",
			setupMock: func(m *mock_translation.MockTranslator) {
				m.EXPECT().Translate(gomock.Any(), gomock.Any()).Return(json.RawMessage(`{"isSuccessful":false}`), nil).Times(1)
			},
			wantOutput: []string{popup.MessageTranslationFailed},
		},
		{
			name:      "quit",
			input:     ":q\n",
			setupMock: func(m *mock_translation.MockTranslator) {},
			wantErr:   errEnd,
		},
		{
			name:      "end of input",
			input:     "",
			setupMock: func(m *mock_translation.MockTranslator) {},
			wantErr:   errEnd,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			translator := mock_translation.NewMockTranslator(ctrl)
			tc.setupMock(translator)

			ctx := context.Background()
			store := savedwords.NewStore(savedwords.NewMemoryBackend())
			var stdout bytes.Buffer
			cli := NewTranslateCLI(strings.NewReader(tc.input), &stdout, relay.New(translator, "vi", ""), store, "vi", "", tc.autoSave)

			err := cli.Session(ctx)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			for _, want := range tc.wantOutput {
				assert.Contains(t, stdout.String(), want)
			}
			count, err := store.Count(ctx)
			require.NoError(t, err)
			assert.Equal(t, tc.wantSaved, count)
		})
	}
}

func TestTranslateCLI_SaveResult(t *testing.T) {
	ctx := context.Background()
	store := savedwords.NewStore(savedwords.NewMemoryBackend())
	var stdout bytes.Buffer
	cli := NewTranslateCLI(strings.NewReader(""), &stdout, nil, store, "vi", "", false)
	result := translation.Result{OriginalText: "hello", TranslatedText: "xin chào", SourceLanguage: "en", TargetLanguage: "vi"}

	require.NoError(t, cli.SaveResult(ctx, result))
	require.NoError(t, cli.SaveResult(ctx, result))
	assert.Equal(t, popup.MessageWordSaved+"\n"+popup.MessageWordAlreadySaved+"\n", stdout.String())

	noStore := NewTranslateCLI(strings.NewReader(""), &stdout, nil, nil, "vi", "", false)
	assert.NoError(t, noStore.SaveResult(ctx, result))
}

func TestInteractiveCLI_Run(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(m *mock_cli.MockSession)
		wantErr   bool
	}{
		{
			name: "ends normally",
			setupMock: func(m *mock_cli.MockSession) {
				gomock.InOrder(
					m.EXPECT().Session(gomock.Any()).Return(nil).Times(2),
					m.EXPECT().Session(gomock.Any()).Return(errEnd).Times(1),
				)
			},
		},
		{
			name: "session fails",
			setupMock: func(m *mock_cli.MockSession) {
				m.EXPECT().Session(gomock.Any()).Return(errors.New("broken stdin")).Times(1)
			},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			session := mock_cli.NewMockSession(ctrl)
			tc.setupMock(session)

			cli := newInteractiveCLI(strings.NewReader(""), &bytes.Buffer{})
			err := cli.Run(context.Background(), session)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
