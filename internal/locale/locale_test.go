package locale

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	m, err := NewManager(slog.New(slog.NewTextHandler(io.Discard, nil)), language.English, language.German)
	require.NoError(t, err)

	return m
}

func TestTranslate(t *testing.T) {
	m := newTestManager(t)

	assert.Equal(t, "Profile Picture", m.Translate(language.English, MsgAvatarAlt))
	assert.Equal(t, "Profilbild", m.Translate(language.German, MsgAvatarAlt))
}

func TestTranslateWithMap(t *testing.T) {
	m := newTestManager(t)

	got := m.TranslateWithMap(language.German, MsgToggleHint, map[string]any{"Language": "English"})
	assert.Equal(t, "Wechseln zu English", got)

	got = m.TranslateWithMap(language.English, MsgPageTitle, map[string]any{"Name": "Ada", "JobTitle": "Engineer"})
	assert.Equal(t, "Ada | Engineer", got)
}

func TestTranslateUnknownMessageFallsBackToID(t *testing.T) {
	m := newTestManager(t)

	assert.Equal(t, "NoSuchMessage", m.Translate(language.German, "NoSuchMessage"))
}

func TestNewManagerUnknownLanguage(t *testing.T) {
	_, err := NewManager(slog.New(slog.NewTextHandler(io.Discard, nil)), language.French)
	assert.Error(t, err)
}
