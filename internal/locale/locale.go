// Package locale translates the page chrome around the profile card: the
// document title, alt texts and tooltips. Profile content is never looked up
// here; it arrives already written in both languages.
package locale

import (
	"embed"
	"fmt"
	"log/slog"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed messages/*.toml
var messageFS embed.FS

const (
	MsgPageTitle    = "PageTitle"
	MsgAvatarAlt    = "AvatarAlt"
	MsgToggleHint   = "ToggleHint"
	MsgLinksHeading = "LinksHeading"
)

type Manager struct {
	bundle *i18n.Bundle
	logger *slog.Logger
}

// NewManager loads messages.<lang>.toml for every tag.
func NewManager(logger *slog.Logger, tags ...language.Tag) (*Manager, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, tag := range tags {
		path := fmt.Sprintf("messages/messages.%s.toml", tag)
		if _, err := bundle.LoadMessageFileFS(messageFS, path); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	return &Manager{bundle: bundle, logger: logger}, nil
}

// Translate returns messageID in tag, falling back to English and finally to
// the id itself.
func (m *Manager) Translate(tag language.Tag, messageID string) string {
	return m.TranslateWithMap(tag, messageID, nil)
}

func (m *Manager) TranslateWithMap(tag language.Tag, messageID string, data map[string]any) string {
	localizer := i18n.NewLocalizer(m.bundle, tag.String(), language.English.String())

	out, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:      messageID,
		DefaultMessage: &i18n.Message{ID: messageID, Other: messageID},
		TemplateData:   data,
	})
	if err != nil {
		m.logger.Warn("translation failed", "message_id", messageID, "lang", tag.String(), "error", err)
	}

	return out
}
