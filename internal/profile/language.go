package profile

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Language is the display language of the profile card.
// The zero value is English.
type Language int

const (
	English Language = iota
	German
)

var ErrUnknownLanguage = errors.New("unknown language")

var (
	languageTags  = map[Language]language.Tag{English: language.English, German: language.German}
	languageFlags = map[Language]string{
		English: "\U0001F1EC\U0001F1E7", // United Kingdom
		German:  "\U0001F1E9\U0001F1EA",
	}
)

// ParseLanguage accepts "en" or "de", with or without a region subtag.
func ParseLanguage(code string) (Language, error) {
	code = strings.TrimSpace(code)
	tag, err := language.Parse(code)
	if err != nil {
		return English, fmt.Errorf("%w: %q", ErrUnknownLanguage, code)
	}

	base, _ := tag.Base()
	switch base.String() {
	case "en":
		return English, nil
	case "de":
		return German, nil
	}

	return English, fmt.Errorf("%w: %q", ErrUnknownLanguage, code)
}

// Other returns the language the toggle switches to.
func (l Language) Other() Language {
	if l == German {
		return English
	}
	return German
}

func (l Language) Tag() language.Tag {
	if tag, ok := languageTags[l]; ok {
		return tag
	}
	return language.English
}

func (l Language) Code() string {
	base, _ := l.Tag().Base()
	return base.String()
}

// Name is the language's own name for itself, e.g. "Deutsch".
func (l Language) Name() string {
	name := display.Self.Name(l.Tag())
	if name == "" {
		return l.Code()
	}
	// display returns lower-case endonyms for some languages.
	return strings.ToUpper(name[:1]) + name[1:]
}

func (l Language) Flag() string {
	return languageFlags[l]
}

func (l Language) String() string {
	return l.Code()
}

// Supported lists the tags the page is rendered in, English first.
func Supported() []language.Tag {
	return []language.Tag{language.English, language.German}
}
