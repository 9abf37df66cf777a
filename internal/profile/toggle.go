package profile

// Label describes the language the toggle button switches to.
type Label struct {
	Name string
	Flag string
	Code string
}

// Toggle holds the display language of one rendered card. A fresh Toggle
// always starts in English; nothing is remembered between page loads.
type Toggle struct {
	content Content
	lang    Language
}

func NewToggle(content Content) *Toggle {
	return &Toggle{content: content, lang: English}
}

// Restore rebuilds a Toggle in the state the client reported.
func Restore(content Content, lang Language) *Toggle {
	return &Toggle{content: content, lang: lang}
}

// Flip switches to the other language. Two flips cancel out.
func (t *Toggle) Flip() {
	t.lang = t.lang.Other()
}

func (t *Toggle) Language() Language {
	return t.lang
}

func (t *Toggle) ActiveDescription() string {
	return t.content.Description(t.lang)
}

// ToggleLabel names the inactive language, never the active one.
func (t *Toggle) ToggleLabel() Label {
	next := t.lang.Other()
	return Label{Name: next.Name(), Flag: next.Flag(), Code: next.Code()}
}
