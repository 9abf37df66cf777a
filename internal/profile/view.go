package profile

// AvatarSize is the edge length, in CSS pixels, of the square avatar box.
const AvatarSize = 128

type Avatar struct {
	Src     string
	Alt     string
	Size    int
	Rounded bool
}

type Header struct {
	Prefix   string
	Name     string
	JobTitle string
}

type ToggleButton struct {
	Current string
	Label
}

// View is the layout of one card, with every slot already resolved.
type View struct {
	Lang        string
	Avatar      Avatar
	Header      Header
	Description string
	Links       []Link
	Toggle      ToggleButton
}

// NewView maps content and the toggle's current state into layout slots.
// avatarSrc is whatever the image resolver produced for content.ImageURL.
func NewView(content Content, toggle *Toggle, avatarSrc, avatarAlt string) View {
	return View{
		Lang: toggle.Language().Code(),
		Avatar: Avatar{
			Src:     avatarSrc,
			Alt:     avatarAlt,
			Size:    AvatarSize,
			Rounded: true,
		},
		Header: Header{
			Prefix:   "//",
			Name:     content.Name,
			JobTitle: content.JobTitle,
		},
		Description: toggle.ActiveDescription(),
		Links:       content.Links(),
		Toggle: ToggleButton{
			Current: toggle.Language().Code(),
			Label:   toggle.ToggleLabel(),
		},
	}
}
