package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/profile-card/internal/avatar"
	"github.com/Zachkp/profile-card/internal/locale"
	"github.com/Zachkp/profile-card/internal/profile"
)

const ctxKeyLang = "lang"

// avatarSizes are the only box sizes /avatar renders: the card's size at 1x and 2x.
var avatarSizes = map[int]bool{
	profile.AvatarSize:     true,
	2 * profile.AvatarSize: true,
}

// Page is what index.html and card.html render.
type Page struct {
	Title        string
	ToggleHint   string
	LinksHeading string
	View         profile.View
}

func (s *Server) page(toggle *profile.Toggle) Page {
	tag := toggle.Language().Tag()
	avatarSrc := s.avatars.URL(s.content.ImageURL, profile.AvatarSize)
	avatarAlt := s.locale.Translate(tag, locale.MsgAvatarAlt)

	return Page{
		Title: s.locale.TranslateWithMap(tag, locale.MsgPageTitle, map[string]any{
			"Name":     s.content.Name,
			"JobTitle": s.content.JobTitle,
		}),
		ToggleHint: s.locale.TranslateWithMap(tag, locale.MsgToggleHint, map[string]any{
			"Language": toggle.ToggleLabel().Name,
		}),
		LinksHeading: s.locale.Translate(tag, locale.MsgLinksHeading),
		View:         profile.NewView(s.content, toggle, avatarSrc, avatarAlt),
	}
}

// handleHome is a fresh mount: always English.
func (s *Server) handleHome(c *gin.Context) {
	toggle := profile.NewToggle(s.content)
	c.Set(ctxKeyLang, toggle.Language().Code())

	c.HTML(http.StatusOK, "index.html", s.page(toggle))
}

// handleToggle replays the language the client is showing, flips it once and
// renders the result.
func (s *Server) handleToggle(c *gin.Context) {
	toggle := profile.NewToggle(s.content)

	if current := strings.TrimSpace(c.PostForm("lang")); current != "" {
		lang, err := profile.ParseLanguage(current)
		if err != nil {
			c.String(http.StatusBadRequest, "unknown language %q", current)
			return
		}
		toggle = profile.Restore(s.content, lang)
	}

	toggle.Flip()
	c.Set(ctxKeyLang, toggle.Language().Code())

	if c.GetHeader("HX-Request") == "true" {
		c.HTML(http.StatusOK, "card.html", s.page(toggle))
		return
	}

	c.HTML(http.StatusOK, "index.html", s.page(toggle))
}

func (s *Server) handleAvatar(c *gin.Context) {
	size, err := strconv.Atoi(c.DefaultQuery("s", strconv.Itoa(profile.AvatarSize)))
	if err != nil || !avatarSizes[size] {
		c.String(http.StatusBadRequest, "invalid size")
		return
	}

	img, err := s.avatars.Render(c.Query("src"), size)
	switch {
	case err == nil:
	case errors.Is(err, avatar.ErrNotFound):
		c.Status(http.StatusNotFound)
		return
	case errors.Is(err, avatar.ErrInvalidSize), errors.Is(err, avatar.ErrInvalidReference):
		c.String(http.StatusBadRequest, "%s", err.Error())
		return
	default:
		s.logger.Error("avatar render failed", "src", c.Query("src"), "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, img.ContentType, img.Data)
}
