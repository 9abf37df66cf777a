// Package web serves the profile card over HTTP.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/profile-card/internal/avatar"
	"github.com/Zachkp/profile-card/internal/locale"
	"github.com/Zachkp/profile-card/internal/profile"
	"github.com/Zachkp/profile-card/internal/visits"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Options wires the collaborators of the HTTP surface. Visits and Admin are
// optional.
type Options struct {
	Content   profile.Content
	Avatars   *avatar.Resolver
	Locale    *locale.Manager
	Logger    *slog.Logger
	StaticDir string
	ImagesDir string
	Visits    *visits.Store
	Tracker   *Tracker
	Admin     *AdminOptions
}

type Server struct {
	content profile.Content
	avatars *avatar.Resolver
	locale  *locale.Manager
	logger  *slog.Logger
}

// NewRouter builds the gin engine with every route mounted.
func NewRouter(opts Options) (*gin.Engine, error) {
	tmpl, err := template.New("").ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		content: opts.Content,
		avatars: opts.Avatars,
		locale:  opts.Locale,
		logger:  opts.Logger,
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(gin.Recovery(), requestID(), requestLogger(opts.Logger))

	if opts.StaticDir != "" {
		r.Static("/static", opts.StaticDir)
	}
	if opts.ImagesDir != "" {
		r.Static("/images", opts.ImagesDir)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/avatar", s.handleAvatar)

	page := r.Group("/")
	if opts.Tracker != nil {
		page.Use(opts.Tracker.Middleware())
	}
	page.GET("/", s.handleHome)
	page.POST("/toggle", s.handleToggle)
	page.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title":    "Privacy Policy",
			"tracking": opts.Tracker != nil,
		})
	})

	if opts.Admin != nil && opts.Visits != nil {
		a, err := newAdmin(*opts.Admin, opts.Visits, opts.Logger)
		if err != nil {
			return nil, err
		}
		a.mount(r)
	}

	return r, nil
}
