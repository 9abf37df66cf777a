package web

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/profile-card/internal/visits"
)

const adminCookie = "admin_token"

type AdminOptions struct {
	Username     string
	Password     string
	SecureCookie bool
}

type admin struct {
	opts   AdminOptions
	token  string
	store  *visits.Store
	logger *slog.Logger
}

func newAdmin(opts AdminOptions, store *visits.Store, logger *slog.Logger) (*admin, error) {
	if opts.Username == "" || opts.Password == "" {
		return nil, errors.New("admin credentials not configured")
	}

	return &admin{opts: opts, token: randomToken(), store: store, logger: logger}, nil
}

func (a *admin) authorized(c *gin.Context) bool {
	token, err := c.Cookie(adminCookie)
	return err == nil && subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) == 1
}

func (a *admin) requireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.authorized(c) {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (a *admin) mount(r *gin.Engine) {
	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{"title": "Admin Login"})
	})
	r.POST("/admin/login", a.login)
	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", a.opts.SecureCookie, true)
		c.Redirect(http.StatusFound, "/admin/login")
	})

	group := r.Group("/admin")
	group.Use(a.requireLogin())

	group.GET("/dashboard", a.dashboard)
	group.GET("/api/stats", a.stats)
	group.POST("/privacy/cleanup", a.cleanup)
}

func (a *admin) login(c *gin.Context) {
	userOK := subtle.ConstantTimeCompare([]byte(c.PostForm("username")), []byte(a.opts.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(c.PostForm("password")), []byte(a.opts.Password)) == 1

	if !userOK || !passOK {
		a.logger.Warn("failed admin login", "ip", visits.HashIP(c.ClientIP(), a.token))
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
			"title": "Admin Login",
			"error": "Invalid credentials",
		})
		return
	}

	c.SetCookie(adminCookie, a.token, 3600*24, "/admin", "", a.opts.SecureCookie, true)
	a.logger.Info("admin login", "ip", visits.HashIP(c.ClientIP(), a.token))
	c.Redirect(http.StatusFound, "/admin/dashboard")
}

func (a *admin) dashboard(c *gin.Context) {
	stats, err := a.store.Stats(c.Request.Context())
	if err != nil {
		a.logger.Error("error loading admin stats", "error", err)
		c.HTML(http.StatusInternalServerError, "admin-dashboard.html", gin.H{
			"title": "Dashboard",
			"error": "Failed to load statistics",
		})
		return
	}

	c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
		"title": "Dashboard",
		"stats": stats,
	})
}

func (a *admin) stats(c *gin.Context) {
	stats, err := a.store.Stats(c.Request.Context())
	if err != nil {
		a.logger.Error("error loading admin stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load statistics"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (a *admin) cleanup(c *gin.Context) {
	removed, err := a.store.Cleanup(c.Request.Context(), visits.Retention)
	if err != nil {
		a.logger.Error("privacy cleanup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cleanup failed"})
		return
	}

	a.logger.Info("privacy cleanup", "removed", removed)
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}
