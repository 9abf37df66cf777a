package web

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Zachkp/profile-card/internal/visits"
)

const headerRequestID = "X-Request-ID"

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(headerRequestID, id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"request_id", c.GetString(headerRequestID),
		)
	}
}

// Recorder is the part of the visits store the tracker writes to.
type Recorder interface {
	Record(ctx context.Context, v visits.Visit) error
}

// Tracker records page views in the background. IPs are hashed with a salt
// that lives only as long as the process.
type Tracker struct {
	store  Recorder
	logger *slog.Logger
	salt   string
	wg     sync.WaitGroup
}

func NewTracker(store Recorder, logger *slog.Logger) *Tracker {
	return &Tracker{store: store, logger: logger, salt: randomToken()}
}

// Middleware records the page view after the handler ran, so the stored
// language is the one actually rendered. Do Not Track is honored.
func (t *Tracker) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.GetHeader("DNT") == "1" || c.Writer.Status() >= 400 || skipTracking(c.Request.URL.Path) {
			return
		}

		visit := visits.Visit{
			HashedIP:  visits.HashIP(c.ClientIP(), t.salt),
			UserAgent: c.GetHeader("User-Agent"),
			Path:      c.Request.URL.Path,
			Lang:      c.GetString(ctxKeyLang),
			Timestamp: time.Now(),
		}

		t.wg.Add(1)
		go func() {
			defer t.wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := t.store.Record(ctx, visit); err != nil {
				t.logger.Error("error recording visitor", "error", err)
			}
		}()
	}
}

// Wait blocks until pending recordings are written.
func (t *Tracker) Wait() {
	t.wg.Wait()
}

func skipTracking(path string) bool {
	for _, prefix := range []string{"/static/", "/images/", "/avatar", "/admin/", "/favicon", "/privacy", "/healthz"} {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func randomToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand failed: " + err.Error())
	}
	return hex.EncodeToString(b)
}
