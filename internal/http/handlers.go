package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/glancery/glancery/internal/domain"
	"github.com/glancery/glancery/internal/events"
	"github.com/glancery/glancery/internal/log"
	"github.com/glancery/glancery/internal/queue"
	"github.com/glancery/glancery/internal/repo"
	"github.com/glancery/glancery/internal/state"
	"github.com/glancery/glancery/internal/storage"
)

type Handler struct {
	Store    repo.Store
	Sessions repo.SessionStore
	State    *state.Store
	Stats    events.Emitter
	Events   queue.Publisher
	Images   *storage.Images

	Exchange      string
	MagicSecret   string
	PublicBaseURL string
	OTPTTL        time.Duration
	ResendWindow  time.Duration
	SessionTTL    time.Duration
	Dev           bool
}

func NewHandler(store repo.Store, sessions repo.SessionStore, st *state.Store,
	stats events.Emitter, pub queue.Publisher, images *storage.Images) *Handler {
	return &Handler{
		Store:    store,
		Sessions: sessions,
		State:    st,
		Stats:    stats,
		Events:   pub,
		Images:   images,

		Exchange:      "glancery.events",
		MagicSecret:   "dev-secret",
		PublicBaseURL: "http://localhost:8080",
		OTPTTL:        10 * time.Minute,
		ResendWindow:  time.Minute,
		SessionTTL:    30 * 24 * time.Hour,
	}
}

// fail writes the error body the web client reads: a single "message" field.
func fail(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{"message": msg})
}

// sessionFor resolves an icode to the signed-in creator, checking the
// in-process session state first and falling back to the session store.
// A hit from the store is re-cached so later requests skip the round trip.
func (h *Handler) sessionFor(c *gin.Context, icode string) (*domain.User, bool) {
	if icode == "" {
		fail(c, http.StatusUnauthorized, "missing icode")
		return nil, false
	}
	ctx := c.Request.Context()

	if sess, ok := h.State.Get(icode); ok {
		u, err := h.Store.FindUserByEmail(ctx, sess.Email)
		if err == nil {
			return u, true
		}
	}

	uid, err := h.Sessions.FindSession(ctx, icode)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			fail(c, http.StatusUnauthorized, "invalid or expired session")
			return nil, false
		}
		log.L.Error("session lookup failed", zap.Error(err))
		fail(c, http.StatusInternalServerError, "session lookup failed")
		return nil, false
	}
	u, err := h.Store.FindUserByID(ctx, uid)
	if err != nil {
		fail(c, http.StatusUnauthorized, "invalid or expired session")
		return nil, false
	}
	h.State.Dispatch(state.SessionVerified, state.Session{
		ICode:       icode,
		Email:       u.Email,
		Username:    u.Username,
		Publication: u.Publication,
		Exist:       true,
	})
	return u, true
}

// Healthz godoc
// @Summary Liveness probe
// @Tags ops
// @Produce json
// @Success 200 {object} map[string]string
// @Router /healthz [get]
func (h *Handler) Healthz(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.Store.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "mongo": err.Error()})
		return
	}
	if err := h.Sessions.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "redis": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
