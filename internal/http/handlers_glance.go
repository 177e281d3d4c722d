package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/glancery/glancery/internal/browser"
	"github.com/glancery/glancery/internal/domain"
	"github.com/glancery/glancery/internal/events"
	"github.com/glancery/glancery/internal/gate"
	"github.com/glancery/glancery/internal/helper"
	"github.com/glancery/glancery/internal/log"
	"github.com/glancery/glancery/internal/queue"
	"github.com/glancery/glancery/internal/repo"
	"github.com/glancery/glancery/internal/security"
)

// contentForm is the multipart body shared by glance create/update and the
// draft endpoints: icode plus the editable fields, with q1..q3 as JSON.
type contentForm struct {
	ICode    string
	Headline string
	Snippet  string
	CTA      string
	Link     string
	Image    string // stored filename; empty when nothing was uploaded
	Q1       *domain.FAQ
	Q2       *domain.FAQ
	Q3       *domain.FAQ
}

// parseFAQ accepts both field spellings the editors have sent over time:
// {text, a, ishot} and {question, answer, isHot}.
func parseFAQ(raw string) *domain.FAQ {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var in struct {
		Text     string `json:"text"`
		Question string `json:"question"`
		A        string `json:"a"`
		Answer   string `json:"answer"`
		IsHot    *bool  `json:"ishot"`
		IsHotAlt *bool  `json:"isHot"`
	}
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		return nil
	}
	f := &domain.FAQ{Text: in.Text, A: in.A}
	if f.Text == "" {
		f.Text = in.Question
	}
	if f.A == "" {
		f.A = in.Answer
	}
	switch {
	case in.IsHot != nil:
		f.IsHot = *in.IsHot
	case in.IsHotAlt != nil:
		f.IsHot = *in.IsHotAlt
	}
	if strings.TrimSpace(f.Text) == "" && strings.TrimSpace(f.A) == "" {
		return nil
	}
	return f
}

func (h *Handler) parseContentForm(c *gin.Context) (*contentForm, error) {
	f := &contentForm{
		ICode:    c.PostForm("icode"),
		Headline: strings.TrimSpace(c.PostForm("headline")),
		Snippet:  strings.TrimSpace(c.PostForm("snippet")),
		CTA:      strings.TrimSpace(c.PostForm("cta")),
		Link:     strings.TrimSpace(c.PostForm("link")),
		Q1:       parseFAQ(c.PostForm("q1")),
		Q2:       parseFAQ(c.PostForm("q2")),
		Q3:       parseFAQ(c.PostForm("q3")),
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return f, nil // no upload
	}
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	name, err := h.Images.Save(src, fh.Filename)
	if err != nil {
		return nil, err
	}
	f.Image = name
	return f, nil
}

// CreateGlance godoc
// @Summary Publish a new glance
// @Tags glance
// @Accept multipart/form-data
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/v1/glance/create [post]
func (h *Handler) CreateGlance(c *gin.Context) {
	f, err := h.parseContentForm(c)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid upload")
		return
	}
	u, ok := h.sessionFor(c, f.ICode)
	if !ok {
		return
	}
	if f.Headline == "" {
		fail(c, http.StatusBadRequest, "Headline is required")
		return
	}

	g := &domain.Glance{
		GCode:    security.NewShortCode(),
		OwnerID:  u.ID,
		Headline: f.Headline,
		Snippet:  f.Snippet,
		Image:    f.Image,
		CTA:      f.CTA,
		Link:     f.Link,
		Q1:       f.Q1,
		Q2:       f.Q2,
		Q3:       f.Q3,
	}
	if err := h.Store.CreateGlance(c.Request.Context(), g); err != nil {
		log.WithDD(c.Request.Context(), log.L).Error("create glance failed", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to create glance")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Glance created", "glance": g})
}

// UpdateGlance godoc
// @Summary Update an existing glance
// @Tags glance
// @Accept multipart/form-data
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /api/v1/glance/update [post]
func (h *Handler) UpdateGlance(c *gin.Context) {
	f, err := h.parseContentForm(c)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid upload")
		return
	}
	gcode := c.PostForm("gcode")
	if gcode == "" {
		fail(c, http.StatusBadRequest, "Missing gcode")
		return
	}
	u, ok := h.sessionFor(c, f.ICode)
	if !ok {
		return
	}

	g := &domain.Glance{
		GCode:    gcode,
		Headline: f.Headline,
		Snippet:  f.Snippet,
		Image:    f.Image,
		CTA:      f.CTA,
		Link:     f.Link,
		Q1:       f.Q1,
		Q2:       f.Q2,
		Q3:       f.Q3,
	}
	if err := h.Store.UpdateGlance(c.Request.Context(), u.ID, g); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			fail(c, http.StatusNotFound, "Glance not found")
			return
		}
		fail(c, http.StatusInternalServerError, "Failed to update glance")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Glance updated"})
}

type glanceRef struct {
	ICode string `json:"icode"`
	GCode string `json:"gcode"`
}

// DeleteGlance godoc
// @Summary Delete a glance
// @Tags glance
// @Accept json
// @Produce json
// @Param payload body glanceRef true "icode and gcode"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/glance/delete [post]
func (h *Handler) DeleteGlance(c *gin.Context) {
	var in glanceRef
	if err := c.ShouldBindJSON(&in); err != nil || in.GCode == "" {
		fail(c, http.StatusBadRequest, "Missing gcode")
		return
	}
	u, ok := h.sessionFor(c, in.ICode)
	if !ok {
		return
	}
	if err := h.Store.DeleteGlance(c.Request.Context(), u.ID, in.GCode); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			fail(c, http.StatusNotFound, "Glance not found")
			return
		}
		fail(c, http.StatusInternalServerError, "Failed to delete glance")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Glance deleted"})
}

type listReq struct {
	ICode string `json:"icode"`
}

// ListGlances godoc
// @Summary List the creator's glances
// @Tags glance
// @Accept json
// @Produce json
// @Param payload body listReq true "icode"
// @Success 200 {object} map[string]any
// @Router /api/v1/glance/list [post]
func (h *Handler) ListGlances(c *gin.Context) {
	var in listReq
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "Missing icode in store")
		return
	}
	u, ok := h.sessionFor(c, in.ICode)
	if !ok {
		return
	}
	glances, err := h.Store.ListGlancesByOwner(c.Request.Context(), u.ID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to fetch glances")
		return
	}
	if glances == nil {
		glances = []domain.Glance{}
	}
	c.JSON(http.StatusOK, gin.H{"glances": glances})
}

type getGlanceReq struct {
	GCode   string `json:"gcode"`
	EmailID string `json:"emailid"`
	QKey    int    `json:"qkey"` // 1-based, from an emailed unlock link
	Wide    bool   `json:"wide"`
}

type faqView struct {
	Text   string `json:"text"`
	A      string `json:"a"`
	IsHot  bool   `json:"ishot"`
	Locked bool   `json:"locked"`
}

// GetGlance godoc
// @Summary Public glance fetch with gating applied
// @Tags glance
// @Accept json
// @Produce json
// @Param payload body getGlanceReq true "gcode"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /api/v1/glance/get [post]
func (h *Handler) GetGlance(c *gin.Context) {
	var in getGlanceReq
	if err := c.ShouldBindJSON(&in); err != nil || in.GCode == "" {
		fail(c, http.StatusBadRequest, "Missing gcode")
		return
	}
	ctx := c.Request.Context()

	var (
		g    *domain.Glance
		gerr error
	)
	WithSpan(ctx, "glance.load", func(ctx context.Context) {
		g, gerr = h.Store.FindGlanceByCode(ctx, in.GCode)
	})
	if gerr != nil {
		if errors.Is(gerr, repo.ErrNotFound) {
			fail(c, http.StatusNotFound, "Glance not found")
			return
		}
		fail(c, http.StatusInternalServerError, "Failed to fetch glance")
		return
	}

	owner, err := h.Store.FindUserByID(ctx, g.OwnerID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to fetch glance")
		return
	}

	jar := browser.NewJar(c.Writer, c.Request)

	// Arrival through an emailed link: remember the reader and register
	// the subscription off the request path.
	emailid := helper.NormalizeEmail(in.EmailID)
	if emailid != "" && helper.ValidEmail(emailid) {
		jar.SetEmail(emailid)
		jar.AddPublisher(owner.Publication)
		ownerID := g.OwnerID
		go func() {
			sctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			if err := h.Store.AddSubscriber(sctx, ownerID, emailid, time.Now().UTC()); err != nil {
				log.L.Debug("subscriber add dropped", zap.String("gcode", in.GCode), zap.Error(err))
			}
		}()
	} else {
		emailid = ""
	}

	faqs := gate.FilterVisible(g.FAQs())

	unlockIdx := -1
	if emailid != "" && in.QKey >= 1 && in.QKey <= len(faqs) {
		unlockIdx = in.QKey - 1
	}
	inputs := gate.Inputs{
		UnlockIndex: unlockIdx,
		KnownEmail:  emailid != "" || jar.Email() != "",
		Following:   gate.IsFollowing(owner.Publication, jar.Publishers()),
	}

	views := make([]faqView, 0, len(faqs))
	allUnlocked := len(faqs) > 0
	for i, f := range faqs {
		v := faqView{Text: f.Text, A: f.A, IsHot: f.IsHot}
		if !gate.Unlocked(inputs, f, i) {
			prefix, rest := gate.SplitAnswer(f.A)
			v.A = prefix
			v.Locked = rest != ""
		}
		if v.Locked {
			allUnlocked = false
		}
		views = append(views, v)
	}

	notice := false
	if allUnlocked && (inputs.KnownEmail || inputs.Following) {
		notice = jar.NoticeShownOnce()
	}

	// one view per successful load, fire-and-forget
	h.Stats.Emit(ctx, events.Stat{GCode: g.GCode, Views: 1})

	c.JSON(http.StatusOK, gin.H{
		"glance": gin.H{
			"gcode":       g.GCode,
			"headline":    g.Headline,
			"snippet":     g.Snippet,
			"image":       g.Image,
			"cta":         g.CTA,
			"link":        g.Link,
			"views":       g.Views,
			"clicks":      g.Clicks,
			"shares":      g.Shares,
			"createdAt":   g.CreatedAt,
			"publication": owner.Publication,
			"username":    owner.Username,
			"faqs":        views,
		},
		"gate": gin.H{
			"unlockedNotice": notice,
			"defaultOpen":    gate.DefaultOpen(unlockIdx, in.Wide, faqs),
		},
	})
}

type statsReq struct {
	GCode   string `json:"gcode"`
	Views   int64  `json:"views"`
	Clicks  int64  `json:"clicks"`
	Shares  int64  `json:"shares"`
	EmailID string `json:"emailid"`
}

// GlanceStats godoc
// @Summary Record engagement counters
// @Tags glance
// @Accept json
// @Produce json
// @Param payload body statsReq true "gcode and deltas"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /api/v1/glance/stats [post]
func (h *Handler) GlanceStats(c *gin.Context) {
	var in statsReq
	if err := c.ShouldBindJSON(&in); err != nil || in.GCode == "" {
		fail(c, http.StatusBadRequest, "gcode is required")
		return
	}
	ctx := c.Request.Context()

	g, err := h.Store.FindGlanceByCode(ctx, in.GCode)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			fail(c, http.StatusNotFound, "Glance not found")
			return
		}
		fail(c, http.StatusInternalServerError, "Failed to record stats")
		return
	}

	h.Stats.Emit(ctx, events.Stat{GCode: in.GCode, Views: in.Views, Clicks: in.Clicks, Shares: in.Shares})

	if email := helper.NormalizeEmail(in.EmailID); email != "" && helper.ValidEmail(email) {
		// counters are best-effort and so is this
		if err := h.Store.AddSubscriber(ctx, g.OwnerID, email, time.Now().UTC()); err != nil {
			log.L.Debug("subscriber add dropped", zap.String("gcode", in.GCode), zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type subscribeReq struct {
	GCode   string `json:"gcode"`
	EmailID string `json:"emailid"`
}

// Subscribe godoc
// @Summary Subscribe a reader to the glance's publication
// @Tags glance
// @Accept json
// @Produce json
// @Param payload body subscribeReq true "gcode and email"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/glance/subscribe [post]
func (h *Handler) Subscribe(c *gin.Context) {
	var in subscribeReq
	if err := c.ShouldBindJSON(&in); err != nil || in.GCode == "" {
		fail(c, http.StatusBadRequest, "gcode is required")
		return
	}
	email := helper.NormalizeEmail(in.EmailID)
	if !helper.ValidEmail(email) {
		fail(c, http.StatusBadRequest, "Please provide a valid email address.")
		return
	}
	ctx := c.Request.Context()

	g, err := h.Store.FindGlanceByCode(ctx, in.GCode)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			fail(c, http.StatusNotFound, "Glance not found")
			return
		}
		fail(c, http.StatusInternalServerError, "Failed to subscribe")
		return
	}
	owner, err := h.Store.FindUserByID(ctx, g.OwnerID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to subscribe")
		return
	}

	if err := h.Store.AddSubscriber(ctx, g.OwnerID, email, time.Now().UTC()); err != nil {
		fail(c, http.StatusInternalServerError, "Failed to subscribe")
		return
	}

	jar := browser.NewJar(c.Writer, c.Request)
	jar.SetEmail(email)
	jar.AddPublisher(owner.Publication)

	go h.Events.Publish(context.Background(), h.Exchange, queue.KeySubscriberJoined,
		queue.SubscriberJoined{Email: email, GCode: g.GCode, Publication: owner.Publication},
		reqID(c))

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Subscribed."})
}

type unlockReq struct {
	EmailID string `json:"emailid"`
	GCode   string `json:"gcode"`
	QKey    int    `json:"qkey"`
	QText   string `json:"qtext"`
}

// Unlock godoc
// @Summary Email the reader an unlock link for one gated answer
// @Tags glance
// @Accept json
// @Produce json
// @Param payload body unlockReq true "email, gcode, 1-based question key"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/glance/unlock [post]
func (h *Handler) Unlock(c *gin.Context) {
	var in unlockReq
	if err := c.ShouldBindJSON(&in); err != nil || in.GCode == "" {
		fail(c, http.StatusBadRequest, "gcode is required")
		return
	}
	email := helper.NormalizeEmail(in.EmailID)
	if !helper.ValidEmail(email) {
		fail(c, http.StatusBadRequest, "Please provide a valid email address.")
		return
	}
	ctx := c.Request.Context()

	g, err := h.Store.FindGlanceByCode(ctx, in.GCode)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			fail(c, http.StatusNotFound, "Glance not found")
			return
		}
		fail(c, http.StatusInternalServerError, "Failed to send unlock email")
		return
	}
	owner, err := h.Store.FindUserByID(ctx, g.OwnerID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to send unlock email")
		return
	}

	// submitting the form does not unlock anything here; the emailed link does
	go h.Events.Publish(context.Background(), h.Exchange, queue.KeyUnlockRequested,
		queue.UnlockRequested{
			Email:       email,
			GCode:       g.GCode,
			QKey:        in.QKey,
			QText:       in.QText,
			Publication: owner.Publication,
		}, reqID(c))

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Unlock email sent."})
}
