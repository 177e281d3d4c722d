package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/glancery/glancery/internal/domain"
	"github.com/glancery/glancery/internal/log"
	"github.com/glancery/glancery/internal/repo"
	"github.com/glancery/glancery/internal/security"
)

// CreateDraft godoc
// @Summary Save a glance-in-progress
// @Tags draft
// @Accept multipart/form-data
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]string
// @Router /api/v1/draft/create [post]
func (h *Handler) CreateDraft(c *gin.Context) {
	f, err := h.parseContentForm(c)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid upload")
		return
	}
	u, ok := h.sessionFor(c, f.ICode)
	if !ok {
		return
	}

	d := &domain.Draft{
		DCode:    security.NewShortCode(),
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
	if err := h.Store.CreateDraft(c.Request.Context(), d); err != nil {
		log.L.Error("create draft failed", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to save draft")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Draft saved", "draft": d})
}

// ListDrafts godoc
// @Summary List the creator's drafts
// @Tags draft
// @Accept json
// @Produce json
// @Param payload body listReq true "icode"
// @Success 200 {object} map[string]any
// @Router /api/v1/draft/list [post]
func (h *Handler) ListDrafts(c *gin.Context) {
	var in listReq
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "Missing icode in store")
		return
	}
	u, ok := h.sessionFor(c, in.ICode)
	if !ok {
		return
	}
	drafts, err := h.Store.ListDraftsByOwner(c.Request.Context(), u.ID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to fetch drafts")
		return
	}
	if drafts == nil {
		drafts = []domain.Draft{}
	}
	c.JSON(http.StatusOK, gin.H{"drafts": drafts})
}

type draftRef struct {
	ICode string `json:"icode"`
	DCode string `json:"dcode"`
}

// GetDraft godoc
// @Summary Fetch one draft for editing
// @Tags draft
// @Accept json
// @Produce json
// @Param payload body draftRef true "icode and dcode"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /api/v1/draft/get [post]
func (h *Handler) GetDraft(c *gin.Context) {
	var in draftRef
	if err := c.ShouldBindJSON(&in); err != nil || in.DCode == "" {
		fail(c, http.StatusBadRequest, "Missing dcode")
		return
	}
	u, ok := h.sessionFor(c, in.ICode)
	if !ok {
		return
	}
	d, err := h.Store.FindDraftByCode(c.Request.Context(), u.ID, in.DCode)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			fail(c, http.StatusNotFound, "Draft not found")
			return
		}
		fail(c, http.StatusInternalServerError, "Failed to fetch draft")
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": d})
}

// DeleteDraft godoc
// @Summary Delete a draft
// @Tags draft
// @Accept json
// @Produce json
// @Param payload body draftRef true "icode and dcode"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/draft/delete [post]
func (h *Handler) DeleteDraft(c *gin.Context) {
	var in draftRef
	if err := c.ShouldBindJSON(&in); err != nil || in.DCode == "" {
		fail(c, http.StatusBadRequest, "Missing dcode")
		return
	}
	u, ok := h.sessionFor(c, in.ICode)
	if !ok {
		return
	}
	if err := h.Store.DeleteDraft(c.Request.Context(), u.ID, in.DCode); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			fail(c, http.StatusNotFound, "Draft not found")
			return
		}
		fail(c, http.StatusInternalServerError, "Failed to delete draft")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Draft deleted"})
}

// PublishDraft turns a draft into a live glance. The multipart body carries
// the final field values, so edits made on the publish screen land without a
// separate update round trip; the draft is removed once the glance exists.
//
// PublishDraft godoc
// @Summary Publish a draft as a glance
// @Tags draft
// @Accept multipart/form-data
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /api/v1/draft/publish [post]
func (h *Handler) PublishDraft(c *gin.Context) {
	f, err := h.parseContentForm(c)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid upload")
		return
	}
	dcode := c.PostForm("dcode")
	if dcode == "" {
		fail(c, http.StatusBadRequest, "Missing dcode")
		return
	}
	u, ok := h.sessionFor(c, f.ICode)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	d, err := h.Store.FindDraftByCode(ctx, u.ID, dcode)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			fail(c, http.StatusNotFound, "Draft not found")
			return
		}
		fail(c, http.StatusInternalServerError, "Failed to publish draft")
		return
	}

	g := d.ToGlance()
	g.GCode = security.NewShortCode()
	// publish-screen edits win over the stored draft
	if f.Headline != "" {
		g.Headline = f.Headline
	}
	if f.Snippet != "" {
		g.Snippet = f.Snippet
	}
	if f.CTA != "" {
		g.CTA = f.CTA
	}
	if f.Link != "" {
		g.Link = f.Link
	}
	if f.Image != "" {
		g.Image = f.Image
	}
	if f.Q1 != nil || f.Q2 != nil || f.Q3 != nil {
		g.Q1, g.Q2, g.Q3 = f.Q1, f.Q2, f.Q3
	}

	if err := h.Store.CreateGlance(ctx, g); err != nil {
		log.L.Error("publish draft failed", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to publish draft")
		return
	}
	if err := h.Store.DeleteDraft(ctx, u.ID, dcode); err != nil && !errors.Is(err, repo.ErrNotFound) {
		// the glance is live; a stale draft is the lesser failure
		log.L.Error("draft cleanup after publish failed", zap.String("dcode", dcode), zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"message": "Draft published", "glance": g})
}
