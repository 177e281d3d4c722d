package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func NewRouter(h *Handler, rlPerMin int) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(Metrics())

	if rlPerMin <= 0 {
		rlPerMin = 10
	}
	rl := NewRateLimiter(rlPerMin, time.Minute)

	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if h.Images != nil {
		r.Static("/img", h.Images.Dir)
	}

	user := r.Group("/api/v1/user")
	{
		user.POST("/sendotp", RateLimit(rl), h.SendOTP)
		user.POST("/resendotp", RateLimit(rl), h.ResendOTP)
		user.POST("/verifyotp", h.VerifyOTP)
		user.POST("/magic", h.Magic)
		user.POST("/publication", h.SetPublication)
		user.POST("/followers", h.Followers)
		user.POST("/logout", h.Logout)
	}

	glance := r.Group("/api/v1/glance")
	{
		glance.POST("/create", h.CreateGlance)
		glance.POST("/update", h.UpdateGlance)
		glance.POST("/delete", h.DeleteGlance)
		glance.POST("/get", h.GetGlance)
		glance.POST("/list", h.ListGlances)
		glance.POST("/stats", h.GlanceStats)
		glance.POST("/subscribe", RateLimit(rl), h.Subscribe)
		glance.POST("/unlock", RateLimit(rl), h.Unlock)
	}

	draft := r.Group("/api/v1/draft")
	{
		draft.POST("/create", h.CreateDraft)
		draft.POST("/list", h.ListDrafts)
		draft.POST("/get", h.GetDraft)
		draft.POST("/delete", h.DeleteDraft)
		draft.POST("/publish", h.PublishDraft)
	}

	return r
}
