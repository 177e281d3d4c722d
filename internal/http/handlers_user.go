package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/glancery/glancery/internal/domain"
	"github.com/glancery/glancery/internal/helper"
	"github.com/glancery/glancery/internal/log"
	"github.com/glancery/glancery/internal/metrics"
	"github.com/glancery/glancery/internal/queue"
	"github.com/glancery/glancery/internal/repo"
	"github.com/glancery/glancery/internal/security"
	"github.com/glancery/glancery/internal/state"
)

// The client matches this string exactly to learn the account already
// existed, so it must never change.
const msgUserExists = "User exists. OTP sent successfully."
const msgOTPSent = "OTP sent successfully."

type emailReq struct {
	Email string `json:"email"`
}

// issueOTP generates, stores and dispatches a fresh code for email. Returns
// the user-facing message and, for dev builds, the raw code.
func (h *Handler) issueOTP(ctx context.Context, email, requestID string) (msg, devOTP string, err error) {
	exist := true
	if _, ferr := h.Store.FindUserByEmail(ctx, email); ferr != nil {
		if !errors.Is(ferr, repo.ErrNotFound) {
			return "", "", ferr
		}
		exist = false
	}

	otp, err := security.NewOTP()
	if err != nil {
		return "", "", err
	}
	hash, err := security.HashOTP(otp)
	if err != nil {
		return "", "", err
	}
	if err := h.Sessions.SaveOTP(ctx, email, hash, exist, h.OTPTTL); err != nil {
		return "", "", err
	}

	magic, err := security.MakeMagic(h.MagicSecret, email, otp, h.OTPTTL)
	if err != nil {
		return "", "", err
	}
	go h.Events.Publish(context.Background(), h.Exchange, queue.KeyOTPRequested,
		queue.OTPRequested{Email: email, OTP: otp, MagicToken: magic, Exist: exist},
		requestID)

	metrics.OTPIssuedTotal.Inc()
	log.L.Info("otp issued", zap.String("email_hash", helper.Hash8(email)), zap.Bool("exist", exist))

	if exist {
		msg = msgUserExists
	} else {
		msg = msgOTPSent
	}
	if h.Dev {
		devOTP = otp
	}
	return msg, devOTP, nil
}

// SendOTP godoc
// @Summary Request a sign-in code
// @Tags user
// @Accept json
// @Produce json
// @Param payload body emailReq true "email"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /api/v1/user/sendotp [post]
func (h *Handler) SendOTP(c *gin.Context) {
	var in emailReq
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "invalid json")
		return
	}
	email := helper.NormalizeEmail(in.Email)
	if !helper.ValidEmail(email) {
		fail(c, http.StatusBadRequest, "Please provide a valid email address.")
		return
	}

	msg, devOTP, err := h.issueOTP(c.Request.Context(), email, reqID(c))
	if err != nil {
		log.L.Error("send otp failed", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to send OTP")
		return
	}
	resp := gin.H{"message": msg}
	if devOTP != "" {
		resp["otp_dev"] = devOTP
	}
	c.JSON(http.StatusOK, resp)
}

// ResendOTP godoc
// @Summary Resend the sign-in code
// @Tags user
// @Accept json
// @Produce json
// @Param payload body emailReq true "email"
// @Success 200 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /api/v1/user/resendotp [post]
func (h *Handler) ResendOTP(c *gin.Context) {
	var in emailReq
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "invalid json")
		return
	}
	email := helper.NormalizeEmail(in.Email)
	if !helper.ValidEmail(email) {
		fail(c, http.StatusBadRequest, "Please provide a valid email address.")
		return
	}

	ok, err := h.Sessions.ThrottleResend(c.Request.Context(), email, h.ResendWindow)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to send OTP")
		return
	}
	if !ok {
		fail(c, http.StatusTooManyRequests, "Please wait before requesting a new code.")
		return
	}

	msg, devOTP, err := h.issueOTP(c.Request.Context(), email, reqID(c))
	if err != nil {
		log.L.Error("resend otp failed", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to send OTP")
		return
	}
	resp := gin.H{"message": msg}
	if devOTP != "" {
		resp["otp_dev"] = devOTP
	}
	c.JSON(http.StatusOK, resp)
}

type verifyReq struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// verifyAndSignIn consumes a valid code and issues a session. Shared by the
// manual entry path and the magic link.
func (h *Handler) verifyAndSignIn(c *gin.Context, email, otp string) {
	ctx := c.Request.Context()

	hash, existed, err := h.Sessions.GetOTP(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			fail(c, http.StatusUnauthorized, "Code expired or not requested.")
			return
		}
		fail(c, http.StatusInternalServerError, "Failed to verify OTP")
		return
	}
	if !security.CheckOTP(hash, otp) {
		fail(c, http.StatusUnauthorized, "Invalid code.")
		return
	}
	// consume only on success so a typo doesn't burn the code
	_ = h.Sessions.DeleteOTP(ctx, email)

	var u *domain.User
	if existed {
		u, err = h.Store.FindUserByEmail(ctx, email)
	} else {
		u = &domain.User{
			Email:    email,
			Username: strings.SplitN(email, "@", 2)[0],
			Verified: true,
		}
		err = h.Store.CreateUser(ctx, u)
		if errors.Is(err, repo.ErrDuplicate) {
			u, err = h.Store.FindUserByEmail(ctx, email)
		}
	}
	if err != nil {
		log.L.Error("verify otp user lookup failed", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to verify OTP")
		return
	}

	icode, err := security.NewSessionCode()
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to verify OTP")
		return
	}
	if err := h.Sessions.SaveSession(ctx, icode, u.ID, h.SessionTTL); err != nil {
		fail(c, http.StatusInternalServerError, "Failed to verify OTP")
		return
	}
	h.State.Dispatch(state.SessionVerified, state.Session{
		ICode:       icode,
		Email:       u.Email,
		Username:    u.Username,
		Publication: u.Publication,
		Exist:       existed,
	})

	c.JSON(http.StatusOK, gin.H{
		"icode": icode,
		"exist": existed,
		"user": gin.H{
			"email":       u.Email,
			"publication": u.Publication,
			"username":    u.Username,
		},
	})
}

// VerifyOTP godoc
// @Summary Verify a sign-in code
// @Tags user
// @Accept json
// @Produce json
// @Param payload body verifyReq true "email and code"
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]string
// @Router /api/v1/user/verifyotp [post]
func (h *Handler) VerifyOTP(c *gin.Context) {
	var in verifyReq
	if err := c.ShouldBindJSON(&in); err != nil || in.OTP == "" {
		fail(c, http.StatusBadRequest, "Email and OTP are required")
		return
	}
	email := helper.NormalizeEmail(in.Email)
	if !helper.ValidEmail(email) {
		fail(c, http.StatusBadRequest, "Please provide a valid email address.")
		return
	}
	h.verifyAndSignIn(c, email, in.OTP)
}

type magicReq struct {
	Token string `json:"token"`
}

// Magic godoc
// @Summary Sign in via emailed magic link
// @Tags user
// @Accept json
// @Produce json
// @Param payload body magicReq true "signed token"
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]string
// @Router /api/v1/user/magic [post]
func (h *Handler) Magic(c *gin.Context) {
	var in magicReq
	if err := c.ShouldBindJSON(&in); err != nil || in.Token == "" {
		fail(c, http.StatusBadRequest, "invalid json")
		return
	}
	claims, err := security.ParseMagic(h.MagicSecret, in.Token)
	if err != nil {
		fail(c, http.StatusUnauthorized, "Invalid or expired link.")
		return
	}
	h.verifyAndSignIn(c, helper.NormalizeEmail(claims.Email), claims.OTP)
}

type publicationReq struct {
	ICode string `json:"icode"`
	Name  string `json:"name"`
}

// SetPublication godoc
// @Summary Name the creator's publication
// @Tags user
// @Accept json
// @Produce json
// @Param payload body publicationReq true "icode and name"
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]string
// @Router /api/v1/user/publication [post]
func (h *Handler) SetPublication(c *gin.Context) {
	var in publicationReq
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "invalid json")
		return
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		fail(c, http.StatusBadRequest, "Publication name is required")
		return
	}
	u, ok := h.sessionFor(c, in.ICode)
	if !ok {
		return
	}
	if err := h.Store.SetPublication(c.Request.Context(), u.ID, name); err != nil {
		fail(c, http.StatusInternalServerError, "Failed to update publication")
		return
	}
	h.State.Dispatch(state.PublicationSet, state.Session{ICode: in.ICode, Publication: name})

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"email":       u.Email,
			"publication": name,
			"username":    u.Username,
		},
	})
}

type followersReq struct {
	ICode   string `json:"icode"`
	Grouped bool   `json:"grouped"`
}

// Followers godoc
// @Summary List the creator's followers
// @Tags user
// @Accept json
// @Produce json
// @Param payload body followersReq true "icode"
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]string
// @Router /api/v1/user/followers [post]
func (h *Handler) Followers(c *gin.Context) {
	var in followersReq
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "icode is required")
		return
	}
	u, ok := h.sessionFor(c, in.ICode)
	if !ok {
		return
	}
	subs, err := h.Store.ListSubscribers(c.Request.Context(), u.ID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to fetch followers")
		return
	}
	resp := gin.H{"followers": subs}
	if in.Grouped {
		resp["groups"] = domain.GroupSubscribersByDay(subs, time.Now())
	}
	c.JSON(http.StatusOK, resp)
}

type logoutReq struct {
	ICode string `json:"icode"`
}

func (h *Handler) Logout(c *gin.Context) {
	var in logoutReq
	if err := c.ShouldBindJSON(&in); err != nil || in.ICode == "" {
		fail(c, http.StatusBadRequest, "icode is required")
		return
	}
	if err := h.Sessions.DeleteSession(c.Request.Context(), in.ICode); err != nil && !errors.Is(err, repo.ErrNotFound) {
		fail(c, http.StatusInternalServerError, "Failed to log out")
		return
	}
	h.State.Dispatch(state.LoggedOut, state.Session{ICode: in.ICode})
	c.JSON(http.StatusOK, gin.H{"message": "Logged out."})
}
