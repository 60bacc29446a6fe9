package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Julianb233/daily-event-insurance-sub010/internal/audit"
	"github.com/Julianb233/daily-event-insurance-sub010/internal/auth"
	"github.com/Julianb233/daily-event-insurance-sub010/pkg/logger"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login checks credentials and issues a JWT token pair.
// Every attempt is audited; reaching the failure threshold also records brute force.
func (h *Handlers) Login(c *gin.Context) {
	if h.Auth == nil || h.Credentials == nil {
		abortJSON(c, http.StatusInternalServerError, "auth not configured")
		return
	}
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortJSON(c, http.StatusBadRequest, "invalid json")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		abortJSON(c, http.StatusBadRequest, "email and password required")
		return
	}

	ctx := c.Request.Context()
	log := logger.FromGin(c)

	id, err := h.Credentials.Check(ctx, req.Email, req.Password)
	if err != nil {
		reason := "invalid credentials"
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			reason = "credential check failed"
			log.Error("credential check failed", "err", err)
		}
		h.Audit.Auth().LoginFailed(ctx, req.Email, reason, audit.Options{})
		h.countFailure(c, req.Email)
		abortJSON(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if h.Attempts != nil {
		if err := h.Attempts.Reset(ctx, req.Email); err != nil {
			log.Warn("login attempt reset failed", "err", err)
		}
	}

	pair, err := h.Auth.IssuePair(h.now(), id)
	if err != nil {
		log.Error("token issuance failed", "err", err)
		abortJSON(c, http.StatusInternalServerError, "token issuance failed")
		return
	}

	actorCtx := audit.WithActor(ctx, actorOf(id))
	h.Audit.Auth().LoginSuccess(actorCtx, id.UserID, id.Email, audit.Options{})

	c.JSON(http.StatusOK, pair)
}

func (h *Handlers) countFailure(c *gin.Context, email string) {
	if h.Attempts == nil || h.LoginFailureThreshold <= 0 {
		return
	}
	ctx := c.Request.Context()
	n, err := h.Attempts.Fail(ctx, email)
	if err != nil {
		logger.FromGin(c).Warn("login attempt count failed", "err", err)
		return
	}
	if n >= int64(h.LoginFailureThreshold) {
		h.Audit.Security().BruteForceDetected(ctx, email, int(n), audit.Options{})
	}
}
