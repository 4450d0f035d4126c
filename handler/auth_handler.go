package handler

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/gin-gonic/gin"

	"mavryck/dto"
	"mavryck/services"
	"mavryck/utils"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Login(c *gin.Context) {
	start := time.Now()
	defer func() {
		duration := time.Since(start).Seconds()
		utils.HTTPRequestDuration.WithLabelValues("POST", "/api/auth/login").Observe(duration)
	}()

	var loginReq dto.LoginRequest
	if err := c.ShouldBindJSON(&loginReq); err != nil {
		utils.TrackError("auth", "invalid_request")
		utils.BadRequest(c, "Invalid Request")
		return
	}

	result, err := h.auth.Login(services.LoginInput{
		Email:         loginReq.Email,
		Password:      loginReq.Password,
		TwoFactorCode: loginReq.TwoFactorCode,
		UserAgent:     c.Request.UserAgent(),
		IPAddress:     c.ClientIP(),
	})

	switch {
	case err == nil:
		// fall through to the success response below
	case errors.Is(err, services.ErrRateLimited):
		stats := h.auth.AttemptStats(loginReq.Email)
		minutes := int(math.Ceil(stats.RetryAfter.Minutes()))
		if minutes < 1 {
			minutes = 1
		}
		utils.TooManyRequests(c,
			fmt.Sprintf("Too many failed login attempts. Try again in %d minutes", minutes),
			gin.H{"retry_after_minutes": minutes})
		return
	case errors.Is(err, services.ErrInvalidFormat),
		errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidTwoFactor):
		// One generic rejection; which check failed stays internal.
		utils.Unauthorized(c, services.GenericLoginMessage)
		return
	default:
		utils.TrackError("auth", "login_internal")
		utils.InternalError(c, "Failed to log in")
		return
	}

	token, err := h.auth.CSRFToken()
	if err != nil {
		utils.TrackError("auth", "csrf_issue")
		utils.InternalError(c, "Failed to issue CSRF token")
		return
	}

	response := gin.H{
		"message":    "Login successful",
		"csrf_token": token,
		"session":    result.Session,
	}
	if result.Remote == services.RemoteDegraded {
		response["notice"] = "Remote identity provider unavailable; local session only"
	}

	utils.Success(c, response)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.auth.Logout()
	utils.Success(c, gin.H{"message": "Logged out successfully"})
}

func (h *AuthHandler) Session(c *gin.Context) {
	utils.Success(c, gin.H{"authenticated": h.auth.IsAuthenticated()})
}

func (h *AuthHandler) CSRFToken(c *gin.Context) {
	token, err := h.auth.CSRFToken()
	if err != nil {
		utils.TrackError("auth", "csrf_issue")
		utils.InternalError(c, "Failed to issue CSRF token")
		return
	}
	utils.Success(c, gin.H{"csrf_token": token})
}

// SecurityStats reports login attempt aggregates for the admin panel.
func (h *AuthHandler) SecurityStats(c *gin.Context) {
	stats := h.auth.AttemptStats(c.Query("identity"))
	utils.Success(c, gin.H{
		"total_attempts":      stats.TotalAttempts,
		"failed_attempts":     stats.FailedAttempts,
		"successful_attempts": stats.SuccessfulAttempts,
		"is_locked":           stats.IsLocked,
		"retry_after_minutes": int(math.Ceil(stats.RetryAfter.Minutes())),
	})
}
