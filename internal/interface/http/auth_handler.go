package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/notegenius-api/internal/application"
	"github.com/oksasatya/notegenius-api/internal/domain/entity"
	"github.com/oksasatya/notegenius-api/internal/infrastructure/search"
	"github.com/oksasatya/notegenius-api/internal/interface/middleware"
	"github.com/oksasatya/notegenius-api/pkg/helpers"
	"github.com/oksasatya/notegenius-api/pkg/response"
)

// AuditRecorder stores auth events. Failures are handled by the recorder.
type AuditRecorder interface {
	Record(ctx context.Context, ev search.AuthEvent)
}

type AuthHandler struct {
	Svc   *application.AuthService
	Audit AuditRecorder
	Errors
}

func NewAuthHandler(svc *application.AuthService, audit AuditRecorder, errs Errors) *AuthHandler {
	return &AuthHandler{Svc: svc, Audit: audit, Errors: errs}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type resetRequest struct {
	Email string `json:"email" binding:"required"`
}

type resetConfirmRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

type authResponse struct {
	response.Base
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expires_at"`
	User      entity.PublicUser `json:"user"`
}

type resetResponse struct {
	response.Base
	DevToken string `json:"dev_token,omitempty"`
}

type verifyResponse struct {
	response.Base
	User *entity.PublicUser `json:"user"`
}

func (h *AuthHandler) ctx(c *gin.Context) context.Context {
	return helpers.WithClientInfo(c.Request.Context(), helpers.ClientInfo{
		IP:        middleware.ClientIP(c),
		UserAgent: c.GetHeader("User-Agent"),
	})
}

func (h *AuthHandler) audit(c *gin.Context, action string, userID int64, email string, success bool, metadata map[string]any) {
	if h.Audit == nil {
		return
	}
	h.Audit.Record(c.Request.Context(), search.AuthEvent{
		Action:    action,
		UserID:    userID,
		Email:     email,
		Success:   success,
		IP:        middleware.ClientIP(c),
		UserAgent: c.GetHeader("User-Agent"),
		RequestID: c.GetString(middleware.CtxRequestIDKey),
		Metadata:  metadata,
	})
}

func (h *AuthHandler) writeSession(c *gin.Context, status int, msg string, res *application.AuthResult) {
	c.JSON(status, authResponse{
		Base:      response.NewBase(c, status, true, msg),
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt.UTC(),
		User:      res.User,
	})
}

// Register POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if !h.Bind(c, &req, "Name, email and password are required") {
		return
	}
	res, err := h.Svc.Register(h.ctx(c), application.RegisterInput{Name: req.Name, Email: req.Email, Password: req.Password})
	if err != nil {
		h.audit(c, "register", 0, req.Email, false, map[string]any{"reason": application.KindOf(err).String()})
		h.Write(c, err, "Failed to register user")
		return
	}
	h.audit(c, "register", res.User.ID, res.User.Email, true, nil)
	h.writeSession(c, http.StatusCreated, "User registered successfully", res)
}

// Login POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !h.Bind(c, &req, "Email and password are required") {
		return
	}
	res, err := h.Svc.Login(h.ctx(c), req.Email, req.Password)
	if err != nil {
		h.audit(c, "login", 0, req.Email, false, map[string]any{"reason": application.KindOf(err).String()})
		h.Write(c, err, "Failed to login")
		return
	}
	h.audit(c, "login", res.User.ID, res.User.Email, true, nil)
	h.writeSession(c, http.StatusOK, "Login successful", res)
}

// RequestReset POST /auth/reset-password
func (h *AuthHandler) RequestReset(c *gin.Context) {
	var req resetRequest
	if !h.Bind(c, &req, "Email is required") {
		return
	}
	res, err := h.Svc.RequestPasswordReset(h.ctx(c), req.Email)
	if err != nil {
		h.Write(c, err, "Failed to process reset request")
		return
	}
	h.audit(c, "reset_request", res.UserID, req.Email, res.UserID != 0, nil)
	c.JSON(http.StatusOK, resetResponse{
		Base:     response.NewBase(c, http.StatusOK, true, res.Message),
		DevToken: res.DevToken,
	})
}

// ConfirmReset POST /auth/reset-password/confirm
func (h *AuthHandler) ConfirmReset(c *gin.Context) {
	var req resetConfirmRequest
	if !h.Bind(c, &req, "Token and new password are required") {
		return
	}
	uid, err := h.Svc.ConfirmPasswordReset(h.ctx(c), req.Token, req.NewPassword)
	if err != nil {
		h.audit(c, "reset_confirm", 0, "", false, map[string]any{"reason": application.KindOf(err).String()})
		h.Write(c, err, "Failed to reset password")
		return
	}
	h.audit(c, "reset_confirm", uid, "", true, nil)
	c.JSON(http.StatusOK, response.NewBase(c, http.StatusOK, true, "Password has been reset successfully"))
}

// Verify GET /auth/verify
func (h *AuthHandler) Verify(c *gin.Context) {
	u, err := h.Svc.VerifyToken(h.ctx(c), c.GetHeader("Authorization"))
	if err != nil {
		h.Write(c, err, "Failed to verify token")
		return
	}
	c.JSON(http.StatusOK, verifyResponse{
		Base: response.NewBase(c, http.StatusOK, true, ""),
		User: u,
	})
}
