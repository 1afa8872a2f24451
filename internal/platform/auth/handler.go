package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"HRIS-backend/internal/platform/apierr"
	"HRIS-backend/internal/platform/render"
	"HRIS-backend/internal/platform/validation"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}
	r.POST("/login", h.Login)
	// セッション必須
	r.POST("/logout", RequireAuth(svc), h.Logout)
	r.GET("/user", RequireAuth(svc), h.CurrentUser)
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		render.Error(c, apierr.ErrValidation(validation.Fields(err)))
		return
	}

	token, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrAuthFailed) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "The provided credentials are incorrect."})
			return
		}
		render.Error(c, apierr.ErrInternal("login failed"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"message": "Login successful",
	})
}

func (h *Handler) Logout(c *gin.Context) {
	jti := c.GetString(CtxJTIKey)
	exp, _ := c.Get(CtxTokenExpKey)
	expAt, _ := exp.(time.Time)
	if expAt.IsZero() {
		expAt = time.Now().UTC().Add(24 * time.Hour)
	}

	if err := h.svc.Logout(c.Request.Context(), jti, expAt); err != nil {
		render.Error(c, apierr.ErrInternal("logout failed"))
		return
	}
	render.Message(c, http.StatusOK, "Logged out successfully")
}

func (h *Handler) CurrentUser(c *gin.Context) {
	userID := c.GetUint64(CtxUserIDKey)

	profile, err := h.svc.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		render.Error(c, apierr.ErrInternal("failed to load user"))
		return
	}
	if profile == nil {
		render.Error(c, apierr.ErrNotFound("User not found."))
		return
	}
	render.Respond(c, http.StatusOK, "user", profile)
}
