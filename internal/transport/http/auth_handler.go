package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/waste3d/coursehub/internal/domain"
	"github.com/waste3d/coursehub/internal/infrastructure/security"
	"github.com/waste3d/coursehub/internal/middleware"
)

type Authenticator interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
	Logout(ctx context.Context, refreshToken string) error
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID, username, email string) (*domain.User, error)
}

const refreshCookie = "refresh_token"

type AuthHandler struct {
	auth         Authenticator
	secureCookie bool
}

func NewAuthHandler(a Authenticator, secureCookie bool) *AuthHandler {
	return &AuthHandler{auth: a, secureCookie: secureCookie}
}

type registerReq struct {
	Username string `json:"username" form:"username" binding:"required,max=50"`
	Email    string `json:"email" form:"email" binding:"omitempty,email"`
	Password string `json:"password" form:"password" binding:"required,min=8"`
}

type loginReq struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type profileReq struct {
	Username string `json:"username" form:"username" binding:"required,max=50"`
	Email    string `json:"email" form:"email" binding:"omitempty,email"`
}

func (h *AuthHandler) setRefresh(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(refreshCookie, token, maxAge, "/auth", "", h.secureCookie, true)
}

// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}
	user, err := h.auth.Register(c, req.Username, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Registration successful!", "user_id": user.ID})
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}
	access, refresh, err := h.auth.Login(c, req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	h.setRefresh(c, refresh, int(security.RefreshTTL.Seconds()))
	c.JSON(http.StatusOK, gin.H{"message": "Login successful!", "access_token": access})
}

// POST /auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	token, err := c.Cookie(refreshCookie)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token not found"})
		return
	}
	access, refresh, err := h.auth.Refresh(c, token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}
	h.setRefresh(c, refresh, int(security.RefreshTTL.Seconds()))
	c.JSON(http.StatusOK, gin.H{"access_token": access})
}

// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	token, err := c.Cookie(refreshCookie)
	if err == nil {
		_ = h.auth.Logout(c, token)
	}
	h.setRefresh(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "You have been logged out."})
}

// GET /app/profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	user, err := h.auth.Profile(c, c.GetString(middleware.UserIDKey))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// PUT /app/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req profileReq
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}
	user, err := h.auth.UpdateProfile(c, c.GetString(middleware.UserIDKey), req.Username, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully!", "user": user})
}
