package handlers

import (
	"fmt"
	"net/http"

	"restaurant-cms/middleware"
	"restaurant-cms/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler signs in the single admin account. The configured password is
// only kept as a bcrypt hash.
type AuthHandler struct {
	passwordHash []byte
	secureCookie bool
	logger       *zap.Logger
}

func NewAuthHandler(adminPassword string, secureCookie bool, logger *zap.Logger) (*AuthHandler, error) {
	if adminPassword == "" {
		return nil, fmt.Errorf("admin password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{passwordHash: hash, secureCookie: secureCookie, logger: logger}, nil
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Password string `json:"password" form:"password" binding:"required"`
	}

	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if err := bcrypt.CompareHashAndPassword(h.passwordHash, []byte(req.Password)); err != nil {
		h.logger.Warn("admin login failed", zap.String("client_ip", c.ClientIP()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password"})
		return
	}

	token, err := utils.GenerateToken(utils.RoleAdmin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.SessionCookie, token, int(utils.SessionTTL.Seconds()), "/", "", h.secureCookie, true)

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_in": int(utils.SessionTTL.Seconds()),
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
