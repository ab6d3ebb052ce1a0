package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"hobbyhive/internal/models"
	"hobbyhive/internal/services"
)

type AuthHandler struct {
	registration services.RegistrationService
}

func NewAuthHandler(registration services.RegistrationService) *AuthHandler {
	return &AuthHandler{registration: registration}
}

// @Summary      Log in
// @Description  Verifies credentials and returns an access/refresh token pair
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Login payload"
// @Success      200    {object}  map[string]interface{}
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, pair, err := h.registration.Login(c.Request.Context(), req.EmailOrUsername, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFieldsRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email or Username, Password are required"})
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, services.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		default:
			log.Printf("[auth][login] internal error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		}
		return
	}

	setTokenCookies(c, pair)
	c.JSON(http.StatusOK, gin.H{
		"message": "User logged in successfully",
		"data": gin.H{
			"user":          user, // PasswordHash/RefreshToken are json:"-"
			"access_token":  pair.AccessToken,
			"refresh_token": pair.RefreshToken,
		},
	})
}

// @Summary      Log out
// @Description  Revokes the stored refresh token and clears auth cookies
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := getUserIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.registration.Logout(c.Request.Context(), userID); err != nil {
		log.Printf("[auth][logout] internal error user_id=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
		return
	}

	clearTokenCookies(c)
	c.JSON(http.StatusOK, gin.H{"message": "User logged out successfully"})
}

func setTokenCookies(c *gin.Context, pair *services.TokenPair) {
	c.SetCookie("accessToken", pair.AccessToken, 3600, "/", "", false, true)
	c.SetCookie("refreshToken", pair.RefreshToken, 3600, "/", "", false, true)
}

func clearTokenCookies(c *gin.Context) {
	c.SetCookie("accessToken", "", -1, "/", "", false, true)
	c.SetCookie("refreshToken", "", -1, "/", "", false, true)
}
