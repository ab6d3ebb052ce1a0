package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"hobbyhive/internal/models"
	"hobbyhive/internal/services"
)

type UserHandler struct {
	registration services.RegistrationService
}

func NewUserHandler(registration services.RegistrationService) *UserHandler {
	return &UserHandler{registration: registration}
}

// @Summary      Register
// @Description  Stages a pending registration and emails a one-time passcode
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        register  body      models.RegisterRequest  true  "Registration payload"
// @Success      200       {object}  map[string]string
// @Failure      400       {object}  map[string]string
// @Failure      409       {object}  map[string]string
// @Router       /register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.registration.Register(c.Request.Context(), req.Name, req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFieldsRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required."})
		case errors.Is(err, services.ErrUserExists):
			c.JSON(http.StatusConflict, gin.H{"error": "Email or username is already registered."})
		case errors.Is(err, services.ErrDeliveryFailed):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error sending OTP via email"})
		default:
			log.Printf("[register][request] internal error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User registered successfully. Please verify the OTP."})
}

// @Summary      Get profile
// @Description  Returns the display name of the authenticated user
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := getUserIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	profile, err := h.registration.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		log.Printf("[users][profile] internal error user_id=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": profile})
}
