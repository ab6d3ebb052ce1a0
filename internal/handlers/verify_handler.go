package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"hobbyhive/internal/models"
	"hobbyhive/internal/services"
)

type VerifyHandler struct {
	registration services.RegistrationService
}

func NewVerifyHandler(registration services.RegistrationService) *VerifyHandler {
	return &VerifyHandler{registration: registration}
}

// @Summary      Confirm registration
// @Description  Verifies the emailed OTP and promotes the pending registration into an account
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        confirm  body      models.VerifyOTPRequest  true  "Verification payload"
// @Success      200      {object}  map[string]string
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Router       /register/confirm [post]
func (h *VerifyHandler) ConfirmUser(c *gin.Context) {
	var req models.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, err := h.registration.VerifyOTP(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFieldsRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and OTP are required."})
		case errors.Is(err, services.ErrPendingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "No pending user found."})
		case errors.Is(err, services.ErrCodeInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid OTP."})
		case errors.Is(err, services.ErrCodeExpired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "OTP has expired."})
		case errors.Is(err, services.ErrUserExists):
			c.JSON(http.StatusConflict, gin.H{"error": "Email or username is already registered."})
		default:
			log.Printf("[register][confirm] internal error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User verified and confirmed successfully. You can now log in."})
}
