package routes

import (
	"github.com/gin-gonic/gin"

	"hobbyhive/internal/handlers"
	"hobbyhive/internal/middleware"
	"hobbyhive/internal/services"
)

func SetupRoutes(
	r *gin.Engine,
	tokens services.TokenService,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	verifyHandler *handlers.VerifyHandler,
) *gin.Engine {

	// ---- public
	r.POST("/register", userHandler.Register)
	r.POST("/register/confirm", verifyHandler.ConfirmUser)
	r.POST("/login", authHandler.Login)

	// ---- protected
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(tokens))
	{
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/profile", userHandler.GetProfile)
	}

	return r
}
