package app

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "hobbyhive/docs"
	"hobbyhive/internal/config"
	"hobbyhive/internal/handlers"
	"hobbyhive/internal/repositories"
	"hobbyhive/internal/routes"
	"hobbyhive/internal/services"
)

func Run() {
	cfg, err := config.LoadConfig("config/config.yaml")
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	// === DB (migrations run at boot) ===
	store, db, err := repositories.NewPostgresStore(context.Background(), cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to open database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	// === Services ===
	authService := services.NewAuthService()
	tokenService, err := services.NewTokenService(cfg.Tokens)
	if err != nil {
		log.Fatal("Failed to init token service: ", err)
	}
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
	registrationService := services.NewRegistrationService(store, authService, tokenService, emailService)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(registrationService)
	userHandler := handlers.NewUserHandler(registrationService)
	verifyHandler := handlers.NewVerifyHandler(registrationService)

	// === Gin ===
	router := gin.Default()
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(router, tokenService, authHandler, userHandler, verifyHandler)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Server failed: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
