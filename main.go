package main

import (
	"log/slog"
	"os"

	"github.com/DineTogether/dining_backend/cache"
	"github.com/DineTogether/dining_backend/controllers"
	"github.com/DineTogether/dining_backend/database"
	"github.com/DineTogether/dining_backend/docs"
	"github.com/DineTogether/dining_backend/middleware"
	"github.com/DineTogether/dining_backend/utils"
	"github.com/DineTogether/dining_backend/websocket"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Dining Companions API
// @version         1.0
// @description     API Server for the dining companions application
// @host            localhost:8080
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	utils.SetupLogging()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using system environment variables")
	}

	// Initialize database and feed cache
	database.Connect()
	database.Migrate()
	cache.Connect()
	defer cache.Close()

	// Set up Swagger info
	docs.SwaggerInfo.Title = "Dining Companions API"
	docs.SwaggerInfo.Description = "API Server for the dining companions application"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = "localhost:" + os.Getenv("PORT")
	if docs.SwaggerInfo.Host == "localhost:" {
		docs.SwaggerInfo.Host = "localhost:8080"
	}
	docs.SwaggerInfo.BasePath = "/"
	docs.SwaggerInfo.Schemes = []string{"http"}

	// Set up router
	router := gin.Default()

	// CORS middleware
	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{frontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	router.Use(middleware.RateLimiter())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Authentication routes
	auth := router.Group("/api")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	// Protected routes
	api := router.Group("/api")
	api.Use(middleware.JWTAuth())
	{
		// Request routes
		api.GET("/requests", controllers.GetRequests)
		api.POST("/requests", controllers.CreateRequest)
		api.GET("/requests/:id", controllers.GetRequest)
		api.PUT("/requests/:id/close", controllers.CloseRequest)
		api.DELETE("/requests/:id", controllers.DeleteRequest)

		// Participation routes
		api.POST("/requests/:id/join", controllers.JoinRequest)
		api.POST("/requests/:id/leave", controllers.LeaveRequest)

		// History and profile routes
		api.GET("/history", controllers.GetHistory)
		api.GET("/profile", controllers.GetProfile)
		api.PUT("/profile", controllers.SaveProfile)
	}

	// WebSocket route
	router.GET("/ws", websocket.HandleConnection)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	slog.Info("server running", "port", port)
	slog.Info("swagger documentation available", "url", "http://localhost:"+port+"/swagger/index.html")
	if err := router.Run(":" + port); err != nil {
		slog.Error("failed to start server", "error", err)
		os.Exit(1)
	}
}
