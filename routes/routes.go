package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"autolot-api/config"
	"autolot-api/controllers"
	"autolot-api/middleware"
	"autolot-api/services"
)

// PublicRoutes is the route-classification table the auth gate consumes.
// Everything not listed here requires a valid bearer token.
var PublicRoutes = map[string]bool{
	"POST /user":  true,
	"POST /login": true,
	"GET /ping":   true,
}

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, emailService *services.EmailService) {
	jwtExpiry := time.Duration(cfg.JWTExpiryHours) * time.Hour

	authController := controllers.NewAuthController(db, cfg.JWTSecret, jwtExpiry)
	userController := controllers.NewUserController(db, emailService)
	vehicleController := controllers.NewVehicleController(db)

	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.AuthGate(cfg.JWTSecret, PublicRoutes))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Credential endpoints are public but rate limited.
	credentials := r.Group("/")
	credentials.Use(middleware.RateLimit(10, 5))
	{
		credentials.POST("/user", userController.CreateUser)
		credentials.POST("/login", authController.Login)
	}

	r.POST("/user/find", userController.FindUser)

	vehicles := r.Group("/vehicles")
	{
		vehicles.POST("", vehicleController.CreateVehicle)
		vehicles.GET("", vehicleController.ListVehicles)
		vehicles.GET("/:id", vehicleController.GetVehicle)
		vehicles.PUT("/:id", vehicleController.UpdateVehicle)
		vehicles.DELETE("/:id", vehicleController.DeleteVehicle)
	}
}
