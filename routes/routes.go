package routes

import (
	"Mixtape/controllers"
	"Mixtape/middleware"
	"Mixtape/services/game"
	"Mixtape/services/live"
	redis "Mixtape/services/redis"
	"Mixtape/services/storage"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *gorm.DB, redisClient *redis.RedisClient,
	hub *live.Hub, store storage.PhotoStore, window game.WindowPolicy) {

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Prometheus scrape endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/")

	api.GET("/ping", controllers.Ping)

	api.POST("/login", controllers.Login(db, redisClient))

	authentication := api.Group("/auth")
	authentication.Use(middleware.AuthRequired)
	{
		authentication.DELETE("/logout", controllers.Logout)

		authentication.GET("/me", controllers.Me(db))

		authentication.PUT("/profile", controllers.UpdateProfile(db, hub))

		authentication.POST("/upload", controllers.UploadPhoto(store))

		authentication.GET("/participants", controllers.ListParticipants(db))

		authentication.GET("/ws/lobby", controllers.LobbyFeed(db, hub))

		gameRoutes := authentication.Group("/game")
		{
			gameRoutes.GET("/session", controllers.GetGameSession(db, window))

			gameRoutes.POST("/guess", controllers.SaveGuess(db, window))

			gameRoutes.POST("/submit", controllers.SubmitGame(db, window))
		}

		admin := authentication.Group("/admin")
		admin.Use(middleware.AdminRequired)
		{
			admin.GET("/scores", controllers.GetScores(db))

			admin.GET("/stats", controllers.GetStats(db, redisClient))

			admin.POST("/import", controllers.ImportParticipants(db))

			admin.GET("/export", controllers.ExportScores(db))

			admin.GET("/reveal", controllers.GetReveal(db))

			admin.POST("/reveal", controllers.SetReveal(db))

			admin.POST("/reset", controllers.ResetGame(db, redisClient))
		}
	}
}
