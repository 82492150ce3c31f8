package api

import (
	"exercise-tracker/internal/config"
	"exercise-tracker/internal/dates"
	"exercise-tracker/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRoutes wires middleware, static assets and the API endpoints onto the
// router.
func SetupRoutes(
	router *gin.Engine,
	cfg config.ServerConfig,
	userService service.UserService,
	logService service.LogService,
	formatter *dates.Formatter,
) {
	userHandler := NewUserHandler(userService, logService, formatter, cfg.PlainTextErrors)

	router.Use(RequestLogger())
	router.Use(cors.Default())

	// Landing page and static assets.
	router.StaticFile("/", cfg.IndexFile)
	router.Static("/public", cfg.StaticDir)

	api := router.Group("/api")
	{
		api.POST("/users", userHandler.CreateUser)
		api.GET("/users", userHandler.ListUsers)
		api.POST("/users/:_id/exercises", userHandler.LogExercise)
		api.GET("/users/:_id/logs", userHandler.GetLogs)
	}
}
