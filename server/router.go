package server

import (
	"time"

	"youtube-manager/domain/repository"
	httpHandler "youtube-manager/interfaces/http"
	"youtube-manager/interfaces/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func InitiateRouter(
	healthHandler httpHandler.IHealthHandler,
	youtubeAuthHandler httpHandler.IYouTubeAuthHandler,
	youtubeHandler httpHandler.IYouTubeHandler,
	gate repository.IAuthGate,
	allowedOrigins []string,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(cors.New(corsConfig(allowedOrigins)))

	router.GET("/healthz", healthHandler.Healthz)

	// OAuth authentication routes
	auth := router.Group("/auth")
	{
		auth.GET("/youtube", youtubeAuthHandler.GetAuthURL)
		auth.GET("/google/callback", youtubeAuthHandler.HandleCallback)
		auth.GET("/youtube/tokens", youtubeAuthHandler.Status)
	}

	api := router.Group("/api")
	api.Use(middleware.RequireYouTubeAuth(gate))
	{
		video := api.Group("/video")
		video.GET("/details", youtubeHandler.GetVideoDetails)
		video.PUT("/details", youtubeHandler.UpdateVideoDetails)
		video.GET("/comments", youtubeHandler.GetVideoComments)
	}

	return router
}

func corsConfig(allowedOrigins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	// Credentials cannot be combined with a wildcard origin
	if len(allowedOrigins) == 0 || (len(allowedOrigins) == 1 && allowedOrigins[0] == "*") {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
		return cfg
	}
	cfg.AllowOrigins = allowedOrigins
	return cfg
}
