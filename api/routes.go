package api

import (
	"github.com/gin-gonic/gin"

	"padcontrol/service"
)

func SetupRoutes(router *gin.Engine, pm *service.PadManager, engine *service.Engine, live *service.LiveExecutor, recorder *service.Recorder, player *service.Player, store *service.RecordingStore, wsHub *WebSocketHub) {
	// Enable CORS
	router.Use(CORSMiddleware())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API routes
	xbox := router.Group("/api/xbox")
	{
		xbox.GET("/status", func(c *gin.Context) {
			GetStatus(c, pm)
		})

		actions := xbox.Group("/actions")
		{
			actions.POST("/execute", func(c *gin.Context) {
				ExecuteActions(c, engine)
			})
			actions.POST("/live", func(c *gin.Context) {
				ExecuteLiveAction(c, live, wsHub)
			})
		}

		recordings := xbox.Group("/recordings")
		{
			recordings.GET("", func(c *gin.Context) {
				ListRecordings(c, store)
			})
			recordings.POST("/start", func(c *gin.Context) {
				StartRecording(c, recorder)
			})
			recordings.POST("/stop", func(c *gin.Context) {
				StopRecording(c, recorder)
			})
			recordings.POST("/cancel", func(c *gin.Context) {
				CancelPlayback(c, player)
			})
			recordings.POST("/:name/play", func(c *gin.Context) {
				PlayRecording(c, player)
			})
			recordings.DELETE("/:name", func(c *gin.Context) {
				DeleteRecording(c, store)
			})
		}
	}

	// WebSocket route
	router.GET("/ws", func(c *gin.Context) {
		HandleWebSocket(wsHub, c)
	})
}

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
