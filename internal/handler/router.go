package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRouter 全ハンドラーをルーティングに登録してGinエンジンを返す
func SetupRouter(
	trailHandler *TrailHandler,
	reportHandler *PlantReportHandler,
	sessionHandler *MapSessionHandler,
) *gin.Engine {
	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to TrailGuard-App!",
		})
	})

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "TrailGuard-App",
		})
	})

	trails := r.Group("/trails")
	{
		trails.GET("/clusters", trailHandler.GetClusters)
	}

	r.GET("/markers", reportHandler.GetMarkers)
	r.GET("/markers/info", reportHandler.GetMarkerInfo)
	r.DELETE("/markers", reportHandler.RemoveMarker)
	r.POST("/reports", reportHandler.SubmitReport)
	r.GET("/reports", reportHandler.GetUserReports)

	session := r.Group("/session")
	{
		session.POST("/start", sessionHandler.Start)
		session.GET("", sessionHandler.GetSnapshot)
		session.POST("/refresh", sessionHandler.Refresh)
		session.GET("/surface", sessionHandler.GetSurfaceState)
		session.POST("/clusters/:handle/click", sessionHandler.ClickCluster)
		session.POST("/markers/:handle/click", sessionHandler.ClickPlantMarker)
		session.DELETE("/markers", sessionHandler.DeleteMarker)
		session.POST("/close-card", sessionHandler.CloseDetailCard)
		session.POST("/teardown", sessionHandler.Teardown)
	}

	return r
}
