// Package router provides resume service routing.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"

	"github.com/Anurag02012004/ai-resume-project/internal/resume/handler"
	"github.com/Anurag02012004/ai-resume-project/pkg/middleware"
)

// Register registers the resume service routes on the engine.
func Register(engine *gin.Engine, resumeHandler *handler.ResumeHandler) {
	logger.Info("Registering resume routes...")

	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := engine.Group("/api/v1")
	{
		v1.GET("/health", resumeHandler.Health)

		// Profile data endpoints
		v1.GET("/profile", resumeHandler.Profile)
		v1.GET("/projects", resumeHandler.Projects)
		v1.GET("/experiences", resumeHandler.Experiences)
		v1.GET("/skills", resumeHandler.Skills)
		v1.GET("/education", resumeHandler.Education)
		v1.GET("/certificates", resumeHandler.Certificates)

		// Answering pipeline endpoints
		v1.POST("/query", resumeHandler.Query)
		v1.POST("/sync", resumeHandler.Sync)
		v1.GET("/stats", resumeHandler.Stats)
	}

	logger.Info("HTTP routes registered")
}
