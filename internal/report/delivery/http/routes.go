package http

import (
	"report-srv/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (h *handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	api := r.Group("/api/v1")
	api.Use(mw.Auth())
	{
		reports := api.Group("/reports")
		reports.POST("/generate", h.Generate)
		reports.GET("", h.ListReports)
		reports.GET("/:report_id", h.GetReport)
		reports.GET("/:report_id/download", h.Download)
		reports.GET("/:report_id/files", h.ListFiles)
		reports.GET("/:report_id/download-logs", h.ListJobDownloadLogs)

		files := api.Group("/report-files")
		files.GET("/:file_id/download", h.DownloadByFileID)
		files.GET("/:file_id/download-logs", h.ListFileDownloadLogs)

		api.GET("/report-types", h.ListTypes)
		api.GET("/report-schedules", h.ListSchedules)
	}

	internal := r.Group("/internal")
	internal.Use(mw.ServiceAuth())
	{
		internal.POST("/reports/generate", h.GenerateInternal)
	}
}
