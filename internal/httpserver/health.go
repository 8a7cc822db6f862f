package httpserver

import (
	"context"
	"net/http"

	"report-srv/config"
	"report-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	ServiceName    = "report-srv"
	ServiceVersion = "1.0.0"
)

type dependencyCheck struct {
	name string
	ping func(ctx context.Context) error
}

// dependencies lists what /ready probes. MinIO is only probed for the minio
// storage backend.
func (srv HTTPServer) dependencies() []dependencyCheck {
	checks := []dependencyCheck{
		{name: "postgres", ping: srv.postgresDB.PingContext},
		{name: "redis", ping: srv.redisClient.Ping},
	}
	if srv.minioClient != nil {
		checks = append(checks, dependencyCheck{name: "minio", ping: srv.minioClient.HealthCheck})
	}
	return checks
}

func (srv HTTPServer) storageBackend() string {
	if srv.minioClient != nil {
		return config.StorageBackendMinIO
	}
	return config.StorageBackendLocal
}

// healthCheck
// @Summary Health Check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Resp
// @Router /health [get]
func (srv HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "healthy",
		"service": ServiceName,
		"version": ServiceVersion,
	})
}

// readyCheck pings every dependency in order and stops at the first failure.
// The failure cause is logged, never returned.
// @Summary Readiness Check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Resp
// @Failure 503 {object} map[string]interface{}
// @Router /ready [get]
func (srv HTTPServer) readyCheck(c *gin.Context) {
	ctx := c.Request.Context()

	deps := gin.H{}
	for _, dep := range srv.dependencies() {
		if err := dep.ping(ctx); err != nil {
			srv.l.Errorf(ctx, "httpserver.readyCheck.%s: %v", dep.name, err)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"failed": dep.name,
			})
			return
		}
		deps[dep.name] = "up"
	}

	response.OK(c, gin.H{
		"status":       "ready",
		"service":      ServiceName,
		"version":      ServiceVersion,
		"storage":      srv.storageBackend(),
		"dependencies": deps,
	})
}

// liveCheck
// @Summary Liveness Check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Resp
// @Router /live [get]
func (srv HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{"status": "alive"})
}
