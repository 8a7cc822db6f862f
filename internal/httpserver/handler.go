package httpserver

import (
	"context"
	"fmt"

	"report-srv/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (srv HTTPServer) mapHandlers() error {
	mw := middleware.New(srv.l, srv.jwtManager, srv.config.Cookie, srv.config.InternalConfig, srv.encrypter)

	srv.registerMiddlewares()
	srv.registerSystemRoutes()

	ctx := context.Background()
	if err := srv.setupReportDomain(ctx, srv.gin.Group(""), mw); err != nil {
		return fmt.Errorf("failed to setup report domain: %w", err)
	}

	return nil
}

func (srv HTTPServer) registerMiddlewares() {
	srv.gin.Use(middleware.RequestID())
	srv.gin.Use(gin.Logger())
	srv.gin.Use(middleware.Recovery(srv.l))
}

func (srv HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	srv.gin.GET("/metrics", gin.WrapH(promhttp.HandlerFor(srv.registry, promhttp.HandlerOpts{})))
}
