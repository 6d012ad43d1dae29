package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"kudata/internal/core/config"
	"kudata/internal/transport/http/handler"
	"kudata/internal/transport/http/middleware"
	resp "kudata/internal/transport/http/response"
)

// NewDashboardEngine 组装仪表盘路由：基础中间件 + 页面 + JSON API
func NewDashboardEngine(cfg *config.Config, h *handler.CohortHandler, log *zap.Logger) *gin.Engine {
	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	e := gin.New()

	e.Use(middleware.RequestID())
	e.Use(middleware.RateLimit(100, 200))
	e.Use(middleware.ConcurrencyLimit(64))
	e.Use(middleware.Timeout(10 * time.Second))
	e.Use(ginzap.RecoveryWithZap(log, true))
	e.Use(middleware.Metrics())
	e.Use(middleware.AccessLog(log))
	e.Use(cors.Default())

	e.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, resp.OK(gin.H{"status": "ok", "app": cfg.App.Name}))
	})
	e.GET("/metrics", gin.WrapH(promhttp.Handler()))

	e.GET("/", h.Index)
	e.GET("/charts", h.Charts)

	v1 := e.Group("/api/v1")
	v1.GET("/cohort", h.Cohort)

	return e
}
