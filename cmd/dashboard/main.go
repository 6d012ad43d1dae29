package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"

	"kudata/internal/core/config"
	"kudata/internal/core/logger"
	"kudata/internal/core/server"
	"kudata/internal/transport/http/handler"
	"kudata/internal/transport/http/router"
)

func main() {
	cfgPath := flag.String("config", "", "config file path")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load(*cfgPath)

	log, sync := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer sync()

	h := handler.NewCohortHandler(cfg.Dashboard.DatasetCSV, log)
	engine := router.NewDashboardEngine(cfg, h, log)

	srv := server.BuildServer(
		server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port),
		engine,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	go func() {
		log.Info("dashboard listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
	log.Info("bye")
}
