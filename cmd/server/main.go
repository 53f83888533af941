package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/auth"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/config"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/db"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/handler"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/logger"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/router"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/storage"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	log := logger.Log
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	files, err := storage.NewImageStore(cfg.UploadDir, cfg.UploadURLPath, cfg.MaxUploadBytes())
	if err != nil {
		log.Fatalf("failed to prepare upload directory: %v", err)
	}

	verifier := auth.NewVerifier(cfg.AdminPassword)
	if !verifier.Configured() {
		log.Warn("ADMIN_PASSWORD is not set; admin login will answer with a configuration error")
	}

	api := handler.NewAPI(db.DB, files, verifier)
	r := router.SetupRouter(api, router.Options{
		SessionSecret:   cfg.SessionSecret,
		UploadDir:       cfg.UploadDir,
		UploadURLPath:   cfg.UploadURLPath,
		UploadRateLimit: cfg.UploadRateLimit,
		CORSOrigins:     cfg.CORSOrigins,
		SecureCookies:   cfg.SecureCookies,
	})

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("server shutdown failed")
		}
	}()

	log.WithFields(logrus.Fields{"addr": cfg.ListenAddr, "uploads": cfg.UploadDir}).Info("server listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("failed to run server: %v", err)
	}
	log.Info("server stopped")
}
