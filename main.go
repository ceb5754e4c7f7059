package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"itdocsapi/bootstrap"
	"itdocsapi/config"
	"itdocsapi/controllers"
	_ "itdocsapi/docs"
	"itdocsapi/pkg/logger"
	"itdocsapi/schema"
	"itdocsapi/services"
)

// @title           itdocsapi
// @version         1.0
// @description     ITDocs infrastructure documentation API

// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token returned by /auth/login.

func main() {
	// 1) Load config
	if err := config.LoadConfig(); err != nil {
		log.Fatalf("LoadConfig error: %v", err)
	}

	// 2) Init structured logger with config
	err := logger.Init(logger.Config{
		File:       config.Cfg.LogFile,
		Level:      logger.ParseLogLevel(config.Cfg.LogLevel),
		MaxSize:    config.Cfg.LogMaxSize,
		MaxBackups: config.Cfg.LogMaxBackups,
		MaxAge:     config.Cfg.LogMaxAge,
		Compress:   config.Cfg.LogCompress,
	})
	if err != nil {
		log.Fatalf("Logger init error: %v", err)
	}
	defer logger.Close()
	logger.Infof("Starting ITDocs API with log level: %s", config.Cfg.LogLevel)

	// 3) Connect DB (GORM)
	if err := config.ConnectDB(); err != nil {
		log.Fatalf("ConnectDB error: %v", err)
	}
	if config.DB == nil {
		log.Fatal("Database is nil after ConnectDB")
	}

	authService := services.NewAuthService()
	if err := bootstrap.LoadData(config.DB, schema.Default(), authService); err != nil {
		log.Fatalf("Load data error: %v", err)
	}

	controllers.SetAuthService(authService)
	controllers.SetEntityService(services.NewEntityService())
	controllers.SetClientService(services.NewClientService())
	controllers.SetScriptService(services.NewScriptService())
	controllers.SetMetadataService(services.NewMetadataService())

	// 4) Setup Gin and swagger routes
	router := controllers.SetupRouter()

	// 5) Run until SIGINT/SIGTERM, then drain requests
	srv := &http.Server{
		Addr:    "0.0.0.0:" + config.Cfg.Port,
		Handler: router,
	}
	go func() {
		logger.Infof("Starting server at port %s", config.Cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server error: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	logger.Infof("Received shutdown signal, stopping HTTP server...")

	ctx, cancel := context.WithTimeout(context.Background(), config.Cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("HTTP server shutdown error: %v", err)
	}
	if err := config.CloseDB(); err != nil {
		logger.Errorf("Database close error: %v", err)
	}
	logger.Infof("Application shutdown complete")
}
