package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"jotter/internal/config"
	"jotter/internal/database"
	"jotter/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	store := database.New(cfg.DataFile, log)
	srv := server.New(store, log)
	srv.RegisterFiberRoutes()

	go func() {
		log.Info("listening", zap.String("port", cfg.Port), zap.String("data_file", cfg.DataFile))
		if err := srv.Listen(":" + cfg.Port); err != nil {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	if err := srv.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Error("shutdown failed", zap.Error(err))
	}
}
