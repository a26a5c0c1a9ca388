package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"jokeboard/internal/config"
	"jokeboard/internal/db"
	"jokeboard/internal/models"
	"jokeboard/internal/server"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/app.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		slog.Warn("config load failed, using defaults", "path", cfgPath, "error", err)
		cfg = config.Default()
	}
	cfg.ApplyEnv()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		slog.Error("database open failed", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer database.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("hashing admin password failed", "error", err)
		os.Exit(1)
	}
	if err := models.EnsureAdmin(database, cfg.AdminUsername, string(hash)); err != nil {
		slog.Error("bootstrap admin failed", "error", err)
		os.Exit(1)
	}
	slog.Info("bootstrap admin ready", "username", cfg.AdminUsername)

	srv, err := server.New(database, cfg.TemplateDir)
	if err != nil {
		slog.Error("server setup failed", "error", err)
		os.Exit(1)
	}

	httpServer := http.Server{
		Handler: srv,
		Addr:    ":" + cfg.Port,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctrlc
		httpServer.Close()
	}()

	slog.Info("listening", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server closed", "error", err)
		os.Exit(1)
	}
	slog.Info("server closed")
}
