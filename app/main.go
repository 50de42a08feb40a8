package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dkoval/linktrack/app/api"
	"github.com/dkoval/linktrack/app/cfg"
	"github.com/dkoval/linktrack/app/crawl"
	"github.com/dkoval/linktrack/app/database"
	"github.com/dkoval/linktrack/app/links"
	"github.com/dkoval/linktrack/app/mail"
	"github.com/dkoval/linktrack/app/tasks"
)

func main() {
	appConfig, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appConfig == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appConfig.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting LinkTrack server", "version", appConfig.Version)

	db, err := database.NewConnection(appConfig.DBPath)
	if err != nil {
		log.Fatal("Failed to open database: ", err)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}
	slog.Info("Database ready", "path", appConfig.DBPath, "migration_version", version, "dirty", dirty)

	linkRepo := database.NewLinkRepository(db)

	configCache := crawl.NewConfigCache(appConfig.SitesDir)
	if err := configCache.Run(); err != nil {
		log.Fatal("Failed to load site configurations: ", err)
	}
	slog.Info("Site configurations loaded", "count", configCache.GetConfigCount())

	httpClient := &http.Client{}

	normalizer := links.NewNormalizer(appConfig.CourseHost)
	tracker := links.NewTracker(linkRepo)
	crawler := crawl.NewCrawler(httpClient, appConfig.UserAgent)

	var mailer mail.Sender
	if appConfig.SMTPHost != "" {
		mailer = mail.NewSMTPMailer(appConfig.SMTPHost, appConfig.SMTPPort,
			appConfig.SMTPUser, appConfig.SMTPPass, appConfig.FromEmail)
		slog.Info("Mail notifications enabled", "smtp_host", appConfig.SMTPHost, "default_recipient", appConfig.NotifyEmail)
	} else {
		slog.Info("Mail notifications disabled (SMTP_HOST not set)")
	}

	scheduler := tasks.NewScheduler(configCache, crawler, tracker, mailer)
	scheduler.Start()
	defer scheduler.Stop()
	slog.Info("Background scheduler started", "workers", appConfig.WorkerCount, "interval_seconds", appConfig.SchedulerInterval)

	apiHandler := api.NewHandler(normalizer, tracker, linkRepo, mailer,
		appConfig.APIToken, appConfig.NotifyEmail)
	server := api.NewServer(apiHandler, appConfig.APIToken)

	httpServer := &http.Server{
		Addr:         ":" + appConfig.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appConfig.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}
}
