package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"billing_reminder_api/internal/app"
	"billing_reminder_api/internal/domain/channel"
	"billing_reminder_api/internal/infra/config"
	"billing_reminder_api/internal/infra/email"
	"billing_reminder_api/internal/infra/httpserver"
	"billing_reminder_api/internal/infra/logger"
	"billing_reminder_api/internal/infra/memory"
	"billing_reminder_api/internal/infra/sheet"
	"billing_reminder_api/internal/infra/waha"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("FATAL: Could not load application configuration: %v", err)
	}

	logger.Init(cfg)
	log := logger.Get()
	log.Infof("Configuration loaded. LogLevel: %s, Environment: %s, Sheet: %s, ReminderDays: %v",
		cfg.LogLevel, cfg.Environment, cfg.BillingSheetPath, cfg.ReminderDaysBeforeDue)

	// Channel clients. The reminder service only sees the channel interfaces.
	wahaClient := waha.NewClient(cfg.WahaBaseURL, cfg.WahaAPIToken, cfg.WahaDefaultSender, cfg.WahaTimeout)
	log.Info("WAHA client initialized.")

	var emailSender channel.EmailSender
	if cfg.EmailEnabled {
		emailSender = email.NewClient(email.Config{
			Provider:     cfg.EmailProvider,
			SMTPHost:     cfg.EmailSMTPHost,
			SMTPPort:     cfg.EmailSMTPPort,
			SMTPUser:     cfg.EmailSMTPUser,
			SMTPPassword: cfg.EmailSMTPPassword,
			SMTPUseTLS:   cfg.EmailSMTPUseTLS,
			APIKey:       cfg.EmailAPIKey,
			FromEmail:    cfg.EmailFrom,
			FromName:     cfg.EmailFromName,
		})
		log.Infof("Email client initialized (provider: %s).", cfg.EmailProvider)
	} else {
		log.Info("Email channel disabled.")
	}

	reminderService, err := app.NewReminderService(
		cfg.BillingSheetPath,
		cfg.ReminderDaysBeforeDue,
		sheet.NewLoader(log),
		wahaClient,
		emailSender,
		cfg.EmailEnabled,
		log,
	)
	if err != nil {
		log.Fatalf("FATAL: Could not initialize reminder service: %v", err)
	}
	log.Info("Reminder service initialized.")

	registryService := app.NewRegistryService(memory.NewServiceRepository())
	log.Info("Service registry initialized.")

	server := httpserver.New(reminderService, registryService, log, cfg.Environment)
	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: server.Handler(),
	}

	go func() {
		log.Infof("HTTP server listening on %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: HTTP server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down application...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Errorf("HTTP server shutdown error: %v", err)
	}
	log.Info("Application shut down gracefully.")
}
