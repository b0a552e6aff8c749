// Package main initializes and starts the event-portal server, setting
// up configuration, logging, the identity directory, the record stores,
// sessions, services, and HTTP handlers.
package main

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/sgshs/eventportal/internal/config"
	"github.com/sgshs/eventportal/internal/identity"
	"github.com/sgshs/eventportal/internal/logger"
	"github.com/sgshs/eventportal/internal/otp"
	"github.com/sgshs/eventportal/internal/server/handler/http"
	"github.com/sgshs/eventportal/internal/service"
	"github.com/sgshs/eventportal/internal/session"
	"github.com/sgshs/eventportal/internal/store"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Load .env best-effort before reading configuration.
	_ = godotenv.Load()

	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load the login allow-list once; a DSN selects the PostgreSQL
	// backend, otherwise the CSV file is used. Either way an unreadable
	// source means an empty directory, never a startup failure.
	var identityRepo identity.Repository = &identity.CSVRepository{Path: options.AllowedUsersFile}
	if options.DatabaseDSN != "" {
		db, err := identity.InitPostgres(options.DatabaseDSN)
		if err != nil {
			zapLogger.Fatal("cannot init database", zap.Error(err))
		}
		defer db.Close()
		identityRepo = identity.NewPostgresRepository(db)
	}
	directory := identity.Load(ctx, identityRepo, zapLogger)

	// Open the record stores, creating header-only files when missing.
	registrations, err := store.Open(options.RegistrationsFile, service.RegistrationSchema)
	if err != nil {
		zapLogger.Fatal("cannot open registration store", zap.Error(err))
	}
	notices, err := store.Open(options.NoticesFile, service.AnnouncementSchema)
	if err != nil {
		zapLogger.Fatal("cannot open announcement store", zap.Error(err))
	}

	// In-memory sessions with an idle-expiry sweeper.
	sessions := session.NewManager(options.SessionTTL())
	sessions.StartSweeper(ctx, time.Minute, zapLogger)

	// Initialize business-logic services.
	delivery := &otp.LogDelivery{Log: zapLogger}
	verifier := service.NewVerificationService(directory, delivery)
	gate := service.NewAdminGate(options.AdminPassword)
	registrationService := service.NewRegistrationService(registrations)
	announcementService := service.NewAnnouncementService(notices)
	galleryService, err := service.NewGalleryService(options.GalleryDir)
	if err != nil {
		zapLogger.Fatal("cannot init gallery", zap.Error(err))
	}

	// Create HTTP handlers.
	authHandler := &http.AuthHandler{Sessions: sessions, Verifier: verifier}
	adminHandler := &http.AdminHandler{Gate: gate}
	registrationHandler := &http.RegistrationHandler{Registrations: registrationService}
	announcementHandler := &http.AnnouncementHandler{Announcements: announcementService}
	galleryHandler := &http.GalleryHandler{Gallery: galleryService}
	eventHandler := &http.EventHandler{
		Board: announcementService,
		Name:  options.EventName,
		At:    options.EventStart(time.Now()),
	}

	// Build the router with middleware and routes.
	router := http.NewRouter(
		authHandler,
		adminHandler,
		registrationHandler,
		announcementHandler,
		galleryHandler,
		eventHandler,
		sessions,
		galleryService.Dir(),
		zapLogger,
	)

	server := &nethttp.Server{
		Addr:    options.Port,
		Handler: router,
	}

	go func() {
		zapLogger.Info("starting HTTP server", zap.String("addr", options.Port))
		if err := server.ListenAndServe(); err != nil && err != nethttp.ErrServerClosed {
			zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLogger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLogger.Warn("http server shutdown failed", zap.Error(err))
	}
}
