package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"photodrive/internal/api"
	"photodrive/internal/config"
	"photodrive/internal/platform/crypto"
	"photodrive/internal/platform/email"
	"photodrive/internal/service"
	"photodrive/internal/store/mongo"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "photodrive",
		Short: "Passcode-gated photo album service",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		},
	}

	root.AddCommand(startCmd())
	root.AddCommand(versionCmd())

	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(Version)
		},
	}
}

func startCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}
}

// run initializes every dependency and serves HTTP until a shutdown signal.
func run() error {
	// =========================================================================
	// Configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	log.Info().Msg("configuration loaded")

	// =========================================================================
	// Database Connection
	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbClient, err := mongo.NewClient(dbCtx, cfg.Mongo)
	if err != nil {
		return fmt.Errorf("could not connect to database: %w", err)
	}
	defer func() {
		if err := dbClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("error disconnecting from DB")
		}
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("database connection established")

	db := dbClient.Database(cfg.Mongo.Database)

	// =========================================================================
	// Initialize Dependencies
	userStore := mongo.NewUserStore(db)
	folderStore := mongo.NewFolderStore(db)
	photoStore := mongo.NewPhotoStore(db, cfg.HTTP.URL)

	tokenSvc := crypto.NewJWTGenerator(cfg.Auth.AccessKey, cfg.Auth.RefreshKey, cfg.Auth.AccessKeyTTL, cfg.Auth.RefreshKeyTTL)
	passSvc := crypto.NewBcryptManager(0)

	var emailSvc email.EmailService
	if cfg.Email.NotificationsEnabled {
		emailSvc = email.NewSMTPEmailService(cfg.Email, cfg.HTTP.URL)
	}

	userService := service.NewUserService(userStore, *cfg, tokenSvc, passSvc)
	folderService := service.NewFolderService(folderStore, emailSvc)
	uploadService := service.NewUploadService(folderStore, photoStore)

	userHandler := api.NewUserHandler(userService, cfg.HTTP)
	folderHandler := api.NewFolderHandler(folderService)
	photoHandler := api.NewPhotoHandler(uploadService, photoStore)
	auth := api.NewAuthMiddleware(tokenSvc)

	log.Info().Msg("dependencies initialized")

	// =========================================================================
	// HTTP Server Setup
	handler := api.NewRouter(userHandler, folderHandler, photoHandler, auth)

	server := &http.Server{
		Addr:         cfg.HTTP.Port,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// =========================================================================
	// Start Server & Graceful Shutdown
	shutdownErr := make(chan error)

	go func() {
		log.Info().Str("addr", server.Addr).Msg("server starting")
		if cfg.HTTP.KeyPath != "" && cfg.HTTP.CertPath != "" {
			shutdownErr <- server.ListenAndServeTLS(cfg.HTTP.CertPath, cfg.HTTP.KeyPath)
		} else {
			shutdownErr <- server.ListenAndServe()
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-shutdownErr:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	}

	ctx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info().Msg("server shut down gracefully")
	return nil
}
