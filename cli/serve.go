package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Govind-619/MarketSphere/checkout"
	"github.com/Govind-619/MarketSphere/config"
	"github.com/Govind-619/MarketSphere/controllers"
	"github.com/Govind-619/MarketSphere/routes"
	"github.com/Govind-619/MarketSphere/store"
	"github.com/Govind-619/MarketSphere/utils"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the checkout HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}
			return runServe(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides PORT)")
	return cmd
}

func runServe(parent context.Context, cfg *config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps := routes.Dependencies{Config: cfg}
	var journal checkout.Journal
	if cfg.HasDatabase() {
		db, err := config.ConnectDatabase(cfg)
		if err != nil {
			utils.LogError("Database connection failed: %v", err)
			return err
		}
		attempts := store.NewAttemptJournal(db)
		journal = attempts
		deps.Attempts = controllers.AttemptLister(attempts)
		deps.DB = db
		utils.LogInfo("Payment attempt journal enabled")
	} else {
		utils.LogInfo("No database configured, payment attempt journal disabled")
	}

	factory, err := newSessionFactory(cfg, journal)
	if err != nil {
		return err
	}
	registry, err := checkout.NewRegistry(cfg.SessionCacheSize, factory)
	if err != nil {
		return err
	}
	defer registry.Close()
	deps.Registry = registry

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.SetupRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		utils.LogInfo("Server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			utils.LogError("Error starting server: %v", err)
		}
		return err
	case <-ctx.Done():
	}

	utils.LogInfo("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		utils.LogError("Server shutdown failed: %v", err)
		return err
	}
	return nil
}
