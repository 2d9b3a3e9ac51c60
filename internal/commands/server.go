package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"evalgo.org/emulium/internal/api"
	"evalgo.org/emulium/internal/console"
	"evalgo.org/emulium/internal/gns3"
	"evalgo.org/emulium/internal/push"
	"evalgo.org/emulium/internal/registry"
	"evalgo.org/emulium/internal/scheduler"
	"evalgo.org/emulium/internal/storage"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the API server",
	Long: `Start the HTTP API server with Echo framework.

With scheduler.enabled the server also evaluates stored scheduled
actions and deploys, stops or tears down labs on their schedule.`,
	RunE: runServer,
}

func runServer(cmd *cobra.Command, args []string) error {
	// Initialize storage layer
	store, err := storage.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	// GNS3 connections, console registry and push engine
	mgr := newManager()
	reg := registry.New()
	pusher := newPusher(reg)

	// Create API server
	server := api.New(cfg, store, mgr, reg, pusher)

	// Scheduled lab actions share the server's deployment plumbing so a
	// scheduled deploy behaves exactly like an interactive one.
	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		executor := scheduler.NewLabExecutor(store, mgr, reg, pusher, cfg.Push, server.Notify)
		sched = scheduler.New(store, executor, cfg.Scheduler.Interval)
		sched.Start()
	}

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	// Start server in a goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		fmt.Println("\n⚠️  Shutdown signal received")

		if sched != nil {
			sched.Stop()
		}

		// Create shutdown context with timeout
		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			cfg.Server.ShutdownTimeout,
		)
		defer cancel()

		// Graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}

		mgr.Close()
		return nil

	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}
}

// newManager builds a GNS3 connection manager seeded with the
// configured default server.
func newManager() *gns3.Manager {
	return gns3.NewManager(gns3.Config{
		URL:          cfg.GNS3.URL,
		Username:     cfg.GNS3.Username,
		Password:     cfg.GNS3.Password,
		Timeout:      cfg.GNS3.Timeout,
		RequestDelay: cfg.GNS3.RequestDelay,
	})
}

// newPusher builds a push orchestrator that dials node consoles with
// the configured timeouts.
func newPusher(reg *registry.Registry) *push.Orchestrator {
	return push.NewOrchestrator(reg, console.NetDialer{
		Settings: console.Settings{
			ConnectTimeout: cfg.Console.ConnectTimeout,
			PollInterval:   cfg.Console.PollInterval,
		},
	})
}
