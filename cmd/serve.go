package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "mini_crm/docs"
	"mini_crm/internal/auth"
	"mini_crm/internal/handlers"
	"mini_crm/internal/metrics"
	"mini_crm/internal/notify"
	"mini_crm/internal/repository"
	"mini_crm/internal/repository/db"
	"mini_crm/internal/server"
	"mini_crm/internal/service"

	"github.com/spf13/cobra"
)

var port string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides config)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	if port != "" {
		cfg.Port = port
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	conn, err := db.Open(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close database", "err", cerr)
		}
	}()

	codec, err := auth.NewCodec(cfg.JWT.Secret, cfg.JWT.TTL)
	if err != nil {
		return err
	}

	// wire dependencies
	repos := repository.NewRepository(conn)
	services := service.NewService(repos, codec)
	collector := metrics.NewCollector()
	hub := notify.NewHub()

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	notifier := notify.NewReminderNotifier(repos.Reminders, hub, collector, log)
	if err := notifier.Start(ctx, cfg.Notifier.Schedule); err != nil {
		return err
	}

	apiHandler := handlers.NewHandler(services, log,
		handlers.WithPinger(conn),
		handlers.WithMetrics(collector),
		handlers.WithHub(hub),
		handlers.WithAuthRateLimit(cfg.Rate.RPS, cfg.Rate.Burst),
		handlers.WithAllowOrigins(cfg.CORS.AllowOrigins),
		handlers.WithFeedInterval(cfg.Notifier.FeedInterval),
	)

	srv := server.New(cfg.Port, apiHandler.InitRoutes())
	errCh := make(chan error, 1)
	go func() {
		log.Infow("listening", "addr", srv.Addr(), "driver", cfg.DB.Driver)
		errCh <- srv.Run()
	}()

	select {
	case err := <-errCh:
		hub.Close()
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Infow("shutting down server...")
	notifier.Stop()
	// websocket handlers return once their subscriptions close
	hub.Close()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}
