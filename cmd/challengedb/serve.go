package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/sagarc03/challengedb"
	"github.com/sagarc03/challengedb/config"
	"github.com/sagarc03/challengedb/database"
	challengehttp "github.com/sagarc03/challengedb/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start the challengedb HTTP server.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 9000, "HTTP server port")
	serveCmd.Flags().Bool("metrics", false, "expose Prometheus metrics")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.FromContext(ctx)
	if err != nil {
		return err
	}

	db, err := database.Open(ctx, cfg.Database, cfg.Database.AutoMigrate)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = db.Close() }()
	slog.Info("connected to database", "type", cfg.Database.Type, "table", cfg.Database.Tables.Challenges)

	handler, err := newChallengeHandler(cfg, db.GetRepo())
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler.Router(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", server.Addr, "base_path", cfg.Server.BasePath, "metrics", cfg.Metrics.Enabled)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-serveErr; !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// newChallengeHandler wires the service, the digest verifier for the
// configured mount and, when enabled, a private Prometheus registry.
func newChallengeHandler(cfg *config.Config, repo challengedb.ChallengeRepo) (*challengehttp.Handler, error) {
	secret, err := cfg.Secret()
	if err != nil {
		return nil, fmt.Errorf("resolve secret: %w", err)
	}

	service, err := challengedb.NewChallengeService(repo)
	if err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}

	basePath := challengedb.NormalizeBasePath(cfg.Server.BasePath)
	hc := challengehttp.HandlerConfig{
		BasePath: basePath,
		Verifier: challengedb.NewDigestVerifier(secret, basePath),
		CORS:     cfg.CORS,
	}

	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		hc.Metrics = challengehttp.NewMetrics(reg)
		hc.MetricsPath = cfg.Metrics.Path
	}

	return challengehttp.NewHandler(&hc, service), nil
}
