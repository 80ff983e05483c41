package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"filmorate/backend/internal/api"
	"filmorate/backend/internal/clock"
	"filmorate/backend/internal/graph"
	"filmorate/backend/internal/seed"
	"filmorate/backend/pkg/config"
	apperrors "filmorate/backend/pkg/errors"
	"filmorate/backend/pkg/logger"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode is 2 for configuration errors and 1 for everything else
func exitCode(err error) int {
	if apperrors.IsErrorType(err, apperrors.ErrorTypeConfig) {
		return 2
	}
	return 1
}

// flagOptions holds command-line overrides of the environment
type flagOptions struct {
	Port string
	Env  string
	Seed string
}

func newRootCommand() *cobra.Command {
	opts := &flagOptions{}

	cmd := &cobra.Command{
		Use:   "filmorate",
		Short: "Film catalog and social graph HTTP API",
		Long: `Serve the film catalog and the user friendship graph over HTTP.

Configuration comes from the environment (or a .env file); the flags below
override it.

Example:
  filmorate --port 9090
  filmorate --env production --seed backend/fixtures/demo.yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, cfg)
		},
	}

	cmd.Flags().StringVarP(&opts.Port, "port", "p", "", "HTTP listen port (overrides PORT)")
	cmd.Flags().StringVar(&opts.Env, "env", "", "development or production (overrides ENV)")
	cmd.Flags().StringVar(&opts.Seed, "seed", "", "YAML fixture to load on start (overrides SEED_FILE)")

	return cmd
}

// loadConfig reads the environment and applies the flags that were set
func loadConfig(cmd *cobra.Command, opts *flagOptions) (*config.Config, error) {
	cfg := config.LoadEnv()

	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.Port = opts.Port
	}
	if flags.Changed("env") {
		cfg.Env = opts.Env
	}
	if flags.Changed("seed") {
		cfg.SeedFile = opts.Seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func runServer(ctx context.Context, cfg *config.Config) error {
	if err := logger.Init(cfg.Env, cfg.LogLevel); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting HTTP API server...", zap.String("env", cfg.Env))

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	srv, err := buildServer(cfg, log)
	if err != nil {
		return err
	}

	if err := serve(ctx, srv, cfg.ShutdownTimeout, log); err != nil {
		return err
	}
	log.Info("Server exited")
	return nil
}

// buildServer assembles the core services, optional seed data and the router
func buildServer(cfg *config.Config, log *zap.Logger) (*http.Server, error) {
	st := graph.NewStore(clock.System{})
	users := graph.NewSocialGraph(st)
	films := graph.NewMediaCatalog(st, users)

	if cfg.SeedFile != "" {
		fx, err := seed.Load(cfg.SeedFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load seed file %s: %w", cfg.SeedFile, err)
		}
		sum, err := fx.Apply(films, users)
		if err != nil {
			return nil, fmt.Errorf("failed to apply seed file %s: %w", cfg.SeedFile, err)
		}
		log.Info("Seed data loaded",
			zap.String("file", cfg.SeedFile),
			zap.Int("users", sum.Users),
			zap.Int("films", sum.Films),
			zap.Int("friendships", sum.Friendships),
			zap.Int("likes", sum.Likes),
		)
	}

	opts := api.Options{Logger: log.Named("http")}
	if cfg.MetricsEnabled {
		opts.Metrics = api.NewMetrics(st)
	}
	if cfg.RateLimitRPS > 0 {
		opts.RateLimiter = api.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	return &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(films, users, opts),
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

// serve runs srv until ctx is cancelled, then shuts it down gracefully
func serve(ctx context.Context, srv *http.Server, timeout time.Duration, log *zap.Logger) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
